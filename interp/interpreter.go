package interp

import (
	"io"

	"github.com/cellforth/cellforth/lexer"
)

// InterpreterCont is the outermost driving loop: it reads one token from the
// current source block per step, resolves it to a Continuation, and hands
// that off to a CompileExecuteCont to decide whether it should be compiled
// into the innermost open definition or executed immediately. The
// interpreter finishes (returns nil, nil) once the source block stack is
// exhausted.
type InterpreterCont struct{}

func (InterpreterCont) Name() string { return "interpret" }

func (ic InterpreterCont) Run(ctx *Context) (Continuation, error) {
	tok, err := ctx.Source.Next()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	cont, active, ok, err := resolveToken(ctx, tok.Text)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, UndefinedWordError{Word: tok.Text}
	}

	ctx.InsertBeforeNext(&CompileExecuteCont{Cont: cont, Active: active})
	// exit_interpret always points at the continuation this step would
	// hand back if it returned normally: another pass of InterpreterCont.
	ctx.SetExitInterpretCont(ic)
	return ic, nil
}

// CompileExecuteCont implements the compile/execute dichotomy every
// resolved token goes through: while a definition is open (Context.Compiling
// reports true), non-active words are appended to its body instead of being
// run; active ("immediate") words always run right away, which is how
// control words like `if`/`then`/`;` take effect during compilation itself.
type CompileExecuteCont struct {
	Cont   Continuation
	Active bool
}

func (CompileExecuteCont) Name() string { return "compile-execute" }

func (c *CompileExecuteCont) Run(ctx *Context) (Continuation, error) {
	if ctx.Compiling() && !c.Active {
		ctx.CompileAppend(c.Cont)
		return nil, nil
	}
	return c.Cont, nil
}

// wordCont builds the Continuation a dictionary Entry's body runs as. The
// body WordList is shared across every future invocation of the word, so it
// is marked Shared before being handed to the trampoline: any ListCont
// mutation will clone rather than rewrite the dictionary's copy.
func wordCont(e Entry) Continuation {
	c := Seq(e.Body)
	if s, ok := c.(Shareable); ok {
		s.MarkShared()
	}
	return c
}

// resolveToken resolves text to a Continuation by, in order: a quoted-string
// literal, the longest dictionary subtoken match, a trailing-space
// "predefined" dictionary lookup (some entries are registered under a name
// ending in a space precisely so a bare token only reaches them here, after
// the subtoken pass), and finally a number literal parse. ok is false only
// when none of these apply, in which case the caller should report an
// undefined word.
//
// A subtoken match that does not consume the whole token rewinds the
// unconsumed remainder back onto the source block rather than resolving it
// in place: the next InterpreterCont step rescans it as its own token, so
// each piece gets its own active/non-active handling instead of the whole
// token being forced active only when every piece is.
func resolveToken(ctx *Context, text string) (cont Continuation, active bool, ok bool, err error) {
	if lit, isStr := parseQuotedString(text); isStr {
		return lit, false, true, nil
	}

	st := lexer.NewSubtokens(text)
	for prefix, more := st.Next(); more; prefix, more = st.Next() {
		e, found := ctx.Dict.Lookup(prefix)
		if !found {
			continue
		}
		if remainder := st.Remainder(); remainder != "" {
			ctx.Source.RewindString(remainder)
		}
		return wordCont(e), e.Active, true, nil
	}

	if e, found := ctx.Dict.Lookup(text + " "); found {
		return wordCont(e), e.Active, true, nil
	}

	if lit, isNum, perr := ParseNumber(ctx, text); perr != nil {
		return nil, false, false, perr
	} else if isNum {
		return lit, false, true, nil
	}

	return nil, false, false, nil
}
