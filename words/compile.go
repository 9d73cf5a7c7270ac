package words

import (
	"fmt"
	"math/big"

	"github.com/cellforth/cellforth/interp"
	"github.com/cellforth/cellforth/stackvm"
)

// active builds an immediate word: its body runs right away even while a
// definition is open, which is how every compile-punctuation word below
// takes effect during compilation instead of becoming part of it.
func active(name string, fn func(*interp.Context) error) interp.Entry {
	return interp.Entry{
		Name:   name,
		Active: true,
		Body:   interp.WordList{interp.ContextFunc{WordName: name, Fn: fn}},
	}
}

var compileWords = []interp.Entry{
	active(":", func(ctx *interp.Context) error {
		tok, err := ctx.Source.Next()
		if err != nil {
			return fmt.Errorf(": expected a name to define: %w", err)
		}
		ctx.BeginCompile(tok.Text)
		return nil
	}),
	active(";", func(ctx *interp.Context) error {
		if !ctx.Compiling() {
			return interp.CompileError{Reason: "; with no matching :"}
		}
		name, body := ctx.EndCompile()
		ctx.Dict.Define(interp.Entry{Name: name, Body: body})
		return nil
	}),
	active("'", func(ctx *interp.Context) error {
		tok, err := ctx.Source.Next()
		if err != nil {
			return fmt.Errorf("': expected a word name: %w", err)
		}
		e, ok := ctx.Dict.Lookup(tok.Text)
		if !ok {
			return interp.UndefinedWordError{Word: tok.Text}
		}
		lit := &interp.LitCont{V: stackvm.ContValue{Body: e.Body}}
		appendOrRun(ctx, lit)
		return nil
	}),
	active("{", func(ctx *interp.Context) error {
		ctx.BeginCompile("")
		return nil
	}),
	active("}", func(ctx *interp.Context) error {
		if !ctx.Compiling() {
			return interp.CompileError{Reason: "} with no matching {"}
		}
		_, body := ctx.EndCompile()
		lit := &interp.LitCont{V: stackvm.ContValue{Body: body}}
		if ctx.Compiling() {
			ctx.CompileAppend(lit)
		} else {
			ctx.InsertBeforeNext(lit)
		}
		return nil
	}),
	active("do", func(ctx *interp.Context) error {
		// Stack order is `limit start do`, so start (pushed last) pops first.
		start, err := popInt(ctx)
		if err != nil {
			return fmt.Errorf("do: %w", err)
		}
		limit, err := popInt(ctx)
		if err != nil {
			return fmt.Errorf("do: %w", err)
		}
		ctx.PushDoBounds(start.Int64(), limit.Int64())
		ctx.BeginCompile("")
		return nil
	}),
	active("loop", func(ctx *interp.Context) error {
		if !ctx.Compiling() {
			return interp.CompileError{Reason: "loop with no matching do"}
		}
		_, body := ctx.EndCompile()
		start, limit, ok := ctx.PopDoBounds()
		if !ok {
			return interp.CompileError{Reason: "loop with no matching do"}
		}
		appendOrRun(ctx, &interp.DoLoopCont{Start: start, Limit: limit, Body: body})
		return nil
	}),
	{Name: "i", Body: interp.WordList{interp.ContextFunc{WordName: "i", Fn: func(ctx *interp.Context) error {
		idx, ok := ctx.TopLoopIndex()
		if !ok {
			return fmt.Errorf("i: not inside a do loop")
		}
		ctx.Stack.Push(stackvm.NewInt(idx))
		return nil
	}}}},
	active("if", func(ctx *interp.Context) error {
		ctx.PushIfThenBody(nil) // no else yet
		ctx.BeginCompile("")
		return nil
	}),
	active("else", func(ctx *interp.Context) error {
		if !ctx.Compiling() {
			return interp.CompileError{Reason: "else with no matching if"}
		}
		_, thenBody := ctx.EndCompile()
		if thenBody == nil {
			thenBody = interp.WordList{} // non-nil: this if has an else
		}
		ctx.PopIfThenBody()
		ctx.PushIfThenBody(thenBody)
		ctx.BeginCompile("")
		return nil
	}),
	active("then", func(ctx *interp.Context) error {
		if !ctx.Compiling() {
			return interp.CompileError{Reason: "then with no matching if"}
		}
		_, body := ctx.EndCompile()
		var cond *interp.CondCont
		if thenBody, ok := ctx.PopIfThenBody(); ok && thenBody != nil {
			cond = &interp.CondCont{Then: thenBody, Else: body}
		} else {
			cond = &interp.CondCont{Then: body}
		}
		appendOrRun(ctx, cond)
		return nil
	}),
	// times/until/while consume already-built blocks at runtime: write
	// `{ ... }` to push a block value, then the combinator pops it and
	// drives the loop. This keeps loop compilation out of the : / ; / { / }
	// bookkeeping entirely.
	{Name: "times", Body: interp.WordList{interp.ContextTailFunc{WordName: "times", Fn: func(ctx *interp.Context) (interp.Continuation, error) {
		// Stack order is `{ body } n times`: n is pushed last (top), the
		// block below it, so whatever data the block operates on stays
		// buried beneath both and is undisturbed by this word.
		n, err := popInt(ctx)
		if err != nil {
			return nil, err
		}
		body, err := popBlock(ctx)
		if err != nil {
			return nil, err
		}
		return &interp.TimesCont{Body: body, N: int(n.Int64())}, nil
	}}}},
	{Name: "until", Body: interp.WordList{interp.ContextTailFunc{WordName: "until", Fn: func(ctx *interp.Context) (interp.Continuation, error) {
		body, err := popBlock(ctx)
		if err != nil {
			return nil, err
		}
		return &interp.UntilCont{Body: body}, nil
	}}}},
	{Name: "while", Body: interp.WordList{interp.ContextTailFunc{WordName: "while", Fn: func(ctx *interp.Context) (interp.Continuation, error) {
		body, err := popBlock(ctx)
		if err != nil {
			return nil, err
		}
		cond, err := popBlock(ctx)
		if err != nil {
			return nil, err
		}
		return &interp.WhileCont{Cond: cond, Body: body}, nil
	}}}},
	{Name: "execute", Body: interp.WordList{interp.ContextTailFunc{WordName: "execute", Fn: func(ctx *interp.Context) (interp.Continuation, error) {
		body, err := popBlock(ctx)
		if err != nil {
			return nil, err
		}
		return interp.Seq(body), nil
	}}}},
	// exit unwinds whatever nested blocks, loops, or word calls are
	// currently running and resumes the top-level interpreter at the
	// continuation exit_interpret was last pointing at: the next token
	// after the one that led here.
	{Name: "exit", Body: interp.WordList{interp.ContextFunc{WordName: "exit", Fn: func(ctx *interp.Context) error {
		ctx.RequestExitInterpret()
		return nil
	}}}},
}

// appendOrRun splices c into the enclosing definition if one is open, or
// schedules it to run immediately otherwise.
func appendOrRun(ctx *interp.Context, c interp.Continuation) {
	if ctx.Compiling() {
		ctx.CompileAppend(c)
	} else {
		ctx.InsertBeforeNext(c)
	}
}

func popBlock(ctx *interp.Context) (interp.WordList, error) {
	v, err := ctx.Stack.Pop()
	if err != nil {
		return nil, err
	}
	cv, ok := v.(stackvm.ContValue)
	if !ok {
		return nil, fmt.Errorf("expected a block, got %s", v.Kind())
	}
	return cv.Body, nil
}

func popInt(ctx *interp.Context) (*big.Int, error) {
	v, err := ctx.Stack.Pop()
	if err != nil {
		return nil, err
	}
	iv, ok := v.(stackvm.Integer)
	if !ok {
		return nil, fmt.Errorf("expected an integer, got %s", v.Kind())
	}
	return iv.V, nil
}
