package main

import (
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/cellforth/cellforth/backtrace"
	"github.com/cellforth/cellforth/dict"
	"github.com/cellforth/cellforth/interp"
	"github.com/cellforth/cellforth/internal/flushio"
	"github.com/cellforth/cellforth/internal/panicerr"
	"github.com/cellforth/cellforth/lexer"
	"github.com/cellforth/cellforth/stackvm"
	"github.com/cellforth/cellforth/words"
)

// session wires together one interpretation run: its own lexer, stack,
// dictionary and output sink. Each cellforth invocation builds exactly one.
type session struct {
	lx  *lexer.Lexer
	ctx *interp.Context
	out flushio.WriteFlusher
}

func newSession(w io.Writer) (*session, error) {
	out := flushio.NewWriteFlusher(w)
	lx := lexer.New()
	stack := stackvm.New()
	d := dict.New()
	words.Install(d)

	ctx := interp.NewContext(stack, d, lx, out, stackvm.Numbers{})
	return &session{lx: lx, ctx: ctx, out: out}, nil
}

func (s *session) pushSourceFile(name string, r io.Reader) {
	s.lx.PushSourceBlock(name, r)
}

func (s *session) pushSource(name, text string) {
	s.lx.PushSourceBlock(name, strings.NewReader(text))
}

// run drives the interpreter to completion, isolating the trampoline in its
// own goroutine so a panic deep in a native word comes back as an error
// instead of taking the process down.
func (s *session) run() error {
	err := panicerr.Recover("interpret", func() error {
		return interp.Run(s.ctx, interp.InterpreterCont{})
	})
	if flushErr := s.out.Flush(); err == nil {
		err = flushErr
	}
	if err != nil {
		if _, ok := err.(interp.HaltError); ok {
			return nil
		}
		s.reportError(err)
		return err
	}
	return nil
}

func (s *session) reportError(err error) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprintf(os.Stderr, "error: %v\n", err)
	backtrace.Format(os.Stderr, s.ctx)
}
