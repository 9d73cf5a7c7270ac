package interp

import "fmt"

// Continuation is one step of suspended computation. Run advances it by one
// trampoline step: it may mutate itself in place and return itself again (to
// keep running), return a different Continuation to run next, or return nil
// to signal it is finished.
//
// Implementations that hold sub-continuations (ListCont, CondCont, the loop
// continuations) must only mutate their own state in place when Shared()
// reports false; a WordList compiled into a dictionary Entry is referenced
// by every future invocation of that word, so replaying it must clone
// rather than mutate.
type Continuation interface {
	// Run performs one step. ctx gives access to the stack, dictionary and
	// current source block. The returned Continuation is what the
	// trampoline should run next (possibly the receiver itself); a nil
	// Continuation and nil error means this step finished normally.
	Run(ctx *Context) (Continuation, error)

	// Name renders a short human label for backtrace frames.
	Name() string
}

// Shareable is implemented by continuations that can be referenced from more
// than one place (principally WordList elements, which are shared across
// every future call of the word they belong to). Shared reports whether the
// receiver may be referenced elsewhere, and so must be cloned rather than
// mutated in place; MarkShared sets that.
type Shareable interface {
	Shared() bool
	MarkShared()
}

// shared is embedded by continuation variants that need the ownership flag.
// It mirrors the uniqueness check the original used reference counting for:
// a WordList element starts unshared (owned solely by the trampoline driving
// it) until it is installed into a dictionary Entry or duplicated onto the
// stack, at which point MarkShared must be called so future runs clone
// rather than mutate.
type shared struct {
	isShared bool
}

func (s *shared) Shared() bool  { return s.isShared }
func (s *shared) MarkShared()   { s.isShared = true }

// WordList is an immutable compiled sequence of continuations: the body of
// a dictionary word, or of a control-structure block (`if ... then`,
// `{ ... }`), once compiled. WordList values are shared by every future
// invocation of the word they belong to, so code that runs one must never
// mutate the slice or its elements in place — see Seq and ListCont.Run.
type WordList []Continuation

func (wl WordList) String() string {
	names := make([]string, len(wl))
	for i, c := range wl {
		names[i] = c.Name()
	}
	return fmt.Sprint(names)
}
