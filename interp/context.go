package interp

import (
	"context"
	"errors"
	"io"
)

// compileFrame accumulates the body of a word or block definition while it
// is being read. frames are pushed on `:`/`{` and popped on `;`/`}`.
type compileFrame struct {
	name   string
	active bool
	body   []Continuation
}

// Context aggregates everything a Continuation's Run step needs: the data
// stack, the dictionary, the current source block, where output goes, and
// the bookkeeping for word/block compilation in progress.
type Context struct {
	Stack  Stack
	Dict   Dictionary
	Source SourceBlock
	Stdout io.Writer
	Numbers NumberFactory

	pending []Continuation // InsertBeforeNext queue, run before whatever Run() returns
	frames  []*compileFrame

	// cancel, once set by SetCancel, is checked at the top of every
	// trampoline iteration; its cancellation is the only signal the
	// Ctrl-C/timeout path uses to stop a run, so the watching goroutine
	// never touches Context fields directly and no lock is needed here.
	cancel context.Context

	// exitInterpretCont is the continuation that would run next if the
	// interpret step currently in flight returned normally; InterpreterCont
	// refreshes it every step. The `exit` word sets exitPending, which
	// unwinds the trampoline back to the outermost Run call and resumes
	// from exitInterpretCont, abandoning whatever nested InsertBeforeNext
	// frames were still running.
	exitInterpretCont Continuation
	exitPending       bool

	// ifThenStack holds one entry per open `if`: `if` pushes a nil
	// placeholder, `else` replaces it with the compiled then-branch body,
	// and `then` pops it. This lets `if`/`else`/`then` nest the same way
	// BeginCompile/EndCompile does.
	ifThenStack []WordList

	// doBoundsStack stashes a `do`-loop's (start, limit) pair while its body
	// is being compiled, popped by `loop` once the body is complete.
	doBoundsStack [][2]int64

	// loopIndexStack holds the running index of each nested `do` loop,
	// innermost last; the `i` word reads its top.
	loopIndexStack []int64

	// CallFrames tracks the chain of ListCont values currently executing,
	// innermost last, purely for diagnostics: package backtrace walks it to
	// render a windowed dump around the point of failure.
	CallFrames []Continuation
}

// PushFrame records c as an active call frame. ListCont.Run calls this
// around stepping its current element so a later error can be reported with
// a backtrace.
func (ctx *Context) PushFrame(c Continuation) { ctx.CallFrames = append(ctx.CallFrames, c) }

// PopFrame removes the innermost call frame pushed by PushFrame.
func (ctx *Context) PopFrame() {
	if n := len(ctx.CallFrames); n > 0 {
		ctx.CallFrames = ctx.CallFrames[:n-1]
	}
}

// NewContext wires together the collaborators an interpretation session
// needs. stack and dict are narrow interfaces so callers may pass any
// conforming implementation (ordinarily stackvm.New() and dict.New()).
func NewContext(stack Stack, d Dictionary, src SourceBlock, stdout io.Writer, numbers NumberFactory) *Context {
	return &Context{Stack: stack, Dict: d, Source: src, Stdout: stdout, Numbers: numbers}
}

// SetCancel wires ctx to stop at the next trampoline step once c is done.
// Call it before launching the goroutine that runs Run, so the assignment
// happens-before any read of ctx.cancel in the trampoline loop and no
// further synchronization is needed between the two goroutines.
func (ctx *Context) SetCancel(c context.Context) { ctx.cancel = c }

// InsertBeforeNext queues c to run immediately after the current step,
// ahead of whatever the trampoline was about to run next. This is how
// control words like `if`/`then` splice conditional bodies into the
// in-flight sequence without rewriting it.
func (ctx *Context) InsertBeforeNext(c Continuation) {
	ctx.pending = append(ctx.pending, c)
}

// takePending pops the most recently queued InsertBeforeNext continuation,
// if any.
func (ctx *Context) takePending() (Continuation, bool) {
	if len(ctx.pending) == 0 {
		return nil, false
	}
	n := len(ctx.pending) - 1
	c := ctx.pending[n]
	ctx.pending = ctx.pending[:n]
	return c, true
}

// Compiling reports whether a `:` or `{` definition is currently being
// read, i.e. whether tokens should be compiled rather than executed.
func (ctx *Context) Compiling() bool { return len(ctx.frames) > 0 }

// BeginCompile pushes a new compile frame, named name (empty for an
// anonymous block such as `{ ... }`).
func (ctx *Context) BeginCompile(name string) {
	ctx.frames = append(ctx.frames, &compileFrame{name: name})
}

// CompileAppend appends c to the innermost compile frame's body. It panics
// if no compile frame is open; callers must check Compiling first.
func (ctx *Context) CompileAppend(c Continuation) {
	f := ctx.frames[len(ctx.frames)-1]
	f.body = append(f.body, c)
}

// EndCompile pops the innermost compile frame and returns its accumulated
// body as an immutable WordList along with the name it was opened with. Every
// element is marked Shared before it is returned: a compiled body may be run
// more than once — as a dictionary word called repeatedly, as a loop body
// re-entered every iteration, or as a block duplicated on the stack — so any
// element that carries its own running state (TimesCont, WhileCont,
// DoLoopCont, CondCont, ...) must clone itself on first use rather than
// mutate in place, the same rule ListCont.Run already applies to its slots.
func (ctx *Context) EndCompile() (name string, body WordList) {
	n := len(ctx.frames) - 1
	f := ctx.frames[n]
	ctx.frames = ctx.frames[:n]
	for _, c := range f.body {
		if s, ok := c.(Shareable); ok {
			s.MarkShared()
		}
	}
	return f.name, WordList(f.body)
}

// PushIfThenBody stashes a compiled then-branch body for a following `else`.
func (ctx *Context) PushIfThenBody(body WordList) {
	ctx.ifThenStack = append(ctx.ifThenStack, body)
}

// PopIfThenBody retrieves and removes the most recently stashed then-branch
// body, if any.
func (ctx *Context) PopIfThenBody() (WordList, bool) {
	n := len(ctx.ifThenStack)
	if n == 0 {
		return nil, false
	}
	body := ctx.ifThenStack[n-1]
	ctx.ifThenStack = ctx.ifThenStack[:n-1]
	return body, true
}

// PushDoBounds stashes a `do`-loop's (start, limit) pair for a following
// `loop` to consume once its body has been compiled.
func (ctx *Context) PushDoBounds(start, limit int64) {
	ctx.doBoundsStack = append(ctx.doBoundsStack, [2]int64{start, limit})
}

// PopDoBounds retrieves and removes the most recently stashed `do`-loop
// bounds, if any.
func (ctx *Context) PopDoBounds() (start, limit int64, ok bool) {
	n := len(ctx.doBoundsStack)
	if n == 0 {
		return 0, 0, false
	}
	b := ctx.doBoundsStack[n-1]
	ctx.doBoundsStack = ctx.doBoundsStack[:n-1]
	return b[0], b[1], true
}

// PushLoopIndex enters a new `do` loop nesting level with starting index i.
func (ctx *Context) PushLoopIndex(i int64) {
	ctx.loopIndexStack = append(ctx.loopIndexStack, i)
}

// PopLoopIndex exits the innermost `do` loop nesting level.
func (ctx *Context) PopLoopIndex() {
	if n := len(ctx.loopIndexStack); n > 0 {
		ctx.loopIndexStack = ctx.loopIndexStack[:n-1]
	}
}

// SetTopLoopIndex updates the innermost `do` loop's running index.
func (ctx *Context) SetTopLoopIndex(i int64) {
	if n := len(ctx.loopIndexStack); n > 0 {
		ctx.loopIndexStack[n-1] = i
	}
}

// TopLoopIndex reads the innermost `do` loop's running index, read by the
// `i` word.
func (ctx *Context) TopLoopIndex() (int64, bool) {
	n := len(ctx.loopIndexStack)
	if n == 0 {
		return 0, false
	}
	return ctx.loopIndexStack[n-1], true
}

// SetExitInterpretCont records c as the continuation exit_interpret points
// at: the one that would run next if the step in flight returned normally.
// InterpreterCont calls this once per token.
func (ctx *Context) SetExitInterpretCont(c Continuation) { ctx.exitInterpretCont = c }

// ExitPending reports whether an `exit` word has requested unwinding since
// the last time it was consumed. ListCont.Run checks this between its own
// internal steps so `exit` interrupts a multi-element body immediately
// instead of only after every remaining element has already run.
func (ctx *Context) ExitPending() bool { return ctx.exitPending }

// RequestExitInterpret is what the `exit` word calls: it asks the trampoline
// to unwind back to the outermost Run call and resume from whatever
// exitInterpretCont was last set to, abandoning any nested InsertBeforeNext
// frames still in progress.
func (ctx *Context) RequestExitInterpret() { ctx.exitPending = true }

// takeExitInterpret consumes a pending exit_interpret request. From a nested
// (non-outermost) run call it reports stop=true without touching anything,
// so the request bubbles up untouched to whichever call is outermost; only
// the outermost call clears exitPending and resumes from exitInterpretCont.
func (ctx *Context) takeExitInterpret(outermost bool) (next Continuation, stop bool) {
	if !outermost {
		return nil, true
	}
	ctx.exitPending = false
	next = ctx.exitInterpretCont
	return next, next == nil
}

var errNoStart = errors.New("interp: Run called with a nil start continuation")

// Run drives the trampoline to completion: it repeatedly calls Run on the
// current continuation, following whatever it returns, until a continuation
// signals completion (a nil Continuation and nil error), ctx's cancel
// context is done, or an error is returned.
func Run(ctx *Context, start Continuation) error {
	if start == nil {
		return errNoStart
	}
	ctx.CallFrames = nil
	return ctx.run(start, true)
}

// run is Run's trampoline loop. outermost distinguishes the top-level call
// from a recursive call draining an InsertBeforeNext queue: only the
// outermost call may consume a pending exit_interpret request and resume
// from it, so the request unwinds every nested frame in between first.
func (ctx *Context) run(start Continuation, outermost bool) error {
	cur := start
	for {
		if ctx.cancel != nil {
			select {
			case <-ctx.cancel.Done():
				return HaltError{Err: ctx.cancel.Err()}
			default:
			}
		}

		if ctx.exitPending {
			next, stop := ctx.takeExitInterpret(outermost)
			if stop {
				return nil
			}
			cur = next
			continue
		}

		next, err := cur.Run(ctx)
		if err != nil {
			return err
		}
		if pending, ok := ctx.takePending(); ok {
			// Run the spliced continuation to completion before resuming
			// whatever Run() said comes next.
			if err := ctx.run(pending, false); err != nil {
				return err
			}
			if ctx.exitPending {
				continue
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
}
