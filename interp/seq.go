package interp

// noop is the Continuation returned for an empty WordList: it finishes
// immediately without Run ever needing to special-case zero-length lists.
type noop struct{}

func (noop) Run(ctx *Context) (Continuation, error) { return nil, nil }
func (noop) Name() string                           { return "noop" }

// Seq compiles a WordList into a single Continuation, reshaping the trivial
// cases so callers never pay for an empty or one-element ListCont: an empty
// list becomes a noop, a single-element list is returned unwrapped, and
// anything longer is wrapped in a ListCont that steps through it in order.
// That ListCont is marked Shared, since its List is the caller's WordList:
// the first slot rewrite clones the list instead of writing into it.
func Seq(wl WordList) Continuation {
	switch len(wl) {
	case 0:
		return noop{}
	case 1:
		return wl[0]
	default:
		lc := &ListCont{List: wl}
		lc.MarkShared()
		return lc
	}
}

// ListCont steps through a WordList in order, one element at a time,
// advancing Pos as each element finishes. It is also what the backtrace
// formatter walks to render a ±N window of context around the currently
// running frame.
type ListCont struct {
	List WordList
	Pos  int
	shared
}

func (lc *ListCont) Name() string { return "list" }

// Run executes the current position. If that element needs more than one
// step, the ListCont replaces its own slot with whatever comes next — unless
// the ListCont is itself Shared() (i.e. compiled into a dictionary Entry and
// already running elsewhere), in which case it clones itself first so the
// shared WordList is never mutated.
func (lc *ListCont) Run(ctx *Context) (Continuation, error) {
	for lc.Pos < len(lc.List) {
		cur := lc.List[lc.Pos]
		ctx.PushFrame(lc)
		next, err := cur.Run(ctx)
		if err != nil {
			// The frame stays pushed so the caller can render a backtrace
			// of the chain that failed; Run clears CallFrames on entry.
			return nil, err
		}
		ctx.PopFrame()
		if ctx.ExitPending() {
			// An `exit` word just ran inside cur: stop advancing through
			// the rest of this list and hand control straight back to the
			// trampoline so it can unwind, instead of finishing whatever
			// elements remain.
			return nil, nil
		}
		if next == nil {
			lc.Pos++
			continue
		}
		target := lc
		if lc.Shared() {
			target = lc.clone()
		}
		target.List[target.Pos] = next
		return target, nil
	}
	return nil, nil
}

func (lc *ListCont) clone() *ListCont {
	cp := make(WordList, len(lc.List))
	copy(cp, lc.List)
	return &ListCont{List: cp, Pos: lc.Pos}
}
