package interp

// DoLoopCont implements the classic counted `limit start do ... loop` form:
// Start and Limit are captured when `do` runs, Body is the compiled body
// between `do` and `loop`, and the loop index is available to the body
// through Context's loop-index stack (read by the `i` word).
type DoLoopCont struct {
	Start, Limit int64
	Body         WordList

	i       int64
	cur     Continuation
	started bool
	shared
}

func (d *DoLoopCont) Name() string { return "do-loop" }

// Run clones d first if it is Shared(), matching ListCont.Run's rule: a
// do-loop that is the entire (single-element) body of a dictionary word
// would otherwise carry its index and started flag over into the word's
// next invocation.
func (d *DoLoopCont) Run(ctx *Context) (Continuation, error) {
	if d.Shared() {
		d = d.clone()
	}
	if !d.started {
		d.started = true
		if d.Start >= d.Limit {
			return nil, nil
		}
		d.i = d.Start
		ctx.PushLoopIndex(d.i)
		d.cur = Seq(d.Body)
	}
	next, err := d.cur.Run(ctx)
	if err != nil {
		return nil, err
	}
	if next != nil {
		d.cur = next
		return d, nil
	}
	d.i++
	if d.i >= d.Limit {
		ctx.PopLoopIndex()
		return nil, nil
	}
	ctx.SetTopLoopIndex(d.i)
	d.cur = Seq(d.Body)
	return d, nil
}

func (d *DoLoopCont) clone() *DoLoopCont {
	cp := *d
	cp.isShared = false
	return &cp
}
