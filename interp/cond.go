package interp

// CondCont implements the `if ... then` / `if ... else ... then` compiled
// form: it pops a flag and runs Then when truthy, Else (possibly empty)
// otherwise.
type CondCont struct {
	Then WordList
	Else WordList

	cur     Continuation
	started bool
	shared
}

func (c *CondCont) Name() string { return "if" }

// Run clones c first if it is Shared(), for the same reason DoLoopCont and
// the loop.go continuations do: c may be the entire single-element body of
// a dictionary word, in which case a second call must start fresh rather
// than resume whichever branch the first call picked.
func (c *CondCont) Run(ctx *Context) (Continuation, error) {
	if c.Shared() {
		c = c.clone()
	}
	if !c.started {
		c.started = true
		v, err := ctx.Stack.Pop()
		if err != nil {
			return nil, err
		}
		ok, err := truthy(v)
		if err != nil {
			return nil, err
		}
		if ok {
			c.cur = Seq(c.Then)
		} else {
			c.cur = Seq(c.Else)
		}
	}
	next, err := c.cur.Run(ctx)
	if err != nil {
		return nil, err
	}
	if next == nil {
		return nil, nil
	}
	c.cur = next
	return c, nil
}

func (c *CondCont) clone() *CondCont {
	cp := *c
	cp.isShared = false
	return &cp
}
