// Package backtrace formats the active call frames of an interpreter
// Context into a human-readable dump for error reporting, windowing each
// ListCont frame around its current position the way a VM memory dump
// brackets the instruction currently executing.
package backtrace

import (
	"fmt"
	"io"

	"github.com/cellforth/cellforth/interp"
)

// MaxFrames caps how many call frames are rendered, innermost first, so a
// deeply (or infinitely) recursive definition doesn't produce an unbounded
// dump.
const MaxFrames = 16

// Window is how many list elements are shown on either side of the frame's
// current position.
const Window = 16

// Format writes a backtrace of ctx's currently active call frames to w,
// innermost frame first. Each ListCont frame is rendered as its ±Window
// neighborhood with the running element marked **HERE**; other
// Continuation kinds are rendered by name alone.
func Format(w io.Writer, ctx *interp.Context) {
	frames := ctx.CallFrames
	n := len(frames)
	fmt.Fprintf(w, "backtrace (%d frame(s)):\n", n)

	start := 0
	if n > MaxFrames {
		start = n - MaxFrames
		fmt.Fprintf(w, "  ... %d outer frame(s) elided ...\n", start)
	}

	for i := n - 1; i >= start; i-- {
		formatFrame(w, i, frames[i])
	}
}

func formatFrame(w io.Writer, depth int, c interp.Continuation) {
	lc, ok := c.(*interp.ListCont)
	if !ok {
		fmt.Fprintf(w, "#%-3d %s\n", depth, c.Name())
		return
	}

	lo := lc.Pos - Window
	if lo < 0 {
		lo = 0
	}
	hi := lc.Pos + Window + 1
	if hi > len(lc.List) {
		hi = len(lc.List)
	}
	fmt.Fprintf(w, "#%-3d list[%d:%d] (len %d)\n", depth, lo, hi, len(lc.List))
	for i := lo; i < hi; i++ {
		marker := "   "
		if i == lc.Pos {
			marker = "-> "
		}
		fmt.Fprintf(w, "      %s%4d: %s", marker, i, lc.List[i].Name())
		if i == lc.Pos {
			fmt.Fprint(w, "  **HERE**")
		}
		fmt.Fprintln(w)
	}
}
