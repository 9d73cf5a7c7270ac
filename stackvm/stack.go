package stackvm

import (
	"errors"

	"github.com/cellforth/cellforth/interp"
)

// ErrEmpty is returned by Pop and Peek when the stack holds no values.
var ErrEmpty = errors.New("stackvm: stack is empty")

// Stack is a simple slice-backed implementation of interp.Stack. The top of
// stack is the end of the slice.
type Stack struct {
	vals []interp.Value
}

// New returns an empty Stack.
func New() *Stack { return &Stack{} }

// Push appends v. An integer pushed by interp's IntLitCont (a value with an
// Int64 method) is stored as an Integer, so native words see one integer
// kind whether a number came from a literal or from arithmetic.
func (s *Stack) Push(v interp.Value) {
	if iv, ok := v.(interface{ Int64() int64 }); ok {
		v = NewInt(iv.Int64())
	}
	s.vals = append(s.vals, v)
}

func (s *Stack) Pop() (interp.Value, error) {
	if len(s.vals) == 0 {
		return nil, ErrEmpty
	}
	n := len(s.vals) - 1
	v := s.vals[n]
	s.vals = s.vals[:n]
	return v, nil
}

func (s *Stack) Peek() (interp.Value, error) {
	if len(s.vals) == 0 {
		return nil, ErrEmpty
	}
	return s.vals[len(s.vals)-1], nil
}

func (s *Stack) Len() int { return len(s.vals) }

// PopN pops n values in stack order (deepest first), for native words that
// take more than one argument. It restores nothing on error: callers that
// need transactional semantics should Peek/Len-check first.
func (s *Stack) PopN(n int) ([]interp.Value, error) {
	if len(s.vals) < n {
		return nil, ErrEmpty
	}
	start := len(s.vals) - n
	out := append([]interp.Value(nil), s.vals[start:]...)
	s.vals = s.vals[:start]
	return out, nil
}

// At returns the value n positions below the top (0 is the top itself),
// without removing it. Used by `pick`.
func (s *Stack) At(n int) (interp.Value, error) {
	i := len(s.vals) - 1 - n
	if i < 0 || i >= len(s.vals) {
		return nil, ErrEmpty
	}
	return s.vals[i], nil
}
