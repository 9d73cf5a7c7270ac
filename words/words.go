// Package words installs the minimal vocabulary a session needs to bootstrap
// further definitions: arithmetic, stack shuffling, compile punctuation,
// control flow, loop words, basic I/O, and the cell/builder operations that
// compose blockchain-style bitstrings.
package words

import (
	"fmt"
	"io"
	"math/big"

	"github.com/cellforth/cellforth/interp"
	"github.com/cellforth/cellforth/stackvm"
)

// Install registers every word this package defines into d.
func Install(d interp.Dictionary) {
	for _, w := range arithmeticWords {
		d.Define(w)
	}
	for _, w := range stackWords {
		d.Define(w)
	}
	for _, w := range ioWords {
		d.Define(w)
	}
	for _, w := range cellWords {
		d.Define(w)
	}
	for _, w := range compileWords {
		d.Define(w)
	}
}

func native(name string, fn func(*stackvm.Stack) error) interp.Entry {
	return interp.Entry{
		Name: name,
		Body: interp.WordList{interp.StackFunc{WordName: name, Fn: func(s interp.Stack) error {
			return fn(s.(*stackvm.Stack))
		}}},
	}
}

func popInts(s *stackvm.Stack, n int) ([]*big.Int, error) {
	vals, err := s.PopN(n)
	if err != nil {
		return nil, err
	}
	out := make([]*big.Int, n)
	for i, v := range vals {
		iv, ok := v.(stackvm.Integer)
		if !ok {
			return nil, fmt.Errorf("%s: expected integer, got %s", "words", v.Kind())
		}
		out[i] = iv.V
	}
	return out, nil
}

var arithmeticWords = []interp.Entry{
	binop("+", func(a, b *big.Int) *big.Int { return new(big.Int).Add(a, b) }),
	binop("-", func(a, b *big.Int) *big.Int { return new(big.Int).Sub(a, b) }),
	binop("*", func(a, b *big.Int) *big.Int { return new(big.Int).Mul(a, b) }),
	native("/", func(s *stackvm.Stack) error {
		vs, err := popInts(s, 2)
		if err != nil {
			return err
		}
		if vs[1].Sign() == 0 {
			return fmt.Errorf("words: division by zero")
		}
		q := new(big.Int)
		q.Quo(vs[0], vs[1])
		s.Push(stackvm.NewIntFromBig(q))
		return nil
	}),
	native("mod", func(s *stackvm.Stack) error {
		vs, err := popInts(s, 2)
		if err != nil {
			return err
		}
		if vs[1].Sign() == 0 {
			return fmt.Errorf("words: division by zero")
		}
		r := new(big.Int)
		r.Rem(vs[0], vs[1])
		s.Push(stackvm.NewIntFromBig(r))
		return nil
	}),
	native("negate", func(s *stackvm.Stack) error {
		vs, err := popInts(s, 1)
		if err != nil {
			return err
		}
		s.Push(stackvm.NewIntFromBig(new(big.Int).Neg(vs[0])))
		return nil
	}),
	native("1+", func(s *stackvm.Stack) error {
		vs, err := popInts(s, 1)
		if err != nil {
			return err
		}
		s.Push(stackvm.NewIntFromBig(new(big.Int).Add(vs[0], big.NewInt(1))))
		return nil
	}),
	native("1-", func(s *stackvm.Stack) error {
		vs, err := popInts(s, 1)
		if err != nil {
			return err
		}
		s.Push(stackvm.NewIntFromBig(new(big.Int).Sub(vs[0], big.NewInt(1))))
		return nil
	}),
	cmpop("=", func(c int) bool { return c == 0 }),
	cmpop("<", func(c int) bool { return c < 0 }),
	cmpop(">", func(c int) bool { return c > 0 }),
}

func binop(name string, fn func(a, b *big.Int) *big.Int) interp.Entry {
	return native(name, func(s *stackvm.Stack) error {
		vs, err := popInts(s, 2)
		if err != nil {
			return err
		}
		s.Push(stackvm.NewIntFromBig(fn(vs[0], vs[1])))
		return nil
	})
}

func cmpop(name string, test func(int) bool) interp.Entry {
	return native(name, func(s *stackvm.Stack) error {
		vs, err := popInts(s, 2)
		if err != nil {
			return err
		}
		flag := int64(0)
		if test(vs[0].Cmp(vs[1])) {
			flag = -1 // Forth-family true is conventionally all-bits-set
		}
		s.Push(stackvm.NewInt(flag))
		return nil
	})
}

var stackWords = []interp.Entry{
	native("dup", func(s *stackvm.Stack) error {
		v, err := s.Peek()
		if err != nil {
			return err
		}
		s.Push(v)
		return nil
	}),
	native("drop", func(s *stackvm.Stack) error {
		_, err := s.Pop()
		return err
	}),
	native("swap", func(s *stackvm.Stack) error {
		vs, err := s.PopN(2)
		if err != nil {
			return err
		}
		s.Push(vs[1])
		s.Push(vs[0])
		return nil
	}),
	native("over", func(s *stackvm.Stack) error {
		v, err := s.At(1)
		if err != nil {
			return err
		}
		s.Push(v)
		return nil
	}),
	native("rot", func(s *stackvm.Stack) error {
		vs, err := s.PopN(3)
		if err != nil {
			return err
		}
		s.Push(vs[1])
		s.Push(vs[2])
		s.Push(vs[0])
		return nil
	}),
	native("pick", func(s *stackvm.Stack) error {
		vs, err := popInts(s, 1)
		if err != nil {
			return err
		}
		v, err := s.At(int(vs[0].Int64()))
		if err != nil {
			return err
		}
		s.Push(v)
		return nil
	}),
}

var ioWords = []interp.Entry{
	{Name: ".", Body: interp.WordList{interp.ContextFunc{WordName: ".", Fn: func(ctx *interp.Context) error {
		v, err := ctx.Stack.Pop()
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(ctx.Stdout, stringer(v), " ")
		return err
	}}}},
	{Name: "cr", Body: interp.WordList{interp.ContextFunc{WordName: "cr", Fn: func(ctx *interp.Context) error {
		_, err := io.WriteString(ctx.Stdout, "\n")
		return err
	}}}},
	{Name: "type", Body: interp.WordList{interp.ContextFunc{WordName: "type", Fn: func(ctx *interp.Context) error {
		v, err := ctx.Stack.Pop()
		if err != nil {
			return err
		}
		str, ok := v.(interp.StringValue)
		if !ok {
			return fmt.Errorf("type: expected string, got %s", v.Kind())
		}
		_, err = io.WriteString(ctx.Stdout, str.S)
		return err
	}}}},
	native("reverse-utf8", func(s *stackvm.Stack) error {
		v, err := s.Pop()
		if err != nil {
			return err
		}
		str, ok := v.(interp.StringValue)
		if !ok {
			return fmt.Errorf("reverse-utf8: expected string, got %s", v.Kind())
		}
		runes := []rune(str.S)
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		s.Push(interp.StringValue{S: string(runes)})
		return nil
	}),
}

func stringer(v interp.Value) string {
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return v.Kind()
}
