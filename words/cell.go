package words

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/cellforth/cellforth/interp"
	"github.com/cellforth/cellforth/stackvm"
)

var cellWords = []interp.Entry{
	native("<b", func(s *stackvm.Stack) error {
		s.Push(stackvm.NewBuilder())
		return nil
	}),
	native("u,", func(s *stackvm.Stack) error { return storeBits(s, false) }),
	native("i,", func(s *stackvm.Stack) error { return storeBits(s, true) }),
	native("ref,", func(s *stackvm.Stack) error {
		vs, err := s.PopN(2)
		if err != nil {
			return err
		}
		b, ok := vs[0].(*stackvm.Builder)
		if !ok {
			return fmt.Errorf("ref,: expected builder, got %s", vs[0].Kind())
		}
		c, ok := vs[1].(*stackvm.Cell)
		if !ok {
			return fmt.Errorf("ref,: expected cell, got %s", vs[1].Kind())
		}
		if err := b.StoreRef(c); err != nil {
			return err
		}
		s.Push(b)
		return nil
	}),
	native("b>", func(s *stackvm.Stack) error {
		v, err := s.Pop()
		if err != nil {
			return err
		}
		b, ok := v.(*stackvm.Builder)
		if !ok {
			return fmt.Errorf("b>: expected builder, got %s", v.Kind())
		}
		s.Push(b.Build())
		return nil
	}),
	native("cell-bits", func(s *stackvm.Stack) error {
		v, err := s.Pop()
		if err != nil {
			return err
		}
		c, ok := v.(*stackvm.Cell)
		if !ok {
			return fmt.Errorf("cell-bits: expected cell, got %s", v.Kind())
		}
		s.Push(stackvm.NewInt(int64(c.Bits)))
		return nil
	}),
	native("hex>", func(s *stackvm.Stack) error { return decodeString(s, hex.DecodeString) }),
	native("b64>", func(s *stackvm.Stack) error { return decodeString(s, base64.StdEncoding.DecodeString) }),
}

func storeBits(s *stackvm.Stack, signed bool) error {
	vs, err := s.PopN(3)
	if err != nil {
		return err
	}
	b, ok := vs[0].(*stackvm.Builder)
	if !ok {
		return fmt.Errorf("u,/i,: expected builder, got %s", vs[0].Kind())
	}
	val, ok := vs[1].(stackvm.Integer)
	if !ok {
		return fmt.Errorf("u,/i,: expected integer value, got %s", vs[1].Kind())
	}
	width, ok := vs[2].(stackvm.Integer)
	if !ok {
		return fmt.Errorf("u,/i,: expected integer width, got %s", vs[2].Kind())
	}
	n := int(width.V.Int64())
	bits := val.V.Uint64()
	if signed && val.V.Sign() < 0 {
		// two's complement bit pattern; StoreBits keeps the low n bits
		bits = uint64(val.V.Int64())
	}
	if err := b.StoreBits(bits, n); err != nil {
		return err
	}
	s.Push(b)
	return nil
}

// decodeString pops a string value, runs decode over its text, and pushes
// the resulting bytes back as a string of raw octets (kept as a String
// value rather than individual ints).
func decodeString(s *stackvm.Stack, decode func(string) ([]byte, error)) error {
	v, err := s.Pop()
	if err != nil {
		return err
	}
	str, ok := v.(interp.StringValue)
	if !ok {
		return fmt.Errorf("expected string, got %s", v.Kind())
	}
	data, err := decode(str.S)
	if err != nil {
		return err
	}
	s.Push(interp.StringValue{S: string(data)})
	return nil
}
