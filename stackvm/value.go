// Package stackvm implements the data stack and stack value kinds that back
// an interp.Context: arbitrary-precision integers, opaque cells, bit/byte
// builders, tuples, and compiled word lists pushed as first-class values by
// `'` and `{ ... }` and run by `execute`. String values live in interp.
package stackvm

import (
	"fmt"
	"math/big"

	"github.com/cellforth/cellforth/interp"
)

// Integer is an arbitrary-precision signed integer value.
type Integer struct {
	V *big.Int
}

func NewInt(v int64) Integer        { return Integer{big.NewInt(v)} }
func NewIntFromBig(v *big.Int) Integer { return Integer{new(big.Int).Set(v)} }

func (Integer) Kind() string     { return "integer" }
func (i Integer) String() string { return i.V.String() }
func (i Integer) Truthy() bool   { return i.V.Sign() != 0 }
func (i Integer) Clone() interp.Value {
	return Integer{new(big.Int).Set(i.V)}
}

// Cell is an opaque reference to a constructed bitstring cell: a sequence
// of data bytes plus zero or more references to other Cells, mirroring a
// blockchain cell's (bits, refs) shape.
type Cell struct {
	Bits uint          // number of significant bits in Data
	Data []byte        // big-endian packed bits, zero-padded in the low bits of the last byte
	Refs []*Cell
}

func (*Cell) Kind() string { return "cell" }
func (c *Cell) Truthy() bool {
	return c.Bits != 0 || len(c.Refs) != 0
}
func (c *Cell) String() string {
	return fmt.Sprintf("cell(%d bits, %d refs)", c.Bits, len(c.Refs))
}
func (c *Cell) Clone() interp.Value {
	cp := &Cell{Bits: c.Bits, Data: append([]byte(nil), c.Data...), Refs: append([]*Cell(nil), c.Refs...)}
	return cp
}

// Tuple is a fixed-size, heterogeneous group of values. No word installed
// by package words builds or indexes one.
type Tuple struct {
	Elems []interp.Value
}

func (Tuple) Kind() string   { return "tuple" }
func (t Tuple) Truthy() bool { return len(t.Elems) != 0 }
func (t Tuple) Clone() interp.Value {
	cp := make([]interp.Value, len(t.Elems))
	copy(cp, t.Elems)
	return Tuple{Elems: cp}
}

// ContValue wraps a compiled interp.WordList so it can be pushed onto the
// data stack as a first-class value, e.g. by `'word` or an anonymous
// `{ ... }` block, and later run via `execute`.
type ContValue struct {
	Body interp.WordList
}

func (ContValue) Kind() string   { return "cont" }
func (c ContValue) Truthy() bool { return len(c.Body) != 0 }
