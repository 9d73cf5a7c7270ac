package stackvm

import (
	"fmt"

	"github.com/cellforth/cellforth/interp"
	"github.com/cellforth/cellforth/internal/mem"
)

// MaxCellBits bounds how many bits a single cell's payload may hold, the
// same role a blockchain cell's 1023-bit limit plays: it catches a runaway
// `u,`/`i,` loop before it tries to allocate without bound.
const MaxCellBits = 1023

// Builder accumulates bits (and the 4-ref limit a Cell allows) before being
// finalized into a Cell by `b>` (Build). It stores its bytes in a paged integer
// memory the same way the teacher's VM stores program and data memory,
// repurposed here as a growable byte buffer with a bit-length budget
// enforced through the same LimitError used for page overruns.
type Builder struct {
	bits int
	mem  mem.Ints
	refs []*Cell
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	b := &Builder{}
	b.mem.Limit = (MaxCellBits + 7) / 8
	return b
}

func (*Builder) Kind() string   { return "builder" }
func (b *Builder) Truthy() bool { return b.bits != 0 || len(b.refs) != 0 }

func (b *Builder) Clone() interp.Value {
	cp := NewBuilder()
	cp.bits = b.bits
	cp.refs = append([]*Cell(nil), b.refs...)
	nbytes := (b.bits + 7) / 8
	buf := make([]int, nbytes)
	_ = b.mem.LoadInto(0, buf)
	ints := make([]int, len(buf))
	copy(ints, buf)
	_ = cp.mem.Stor(0, ints...)
	return cp
}

// StoreBits appends n bits of v (taken from its low-order bits, most
// significant first) to the builder.
func (b *Builder) StoreBits(v uint64, n int) error {
	if n < 0 || n > 64 {
		return fmt.Errorf("stackvm: StoreBits width %d out of range", n)
	}
	if b.bits+n > MaxCellBits {
		return mem.LimitError{Addr: uint(b.bits + n), Op: "store-bits"}
	}
	for i := n - 1; i >= 0; i-- {
		bit := int((v >> uint(i)) & 1)
		if err := b.storeBit(bit); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) storeBit(bit int) error {
	byteIdx := uint(b.bits / 8)
	shift := uint(7 - b.bits%8)
	cur, err := b.mem.Load(byteIdx)
	if err != nil {
		return err
	}
	if bit != 0 {
		cur |= 1 << shift
	} else {
		cur &^= 1 << shift
	}
	if err := b.mem.Stor(byteIdx, cur); err != nil {
		return err
	}
	b.bits++
	return nil
}

// StoreRef appends a reference to an already-built Cell, up to the 4 a Cell
// may hold.
func (b *Builder) StoreRef(c *Cell) error {
	if len(b.refs) >= 4 {
		return fmt.Errorf("stackvm: builder already holds the maximum of 4 references")
	}
	b.refs = append(b.refs, c)
	return nil
}

// Bits reports how many bits have been stored so far.
func (b *Builder) Bits() int { return b.bits }

// Build finalizes the builder into an immutable Cell.
func (b *Builder) Build() *Cell {
	nbytes := (b.bits + 7) / 8
	data := make([]byte, nbytes)
	buf := make([]int, nbytes)
	_ = b.mem.LoadInto(0, buf)
	for i, v := range buf {
		data[i] = byte(v)
	}
	return &Cell{Bits: uint(b.bits), Data: data, Refs: append([]*Cell(nil), b.refs...)}
}
