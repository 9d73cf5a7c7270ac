package stackvm

import (
	"math/big"
	"testing"

	"github.com/cellforth/cellforth/interp"
	"github.com/stretchr/testify/assert"
)

func Test_Integer_TruthyAndClone(t *testing.T) {
	zero := NewInt(0)
	assert.False(t, zero.Truthy())

	v := NewInt(5)
	assert.True(t, v.Truthy())

	clone := v.Clone().(Integer)
	clone.V.Add(clone.V, big.NewInt(1))
	assert.Equal(t, int64(5), v.V.Int64(), "cloning must not let mutation of the copy reach the original")
	assert.Equal(t, int64(6), clone.V.Int64())
}

func Test_Cell_TruthyReflectsBitsOrRefs(t *testing.T) {
	empty := &Cell{}
	assert.False(t, empty.Truthy())

	withBits := &Cell{Bits: 8, Data: []byte{0xff}}
	assert.True(t, withBits.Truthy())

	withRefs := &Cell{Refs: []*Cell{empty}}
	assert.True(t, withRefs.Truthy())
}

func Test_Cell_CloneIsIndependent(t *testing.T) {
	c := &Cell{Bits: 8, Data: []byte{0x01}, Refs: []*Cell{{Bits: 1}}}
	clone := c.Clone().(*Cell)
	clone.Data[0] = 0xff
	assert.Equal(t, byte(0x01), c.Data[0])
	assert.NotSame(t, c, clone)
}

func Test_Tuple_TruthyAndClone(t *testing.T) {
	empty := Tuple{}
	assert.False(t, empty.Truthy())

	tup := Tuple{Elems: []interp.Value{NewInt(1), NewInt(2)}}
	assert.True(t, tup.Truthy())

	clone := tup.Clone().(Tuple)
	clone.Elems[0] = NewInt(99)
	assert.Equal(t, NewInt(1), tup.Elems[0], "cloning the tuple's element slice must not alias the original")
}

func Test_ContValue_TruthyReflectsBody(t *testing.T) {
	empty := ContValue{}
	assert.False(t, empty.Truthy())
}
