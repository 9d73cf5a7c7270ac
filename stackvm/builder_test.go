package stackvm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Builder_StoreBitsAndBuild(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.StoreBits(0xA, 4)) // 1010
	assert.Equal(t, 4, b.Bits())

	c := b.Build()
	assert.Equal(t, uint(4), c.Bits)
	assert.Equal(t, []byte{0xA0}, c.Data, "4 bits must be packed into the high bits of the first byte")
}

func Test_Builder_StoreBitsAcrossByteBoundary(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.StoreBits(0xFF, 8))
	require.NoError(t, b.StoreBits(0x1, 1))
	c := b.Build()
	assert.Equal(t, uint(9), c.Bits)
	assert.Equal(t, []byte{0xFF, 0x80}, c.Data)
}

func Test_Builder_StoreBitsWidthOutOfRange(t *testing.T) {
	b := NewBuilder()
	assert.Error(t, b.StoreBits(0, -1))
	assert.Error(t, b.StoreBits(0, 65))
}

func Test_Builder_StoreBitsOverflowsMaxCellBits(t *testing.T) {
	b := NewBuilder()
	for b.Bits()+64 <= MaxCellBits {
		require.NoError(t, b.StoreBits(0, 64))
	}
	remaining := MaxCellBits - b.Bits()
	err := b.StoreBits(0, remaining+1)
	assert.Error(t, err)
}

func Test_Builder_StoreRefLimitsToFour(t *testing.T) {
	b := NewBuilder()
	c := &Cell{Bits: 1}
	for i := 0; i < 4; i++ {
		require.NoError(t, b.StoreRef(c))
	}
	assert.Error(t, b.StoreRef(c))
}

func Test_Builder_CloneIsIndependent(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.StoreBits(0xF0, 8))
	clone := b.Clone().(*Builder)
	require.NoError(t, clone.StoreBits(0x0F, 8))

	assert.Equal(t, 8, b.Bits())
	assert.Equal(t, 16, clone.Bits())
	assert.Equal(t, []byte{0xF0}, b.Build().Data)
	assert.Equal(t, []byte{0xF0, 0x0F}, clone.Build().Data)
}

func Test_Builder_TruthyReflectsBitsOrRefs(t *testing.T) {
	b := NewBuilder()
	assert.False(t, b.Truthy())
	require.NoError(t, b.StoreBits(1, 1))
	assert.True(t, b.Truthy())
}
