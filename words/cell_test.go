package words

import (
	"testing"

	"github.com/cellforth/cellforth/interp"
	"github.com/cellforth/cellforth/stackvm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_cellWords_buildRoundTrip(t *testing.T) {
	s := stackvm.New()
	ctx := interp.NewContext(s, nil, nil, nil, nil)

	run := func(name string) {
		t.Helper()
		for _, e := range cellWords {
			if e.Name == name {
				require.NoError(t, interp.Run(ctx, interp.Seq(e.Body)))
				return
			}
		}
		t.Fatalf("word %q not found", name)
	}

	run("<b")
	s.Push(stackvm.NewInt(0xA))
	s.Push(stackvm.NewInt(4))
	run("u,")
	run("b>")

	v, err := s.Pop()
	require.NoError(t, err)
	c, ok := v.(*stackvm.Cell)
	require.True(t, ok)
	assert.Equal(t, uint(4), c.Bits)
}

func Test_cellWords_cellBits(t *testing.T) {
	s := stackvm.New()
	s.Push(&stackvm.Cell{Bits: 12})
	ctx := interp.NewContext(s, nil, nil, nil, nil)
	for _, e := range cellWords {
		if e.Name == "cell-bits" {
			require.NoError(t, interp.Run(ctx, interp.Seq(e.Body)))
		}
	}
	v, err := s.Pop()
	require.NoError(t, err)
	i, ok := v.(stackvm.Integer)
	require.True(t, ok)
	assert.Equal(t, int64(12), i.V.Int64())
}

func Test_cellWords_hexDecode(t *testing.T) {
	s := stackvm.New()
	s.Push(interp.StringValue{S: "48656c6c6f"})
	ctx := interp.NewContext(s, nil, nil, nil, nil)
	for _, e := range cellWords {
		if e.Name == "hex>" {
			require.NoError(t, interp.Run(ctx, interp.Seq(e.Body)))
		}
	}
	v, err := s.Pop()
	require.NoError(t, err)
	sv, ok := v.(interp.StringValue)
	require.True(t, ok)
	assert.Equal(t, "Hello", sv.S)
}

func Test_cellWords_hexDecodeInvalid(t *testing.T) {
	s := stackvm.New()
	s.Push(interp.StringValue{S: "zz"})
	ctx := interp.NewContext(s, nil, nil, nil, nil)
	var err error
	for _, e := range cellWords {
		if e.Name == "hex>" {
			err = interp.Run(ctx, interp.Seq(e.Body))
		}
	}
	assert.Error(t, err)
}

func Test_cellWords_refStoresCellRef(t *testing.T) {
	s := stackvm.New()
	s.Push(stackvm.NewBuilder())
	s.Push(&stackvm.Cell{Bits: 1})
	ctx := interp.NewContext(s, nil, nil, nil, nil)
	for _, e := range cellWords {
		if e.Name == "ref," {
			require.NoError(t, interp.Run(ctx, interp.Seq(e.Body)))
		}
	}
	v, err := s.Pop()
	require.NoError(t, err)
	b, ok := v.(*stackvm.Builder)
	require.True(t, ok)
	assert.True(t, b.Truthy())
}
