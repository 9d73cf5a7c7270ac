package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_CondCont_thenBranch(t *testing.T) {
	c := &CondCont{
		Then: WordList{&IntLitCont{V: 1}},
		Else: WordList{&IntLitCont{V: 2}},
	}
	st := &fakeStack{}
	st.Push(intVal(1))
	ctx := NewContext(st, newFakeDict(), nil, nil, fakeNumbers{})
	require.NoError(t, Run(ctx, c))
	require.Len(t, st.vals, 1)
	assert.Equal(t, intValue{1}, st.vals[0])
}

func Test_CondCont_elseBranch(t *testing.T) {
	c := &CondCont{
		Then: WordList{&IntLitCont{V: 1}},
		Else: WordList{&IntLitCont{V: 2}},
	}
	st := &fakeStack{}
	st.Push(intVal(0))
	ctx := NewContext(st, newFakeDict(), nil, nil, fakeNumbers{})
	require.NoError(t, Run(ctx, c))
	require.Len(t, st.vals, 1)
	assert.Equal(t, intValue{2}, st.vals[0])
}

func Test_CondCont_emptyElse(t *testing.T) {
	c := &CondCont{Then: WordList{&IntLitCont{V: 1}}}
	st := &fakeStack{}
	st.Push(intVal(0))
	ctx := NewContext(st, newFakeDict(), nil, nil, fakeNumbers{})
	require.NoError(t, Run(ctx, c))
	assert.Empty(t, st.vals)
}

func Test_CondCont_sharedReentryPicksBranchFresh(t *testing.T) {
	c := &CondCont{
		Then: WordList{&IntLitCont{V: 1}},
		Else: WordList{&IntLitCont{V: 2}},
	}
	c.MarkShared()

	st := &fakeStack{}
	ctx := NewContext(st, newFakeDict(), nil, nil, fakeNumbers{})

	st.Push(intVal(1))
	require.NoError(t, Run(ctx, c))
	assert.Equal(t, []Value{intValue{1}}, st.vals)

	st.vals = nil
	st.Push(intVal(0))
	require.NoError(t, Run(ctx, c))
	assert.Equal(t, []Value{intValue{2}}, st.vals, "a shared CondCont must re-evaluate its flag rather than replay the first branch")

	assert.False(t, c.started)
	assert.Nil(t, c.cur)
}
