package interp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_StackFunc_runsAndFinishes(t *testing.T) {
	f := StackFunc{WordName: "dup", Fn: func(s Stack) error {
		v, err := s.Peek()
		if err != nil {
			return err
		}
		s.Push(v)
		return nil
	}}
	assert.Equal(t, "dup", f.Name())
	st := &fakeStack{}
	st.Push(intVal(3))
	ctx := NewContext(st, newFakeDict(), nil, nil, fakeNumbers{})
	next, err := f.Run(ctx)
	require.NoError(t, err)
	assert.Nil(t, next)
	assert.Equal(t, []Value{intVal(3), intVal(3)}, st.vals)
}

func Test_StackFunc_propagatesError(t *testing.T) {
	wantErr := errors.New("boom")
	f := StackFunc{WordName: "bad", Fn: func(Stack) error { return wantErr }}
	ctx := NewContext(&fakeStack{}, newFakeDict(), nil, nil, fakeNumbers{})
	_, err := f.Run(ctx)
	assert.Equal(t, wantErr, err)
}

func Test_ContextFunc_seesContext(t *testing.T) {
	var sawDict Dictionary
	f := ContextFunc{WordName: "define", Fn: func(ctx *Context) error {
		sawDict = ctx.Dict
		return nil
	}}
	d := newFakeDict()
	ctx := NewContext(&fakeStack{}, d, nil, nil, fakeNumbers{})
	_, err := f.Run(ctx)
	require.NoError(t, err)
	assert.Same(t, d, sawDict)
}

func Test_ContextTailFunc_returnsNextContinuation(t *testing.T) {
	target := &IntLitCont{V: 1}
	f := ContextTailFunc{WordName: "execute", Fn: func(ctx *Context) (Continuation, error) {
		return target, nil
	}}
	ctx := NewContext(&fakeStack{}, newFakeDict(), nil, nil, fakeNumbers{})
	next, err := f.Run(ctx)
	require.NoError(t, err)
	assert.Same(t, Continuation(target), next)
}
