package stackvm

import (
	"testing"

	"github.com/cellforth/cellforth/interp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Numbers_Int(t *testing.T) {
	n, err := Numbers{}.Int("123456789012345678901234567890", 10)
	require.NoError(t, err)
	i, ok := n.(Integer)
	require.True(t, ok)
	assert.Equal(t, "123456789012345678901234567890", i.V.String())
}

func Test_Numbers_Int_invalid(t *testing.T) {
	_, err := Numbers{}.Int("not-a-number", 10)
	assert.Error(t, err)
}

func Test_Numbers_Rational_pushesNumeratorAndDenominatorSeparately(t *testing.T) {
	num, den, err := Numbers{}.Rational("1", "3")
	require.NoError(t, err)
	n, ok := num.(Integer)
	require.True(t, ok)
	d, ok := den.(Integer)
	require.True(t, ok)
	assert.Equal(t, int64(1), n.V.Int64())
	assert.Equal(t, int64(3), d.V.Int64())
}

func Test_Numbers_Rational_doesNotReduce(t *testing.T) {
	num, den, err := Numbers{}.Rational("4", "2")
	require.NoError(t, err)
	n, ok := num.(Integer)
	require.True(t, ok)
	d, ok := den.(Integer)
	require.True(t, ok)
	assert.Equal(t, int64(4), n.V.Int64(), "4/2 must push 4 and 2 unreduced, not a single 2")
	assert.Equal(t, int64(2), d.V.Int64())
}

func Test_Numbers_Rational_negativeDenominatorFoldsIntoNumerator(t *testing.T) {
	num, den, err := Numbers{}.Rational("1", "-3")
	require.NoError(t, err)
	n, ok := num.(Integer)
	require.True(t, ok)
	d, ok := den.(Integer)
	require.True(t, ok)
	assert.Equal(t, int64(-1), n.V.Int64())
	assert.Equal(t, int64(3), d.V.Int64())
}

func Test_Numbers_Rational_zeroDenominator(t *testing.T) {
	_, _, err := Numbers{}.Rational("1", "0")
	assert.Error(t, err)
}

func Test_Numbers_Rational_badNumerator(t *testing.T) {
	_, _, err := Numbers{}.Rational("x", "2")
	assert.Error(t, err)
}

// Test_ParseNumber_rationalPushesTwoStackValues exercises interp.ParseNumber
// with the real Numbers factory end to end: a `3/4` token must leave two
// plain integers on the stack, denominator on top, the same as if `3` and
// `4` had been typed as two separate tokens.
func Test_ParseNumber_rationalPushesTwoStackValues(t *testing.T) {
	ctx := interp.NewContext(New(), nil, nil, nil, Numbers{})
	cont, ok, err := interp.ParseNumber(ctx, "3/4")
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, interp.Run(ctx, cont))

	top, err := ctx.Stack.Pop()
	require.NoError(t, err)
	bottom, err := ctx.Stack.Pop()
	require.NoError(t, err)
	assert.Equal(t, int64(4), top.(Integer).V.Int64())
	assert.Equal(t, int64(3), bottom.(Integer).V.Int64())
}
