package stackvm

import (
	"fmt"
	"math/big"

	"github.com/cellforth/cellforth/interp"
)

// Numbers implements interp.NumberFactory using math/big, the only way to
// honor arbitrary-precision integer and rational literals; no third-party
// bignum package appears anywhere in the retrieved corpus, so there is no
// ecosystem alternative to reach for here.
type Numbers struct{}

func (Numbers) Int(text string, base int) (interp.Value, error) {
	n, ok := new(big.Int).SetString(text, base)
	if !ok {
		return nil, fmt.Errorf("stackvm: %q is not a base-%d integer", text, base)
	}
	return Integer{n}, nil
}

// Rational parses the numerator and denominator of an `N/D` token
// independently, each the same base-10 decimal run ParseNumber's plain
// integer path accepts, and returns them as two separate Integer values for
// the caller to push in order. It does not reduce or combine them: `4/2`
// pushes 4 and 2, not a single reduced value.
func (Numbers) Rational(num, den string) (interp.Value, interp.Value, error) {
	n, ok := new(big.Int).SetString(num, 10)
	if !ok {
		return nil, nil, fmt.Errorf("stackvm: %q is not an integer numerator", num)
	}
	d, ok := new(big.Int).SetString(den, 10)
	if !ok {
		return nil, nil, fmt.Errorf("stackvm: %q is not an integer denominator", den)
	}
	if d.Sign() == 0 {
		return nil, nil, fmt.Errorf("stackvm: rational literal %s/%s has a zero denominator", num, den)
	}
	// A negative denominator is folded into the numerator's sign so two
	// literals denoting the same value always compare and print alike.
	if d.Sign() < 0 {
		n.Neg(n)
		d.Neg(d)
	}
	return Integer{n}, Integer{d}, nil
}
