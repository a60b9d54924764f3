package money

import (
	"fmt"
	"math"
)

// Operator is a transformation of an amount into another amount, such as
// rounding or currency exchange. See method [Amount.With].
type Operator interface {
	Apply(a Amount) (Amount, error)
}

// OperatorFunc adapts an ordinary function to the [Operator] interface.
type OperatorFunc func(a Amount) (Amount, error)

// Apply calls f(a).
func (f OperatorFunc) Apply(a Amount) (Amount, error) {
	return f(a)
}

// Rounding is an [Operator] that rescales amounts to a fixed number of digits
// after the decimal point using a rounding mode.
// The zero value is [DefaultRounding].
// Rounding is safe for concurrent use by multiple goroutines.
type Rounding struct {
	scale int
	mode  RoundingMode
	fixed bool // false: scale and mode come from the amount's currency
}

// DefaultRounding rounds every amount to the fraction digits of its own
// currency using [RoundHalfUp].
var DefaultRounding = Rounding{}

// NewRounding returns a rounding to the given scale.
//
// NewRounding returns an error if the scale is negative or the mode is unknown.
func NewRounding(scale int, mode RoundingMode) (Rounding, error) {
	if scale < 0 {
		return Rounding{}, fmt.Errorf("%w: rounding scale %d is negative", ErrArgument, scale)
	}
	if scale > math.MaxInt32 {
		return Rounding{}, fmt.Errorf("%w: rounding scale %d is out of range", ErrArgument, scale)
	}
	if !mode.valid() {
		return Rounding{}, fmt.Errorf("%w: %v", ErrArgument, mode)
	}
	return Rounding{scale: scale, mode: mode, fixed: true}, nil
}

// MustNewRounding is like [NewRounding] but panics if the rounding cannot be constructed.
func MustNewRounding(scale int, mode RoundingMode) Rounding {
	r, err := NewRounding(scale, mode)
	if err != nil {
		panic(fmt.Sprintf("NewRounding(%v, %v) failed: %v", scale, mode, err))
	}
	return r
}

// CurrencyRounding returns a rounding to the fraction digits of the currency
// using [RoundHalfUp]. Currencies without a minor unit round to integers.
//
// CurrencyRounding returns an error if the currency is nil.
func CurrencyRounding(curr *Currency) (Rounding, error) {
	if curr == nil {
		return Rounding{}, errAbsentCurrency
	}
	return NewRounding(curr.scale(), RoundHalfUp)
}

// Scale returns the number of digits after the decimal point of rounded
// amounts, and false for [DefaultRounding] whose scale depends on the amount.
func (r Rounding) Scale() (int, bool) {
	return r.scale, r.fixed
}

// Mode returns the rounding mode.
func (r Rounding) Mode() RoundingMode {
	if !r.fixed {
		return RoundHalfUp
	}
	return r.mode
}

// Apply returns the amount rescaled to the rounding's scale.
// The currency and precision policy of the amount are preserved.
//
// Apply returns an error if:
//   - the amount is absent;
//   - the mode is [RoundUnnecessary] and the amount has nonzero digits
//     beyond the scale.
func (r Rounding) Apply(a Amount) (Amount, error) {
	if a.curr == nil {
		return Amount{}, fmt.Errorf("rounding: %w", errAbsentAmount)
	}
	if !r.fixed {
		cr, err := CurrencyRounding(a.curr)
		if err != nil {
			return Amount{}, err
		}
		r = cr
	}
	d, err := roundScale(a.value, r.scale, r.mode)
	if err != nil {
		return Amount{}, fmt.Errorf("rounding %v: %w", a, err)
	}
	return a.withValue(d), nil
}

func (r Rounding) String() string {
	if !r.fixed {
		return "currency rounding"
	}
	return fmt.Sprintf("rounding scale=%d mode=%v", r.scale, r.mode)
}
