package money

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Add returns the (possibly rounded) sum of amounts a and b.
// The result is rounded by the precision policy of a.
//
// Add returns an error if b is absent or amounts are denominated in
// different currencies.
func (a Amount) Add(b Amount) (Amount, error) {
	c, err := a.add(b)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v + %v]: %w", a, b, err)
	}
	return c, nil
}

func (a Amount) add(b Amount) (Amount, error) {
	if err := a.checkCurr(b); err != nil {
		return Amount{}, err
	}
	return a.addDec(b.value)
}

// AddDec returns the (possibly rounded) sum of amount a and number e.
func (a Amount) AddDec(e decimal.Decimal) (Amount, error) {
	c, err := a.addDec(e)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v + %v]: %w", a, e, err)
	}
	return c, nil
}

func (a Amount) addDec(e decimal.Decimal) (Amount, error) {
	if err := a.checkSelf(); err != nil {
		return Amount{}, err
	}
	d, err := a.policy.round(a.value.Add(e))
	if err != nil {
		return Amount{}, err
	}
	return a.withValue(d), nil
}

// Sub returns the (possibly rounded) difference between amounts a and b.
//
// Sub returns an error if b is absent or amounts are denominated in
// different currencies.
func (a Amount) Sub(b Amount) (Amount, error) {
	c, err := a.sub(b)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v - %v]: %w", a, b, err)
	}
	return c, nil
}

func (a Amount) sub(b Amount) (Amount, error) {
	if err := a.checkCurr(b); err != nil {
		return Amount{}, err
	}
	return a.addDec(b.value.Neg())
}

// SubDec returns the (possibly rounded) difference between amount a and number e.
func (a Amount) SubDec(e decimal.Decimal) (Amount, error) {
	c, err := a.addDec(e.Neg())
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v - %v]: %w", a, e, err)
	}
	return c, nil
}

// Mul returns the (possibly rounded) product of the values of amounts a and b,
// denominated in the currency of a.
//
// Mul returns an error if b is absent or amounts are denominated in
// different currencies.
func (a Amount) Mul(b Amount) (Amount, error) {
	c, err := a.mul(b)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v * %v]: %w", a, b, err)
	}
	return c, nil
}

func (a Amount) mul(b Amount) (Amount, error) {
	if err := a.checkCurr(b); err != nil {
		return Amount{}, err
	}
	return a.mulDec(b.value)
}

// MulDec returns the (possibly rounded) product of amount a and factor e.
func (a Amount) MulDec(e decimal.Decimal) (Amount, error) {
	c, err := a.mulDec(e)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v * %v]: %w", a, e, err)
	}
	return c, nil
}

func (a Amount) mulDec(e decimal.Decimal) (Amount, error) {
	if err := a.checkSelf(); err != nil {
		return Amount{}, err
	}
	d, err := a.policy.round(a.value.Mul(e))
	if err != nil {
		return Amount{}, err
	}
	return a.withValue(d), nil
}

// Quo returns the (possibly rounded) quotient of the values of amounts a and b,
// denominated in the currency of a.
// See also methods [Amount.QuoDec], [Amount.QuoRem], and [Amount.Split].
//
// Quo returns an error if:
//   - b is absent or amounts are denominated in different currencies;
//   - the divisor is 0;
//   - the policy of a has unlimited precision and the quotient has no
//     finite decimal expansion.
func (a Amount) Quo(b Amount) (Amount, error) {
	c, err := a.quo(b)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v / %v]: %w", a, b, err)
	}
	return c, nil
}

func (a Amount) quo(b Amount) (Amount, error) {
	if err := a.checkCurr(b); err != nil {
		return Amount{}, err
	}
	return a.quoDec(b.value)
}

// QuoDec returns the (possibly rounded) quotient of amount a and divisor e.
// Exact quotients keep the scale of a less the scale of e where possible.
//
// QuoDec returns an error if the divisor is 0 or the policy of a has
// unlimited precision and the quotient has no finite decimal expansion.
func (a Amount) QuoDec(e decimal.Decimal) (Amount, error) {
	c, err := a.quoDec(e)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v / %v]: %w", a, e, err)
	}
	return c, nil
}

func (a Amount) quoDec(e decimal.Decimal) (Amount, error) {
	if err := a.checkSelf(); err != nil {
		return Amount{}, err
	}
	d, err := a.policy.quo(a.value, e)
	if err != nil {
		return Amount{}, err
	}
	return a.withValue(d), nil
}

// QuoToInt returns the integer part of the quotient of the values of
// amounts a and b, truncated toward zero.
//
// QuoToInt returns an error if:
//   - b is absent or amounts are denominated in different currencies;
//   - the divisor is 0;
//   - the integer part has more digits than the precision of a allows.
func (a Amount) QuoToInt(b Amount) (Amount, error) {
	if err := a.checkCurr(b); err != nil {
		return Amount{}, fmt.Errorf("computing [%v div %v]: %w", a, b, err)
	}
	return a.QuoToIntDec(b.value)
}

// QuoToIntDec returns the integer part of the quotient of amount a and
// divisor e, truncated toward zero.
func (a Amount) QuoToIntDec(e decimal.Decimal) (Amount, error) {
	q, _, err := a.quoRemDec(e)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v div %v]: %w", a, e, err)
	}
	return q, nil
}

// Rem returns the remainder a - b * q, where q is the result of
// [Amount.QuoToInt]. The remainder has the sign of a.
//
// Rem returns an error in the same cases as [Amount.QuoToInt].
func (a Amount) Rem(b Amount) (Amount, error) {
	if err := a.checkCurr(b); err != nil {
		return Amount{}, fmt.Errorf("computing [%v mod %v]: %w", a, b, err)
	}
	return a.RemDec(b.value)
}

// RemDec returns the remainder of amount a divided by e.
func (a Amount) RemDec(e decimal.Decimal) (Amount, error) {
	_, r, err := a.quoRemDec(e)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v mod %v]: %w", a, e, err)
	}
	return r, nil
}

// QuoRem returns the quotient q and remainder r of the values of amounts
// a and b such that a = b * q + r exactly, where q is an integer and
// the sign of the remainder r is the same as the sign of a.
// Both results are denominated in the currency of a.
// See also methods [Amount.QuoToInt] and [Amount.Rem].
//
// QuoRem returns an error in the same cases as [Amount.QuoToInt].
func (a Amount) QuoRem(b Amount) (q, r Amount, err error) {
	if err = a.checkCurr(b); err != nil {
		return Amount{}, Amount{}, fmt.Errorf("computing [%v div %v] and [%v mod %v]: %w", a, b, a, b, err)
	}
	return a.QuoRemDec(b.value)
}

// QuoRemDec is like [Amount.QuoRem] with a plain divisor.
func (a Amount) QuoRemDec(e decimal.Decimal) (q, r Amount, err error) {
	q, r, err = a.quoRemDec(e)
	if err != nil {
		return Amount{}, Amount{}, fmt.Errorf("computing [%v div %v] and [%v mod %v]: %w", a, e, a, e, err)
	}
	return q, r, nil
}

func (a Amount) quoRemDec(e decimal.Decimal) (q, r Amount, err error) {
	if err = a.checkSelf(); err != nil {
		return Amount{}, Amount{}, err
	}
	// T-Division
	d, err := a.policy.quoToInt(a.value, e)
	if err != nil {
		return Amount{}, Amount{}, err
	}
	// Remainder is exact, no rounding
	m := a.value.Sub(d.Mul(e))
	return a.withValue(d), a.withValue(m), nil
}

// Abs returns the absolute value of the amount.
func (a Amount) Abs() Amount {
	if a.Sign() >= 0 {
		return a
	}
	return a.Neg()
}

// Neg returns an amount with the opposite sign.
func (a Amount) Neg() Amount {
	return a.withValue(a.value.Neg())
}

// Plus returns a unchanged.
// It exists as the counterpart of [Amount.Neg].
func (a Amount) Plus() Amount {
	return a
}

// Pow returns the (possibly rounded) amount raised to the integer power n.
// The zero power is 1 for any amount.
//
// Pow returns an error if |n| exceeds 999,999,999, or if n is negative and
// either the amount is 0 or the policy of a has unlimited precision.
func (a Amount) Pow(n int) (Amount, error) {
	if err := a.checkSelf(); err != nil {
		return Amount{}, fmt.Errorf("computing [%v^%v]: %w", a, n, err)
	}
	d, err := a.policy.pow(a.value, n)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v^%v]: %w", a, n, err)
	}
	return a.withValue(d), nil
}

// ULP (Unit in the Last Place) returns the smallest representable positive
// difference between two amounts with the same scale as amount a.
// It can be useful for implementing rounding and comparison algorithms.
func (a Amount) ULP() Amount {
	return a.withValue(decimal.New(1, a.value.Exponent()))
}

// ScaleByPowerOfTen returns a * 10^n by moving the decimal point,
// so the unscaled value is unchanged and the scale decreases by n.
//
// ScaleByPowerOfTen returns an error if the resulting scale does not fit
// in an int32.
func (a Amount) ScaleByPowerOfTen(n int) (Amount, error) {
	if n < math.MinInt32 || n > math.MaxInt32 {
		return Amount{}, fmt.Errorf("computing [%v * 10^%v]: %w: exponent is out of range", a, n, ErrArithmetic)
	}
	exp := int64(a.value.Exponent()) + int64(n)
	if exp < math.MinInt32 || exp > math.MaxInt32 {
		return Amount{}, fmt.Errorf("computing [%v * 10^%v]: %w: scale is out of range", a, n, ErrArithmetic)
	}
	return a.withValue(a.value.Shift(int32(n))), nil
}

// Rescale returns the amount rounded or zero-padded to the given number of
// digits after the decimal point. See also [NewRounding].
//
// Rescale returns an error if the scale is negative, or the mode is
// [RoundUnnecessary] and rounding would discard nonzero digits.
func (a Amount) Rescale(scale int, mode RoundingMode) (Amount, error) {
	r, err := NewRounding(scale, mode)
	if err != nil {
		return Amount{}, fmt.Errorf("rescaling %v: %w", a, err)
	}
	return r.Apply(a)
}

// RoundToCurr returns the amount rounded half up to the fraction digits of
// its currency. See also [DefaultRounding].
func (a Amount) RoundToCurr() (Amount, error) {
	return DefaultRounding.Apply(a)
}

// Round returns the amount rounded half to even to the given scale.
func (a Amount) Round(scale int) (Amount, error) {
	return a.Rescale(scale, RoundHalfEven)
}

// Trunc returns the amount rounded toward zero to the given scale.
func (a Amount) Trunc(scale int) (Amount, error) {
	return a.Rescale(scale, RoundDown)
}

// Ceil returns the amount rounded toward positive infinity to the given scale.
func (a Amount) Ceil(scale int) (Amount, error) {
	return a.Rescale(scale, RoundCeiling)
}

// Floor returns the amount rounded toward negative infinity to the given scale.
func (a Amount) Floor(scale int) (Amount, error) {
	return a.Rescale(scale, RoundFloor)
}

// Min returns the smaller amount, or a if the amounts are equal in value.
//
// Min returns an error if b is absent or amounts are denominated in
// different currencies.
func (a Amount) Min(b Amount) (Amount, error) {
	switch c, err := a.Cmp(b); {
	case err != nil:
		return Amount{}, err
	case c <= 0: // a <= b
		return a, nil
	default:
		return b, nil
	}
}

// Max returns the larger amount, or a if the amounts are equal in value.
//
// Max returns an error if b is absent or amounts are denominated in
// different currencies.
func (a Amount) Max(b Amount) (Amount, error) {
	switch c, err := a.Cmp(b); {
	case err != nil:
		return Amount{}, err
	case c >= 0: // a >= b
		return a, nil
	default:
		return b, nil
	}
}

// Clamp compares amounts and returns:
//
//	min if a < min
//	max if a > max
//	  a otherwise
//
// Clamp returns an error if:
//   - amounts are denominated in different currencies;
//   - min is greater than max numerically.
func (a Amount) Clamp(min, max Amount) (Amount, error) {
	switch c, err := min.Cmp(max); {
	case err != nil:
		return Amount{}, err
	case c > 0: // min > max
		return Amount{}, fmt.Errorf("clamping %v: %w: invalid range [%v, %v]", a, ErrArgument, min, max)
	}
	switch c, err := a.Cmp(min); {
	case err != nil:
		return Amount{}, err
	case c < 0: // a < min
		return min, nil
	}
	switch c, err := a.Cmp(max); {
	case err != nil:
		return Amount{}, err
	case c > 0: // a > max
		return max, nil
	}
	return a, nil
}

// Split returns a slice of amounts that sum up to the original amount,
// ensuring the parts are as equal as possible at the scale of the amount.
// If the original amount cannot be divided equally among the specified number
// of parts, the remainder is distributed among the first parts of the slice.
// See also methods [Amount.Quo] and [Amount.QuoRem].
//
// Split returns an error if the number of parts is not a positive integer.
func (a Amount) Split(parts int) ([]Amount, error) {
	r, err := a.split(parts)
	if err != nil {
		return nil, fmt.Errorf("splitting %v into %v parts: %w", a, parts, err)
	}
	return r, nil
}

func (a Amount) split(parts int) ([]Amount, error) {
	if err := a.checkSelf(); err != nil {
		return nil, err
	}
	if parts <= 0 {
		return nil, fmt.Errorf("%w: number of parts must be positive", ErrArgument)
	}
	scale := max(a.Scale(), 0)
	par := decimal.NewFromInt(int64(parts))

	// Quotient
	quo, rem := a.value.QuoRem(par, int32(scale))
	quo = rescale(quo, scale)

	// Reminder distribution
	ulp := decimal.New(int64(rem.Sign()), -int32(scale))
	res := make([]Amount, parts)
	for i := range res {
		d := quo
		if !rem.IsZero() {
			d = d.Add(ulp)
			rem = rem.Sub(ulp)
		}
		res[i] = a.withValue(d)
	}
	return res, nil
}
