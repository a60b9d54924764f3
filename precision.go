package money

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// RoundingMode specifies how digits are discarded when a number is rescaled
// or limited to a number of significant digits.
type RoundingMode int

const (
	// RoundUp rounds away from zero.
	RoundUp RoundingMode = iota
	// RoundDown rounds toward zero (truncation).
	RoundDown
	// RoundCeiling rounds toward positive infinity.
	RoundCeiling
	// RoundFloor rounds toward negative infinity.
	RoundFloor
	// RoundHalfUp rounds to the nearest neighbour, ties away from zero.
	RoundHalfUp
	// RoundHalfDown rounds to the nearest neighbour, ties toward zero.
	RoundHalfDown
	// RoundHalfEven rounds to the nearest neighbour, ties to the even neighbour
	// (banker's rounding).
	RoundHalfEven
	// RoundUnnecessary asserts that no rounding is needed and fails otherwise.
	RoundUnnecessary
)

var roundingModeNames = [...]string{
	RoundUp:          "UP",
	RoundDown:        "DOWN",
	RoundCeiling:     "CEILING",
	RoundFloor:       "FLOOR",
	RoundHalfUp:      "HALF_UP",
	RoundHalfDown:    "HALF_DOWN",
	RoundHalfEven:    "HALF_EVEN",
	RoundUnnecessary: "UNNECESSARY",
}

func (m RoundingMode) String() string {
	if !m.valid() {
		return fmt.Sprintf("RoundingMode(%d)", int(m))
	}
	return roundingModeNames[m]
}

func (m RoundingMode) valid() bool {
	return m >= RoundUp && m <= RoundUnnecessary
}

// PrecisionPolicy limits the number of significant digits of computed
// amounts. A Precision of 0 means unlimited: results are exact, and
// operations whose exact result has no finite decimal expansion fail.
type PrecisionPolicy struct {
	Precision int
	Mode      RoundingMode
}

var zeroDec = decimal.New(0, 0)

// DefaultPrecision is applied to amounts created without an explicit policy.
var DefaultPrecision = PrecisionPolicy{Precision: 64, Mode: RoundHalfEven}

// NewPrecisionPolicy returns a policy with the given number of significant
// digits and rounding mode.
//
// NewPrecisionPolicy returns an error if the precision is negative or the
// rounding mode is unknown.
func NewPrecisionPolicy(prec int, mode RoundingMode) (PrecisionPolicy, error) {
	p := PrecisionPolicy{Precision: prec, Mode: mode}
	if err := p.validate(); err != nil {
		return PrecisionPolicy{}, err
	}
	return p, nil
}

func (p PrecisionPolicy) validate() error {
	if p.Precision < 0 {
		return fmt.Errorf("%w: precision %d is negative", ErrArgument, p.Precision)
	}
	if !p.Mode.valid() {
		return fmt.Errorf("%w: %v", ErrArgument, p.Mode)
	}
	return nil
}

func (p PrecisionPolicy) String() string {
	return fmt.Sprintf("precision=%d mode=%v", p.Precision, p.Mode)
}

// round limits d to p.Precision significant digits.
func (p PrecisionPolicy) round(d decimal.Decimal) (decimal.Decimal, error) {
	if p.Precision == 0 || numDigits(d) <= p.Precision {
		return d, nil
	}
	scale := scaleOf(d) - (numDigits(d) - p.Precision)
	r, err := roundScale(d, scale, p.Mode)
	if err != nil {
		return decimal.Decimal{}, err
	}
	// 9.99 -> 10.0 carries into an extra digit
	if numDigits(r) > p.Precision {
		return roundScale(r, scale-1, p.Mode)
	}
	return r, nil
}

// quo divides d by e honouring the policy.
// Exact quotients are reduced toward the preferred scale scale(d) - scale(e).
func (p PrecisionPolicy) quo(d, e decimal.Decimal) (decimal.Decimal, error) {
	if e.IsZero() {
		return decimal.Decimal{}, errDivisionByZero
	}
	preferred := scaleOf(d) - scaleOf(e)
	if d.IsZero() {
		return rescale(zeroDec, max(preferred, 0)), nil
	}
	if p.Precision == 0 {
		// An exact quotient never needs more digits than this.
		prec := numDigits(d) + (10*numDigits(e)+2)/3 + 3
		q, err := PrecisionPolicy{Precision: prec, Mode: RoundUnnecessary}.quo(d, e)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("%w: non-terminating decimal expansion", ErrArithmetic)
		}
		return q, nil
	}

	// Enough fractional digits for Precision+1 significant digits of quotient.
	adjD := numDigits(d) - scaleOf(d) - 1
	adjE := numDigits(e) - scaleOf(e) - 1
	places := p.Precision + 2 - (adjD - adjE)

	q, r := d.QuoRem(e, int32(places))
	exact := r.IsZero()
	if !exact {
		// A nonzero digit past the last computed one makes the rounding
		// step see the true quotient as inexact.
		q = q.Add(decimal.New(int64(d.Sign()*e.Sign()), -int32(places+1)))
	}
	q, err := p.round(q)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if exact {
		q = trimZeros(q, preferred)
	}
	return q, nil
}

// quoToInt returns the integer part of d / e with the preferred scale
// scale(d) - scale(e) when that scale is positive.
func (p PrecisionPolicy) quoToInt(d, e decimal.Decimal) (decimal.Decimal, error) {
	if e.IsZero() {
		return decimal.Decimal{}, errDivisionByZero
	}
	q, _ := d.QuoRem(e, 0)
	if p.Precision > 0 && !q.IsZero() && numDigits(q) > p.Precision {
		return decimal.Decimal{}, fmt.Errorf("%w: integer quotient needs more than %d digits", ErrArithmetic, p.Precision)
	}
	return rescale(q, max(scaleOf(d)-scaleOf(e), 0)), nil
}

// maxExponent bounds the magnitude of integer powers.
const maxExponent = 999_999_999

// pow raises d to the integer power n.
func (p PrecisionPolicy) pow(d decimal.Decimal, n int) (decimal.Decimal, error) {
	if n > maxExponent || n < -maxExponent {
		return decimal.Decimal{}, fmt.Errorf("%w: exponent %d is out of range [%d, %d]", ErrArithmetic, n, -maxExponent, maxExponent)
	}
	if n < 0 {
		if p.Precision == 0 {
			return decimal.Decimal{}, fmt.Errorf("%w: negative power needs a limited precision", ErrArithmetic)
		}
		// extra digits absorb the error of the intermediate rounding
		work := PrecisionPolicy{Precision: p.Precision + 10, Mode: p.Mode}
		den, err := work.pow(d, -n)
		if err != nil {
			return decimal.Decimal{}, err
		}
		q, err := work.quo(decimal.New(1, 0), den)
		if err != nil {
			return decimal.Decimal{}, err
		}
		return p.round(q)
	}
	work := p
	if p.Precision > 0 {
		work.Precision += 10
	}
	res := decimal.New(1, 0)
	base := d
	var err error
	for ; n > 0; n >>= 1 {
		if n&1 == 1 {
			if res, err = work.round(res.Mul(base)); err != nil {
				return decimal.Decimal{}, err
			}
		}
		if n > 1 {
			if base, err = work.round(base.Mul(base)); err != nil {
				return decimal.Decimal{}, err
			}
		}
	}
	return p.round(res)
}

// scaleOf returns the number of digits after the decimal point,
// which is negative for numbers with a positive exponent.
func scaleOf(d decimal.Decimal) int {
	return -int(d.Exponent())
}

// rescale changes the scale of d without rounding.
// Digits removed by a smaller scale must be zeros.
func rescale(d decimal.Decimal, scale int) decimal.Decimal {
	switch s := scaleOf(d); {
	case s < scale:
		coef := d.Coefficient()
		coef.Mul(coef, pow10(scale-s))
		return decimal.NewFromBigInt(coef, -int32(scale))
	case s > scale:
		return truncScale(d, scale)
	}
	return d
}

// truncScale drops the digits of d beyond the given scale, rounding toward zero.
func truncScale(d decimal.Decimal, scale int) decimal.Decimal {
	s := scaleOf(d)
	if s <= scale {
		return d
	}
	coef := d.Coefficient()
	coef.Quo(coef, pow10(s-scale))
	return decimal.NewFromBigInt(coef, -int32(scale))
}

// roundScale rounds d to the given number of digits after the decimal point.
// The result always has exactly that scale.
func roundScale(d decimal.Decimal, scale int, mode RoundingMode) (decimal.Decimal, error) {
	places := int32(scale)
	var r decimal.Decimal
	switch mode {
	case RoundUp:
		r = d.RoundUp(places)
	case RoundDown:
		r = d.RoundDown(places)
	case RoundCeiling:
		r = d.RoundCeil(places)
	case RoundFloor:
		r = d.RoundFloor(places)
	case RoundHalfUp:
		r = d.Round(places)
	case RoundHalfDown:
		r = roundHalfDown(d, places)
	case RoundHalfEven:
		r = d.RoundBank(places)
	case RoundUnnecessary:
		if !truncScale(d, scale).Equal(d) {
			return decimal.Decimal{}, fmt.Errorf("%w: rounding %v to scale %d is necessary", ErrArithmetic, plain(d), scale)
		}
		r = d
	default:
		return decimal.Decimal{}, fmt.Errorf("%w: %v", ErrArgument, mode)
	}
	return rescale(r, scale), nil
}

func roundHalfDown(d decimal.Decimal, places int32) decimal.Decimal {
	t := truncScale(d, int(places))
	half := decimal.New(5, -places-1)
	if d.Sub(t).Abs().GreaterThan(half) {
		return d.RoundUp(places)
	}
	return t
}

// trimZeros removes trailing zeros from d down to the given minimum scale.
func trimZeros(d decimal.Decimal, minScale int) decimal.Decimal {
	scale := scaleOf(d)
	if scale <= minScale {
		return d
	}
	if d.IsZero() {
		return rescale(zeroDec, minScale)
	}
	coef := d.Coefficient()
	ten := big.NewInt(10)
	q, m := new(big.Int), new(big.Int)
	for scale > minScale {
		q.QuoRem(coef, ten, m)
		if m.Sign() != 0 {
			break
		}
		coef.Set(q)
		scale--
	}
	return decimal.NewFromBigInt(coef, -int32(scale))
}

// numDigits returns the number of digits in the coefficient of d.
func numDigits(d decimal.Decimal) int {
	coef := d.Coefficient()
	return len(coef.Abs(coef).String())
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

// plain returns d without exponent notation, keeping trailing zeros.
func plain(d decimal.Decimal) string {
	return d.StringFixed(int32(max(scaleOf(d), 0)))
}
