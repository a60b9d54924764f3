package money

import (
	"fmt"
	"math/big"
	"strconv"

	fixed "github.com/govalues/decimal"
	"github.com/shopspring/decimal"
)

var errOverflow = fmt.Errorf("%w: overflow", ErrArithmetic)

// As converts the number of the amount to the representation T.
// The conversion follows these rules:
//   - integer types truncate toward zero and fail on overflow;
//   - float32 and float64 return the nearest binary float, possibly losing digits;
//   - string returns the plain decimal form, as in [Amount.String];
//   - [*big.Int] truncates toward zero;
//   - [*big.Rat] and [decimal.Decimal] are exact;
//   - the 19-digit [fixed.Decimal] rounds excess fractional digits and fails
//     if the integer part does not fit.
//
// See also methods [Amount.Int64Exact] and [Amount.Int32Exact] for
// conversions that refuse to drop a fractional part.
func As[T Number](a Amount) (T, error) {
	var res T
	var err error
	switch p := any(&res).(type) {
	case *int:
		var v int64
		v, err = truncInt(a.value, strconv.IntSize)
		*p = int(v)
	case *int8:
		var v int64
		v, err = truncInt(a.value, 8)
		*p = int8(v)
	case *int16:
		var v int64
		v, err = truncInt(a.value, 16)
		*p = int16(v)
	case *int32:
		var v int64
		v, err = truncInt(a.value, 32)
		*p = int32(v)
	case *int64:
		*p, err = truncInt(a.value, 64)
	case *uint:
		var v uint64
		v, err = truncUint(a.value, strconv.IntSize)
		*p = uint(v)
	case *uint8:
		var v uint64
		v, err = truncUint(a.value, 8)
		*p = uint8(v)
	case *uint16:
		var v uint64
		v, err = truncUint(a.value, 16)
		*p = uint16(v)
	case *uint32:
		var v uint64
		v, err = truncUint(a.value, 32)
		*p = uint32(v)
	case *uint64:
		*p, err = truncUint(a.value, 64)
	case *float32:
		*p = float32(a.value.InexactFloat64())
	case *float64:
		*p = a.value.InexactFloat64()
	case *string:
		*p = plain(a.value)
	case **big.Int:
		*p = a.value.BigInt()
	case **big.Rat:
		*p = a.value.Rat()
	case *decimal.Decimal:
		*p = a.value
	case *fixed.Decimal:
		*p, err = fixed.Parse(plain(a.value))
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("converting %v to %T: %w", a, zero, err)
	}
	return res, nil
}

func truncInt(d decimal.Decimal, bits int) (int64, error) {
	i := d.BigInt()
	if !i.IsInt64() {
		return 0, errOverflow
	}
	v := i.Int64()
	if bits < 64 && (v < -1<<(bits-1) || v > 1<<(bits-1)-1) {
		return 0, errOverflow
	}
	return v, nil
}

func truncUint(d decimal.Decimal, bits int) (uint64, error) {
	i := d.BigInt()
	if !i.IsUint64() {
		return 0, errOverflow
	}
	v := i.Uint64()
	if bits < 64 && v > 1<<bits-1 {
		return 0, errOverflow
	}
	return v, nil
}

// exactInt returns the value of d as an integer of the given size.
func exactInt(d decimal.Decimal, bits int) (int64, error) {
	if !truncScale(d, 0).Equal(d) {
		return 0, fmt.Errorf("%w: fractional part is not zero", ErrArithmetic)
	}
	return truncInt(d, bits)
}

// Int64Exact returns the amount as an int64.
//
// Int64Exact returns an error if the amount has a nonzero fractional part
// or does not fit into an int64.
func (a Amount) Int64Exact() (int64, error) {
	v, err := exactInt(a.value, 64)
	if err != nil {
		return 0, fmt.Errorf("converting %v to int64: %w", a, err)
	}
	return v, nil
}

// Int32Exact returns the amount as an int32.
//
// Int32Exact returns an error if the amount has a nonzero fractional part
// or does not fit into an int32.
func (a Amount) Int32Exact() (int32, error) {
	v, err := exactInt(a.value, 32)
	if err != nil {
		return 0, fmt.Errorf("converting %v to int32: %w", a, err)
	}
	return int32(v), nil
}

// Int16Exact returns the amount as an int16.
//
// Int16Exact returns an error if the amount has a nonzero fractional part
// or does not fit into an int16.
func (a Amount) Int16Exact() (int16, error) {
	v, err := exactInt(a.value, 16)
	if err != nil {
		return 0, fmt.Errorf("converting %v to int16: %w", a, err)
	}
	return int16(v), nil
}

// BigIntExact returns the amount as a [*big.Int].
//
// BigIntExact returns an error if the amount has a nonzero fractional part.
func (a Amount) BigIntExact() (*big.Int, error) {
	if !a.IsInt() {
		return nil, fmt.Errorf("converting %v to %T: %w: fractional part is not zero", a, (*big.Int)(nil), ErrArithmetic)
	}
	return a.value.BigInt(), nil
}

// Float64 returns the nearest binary floating-point number.
// The second result is true if the conversion was exact.
//
// This conversion may lose data, as float64 has a smaller precision
// than the decimal type.
func (a Amount) Float64() (f float64, exact bool) {
	return a.value.Float64()
}

// Fixed returns the amount as a 19-digit [fixed.Decimal], rounding excess
// fractional digits half to even. See also [As].
func (a Amount) Fixed() (fixed.Decimal, error) {
	return As[fixed.Decimal](a)
}

// MajorPart returns the integral part of the amount, truncated toward zero,
// so "USD -1.345" has the major part "USD -1".
// See also method [Amount.MinorPart].
func (a Amount) MajorPart() Amount {
	return a.withValue(rescale(truncScale(a.value, 0), 0))
}

// MajorUnits returns the integral part of the amount as an int64,
// truncated toward zero.
// If the result cannot be represented as an int64, then false is returned.
func (a Amount) MajorUnits() (units int64, ok bool) {
	v, err := truncInt(a.value, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// MinorPart returns the fractional part of the amount with the sign of the
// amount, so that a = a.MajorPart() + a.MinorPart() exactly.
// "USD -1.345" has the minor part "USD -0.345".
func (a Amount) MinorPart() Amount {
	major := truncScale(a.value, 0)
	return a.withValue(a.value.Sub(major))
}

// MinorUnits returns a (possibly rounded) amount in minor units of currency
// (e.g. cents, pennies, fens).
// If the scale of the amount is greater than the fraction digits of the
// currency, then the fractional part is rounded using [rounding half to even]
// (banker's rounding).
// See also constructor [NewAmountFromMinorUnits].
//
// If the result cannot be represented as an int64, then false is returned.
//
// [rounding half to even]: https://en.wikipedia.org/wiki/Rounding#Rounding_half_to_even
func (a Amount) MinorUnits() (units int64, ok bool) {
	d, err := roundScale(a.value, a.curr.scale(), RoundHalfEven)
	if err != nil {
		return 0, false
	}
	u := d.Coefficient()
	if !u.IsInt64() {
		return 0, false
	}
	return u.Int64(), true
}
