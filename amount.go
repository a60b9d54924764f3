package money

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	fixed "github.com/govalues/decimal"
	"github.com/shopspring/decimal"
)

// Amount type represents a monetary amount: an arbitrary-precision decimal
// number denominated in a [Currency], together with the [PrecisionPolicy]
// that limits the results of arithmetic on it.
//
// Amounts are immutable; every operation returns a new amount.
// Amount is designed to be safe for concurrent use by multiple goroutines.
//
// The zero value has no currency. It is rejected with [ErrArgument] or
// [ErrCurrencyMismatch] by every operation that takes an amount argument.
type Amount struct {
	curr   *Currency
	value  decimal.Decimal
	policy PrecisionPolicy
}

// Number is the closed set of numeric representations that amounts can be
// created from and converted to. See [NewAmount] and [As].
type Number interface {
	int | int8 | int16 | int32 | int64 |
		uint | uint8 | uint16 | uint32 | uint64 |
		float32 | float64 | string |
		*big.Int | *big.Rat | decimal.Decimal | fixed.Decimal
}

func newAmountUnsafe(c *Currency, d decimal.Decimal, p PrecisionPolicy) Amount {
	return Amount{curr: c, value: d, policy: p}
}

// withValue returns an amount with the same currency and policy as a.
func (a Amount) withValue(d decimal.Decimal) Amount {
	return newAmountUnsafe(a.curr, d, a.policy)
}

// NewAmount returns an amount of n in the given currency governed by
// [DefaultPrecision]. See [NewAmountWithPolicy].
func NewAmount[N Number](curr *Currency, n N) (Amount, error) {
	return NewAmountWithPolicy(curr, n, DefaultPrecision)
}

// MustNewAmount is like [NewAmount] but panics if the amount cannot be constructed.
// It simplifies safe initialization of global variables holding amounts.
func MustNewAmount[N Number](curr *Currency, n N) Amount {
	a, err := NewAmount(curr, n)
	if err != nil {
		panic(fmt.Sprintf("NewAmount(%v, %v) failed: %v", curr, n, err))
	}
	return a
}

// NewAmountWithPolicy returns an amount of n in the given currency governed
// by the precision policy p.
//
// Integers, strings, [*big.Int] and decimals are converted exactly, keeping
// their scale. Floating-point numbers are converted to the shortest decimal
// that represents them and then rounded by p: this conversion is lossy, as
// binary floats cannot represent most decimal fractions. [*big.Rat] values
// are divided out and rounded by p.
//
// NewAmountWithPolicy returns an error if:
//   - the currency or the number is absent;
//   - the string is not a decimal number;
//   - the float is a special value (NaN or Inf);
//   - the policy is invalid.
func NewAmountWithPolicy[N Number](curr *Currency, n N, p PrecisionPolicy) (Amount, error) {
	if curr == nil {
		return Amount{}, fmt.Errorf("creating amount: %w", errAbsentCurrency)
	}
	if err := p.validate(); err != nil {
		return Amount{}, fmt.Errorf("creating amount: %w", err)
	}
	d, err := toDecimal(n, p)
	if err != nil {
		return Amount{}, fmt.Errorf("creating amount of %v: %w", curr, err)
	}
	return newAmountUnsafe(curr, d, p), nil
}

func toDecimal[N Number](n N, p PrecisionPolicy) (decimal.Decimal, error) {
	switch v := any(n).(type) {
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int8:
		return decimal.NewFromInt(int64(v)), nil
	case int16:
		return decimal.NewFromInt(int64(v)), nil
	case int32:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case uint:
		return fromUint64(uint64(v)), nil
	case uint8:
		return fromUint64(uint64(v)), nil
	case uint16:
		return fromUint64(uint64(v)), nil
	case uint32:
		return fromUint64(uint64(v)), nil
	case uint64:
		return fromUint64(v), nil
	case float32:
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return decimal.Decimal{}, fmt.Errorf("%w: special value %v", ErrArgument, v)
		}
		return p.round(decimal.NewFromFloat32(v))
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Decimal{}, fmt.Errorf("%w: special value %v", ErrArgument, v)
		}
		return p.round(decimal.NewFromFloat(v))
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("%w: %w", ErrArgument, err)
		}
		return d, nil
	case *big.Int:
		if v == nil {
			return decimal.Decimal{}, fmt.Errorf("%w: number is absent", ErrArgument)
		}
		return decimal.NewFromBigInt(v, 0), nil
	case *big.Rat:
		if v == nil {
			return decimal.Decimal{}, fmt.Errorf("%w: number is absent", ErrArgument)
		}
		return p.quo(decimal.NewFromBigInt(v.Num(), 0), decimal.NewFromBigInt(v.Denom(), 0))
	case decimal.Decimal:
		return v, nil
	case fixed.Decimal:
		d := fromUint64(v.Coef()).Shift(-int32(v.Scale()))
		if v.IsNeg() {
			d = d.Neg()
		}
		return d, nil
	}
	return decimal.Decimal{}, fmt.Errorf("%w: unsupported number type %T", ErrArgument, n)
}

func fromUint64(u uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(u), 0)
}

// Zero returns an amount of 0 in the given currency.
func Zero(curr *Currency) (Amount, error) {
	return NewAmount(curr, 0)
}

// ParseAmount converts currency and decimal strings to an amount governed by
// [DefaultPrecision]. The number keeps the scale it is written with.
// See also constructors [ParseCurr] and [NewAmount].
func ParseAmount(curr, amount string) (Amount, error) {
	c, err := ParseCurr(curr)
	if err != nil {
		return Amount{}, fmt.Errorf("parsing currency: %w", err)
	}
	a, err := NewAmount(c, amount)
	if err != nil {
		return Amount{}, fmt.Errorf("parsing amount: %w", err)
	}
	return a, nil
}

// MustParseAmount is like [ParseAmount] but panics if any of the strings cannot be parsed.
// This function simplifies safe initialization of global variables holding amounts.
func MustParseAmount(curr, amount string) Amount {
	a, err := ParseAmount(curr, amount)
	if err != nil {
		panic(fmt.Sprintf("ParseAmount(%q, %q) failed: %v", curr, amount, err))
	}
	return a
}

// NewAmountFromMinorUnits converts an integer, representing minor units of
// currency (e.g. cents, pennies, fens), to an amount.
// See also method [Amount.MinorUnits].
//
// NewAmountFromMinorUnits returns an error if the currency is absent.
func NewAmountFromMinorUnits(curr *Currency, units int64) (Amount, error) {
	if curr == nil {
		return Amount{}, fmt.Errorf("converting minor units: %w", errAbsentCurrency)
	}
	d := decimal.New(units, -int32(curr.scale()))
	return newAmountUnsafe(curr, d, DefaultPrecision), nil
}

// Curr returns the currency of the amount.
func (a Amount) Curr() *Currency {
	return a.curr
}

// Decimal returns the number of the amount.
func (a Amount) Decimal() decimal.Decimal {
	return a.value
}

// Policy returns the precision policy that governs results derived from a.
func (a Amount) Policy() PrecisionPolicy {
	return a.policy
}

// WithPolicy returns an amount with the same currency and number as a,
// governed by the precision policy p.
func (a Amount) WithPolicy(p PrecisionPolicy) (Amount, error) {
	if err := p.validate(); err != nil {
		return Amount{}, fmt.Errorf("changing policy of %v: %w", a, err)
	}
	return newAmountUnsafe(a.curr, a.value, p), nil
}

// WithCurrency returns an amount with the same number and policy as a,
// denominated in curr. No conversion takes place: the amount is relabeled.
// See also [ExchangeRate.Conv].
func (a Amount) WithCurrency(curr *Currency) (Amount, error) {
	return a.WithCurrencyNumber(curr, a.value)
}

// WithCurrencyNumber returns an amount with the same policy as a, denominated
// in curr and holding d. It lets conversions produce amounts that keep the
// policy of their source.
func (a Amount) WithCurrencyNumber(curr *Currency, d decimal.Decimal) (Amount, error) {
	if curr == nil {
		return Amount{}, fmt.Errorf("relabeling %v: %w", a, errAbsentCurrency)
	}
	return newAmountUnsafe(curr, d, a.policy), nil
}

// With returns the result of applying op to a.
func (a Amount) With(op Operator) (Amount, error) {
	if op == nil {
		return Amount{}, fmt.Errorf("%w: operator is absent", ErrArgument)
	}
	return op.Apply(a)
}

// Scale returns the number of digits after the decimal point.
// It is negative for numbers such as 1E+3 that carry a positive exponent.
func (a Amount) Scale() int {
	return scaleOf(a.value)
}

// Prec returns the number of digits in the unscaled value of the amount.
func (a Amount) Prec() int {
	return numDigits(a.value)
}

// Sign returns:
//
//	-1 if a < 0
//	 0 if a = 0
//	+1 if a > 0
//
// Negative zero, as produced from the float -0.0, has sign 0.
func (a Amount) Sign() int {
	return a.value.Sign()
}

// IsZero returns:
//
//	true  if a = 0
//	false otherwise
func (a Amount) IsZero() bool {
	return a.Sign() == 0
}

// IsPos returns:
//
//	true  if a > 0
//	false otherwise
func (a Amount) IsPos() bool {
	return a.Sign() > 0
}

// IsPosOrZero returns:
//
//	true  if a >= 0
//	false otherwise
func (a Amount) IsPosOrZero() bool {
	return a.Sign() >= 0
}

// IsNeg returns:
//
//	true  if a < 0
//	false otherwise
func (a Amount) IsNeg() bool {
	return a.Sign() < 0
}

// IsNegOrZero returns:
//
//	true  if a <= 0
//	false otherwise
func (a Amount) IsNegOrZero() bool {
	return a.Sign() <= 0
}

// IsInt returns true if there are no significant digits after the decimal point.
func (a Amount) IsInt() bool {
	return truncScale(a.value, 0).Equal(a.value)
}

// SameCurr returns true if amounts are denominated in the same currency.
func (a Amount) SameCurr(b Amount) bool {
	return a.curr != nil && a.curr.Equal(b.curr)
}

// checkCurr is the currency gate every operation on two amounts passes
// before any arithmetic. An absent receiver fails before the gate.
func (a Amount) checkCurr(b Amount) error {
	if err := a.checkSelf(); err != nil {
		return err
	}
	if !a.SameCurr(b) {
		return &CurrencyMismatchError{Want: a.curr, Got: b.curr}
	}
	return nil
}

// checkSelf rejects the zero amount as a receiver.
func (a Amount) checkSelf() error {
	if a.curr == nil {
		return errAbsentAmount
	}
	return nil
}

// Equal reports whether amounts have the same currency and the same number,
// including its scale: "USD 5" and "USD 5.00" are not equal.
// The precision policy is ignored. See also method [Amount.EqualTo].
func (a Amount) Equal(b Amount) bool {
	return a.curr.Equal(b.curr) &&
		a.value.Exponent() == b.value.Exponent() &&
		a.value.Cmp(b.value) == 0
}

// Compare returns a total order over all amounts:
// amounts in the same currency are ordered by value, amounts in different
// currencies by [Currency.Compare], regardless of their values.
// Compare returns:
//
//	-1 if a < b
//	 0 if a = b
//	+1 if a > b
func (a Amount) Compare(b Amount) int {
	if !a.curr.Equal(b.curr) {
		return a.curr.Compare(b.curr)
	}
	return a.value.Cmp(b.value)
}

// Cmp compares amounts by value and returns:
//
//	-1 if a < b
//	 0 if a = b
//	+1 if a > b
//
// Cmp returns an error if b is absent or amounts are denominated in
// different currencies.
func (a Amount) Cmp(b Amount) (int, error) {
	if b.curr == nil {
		return 0, fmt.Errorf("comparing [%v] and [%v]: %w", a, b, errAbsentAmount)
	}
	if err := a.checkCurr(b); err != nil {
		return 0, fmt.Errorf("comparing [%v] and [%v]: %w", a, b, err)
	}
	return a.value.Cmp(b.value), nil
}

// CmpDec compares the value of the amount with e and returns:
//
//	-1 if a < e
//	 0 if a = e
//	+1 if a > e
func (a Amount) CmpDec(e decimal.Decimal) int {
	return a.value.Cmp(e)
}

// LessThan reports whether a < b.
// It returns an error if b is absent or the currencies differ.
func (a Amount) LessThan(b Amount) (bool, error) {
	c, err := a.Cmp(b)
	return c < 0, err
}

// LessThanOrEqual reports whether a <= b.
// It returns an error if b is absent or the currencies differ.
func (a Amount) LessThanOrEqual(b Amount) (bool, error) {
	c, err := a.Cmp(b)
	return c <= 0 && err == nil, err
}

// GreaterThan reports whether a > b.
// It returns an error if b is absent or the currencies differ.
func (a Amount) GreaterThan(b Amount) (bool, error) {
	c, err := a.Cmp(b)
	return c > 0, err
}

// GreaterThanOrEqual reports whether a >= b.
// It returns an error if b is absent or the currencies differ.
func (a Amount) GreaterThanOrEqual(b Amount) (bool, error) {
	c, err := a.Cmp(b)
	return c >= 0 && err == nil, err
}

// EqualTo reports whether a = b by value, so "USD 5" is equal to "USD 5.00".
// It returns an error if b is absent or the currencies differ.
// See also method [Amount.Equal].
func (a Amount) EqualTo(b Amount) (bool, error) {
	c, err := a.Cmp(b)
	return c == 0 && err == nil, err
}

// LessThanDec reports whether the value of a is less than e.
func (a Amount) LessThanDec(e decimal.Decimal) bool {
	return a.CmpDec(e) < 0
}

// LessThanOrEqualDec reports whether the value of a is at most e.
func (a Amount) LessThanOrEqualDec(e decimal.Decimal) bool {
	return a.CmpDec(e) <= 0
}

// GreaterThanDec reports whether the value of a is greater than e.
func (a Amount) GreaterThanDec(e decimal.Decimal) bool {
	return a.CmpDec(e) > 0
}

// GreaterThanOrEqualDec reports whether the value of a is at least e.
func (a Amount) GreaterThanOrEqualDec(e decimal.Decimal) bool {
	return a.CmpDec(e) >= 0
}

// EqualToDec reports whether the value of a equals e.
func (a Amount) EqualToDec(e decimal.Decimal) bool {
	return a.CmpDec(e) == 0
}

// String implements the [fmt.Stringer] interface and returns the canonical
// text form of the amount: the currency, a space and the number without
// exponent or grouping, as in "USD 1.50".
// The zero value is rendered as "XXX 0".
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (a Amount) String() string {
	code := "XXX"
	if a.curr != nil {
		code = a.curr.String()
	}
	return code + " " + plain(a.value)
}

// Format implements the [fmt.Formatter] interface.
// The following [format verbs] are available:
//
//	| Verb   | Example     | Description                |
//	| ------ | ----------- | -------------------------- |
//	| %s, %v | USD 5.678   | Currency and amount        |
//	| %q     | "USD 5.678" | Quoted currency and amount |
//	| %f     | 5.678       | Amount                     |
//	| %d     | 568         | Amount in minor units      |
//	| %c     | USD         | Currency                   |
//
// The '-' format flag can be used with all verbs.
// The '+' and ' ' format flags can be used with all verbs except %c.
// The '0' format flag can be used with %f and %d.
//
// Precision is only supported for the %f verb and rounds half to even.
// The default precision is equal to the actual scale of the amount.
//
// [format verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (a Amount) Format(state fmt.State, verb rune) {
	code := "XXX"
	if a.curr != nil {
		code = a.curr.String()
	}
	d := a.value
	var text string
	switch verb {
	case 'f', 'F':
		if p, ok := state.Precision(); ok {
			d = rescale(d.RoundBank(int32(p)), p)
		}
		text = signed(state, d)
	case 'd', 'D':
		d, _ = roundScale(d, a.curr.scale(), RoundHalfEven)
		text = signed(state, decimal.NewFromBigInt(d.Coefficient(), 0))
	case 'c', 'C':
		text = code
	case 's', 'S', 'v', 'V':
		text = code + " " + signed(state, d)
	case 'q', 'Q':
		text = `"` + code + " " + signed(state, d) + `"`
	default:
		text = "%!" + string(verb) + "(money.Amount=" + a.String() + ")"
	}
	writePadded(state, text, verb == 'f' || verb == 'F' || verb == 'd' || verb == 'D')
}

func signed(state fmt.State, d decimal.Decimal) string {
	s := plain(d)
	if d.Sign() >= 0 {
		switch {
		case state.Flag('+'):
			s = "+" + s
		case state.Flag(' '):
			s = " " + s
		}
	}
	return s
}

// MarshalText implements the [encoding.TextMarshaler] interface.
// See also method [Amount.String].
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (a Amount) MarshalText() ([]byte, error) {
	if a.curr == nil {
		return nil, fmt.Errorf("marshaling %T: %w", a, errAbsentAmount)
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// The text must be in the canonical form returned by [Amount.String].
// The result is governed by [DefaultPrecision].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (a *Amount) UnmarshalText(text []byte) error {
	b, err := parseCanonical(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Amount{}, err)
	}
	*a = b
	return nil
}

// MarshalJSON implements the [json.Marshaler] interface and returns the
// canonical form as a JSON string.
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (a Amount) MarshalJSON() ([]byte, error) {
	text, err := a.MarshalText()
	if err != nil {
		return nil, err
	}
	return []byte(strconv.Quote(string(text))), nil
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (a *Amount) UnmarshalJSON(text []byte) error {
	if string(text) == "null" {
		return nil
	}
	s, err := strconv.Unquote(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Amount{}, err)
	}
	return a.UnmarshalText([]byte(s))
}

func parseCanonical(s string) (Amount, error) {
	code, num, ok := strings.Cut(strings.TrimSpace(s), " ")
	if !ok {
		return Amount{}, fmt.Errorf("%w: %q is not in the form \"CUR 0.00\"", ErrArgument, s)
	}
	c, err := defaultRegistry.lookupText(code)
	if err != nil {
		return Amount{}, err
	}
	return NewAmount(c, num)
}
