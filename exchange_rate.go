package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ExchangeRate represents a fixed unidirectional exchange rate between two
// currencies. It is an [Operator] that converts amounts in the base currency
// into amounts in the quote currency.
// ExchangeRate is designed to be safe for concurrent use by multiple goroutines.
type ExchangeRate struct {
	base  *Currency       // currency being exchanged
	quote *Currency       // currency being obtained in exchange for the base currency
	value decimal.Decimal // how many units of quote currency are needed to exchange for 1 unit of the base currency
}

// NewExchRate returns a new exchange rate between the base and quote currencies.
//
// NewExchRate returns an error if:
//   - either currency is absent;
//   - the rate is not positive;
//   - the currencies are equal and the rate is not 1.
func NewExchRate(base, quote *Currency, rate decimal.Decimal) (ExchangeRate, error) {
	if base == nil || quote == nil {
		return ExchangeRate{}, fmt.Errorf("creating exchange rate: %w", errAbsentCurrency)
	}
	if !rate.IsPositive() {
		return ExchangeRate{}, fmt.Errorf("creating exchange rate: %w: rate %v must be positive", ErrArgument, rate)
	}
	if base.Equal(quote) && !rate.Equal(decimal.New(1, 0)) {
		return ExchangeRate{}, fmt.Errorf("creating exchange rate: %w: rate %v/%v must be 1", ErrArgument, base, quote)
	}
	return ExchangeRate{base: base, quote: quote, value: rate}, nil
}

// ParseExchRate converts currency and decimal strings to an exchange rate.
// See also constructors [ParseCurr] and [NewExchRate].
func ParseExchRate(base, quote, rate string) (ExchangeRate, error) {
	b, err := ParseCurr(base)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("base currency parsing: %w", err)
	}
	q, err := ParseCurr(quote)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("quote currency parsing: %w", err)
	}
	d, err := decimal.NewFromString(rate)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("rate parsing: %w: %w", ErrArgument, err)
	}
	return NewExchRate(b, q, d)
}

// MustParseExchRate is like [ParseExchRate] but panics if any of the strings cannot be parsed.
// It simplifies safe initialization of global variables holding exchange rates.
func MustParseExchRate(base, quote, rate string) ExchangeRate {
	r, err := ParseExchRate(base, quote, rate)
	if err != nil {
		panic(fmt.Sprintf("ParseExchRate(%q, %q, %q) failed: %v", base, quote, rate, err))
	}
	return r
}

// Base returns the currency being exchanged.
func (r ExchangeRate) Base() *Currency {
	return r.base
}

// Quote returns the currency being obtained in exchange for the base currency.
func (r ExchangeRate) Quote() *Currency {
	return r.quote
}

// Decimal returns the rate.
func (r ExchangeRate) Decimal() decimal.Decimal {
	return r.value
}

// CanConv returns true if [ExchangeRate.Conv] can be used to convert the given amount.
func (r ExchangeRate) CanConv(b Amount) bool {
	return r.base != nil && r.base.Equal(b.curr) && r.value.IsPositive()
}

// Conv returns the (possibly rounded) amount converted from the base currency
// to the quote currency. The result keeps the precision policy of b and
// is not rounded to the quote currency; see [Amount.RoundToCurr].
//
// Conv returns an error if the amount is not denominated in the base currency.
func (r ExchangeRate) Conv(b Amount) (Amount, error) {
	if !r.CanConv(b) {
		return Amount{}, fmt.Errorf("converting %v with %v: %w", b, r, &CurrencyMismatchError{Want: r.base, Got: b.curr})
	}
	d, err := b.policy.round(b.value.Mul(r.value))
	if err != nil {
		return Amount{}, fmt.Errorf("converting %v with %v: %w", b, r, err)
	}
	return b.WithCurrencyNumber(r.quote, d)
}

// Apply implements the [Operator] interface. It is equivalent to [ExchangeRate.Conv].
func (r ExchangeRate) Apply(b Amount) (Amount, error) {
	return r.Conv(b)
}

// Inv returns the inverse of the exchange rate, rounded by [DefaultPrecision].
func (r ExchangeRate) Inv() (ExchangeRate, error) {
	if !r.value.IsPositive() {
		return ExchangeRate{}, fmt.Errorf("inverting %v: %w", r, errDivisionByZero)
	}
	d, err := DefaultPrecision.quo(decimal.New(1, 0), r.value)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("inverting %v: %w", r, err)
	}
	return NewExchRate(r.quote, r.base, d)
}

// SameCurr returns true if exchange rates are denominated in the same base
// and quote currencies.
// See also methods [ExchangeRate.Base] and [ExchangeRate.Quote].
func (r ExchangeRate) SameCurr(q ExchangeRate) bool {
	return q.base.Equal(r.base) && q.quote.Equal(r.quote)
}

// String method implements the [fmt.Stringer] interface and returns a string
// representation of the exchange rate, as in "EUR/USD 1.0850".
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (r ExchangeRate) String() string {
	return r.base.String() + "/" + r.quote.String() + " " + plain(r.value)
}
