package money

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ISONamespace is the namespace of the currencies defined by [ISO 4217].
//
// [ISO 4217]: https://en.wikipedia.org/wiki/ISO_4217
const ISONamespace = "ISO"

// Currency represents a unit of money, such as the US Dollar or a loyalty point.
// A currency is identified by its namespace and code; two currencies with the
// same namespace and code are equal regardless of their other properties.
//
// Currencies are immutable and safe for concurrent use by multiple goroutines.
// Standard currencies are obtained with [ParseCurr] and custom ones with
// [CurrencyBuilder]. Both return shared instances from a [Registry] unless
// caching is explicitly declined.
type Currency struct {
	namespace   string
	code        string
	numericCode int
	fracDigits  int
	validFrom   time.Time
	validUntil  time.Time
	legalTender bool
	virtual     bool
}

// ParseCurr returns the ISO 4217 currency with the given alphabetic code,
// for example "USD" or "usd", from the default registry.
//
// ParseCurr returns an [*UnknownCurrencyError] if the code is neither cached
// nor present in the ISO 4217 reference data.
func ParseCurr(code string) (*Currency, error) {
	return defaultRegistry.Currency(code)
}

// MustParseCurr is like [ParseCurr] but panics if the currency cannot be resolved.
// It simplifies safe initialization of global variables holding currencies.
func MustParseCurr(code string) *Currency {
	c, err := ParseCurr(code)
	if err != nil {
		panic(fmt.Sprintf("ParseCurr(%q) failed: %v", code, err))
	}
	return c
}

// Frequently used ISO 4217 currencies.
var (
	XXX = MustParseCurr("XXX") // no currency
	USD = MustParseCurr("USD")
	EUR = MustParseCurr("EUR")
	GBP = MustParseCurr("GBP")
	CHF = MustParseCurr("CHF")
	JPY = MustParseCurr("JPY")
	OMR = MustParseCurr("OMR")
)

// Code returns the code of the currency, unique within its namespace.
// For ISO 4217 currencies this is the [3-letter code].
//
// [3-letter code]: https://en.wikipedia.org/wiki/ISO_4217#National_currencies
func (c *Currency) Code() string {
	if c == nil {
		return ""
	}
	return c.code
}

// Namespace returns the namespace of the currency code, [ISONamespace] for
// standard currencies.
func (c *Currency) Namespace() string {
	if c == nil {
		return ""
	}
	return c.namespace
}

// NumericCode returns the [3-digit code] assigned to the currency by ISO 4217,
// or -1 if the currency does not have one.
//
// [3-digit code]: https://en.wikipedia.org/wiki/ISO_4217#Numeric_codes
func (c *Currency) NumericCode() int {
	if c == nil {
		return -1
	}
	return c.numericCode
}

// FractionDigits returns the number of digits after the decimal point used
// by the minor unit of the currency, for example 2 for US Dollars (cents)
// and 0 for Japanese Yen.
// It returns -1 for pseudo-currencies such as gold (XAU) that have no minor unit.
func (c *Currency) FractionDigits() int {
	if c == nil {
		return -1
	}
	return c.fracDigits
}

// scale is like FractionDigits but never negative.
func (c *Currency) scale() int {
	return max(c.FractionDigits(), 0)
}

// ValidFrom returns the first instant at which the currency is valid.
// The second result is false if the currency has no lower bound.
func (c *Currency) ValidFrom() (time.Time, bool) {
	if c == nil || c.validFrom.IsZero() {
		return time.Time{}, false
	}
	return c.validFrom, true
}

// ValidUntil returns the instant at which the currency stops being valid.
// The second result is false if the currency has no upper bound.
func (c *Currency) ValidUntil() (time.Time, bool) {
	if c == nil || c.validUntil.IsZero() {
		return time.Time{}, false
	}
	return c.validUntil, true
}

// IsValidAt reports whether t falls within the validity window of the currency.
func (c *Currency) IsValidAt(t time.Time) bool {
	if from, ok := c.ValidFrom(); ok && t.Before(from) {
		return false
	}
	if until, ok := c.ValidUntil(); ok && !t.Before(until) {
		return false
	}
	return c != nil
}

// IsLegalTender reports whether the currency is legal tender in some jurisdiction.
func (c *Currency) IsLegalTender() bool {
	return c != nil && c.legalTender
}

// IsVirtual reports whether the currency exists only virtually, such as
// a loyalty point or an in-game currency.
func (c *Currency) IsVirtual() bool {
	return c != nil && c.virtual
}

// Equal reports whether the currencies have the same namespace and code.
// A nil currency is equal only to another nil currency.
func (c *Currency) Equal(d *Currency) bool {
	if c == nil || d == nil {
		return c == d
	}
	return c == d || c.namespace == d.namespace && c.code == d.code
}

// Compare orders currencies by namespace, code, start and end of validity.
// An undefined validity bound sorts before any defined one, and nil sorts
// before any currency. Compare returns:
//
//	-1 if c < d
//	 0 if c = d
//	+1 if c > d
func (c *Currency) Compare(d *Currency) int {
	switch {
	case c == nil && d == nil:
		return 0
	case c == nil:
		return -1
	case d == nil:
		return 1
	}
	if r := cmp.Compare(c.namespace, d.namespace); r != 0 {
		return r
	}
	if r := cmp.Compare(c.code, d.code); r != 0 {
		return r
	}
	if r := compareBound(c.validFrom, d.validFrom); r != 0 {
		return r
	}
	return compareBound(c.validUntil, d.validUntil)
}

func compareBound(a, b time.Time) int {
	switch {
	case a.IsZero() && b.IsZero():
		return 0
	case a.IsZero():
		return -1
	case b.IsZero():
		return 1
	}
	return a.Compare(b)
}

// key returns the registry key of the currency.
func (c *Currency) key() string {
	return currencyKey(c.namespace, c.code)
}

func currencyKey(namespace, code string) string {
	return namespace + ":" + code
}

// String implements the [fmt.Stringer] interface and returns the currency code.
// Currencies outside the ISO namespace are prefixed with their namespace,
// as in "loyalty:PTS".
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (c *Currency) String() string {
	switch {
	case c == nil:
		return "<nil>"
	case c.namespace == ISONamespace:
		return c.code
	}
	return c.key()
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// See also constructor [ParseCurr].
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (c *Currency) UnmarshalJSON(text []byte) error {
	if string(text) == "null" {
		return nil
	}
	s, err := strconv.Unquote(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", c, err)
	}
	return c.UnmarshalText([]byte(s))
}

// MarshalJSON implements the [json.Marshaler] interface.
// See also method [Currency.MarshalText].
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (c *Currency) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(c.String())), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler] interface.
// The text is resolved through the default registry, so it must name an
// ISO 4217 currency or a currency cached under "namespace:code".
// The resolved properties are copied into c, which must be a zero
// Currency: currencies returned by the registry are shared and never
// overwritten.
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (c *Currency) UnmarshalText(text []byte) error {
	if c.code != "" {
		return fmt.Errorf("unmarshaling %T: %w: currency %v cannot be overwritten", c, ErrIllegalState, c)
	}
	d, err := defaultRegistry.lookupText(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", c, err)
	}
	*c = *d
	return nil
}

// MarshalText implements [encoding.TextMarshaler] interface.
// See also method [Currency.String].
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (c *Currency) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Format implements the [fmt.Formatter] interface.
// The following [format verbs] are available:
//
//	| Verb       | Example | Description     |
//	| ---------- | ------- | --------------- |
//	| %c, %s, %v | USD     | Currency        |
//	| %q         | "USD"   | Quoted currency |
//
// The '-' format flag can be used with all verbs.
//
// [format verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (c *Currency) Format(state fmt.State, verb rune) {
	text := c.String()
	switch verb {
	case 'q', 'Q':
		text = `"` + text + `"`
	case 's', 'S', 'v', 'V', 'c', 'C':
	default:
		text = "%!" + string(verb) + "(money.Currency=" + text + ")"
	}
	writePadded(state, text, false)
}

// writePadded writes text honouring the width and the '-' flag of state.
// Zero padding is applied after a leading sign when zeros is true.
func writePadded(state fmt.State, text string, zeros bool) {
	w, ok := state.Width()
	if !ok || w <= len(text) {
		//nolint:errcheck
		state.Write([]byte(text))
		return
	}
	pad := w - len(text)
	switch {
	case state.Flag('-'):
		text += strings.Repeat(" ", pad)
	case zeros && state.Flag('0'):
		sign := ""
		if text != "" && (text[0] == '-' || text[0] == '+' || text[0] == ' ') {
			sign, text = text[:1], text[1:]
		}
		text = sign + strings.Repeat("0", pad) + text
	default:
		text = strings.Repeat(" ", pad) + text
	}
	//nolint:errcheck
	state.Write([]byte(text))
}
