package money

import (
	"fmt"
	"time"
)

// CurrencyBuilder constructs currencies that are not part of ISO 4217 or
// that need non-standard properties. Setters validate their argument
// immediately and leave the builder unchanged on error.
//
// A builder is not safe for concurrent use.
type CurrencyBuilder struct {
	reg         *Registry
	namespace   string
	code        string
	numericCode int
	fracDigits  int
	validFrom   time.Time
	validUntil  time.Time
	legalTender bool
	virtual     bool
}

// NewCurrencyBuilder returns a builder for a currency with the given code in
// the ISO namespace of the default registry.
// Numeric code and fraction digits start undefined (-1).
func NewCurrencyBuilder(code string) *CurrencyBuilder {
	return defaultRegistry.NewBuilder(code)
}

// SetNamespace sets the namespace of the currency code.
func (b *CurrencyBuilder) SetNamespace(namespace string) error {
	if namespace == "" {
		return fmt.Errorf("%w: namespace must not be empty", ErrArgument)
	}
	b.namespace = namespace
	return nil
}

// SetCode sets the code of the currency.
func (b *CurrencyBuilder) SetCode(code string) error {
	if code == "" {
		return fmt.Errorf("%w: code must not be empty", ErrArgument)
	}
	b.code = code
	return nil
}

// SetNumericCode sets the numeric code, or -1 for none.
func (b *CurrencyBuilder) SetNumericCode(num int) error {
	if num < -1 {
		return fmt.Errorf("%w: numeric code %d is less than -1", ErrArgument, num)
	}
	b.numericCode = num
	return nil
}

// SetFractionDigits sets the number of digits of the minor unit, or -1 for none.
func (b *CurrencyBuilder) SetFractionDigits(digits int) error {
	if digits < -1 {
		return fmt.Errorf("%w: fraction digits %d is less than -1", ErrArgument, digits)
	}
	b.fracDigits = digits
	return nil
}

// SetValidFrom sets the first instant of validity. The zero time clears it.
func (b *CurrencyBuilder) SetValidFrom(t time.Time) {
	b.validFrom = t
}

// SetValidUntil sets the instant at which validity ends. The zero time clears it.
func (b *CurrencyBuilder) SetValidUntil(t time.Time) {
	b.validUntil = t
}

// SetLegalTender marks the currency as legal tender.
func (b *CurrencyBuilder) SetLegalTender(legal bool) {
	b.legalTender = legal
}

// SetVirtual marks the currency as virtual.
func (b *CurrencyBuilder) SetVirtual(virtual bool) {
	b.virtual = virtual
}

// IsBuildable reports whether both namespace and code are set.
func (b *CurrencyBuilder) IsBuildable() bool {
	return b.namespace != "" && b.code != ""
}

// Build returns the cached currency with the builder's namespace and code,
// creating and caching it first if necessary.
// If the key is already cached, the cached currency is returned and the
// other properties of the builder are ignored.
//
// Build returns an error if:
//   - the builder is not buildable;
//   - a validity end is set or the validity start lies in the future,
//     because cached currencies are assumed to be valid at all times.
func (b *CurrencyBuilder) Build() (*Currency, error) {
	if !b.IsBuildable() {
		return nil, fmt.Errorf("%w: currency needs a namespace and a code", ErrIllegalState)
	}
	var reason string
	switch {
	case !b.validUntil.IsZero():
		reason = "currency has a validity end"
	case !b.validFrom.IsZero() && b.validFrom.After(b.reg.now()):
		reason = "currency is not valid yet"
	}
	if reason != "" {
		b.reg.logger.Warn("currency not cached",
			"namespace", b.namespace,
			"code", b.code,
			"reason", reason,
		)
		return nil, fmt.Errorf("%w: cannot cache %v: %v", ErrIllegalState, b.candidate(), reason)
	}
	if c, ok := b.reg.Lookup(b.namespace, b.code); ok {
		return c, nil
	}
	return b.reg.loadOrStore(b.candidate()), nil
}

// BuildUncached returns a new currency with the builder's properties
// without consulting or changing the registry.
//
// BuildUncached returns an error if the builder is not buildable.
func (b *CurrencyBuilder) BuildUncached() (*Currency, error) {
	if !b.IsBuildable() {
		return nil, fmt.Errorf("%w: currency needs a namespace and a code", ErrIllegalState)
	}
	return b.candidate(), nil
}

func (b *CurrencyBuilder) candidate() *Currency {
	return &Currency{
		namespace:   b.namespace,
		code:        b.code,
		numericCode: b.numericCode,
		fracDigits:  b.fracDigits,
		validFrom:   b.validFrom,
		validUntil:  b.validUntil,
		legalTender: b.legalTender,
		virtual:     b.virtual,
	}
}
