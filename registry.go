package money

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Registry is a flyweight cache of currencies keyed by namespace and code.
// Entries are inserted at most once per key and never evicted, so a cached
// currency stays the canonical instance for the lifetime of the registry.
//
// Registry is safe for concurrent use. Two goroutines building the same
// uncached key may each construct a candidate; only one of them is stored
// and returned to both. Callers must not rely on the identity of currencies
// returned by [CurrencyBuilder.BuildUncached].
type Registry struct {
	data   CurrencyData
	logger *slog.Logger
	now    func() time.Time
	cache  sync.Map // string -> *Currency
	group  singleflight.Group
}

// RegistryOption configures a [Registry].
type RegistryOption func(*Registry)

// WithCurrencyData sets the ISO 4217 reference data used to resolve codes
// that are not cached yet. The default is [ISOData].
func WithCurrencyData(data CurrencyData) RegistryOption {
	return func(r *Registry) {
		if data != nil {
			r.data = data
		}
	}
}

// WithLogger sets the logger that records insertions into the cache.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithClock sets the clock used to decide whether a currency is valid yet.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		data:   ISOData(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used by [ParseCurr]
// and [NewCurrencyBuilder].
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Currency returns the ISO 4217 currency with the given alphabetic code.
// The code is case-insensitive. Concurrent misses for the same code are
// resolved once.
//
// Currency returns an [*UnknownCurrencyError] if the code is neither cached
// nor known to the registry's reference data.
func (r *Registry) Currency(code string) (*Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	key := currencyKey(ISONamespace, code)
	if c, ok := r.load(key); ok {
		return c, nil
	}
	v, err, _ := r.group.Do(key, func() (any, error) {
		if c, ok := r.load(key); ok {
			return c, nil
		}
		iso, ok := r.data.Resolve(code)
		if !ok {
			return nil, &UnknownCurrencyError{Namespace: ISONamespace, Code: code}
		}
		c := &Currency{
			namespace:   ISONamespace,
			code:        iso.Code,
			numericCode: iso.NumericCode,
			fracDigits:  iso.FractionDigits,
			legalTender: iso.LegalTender,
		}
		return r.loadOrStore(c), nil
	})
	if err != nil {
		return nil, fmt.Errorf("resolving currency: %w", err)
	}
	return v.(*Currency), nil
}

// Lookup returns the cached currency with the given namespace and code.
// It never consults the reference data.
func (r *Registry) Lookup(namespace, code string) (*Currency, bool) {
	return r.load(currencyKey(namespace, code))
}

// Currencies returns all cached currencies ordered by [Currency.Compare].
func (r *Registry) Currencies() []*Currency {
	var res []*Currency
	r.cache.Range(func(_, v any) bool {
		res = append(res, v.(*Currency))
		return true
	})
	slices.SortFunc(res, (*Currency).Compare)
	return res
}

// NewBuilder returns a builder for a currency in the ISO namespace that
// stores its result in this registry.
func (r *Registry) NewBuilder(code string) *CurrencyBuilder {
	return &CurrencyBuilder{
		reg:         r,
		namespace:   ISONamespace,
		code:        code,
		numericCode: -1,
		fracDigits:  -1,
	}
}

// lookupText resolves "CODE" through the reference data and
// "namespace:CODE" through the cache.
func (r *Registry) lookupText(text string) (*Currency, error) {
	ns, code, ok := strings.Cut(text, ":")
	if !ok || ns == ISONamespace {
		if !ok {
			code = ns
		}
		return r.Currency(code)
	}
	if c, ok := r.Lookup(ns, code); ok {
		return c, nil
	}
	return nil, &UnknownCurrencyError{Namespace: ns, Code: code}
}

func (r *Registry) load(key string) (*Currency, bool) {
	v, ok := r.cache.Load(key)
	if !ok {
		return nil, false
	}
	return v.(*Currency), true
}

// loadOrStore inserts c unless its key is taken and returns the cached entry.
func (r *Registry) loadOrStore(c *Currency) *Currency {
	v, loaded := r.cache.LoadOrStore(c.key(), c)
	if !loaded {
		r.logger.Debug("currency registered",
			"namespace", c.namespace,
			"code", c.code,
			"fraction_digits", c.fracDigits,
		)
	}
	return v.(*Currency)
}
