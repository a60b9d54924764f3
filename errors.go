package money

import (
	"errors"
	"fmt"
)

var (
	// ErrArgument is returned when a required argument is absent or out of range.
	ErrArgument = errors.New("invalid argument")
	// ErrIllegalState is returned when an operation is attempted on an object
	// that is not ready for it, such as building an incomplete currency.
	ErrIllegalState = errors.New("illegal state")
	// ErrArithmetic is returned when a result cannot be computed exactly
	// where exactness was requested, or when dividing by zero.
	ErrArithmetic = errors.New("arithmetic error")
	// ErrCurrencyMismatch is returned when amounts in different currencies
	// are combined or compared.
	ErrCurrencyMismatch = errors.New("currency mismatch")
	// ErrUnknownCurrency is returned when a currency code cannot be resolved.
	ErrUnknownCurrency = errors.New("unknown currency")
)

var (
	errDivisionByZero = fmt.Errorf("%w: division by zero", ErrArithmetic)
	errAbsentAmount   = fmt.Errorf("%w: amount is absent", ErrArgument)
	errAbsentCurrency = fmt.Errorf("%w: currency is absent", ErrArgument)
)

// CurrencyMismatchError describes an operation between two amounts
// that are denominated in different currencies.
// Got is nil if the second operand was absent.
type CurrencyMismatchError struct {
	Want *Currency
	Got  *Currency
}

func (e *CurrencyMismatchError) Error() string {
	return fmt.Sprintf("currency mismatch: want %v, got %v", e.Want, e.Got)
}

// Is reports whether target is [ErrCurrencyMismatch].
func (e *CurrencyMismatchError) Is(target error) bool {
	return target == ErrCurrencyMismatch
}

// UnknownCurrencyError describes a currency code that is neither cached
// nor present in the currency reference data.
type UnknownCurrencyError struct {
	Namespace string
	Code      string
}

func (e *UnknownCurrencyError) Error() string {
	return fmt.Sprintf("unknown currency %q in namespace %q", e.Code, e.Namespace)
}

// Is reports whether target is [ErrUnknownCurrency].
func (e *UnknownCurrencyError) Is(target error) bool {
	return target == ErrUnknownCurrency
}
