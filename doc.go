/*
Package money implements currency-safe monetary values with arbitrary precision.
It combines the [decimal] package's arbitrary-precision decimal numbers with
a [Currency] type and refuses to mix amounts of different currencies.

# Features

  - Immutable monetary values, ensuring safe usage across multiple goroutines
  - ISO 4217 currencies and custom currencies built with [CurrencyBuilder]
  - A shared, append-only currency cache ([Registry]) safe for concurrent use
  - Arithmetic and comparison operations guarded by a currency check
  - Precision policies and eight rounding modes
  - Aggregates over slices of amounts: [Total], [Min], [Max], [Average]
  - Conversion of monetary values using fixed exchange rates

# Representation

An [Amount] consists of a pointer to a [Currency], a [decimal.Decimal] number
and a [PrecisionPolicy]. The number keeps the scale it was created with, so
"USD 5" and "USD 5.00" are different representations of the same value:
[Amount.Equal] tells them apart while [Amount.EqualTo] does not.

A [Currency] is identified by its namespace and code. Currencies resolved by
[ParseCurr] or built by [CurrencyBuilder.Build] are cached and shared, so
repeated lookups return the same instance.

# Operations

Every operation between two amounts, such as [Amount.Add], [Amount.Quo] or
[Amount.LessThan], first checks that both amounts are denominated in the same
currency and fails with [ErrCurrencyMismatch] otherwise. Operations with a
plain number, such as [Amount.MulDec], skip the check.

Results are rounded to the number of significant digits of the receiver's
[PrecisionPolicy], by default 64 digits with rounding half to even.

# Rounding

A [Rounding] rescales an amount to a fixed number of digits after the decimal
point. [DefaultRounding] uses the fraction digits of each amount's currency.
Roundings and exchange rates are [Operator] values that can be passed to
[Amount.With].

# Errors

All errors are returned, never retried, and wrap one of [ErrArgument],
[ErrIllegalState], [ErrArithmetic], [ErrCurrencyMismatch] or
[ErrUnknownCurrency]. Must-prefixed constructors panic instead.
*/
package money
