package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var errNoAmounts = fmt.Errorf("%w: no amounts", ErrArgument)

// Total returns the sum of the amounts, rounded by the policy of the first one.
//
// Total returns an error if the slice is empty or as soon as two amounts
// are denominated in different currencies. Use [Filter] to total the
// amounts of one currency out of a mixed slice.
func Total(amounts []Amount) (Amount, error) {
	if len(amounts) == 0 {
		return Amount{}, fmt.Errorf("computing total: %w", errNoAmounts)
	}
	sum := amounts[0]
	if err := sum.checkSelf(); err != nil {
		return Amount{}, fmt.Errorf("computing total: %w", err)
	}
	for _, a := range amounts[1:] {
		var err error
		if sum, err = sum.Add(a); err != nil {
			return Amount{}, fmt.Errorf("computing total: %w", err)
		}
	}
	return sum, nil
}

// Min returns the first of the smallest amounts.
//
// Min returns an error if the slice is empty or the amounts are denominated
// in different currencies.
func Min(amounts []Amount) (Amount, error) {
	return fold(amounts, "minimum", Amount.GreaterThan)
}

// Max returns the first of the largest amounts.
//
// Max returns an error if the slice is empty or the amounts are denominated
// in different currencies.
func Max(amounts []Amount) (Amount, error) {
	return fold(amounts, "maximum", Amount.LessThan)
}

// fold keeps the current amount until replace reports that a later one beats it.
func fold(amounts []Amount, what string, replace func(cur, next Amount) (bool, error)) (Amount, error) {
	if len(amounts) == 0 {
		return Amount{}, fmt.Errorf("computing %v: %w", what, errNoAmounts)
	}
	cur := amounts[0]
	if err := cur.checkSelf(); err != nil {
		return Amount{}, fmt.Errorf("computing %v: %w", what, err)
	}
	for _, a := range amounts[1:] {
		ok, err := replace(cur, a)
		if err != nil {
			return Amount{}, fmt.Errorf("computing %v: %w", what, err)
		}
		if ok {
			cur = a
		}
	}
	return cur, nil
}

// Average returns the (possibly rounded) arithmetic mean of the amounts,
// computed as the [Total] divided by the number of amounts.
//
// Average returns an error in the same cases as [Total].
func Average(amounts []Amount) (Amount, error) {
	sum, err := Total(amounts)
	if err != nil {
		return Amount{}, fmt.Errorf("computing average: %w", err)
	}
	avg, err := sum.QuoDec(decimal.NewFromInt(int64(len(amounts))))
	if err != nil {
		return Amount{}, fmt.Errorf("computing average: %w", err)
	}
	return avg, nil
}

// Filter returns the amounts denominated in curr, in their original order.
func Filter(curr *Currency, amounts []Amount) []Amount {
	var res []Amount
	for _, a := range amounts {
		if a.curr != nil && a.curr.Equal(curr) {
			res = append(res, a)
		}
	}
	return res
}

// SeparateCurrencies groups the amounts by currency. Each group keeps the
// original order of its amounts. The map key is the currency of the first
// amount of each group.
func SeparateCurrencies(amounts []Amount) map[*Currency][]Amount {
	res := make(map[*Currency][]Amount)
	keys := make(map[string]*Currency)
	for _, a := range amounts {
		if a.curr == nil {
			continue
		}
		k, ok := keys[a.curr.key()]
		if !ok {
			k = a.curr
			keys[a.curr.key()] = k
		}
		res[k] = append(res[k], a)
	}
	return res
}

// HasSameCurrency reports whether all amounts are denominated in the same
// currency. It is true for an empty slice and for a single amount.
func HasSameCurrency(amounts []Amount) bool {
	for _, a := range amounts[min(1, len(amounts)):] {
		if !a.SameCurr(amounts[0]) {
			return false
		}
	}
	return true
}
