package money

import (
	"strconv"
	"strings"

	gomoney "github.com/Rhymond/go-money"
)

// ISOCurrency holds the ISO 4217 reference properties of a currency.
type ISOCurrency struct {
	Code           string
	NumericCode    int // -1 if undefined
	FractionDigits int // -1 if the currency has no minor unit
	LegalTender    bool
}

// CurrencyData resolves ISO 4217 currency codes to their reference properties.
// Implementations must be safe for concurrent use.
type CurrencyData interface {
	// Resolve returns the properties of the currency with the given upper-case
	// alphabetic code, or false if the code is not defined.
	Resolve(code string) (ISOCurrency, bool)
}

// ISOData returns the built-in ISO 4217 reference data.
// National currencies come from the go-money currency table; the "X" codes
// for precious metals, supranational units and testing are defined here
// because they have no minor unit.
func ISOData() CurrencyData {
	return isoData{pseudo: pseudoCurrencies}
}

type isoData struct {
	pseudo map[string]ISOCurrency
}

// pseudoCurrencies lists the ISO 4217 codes whose minor unit is "N.A.".
var pseudoCurrencies = map[string]ISOCurrency{
	"XAG": {Code: "XAG", NumericCode: 961, FractionDigits: -1}, // silver
	"XAU": {Code: "XAU", NumericCode: 959, FractionDigits: -1}, // gold
	"XBA": {Code: "XBA", NumericCode: 955, FractionDigits: -1},
	"XBB": {Code: "XBB", NumericCode: 956, FractionDigits: -1},
	"XBC": {Code: "XBC", NumericCode: 957, FractionDigits: -1},
	"XBD": {Code: "XBD", NumericCode: 958, FractionDigits: -1},
	"XDR": {Code: "XDR", NumericCode: 960, FractionDigits: -1}, // special drawing rights
	"XPD": {Code: "XPD", NumericCode: 964, FractionDigits: -1}, // palladium
	"XPT": {Code: "XPT", NumericCode: 962, FractionDigits: -1}, // platinum
	"XSU": {Code: "XSU", NumericCode: 994, FractionDigits: -1},
	"XTS": {Code: "XTS", NumericCode: 963, FractionDigits: -1}, // testing
	"XUA": {Code: "XUA", NumericCode: 965, FractionDigits: -1},
	"XXX": {Code: "XXX", NumericCode: 999, FractionDigits: -1}, // no currency
}

func (d isoData) Resolve(code string) (ISOCurrency, bool) {
	code = strings.ToUpper(code)
	if c, ok := d.pseudo[code]; ok {
		return c, true
	}
	c := gomoney.GetCurrency(code)
	if c == nil || c.Code != code {
		return ISOCurrency{}, false
	}
	num, err := strconv.Atoi(c.NumericCode)
	if err != nil {
		num = -1
	}
	return ISOCurrency{
		Code:           c.Code,
		NumericCode:    num,
		FractionDigits: c.Fraction,
		LegalTender:    true,
	}, true
}
