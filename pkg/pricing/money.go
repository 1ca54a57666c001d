package pricing

import "github.com/shopspring/decimal"

// minorUnits maps ISO currency codes to their minor-unit exponent. Codes not
// listed use two decimal places.
var minorUnits = map[string]int32{
	"BIF": 0, "CLP": 0, "DJF": 0, "GNF": 0, "JPY": 0, "KMF": 0, "KRW": 0,
	"MGA": 0, "PYG": 0, "RWF": 0, "UGX": 0, "VND": 0, "VUV": 0, "XAF": 0,
	"XOF": 0, "XPF": 0,
	"BHD": 3, "IQD": 3, "JOD": 3, "KWD": 3, "LYD": 3, "OMR": 3, "TND": 3,
}

// MinorUnitExponent returns the number of decimal places for a currency.
func MinorUnitExponent(currency string) int32 {
	if exp, ok := minorUnits[currency]; ok {
		return exp
	}
	return 2
}

// RoundComponent rounds a monetary component to the currency's minor-unit
// precision, half up. Quote totals are formed by summing components rounded
// this way, never by rounding a separately computed grand total, so the sum
// of the parts always reconciles with the whole.
func RoundComponent(amount decimal.Decimal, currency string) decimal.Decimal {
	return amount.Round(MinorUnitExponent(currency))
}
