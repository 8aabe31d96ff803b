package model

// TaxRatePercent is the flat tax rate applied once to an order subtotal.
const TaxRatePercent = 2

// ApplyTax adds the flat tax to a subtotal. Amounts are integers in the
// smallest charged unit, so the division truncates toward zero.
func ApplyTax(subtotal int64) int64 {
	return subtotal + subtotal*TaxRatePercent/100
}

// TaxedUnitMinor returns the tax-inclusive unit price in 1/100 units, as
// submitted to the payment provider per line item. For integer unit prices
// floor(price * 1.02 * 100) is exactly price * 102.
func TaxedUnitMinor(unitPrice int64) int64 {
	return unitPrice * (100 + TaxRatePercent)
}
