// Package money holds the calculation rules for sales and purchase
// documents. All arithmetic runs on decimals and is rounded to two
// places only at the edges.
package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)
var hundred = decimal.NewFromInt(100)

// ErrInvalidTaxRate is returned for tax rates at or below -100%, where the
// tax-inclusive divisor reaches zero
var ErrInvalidTaxRate = errors.New("tax rate must be greater than -100%")

// CanFulfill reports whether a requested quantity can be taken from the
// available warehouse stock
func CanFulfill(qty, stock float64) bool {
	return qty > 0 && qty <= stock
}

// CartLine is one POS cart line. Rate is tax inclusive and may be
// overridden per line at the register.
type CartLine struct {
	Qty  float64
	Rate float64
}

// CartTotals are the POS invoice figures. Total is the tax-inclusive sum,
// Subtotal the net after the uniform tax rate is removed from each line.
type CartTotals struct {
	Subtotal float64
	Tax      float64
	Total    float64
}

// ComputeCartTotals applies a single tax rate uniformly across all lines.
// The tax is removed from the tax-inclusive line price for the subtotal
// and added back for the total; that order of operations is part of the
// register's contract.
func ComputeCartTotals(lines []CartLine, taxPercent float64) (CartTotals, error) {
	divisor := one.Add(decimal.NewFromFloat(taxPercent).Div(hundred))
	if !divisor.IsPositive() {
		return CartTotals{}, ErrInvalidTaxRate
	}

	subtotal := decimal.Zero
	total := decimal.Zero
	for _, l := range lines {
		qty := decimal.NewFromFloat(l.Qty)
		gross := decimal.NewFromFloat(l.Rate).Mul(qty)
		net := decimal.NewFromFloat(l.Rate).Div(divisor).Mul(qty)
		subtotal = subtotal.Add(net)
		total = total.Add(gross)
	}

	subtotal = subtotal.Round(2)
	total = total.Round(2)
	return CartTotals{
		Subtotal: subtotal.InexactFloat64(),
		Tax:      total.Sub(subtotal).InexactFloat64(),
		Total:    total.InexactFloat64(),
	}, nil
}

// DocLine is one line of a tax-exclusive document (sales quotation,
// purchase order). Discount is an absolute amount per line.
type DocLine struct {
	Qty        float64
	Rate       float64
	TaxPercent float64
	Discount   float64
}

// DocTotals are the figures of a tax-exclusive document
type DocTotals struct {
	Subtotal float64
	Tax      float64
	Discount float64
	Total    float64
}

// LineAmount is the payable amount of one line: rate*qty plus its tax
// minus its discount
func LineAmount(l DocLine) float64 {
	base := decimal.NewFromFloat(l.Rate).Mul(decimal.NewFromFloat(l.Qty))
	tax := base.Mul(decimal.NewFromFloat(l.TaxPercent)).Div(hundred)
	return base.Add(tax).Sub(decimal.NewFromFloat(l.Discount)).Round(2).InexactFloat64()
}

// ComputeDocTotals evaluates the document total formula:
// sum(rate*qty) + sum(rate*qty*tax/100) - sum(discount)
func ComputeDocTotals(lines []DocLine) DocTotals {
	subtotal := decimal.Zero
	tax := decimal.Zero
	discount := decimal.Zero
	for _, l := range lines {
		base := decimal.NewFromFloat(l.Rate).Mul(decimal.NewFromFloat(l.Qty))
		subtotal = subtotal.Add(base)
		tax = tax.Add(base.Mul(decimal.NewFromFloat(l.TaxPercent)).Div(hundred))
		discount = discount.Add(decimal.NewFromFloat(l.Discount))
	}

	return DocTotals{
		Subtotal: subtotal.Round(2).InexactFloat64(),
		Tax:      tax.Round(2).InexactFloat64(),
		Discount: discount.Round(2).InexactFloat64(),
		Total:    subtotal.Add(tax).Sub(discount).Round(2).InexactFloat64(),
	}
}

// RunningBalance folds debit/credit pairs into a running balance series.
// Credits increase what is owed to the vendor, debits reduce it.
func RunningBalance(debits, credits []float64) []float64 {
	balance := decimal.Zero
	out := make([]float64, len(debits))
	for i := range debits {
		balance = balance.Add(decimal.NewFromFloat(credits[i])).Sub(decimal.NewFromFloat(debits[i]))
		out[i] = balance.Round(2).InexactFloat64()
	}
	return out
}
