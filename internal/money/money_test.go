package money

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}

func TestCanFulfill(t *testing.T) {
	tests := []struct {
		qty   float64
		stock float64
		want  bool
	}{
		{1, 10, true},
		{10, 10, true},
		{11, 10, false},
		{0, 10, false},
		{-5, 10, false},
		{1, 0, false},
	}

	for _, tc := range tests {
		if got := CanFulfill(tc.qty, tc.stock); got != tc.want {
			t.Errorf("CanFulfill(%.0f, %.0f) = %v, want %v", tc.qty, tc.stock, got, tc.want)
		}
	}
}

func TestComputeCartTotalsTaxInclusive(t *testing.T) {
	// One line: rate 110 inclusive of 10% tax, qty 2.
	// Net per unit = 110 / 1.1 = 100, so subtotal 200, tax 20, total 220.
	totals, err := ComputeCartTotals([]CartLine{{Qty: 2, Rate: 110}}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !almostEqual(totals.Subtotal, 200) {
		t.Errorf("Subtotal = %.2f, want 200.00", totals.Subtotal)
	}
	if !almostEqual(totals.Tax, 20) {
		t.Errorf("Tax = %.2f, want 20.00", totals.Tax)
	}
	if !almostEqual(totals.Total, 220) {
		t.Errorf("Total = %.2f, want 220.00", totals.Total)
	}
}

func TestComputeCartTotalsMultiLine(t *testing.T) {
	lines := []CartLine{
		{Qty: 3, Rate: 57.5},
		{Qty: 1, Rate: 1150},
	}
	totals, err := ComputeCartTotals(lines, 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Gross = 3*57.5 + 1150 = 1322.50; net = 1322.50 / 1.15 = 1150.00
	if !almostEqual(totals.Total, 1322.50) {
		t.Errorf("Total = %.2f, want 1322.50", totals.Total)
	}
	if !almostEqual(totals.Subtotal, 1150) {
		t.Errorf("Subtotal = %.2f, want 1150.00", totals.Subtotal)
	}
	if !almostEqual(totals.Subtotal+totals.Tax, totals.Total) {
		t.Errorf("Subtotal+Tax = %.2f, want Total %.2f", totals.Subtotal+totals.Tax, totals.Total)
	}
}

func TestComputeCartTotalsZeroTax(t *testing.T) {
	totals, err := ComputeCartTotals([]CartLine{{Qty: 4, Rate: 25}}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if totals.Subtotal != 100 || totals.Tax != 0 || totals.Total != 100 {
		t.Errorf("Zero tax totals = %+v, want 100/0/100", totals)
	}
}

func TestComputeCartTotalsRejectsDegenerateTax(t *testing.T) {
	// At -100% the inclusive divisor is zero; below it the divisor goes
	// negative. Both must error instead of dividing.
	for _, tax := range []float64{-100, -150} {
		_, err := ComputeCartTotals([]CartLine{{Qty: 1, Rate: 10}}, tax)
		if err != ErrInvalidTaxRate {
			t.Errorf("tax %.0f: err = %v, want ErrInvalidTaxRate", tax, err)
		}
	}
}

func TestComputeDocTotalsFormula(t *testing.T) {
	lines := []DocLine{
		{Qty: 2, Rate: 100, TaxPercent: 10, Discount: 5},
		{Qty: 1, Rate: 50, TaxPercent: 5, Discount: 0},
	}

	// sum(rate*qty) = 250; tax = 20 + 2.5 = 22.5; discount = 5
	totals := ComputeDocTotals(lines)
	if !almostEqual(totals.Subtotal, 250) {
		t.Errorf("Subtotal = %.2f, want 250.00", totals.Subtotal)
	}
	if !almostEqual(totals.Tax, 22.5) {
		t.Errorf("Tax = %.2f, want 22.50", totals.Tax)
	}
	if !almostEqual(totals.Discount, 5) {
		t.Errorf("Discount = %.2f, want 5.00", totals.Discount)
	}
	if !almostEqual(totals.Total, 267.5) {
		t.Errorf("Total = %.2f, want 267.50", totals.Total)
	}
}

func TestComputeDocTotalsEmpty(t *testing.T) {
	totals := ComputeDocTotals(nil)
	if totals.Total != 0 || totals.Subtotal != 0 {
		t.Errorf("Empty doc totals = %+v, want zeros", totals)
	}
}

func TestLineAmount(t *testing.T) {
	// 2 * 100 = 200, +10% tax = 220, -5 discount = 215
	got := LineAmount(DocLine{Qty: 2, Rate: 100, TaxPercent: 10, Discount: 5})
	if !almostEqual(got, 215) {
		t.Errorf("LineAmount = %.2f, want 215.00", got)
	}
}

func TestLineAmountAvoidsFloatDrift(t *testing.T) {
	// 0.1 + 0.2 style drift: 3 * 19.99 should be exactly 59.97
	got := LineAmount(DocLine{Qty: 3, Rate: 19.99})
	if got != 59.97 {
		t.Errorf("LineAmount = %v, want 59.97", got)
	}
}

func TestRunningBalance(t *testing.T) {
	// bill 100 (credit), payment 40 (debit), bill 60, payment 120
	debits := []float64{0, 40, 0, 120}
	credits := []float64{100, 0, 60, 0}

	got := RunningBalance(debits, credits)
	want := []float64{100, 60, 120, 0}
	for i := range want {
		if !almostEqual(got[i], want[i]) {
			t.Errorf("balance[%d] = %.2f, want %.2f", i, got[i], want[i])
		}
	}
}
