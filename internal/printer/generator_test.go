package printer

import (
	"bytes"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/dipanshu-patidar/accounting-arabic-api/internal/models"
)

func TestProductLabelsPDF(t *testing.T) {
	product := &models.Product{ID: 7, SKU: "SR-01", Name: "Steel Rod 12mm"}

	data, err := ProductLabelsPDF(product, DefaultLabelConfig)
	if err != nil {
		t.Fatalf("Failed to generate labels: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("Output is not a PDF document")
	}
}

func TestProductLabelsPDFInvalidLayout(t *testing.T) {
	product := &models.Product{ID: 1, SKU: "X"}
	if _, err := ProductLabelsPDF(product, LabelConfig{}); err == nil {
		t.Error("Expected error for zero layout")
	}
}

func TestTruncateKeepsRunesIntact(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 20, "short"},
		{"exactly twenty chars", 20, "exactly twenty chars"},
		{"a longer name that gets cut", 10, "a longe..."},
		{"حديد تسليح ١٢ ملم عالي الجودة", 10, "حديد تس..."},
		{"عدد", 2, "عد"},
	}

	for _, tc := range tests {
		got := truncate(tc.in, tc.max)
		if got != tc.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("truncate(%q, %d) produced invalid UTF-8", tc.in, tc.max)
		}
	}
}

func TestQuotationPDF(t *testing.T) {
	validUntil := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	q := &models.Quotation{
		QuotationNumber: "QT20260830-AB12",
		CustomerName:    "Al Noor Trading",
		QuotationDate:   time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
		ValidUntil:      &validUntil,
		Subtotal:        250,
		TaxAmount:       22.5,
		DiscountAmount:  5,
		Total:           267.5,
		Notes:           "Prices valid for 30 days.",
		Items: []models.QuotationItem{
			{ItemName: "Steel Rod", Qty: 2, Rate: 100, TaxPercent: 10, Discount: 5, Amount: 215},
			{ItemName: "Copper Wire", Qty: 1, Rate: 50, TaxPercent: 5, Amount: 52.5},
		},
	}
	company := &models.Company{Name: "Patidar Industries", Address: "Indore, MP"}

	data, err := QuotationPDF(q, company)
	if err != nil {
		t.Fatalf("Failed to generate quotation PDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("Output is not a PDF document")
	}
}
