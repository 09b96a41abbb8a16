package excel

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestProductRoundTrip(t *testing.T) {
	products := []ProductRow{
		{Name: "Steel Rod", SKU: "SR-01", Category: "raw", Unit: "pcs", SalePrice: 12.5, CostPrice: 9, TaxPercent: 15, Quantity: 40, Description: "12mm"},
		{Name: "Copper Wire", SKU: "CW-02", Category: "raw", Unit: "m", SalePrice: 3.25, CostPrice: 2.1, Quantity: 500},
	}

	data, err := WriteProducts(products)
	if err != nil {
		t.Fatalf("Failed to write workbook: %v", err)
	}

	parsed, err := ParseProducts(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Failed to parse workbook: %v", err)
	}

	if len(parsed) != len(products) {
		t.Fatalf("Got %d rows, want %d", len(parsed), len(products))
	}
	for i, p := range parsed {
		want := products[i]
		if p.Name != want.Name || p.SKU != want.SKU || p.Category != want.Category {
			t.Errorf("Row %d = %+v, want %+v", i, p, want)
		}
		if p.SalePrice != want.SalePrice || p.Quantity != want.Quantity {
			t.Errorf("Row %d numbers = %+v, want %+v", i, p, want)
		}
	}
}

func TestParseProductsRowCount(t *testing.T) {
	// Importing a well-formed sheet with N rows yields N records
	var products []ProductRow
	for i := 0; i < 7; i++ {
		products = append(products, ProductRow{Name: "Item " + string(rune('A'+i)), Quantity: float64(i)})
	}

	data, err := WriteProducts(products)
	if err != nil {
		t.Fatalf("Failed to write workbook: %v", err)
	}
	parsed, err := ParseProducts(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Failed to parse workbook: %v", err)
	}
	if len(parsed) != 7 {
		t.Errorf("Got %d rows, want 7", len(parsed))
	}
}

func TestParseProductsSkipsEmptyRows(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetCellValue("Sheet1", "A1", "Name")
	f.SetCellValue("Sheet1", "A2", "Widget")
	// Row 3 left entirely empty
	f.SetCellValue("Sheet1", "A4", "Gadget")

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("Failed to write workbook: %v", err)
	}

	parsed, err := ParseProducts(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Failed to parse workbook: %v", err)
	}
	if len(parsed) != 2 {
		t.Fatalf("Got %d rows, want 2", len(parsed))
	}
	if parsed[0].Name != "Widget" || parsed[1].Name != "Gadget" {
		t.Errorf("Rows = %v", parsed)
	}
}

func TestParseProductsMissingName(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetCellValue("Sheet1", "A1", "Name")
	f.SetCellValue("Sheet1", "B2", "SKU-ONLY")

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("Failed to write workbook: %v", err)
	}

	_, err = ParseProducts(bytes.NewReader(buf.Bytes()))
	if err == nil || !strings.Contains(err.Error(), "row 2") {
		t.Errorf("Expected row 2 name error, got %v", err)
	}
}

func TestParseProductsBadNumber(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetCellValue("Sheet1", "A1", "Name")
	f.SetCellValue("Sheet1", "A2", "Widget")
	f.SetCellValue("Sheet1", "E2", "not-a-price")

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("Failed to write workbook: %v", err)
	}

	_, err = ParseProducts(bytes.NewReader(buf.Bytes()))
	if err == nil || !strings.Contains(err.Error(), "sale price") {
		t.Errorf("Expected sale price error, got %v", err)
	}
}

func TestWarehouseRoundTrip(t *testing.T) {
	warehouses := []WarehouseRow{
		{Name: "Main Depot", Code: "WH-1", Address: "1 Dock Rd", City: "Dubai", Phone: "+971-1"},
		{Name: "North Store", Code: "WH-2", City: "Sharjah"},
	}

	data, err := WriteWarehouses(warehouses)
	if err != nil {
		t.Fatalf("Failed to write workbook: %v", err)
	}
	parsed, err := ParseWarehouses(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Failed to parse workbook: %v", err)
	}

	if len(parsed) != 2 {
		t.Fatalf("Got %d rows, want 2", len(parsed))
	}
	if parsed[0] != warehouses[0] || parsed[1] != warehouses[1] {
		t.Errorf("Rows = %v, want %v", parsed, warehouses)
	}
}

func TestParseGarbageStream(t *testing.T) {
	if _, err := ParseProducts(strings.NewReader("this is not a zip")); err == nil {
		t.Error("Expected error for non-xlsx input")
	}
}
