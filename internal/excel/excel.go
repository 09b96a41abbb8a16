// Package excel reads and writes the flat .xlsx sheets used for inventory
// and warehouse bulk operations. Row 1 is a header; each following row is
// one record; fully empty rows are skipped.
package excel

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

// ProductRow is one product line of an import/export sheet
type ProductRow struct {
	Name        string
	SKU         string
	Category    string
	Unit        string
	SalePrice   float64
	CostPrice   float64
	TaxPercent  float64
	Quantity    float64
	Description string
}

var productHeader = []string{
	"Name", "SKU", "Category", "Unit",
	"Sale Price", "Cost Price", "Tax %", "Quantity", "Description",
}

// WarehouseRow is one warehouse line of an import/export sheet
type WarehouseRow struct {
	Name    string
	Code    string
	Address string
	City    string
	Phone   string
}

var warehouseHeader = []string{"Name", "Code", "Address", "City", "Phone"}

// ParseProducts reads product rows from an .xlsx stream. A row without a
// name is rejected; malformed numbers carry the offending row number.
func ParseProducts(r io.Reader) ([]ProductRow, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}

	var out []ProductRow
	for i, row := range rows {
		rowNum := i + 2 // 1-based, after the header
		name := cell(row, 0)
		if name == "" {
			return nil, fmt.Errorf("row %d: product name is required", rowNum)
		}

		p := ProductRow{
			Name:        name,
			SKU:         cell(row, 1),
			Category:    cell(row, 2),
			Unit:        cell(row, 3),
			Description: cell(row, 8),
		}
		if p.SalePrice, err = numCell(row, 4, rowNum, "sale price"); err != nil {
			return nil, err
		}
		if p.CostPrice, err = numCell(row, 5, rowNum, "cost price"); err != nil {
			return nil, err
		}
		if p.TaxPercent, err = numCell(row, 6, rowNum, "tax percent"); err != nil {
			return nil, err
		}
		if p.Quantity, err = numCell(row, 7, rowNum, "quantity"); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// WriteProducts renders product rows into .xlsx bytes
func WriteProducts(products []ProductRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	writeHeader(f, productHeader)
	for i, p := range products {
		row := i + 2
		values := []interface{}{
			p.Name, p.SKU, p.Category, p.Unit,
			p.SalePrice, p.CostPrice, p.TaxPercent, p.Quantity, p.Description,
		}
		if err := writeRow(f, row, values); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseWarehouses reads warehouse rows from an .xlsx stream
func ParseWarehouses(r io.Reader) ([]WarehouseRow, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}

	var out []WarehouseRow
	for i, row := range rows {
		name := cell(row, 0)
		if name == "" {
			return nil, fmt.Errorf("row %d: warehouse name is required", i+2)
		}
		out = append(out, WarehouseRow{
			Name:    name,
			Code:    cell(row, 1),
			Address: cell(row, 2),
			City:    cell(row, 3),
			Phone:   cell(row, 4),
		})
	}
	return out, nil
}

// WriteWarehouses renders warehouse rows into .xlsx bytes
func WriteWarehouses(warehouses []WarehouseRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	writeHeader(f, warehouseHeader)
	for i, wh := range warehouses {
		values := []interface{}{wh.Name, wh.Code, wh.Address, wh.City, wh.Phone}
		if err := writeRow(f, i+2, values); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// readRows returns the data rows of the first sheet, header stripped,
// trailing fully-empty rows removed
func readRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}

	var out [][]string
	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func numCell(row []string, idx, rowNum int, field string) (float64, error) {
	raw := cell(row, idx)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("row %d: invalid %s %q", rowNum, field, raw)
	}
	return v, nil
}

func writeHeader(f *excelize.File, header []string) {
	for col, title := range header {
		cellName, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheetName, cellName, title)
	}
}

func writeRow(f *excelize.File, row int, values []interface{}) error {
	for col, v := range values {
		cellName, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cellName, v); err != nil {
			return err
		}
	}
	return nil
}
