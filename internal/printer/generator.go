// Package printer renders printable PDFs: sales quotation documents and
// product QR label sheets.
package printer

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/dipanshu-patidar/accounting-arabic-api/internal/models"
)

// LabelConfig holds the grid layout for a label sheet
type LabelConfig struct {
	Cols       int     `json:"cols"`
	Rows       int     `json:"rows"`
	Count      int     `json:"count"`
	MarginTop  float64 `json:"marginTop"`
	MarginLeft float64 `json:"marginLeft"`
	GapX       float64 `json:"gapX"`
	GapY       float64 `json:"gapY"`
}

// DefaultLabelConfig is a 3x8 A4 sheet
var DefaultLabelConfig = LabelConfig{
	Cols:       3,
	Rows:       8,
	Count:      24,
	MarginTop:  10,
	MarginLeft: 8,
	GapX:       2,
	GapY:       2,
}

// ProductLabelsPDF creates an A4 sheet of QR labels for one product. The QR
// payload carries the product id and SKU so a register scan resolves the
// product without a lookup by name.
func ProductLabelsPDF(product *models.Product, cfg LabelConfig) ([]byte, error) {
	if cfg.Cols <= 0 || cfg.Rows <= 0 || cfg.Count <= 0 {
		return nil, fmt.Errorf("invalid label layout: %dx%d count %d", cfg.Cols, cfg.Rows, cfg.Count)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Arial", "B", 10)

	pageWidth, pageHeight := 210.0, 297.0

	totalGapX := float64(cfg.Cols-1) * cfg.GapX
	totalGapY := float64(cfg.Rows-1) * cfg.GapY
	availW := pageWidth - (cfg.MarginLeft * 2)
	availH := pageHeight - (cfg.MarginTop * 2)
	labelW := (availW - totalGapX) / float64(cfg.Cols)
	labelH := (availH - totalGapY) / float64(cfg.Rows)

	qrContent := fmt.Sprintf("product:%d:%s", product.ID, product.SKU)
	qrPng, err := qrcode.Encode(qrContent, qrcode.Low, 256)
	if err != nil {
		return nil, err
	}

	imgOptions := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	pdf.RegisterImageOptionsReader("qr", imgOptions, bytes.NewReader(qrPng))

	labelsPerPage := cfg.Cols * cfg.Rows
	for i := 0; i < cfg.Count; i++ {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		indexOnPage := i % labelsPerPage
		col := indexOnPage % cfg.Cols
		row := indexOnPage / cfg.Cols

		x := cfg.MarginLeft + float64(col)*(labelW+cfg.GapX)
		y := cfg.MarginTop + float64(row)*(labelH+cfg.GapY)

		qrSize := labelH * 0.7
		if qrSize > labelW {
			qrSize = labelW * 0.9
		}
		pdf.ImageOptions("qr", x+(labelW-qrSize)/2, y+(labelH-qrSize)/2-2, qrSize, qrSize, false, imgOptions, 0, "")

		pdf.SetXY(x, y+labelH-6)
		pdf.SetFontSize(7)
		pdf.CellFormat(labelW, 5, product.SKU, "", 0, "C", false, 0, "")

		pdf.SetXY(x, y+1)
		pdf.SetFontSize(6)
		pdf.CellFormat(labelW, 3, truncate(product.Name, 28), "", 0, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// QuotationPDF renders a sales quotation document
func QuotationPDF(q *models.Quotation, company *models.Company) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "SALES QUOTATION", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 10)
	if company != nil {
		pdf.CellFormat(0, 5, company.Name, "", 1, "L", false, 0, "")
		if company.Address != "" {
			pdf.CellFormat(0, 5, company.Address, "", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(40, 6, "Quotation No:", "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, q.QuotationNumber, "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(40, 6, "Customer:", "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, q.CustomerName, "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(40, 6, "Date:", "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, q.QuotationDate.Format("2006-01-02"), "", 1, "L", false, 0, "")
	if q.ValidUntil != nil {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(40, 6, "Valid Until:", "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 6, q.ValidUntil.Format("2006-01-02"), "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	// Item table header
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(70, 7, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 7, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(25, 7, "Rate", "1", 0, "R", true, 0, "")
	pdf.CellFormat(20, 7, "Tax %", "1", 0, "R", true, 0, "")
	pdf.CellFormat(20, 7, "Disc.", "1", 0, "R", true, 0, "")
	pdf.CellFormat(25, 7, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, item := range q.Items {
		pdf.CellFormat(70, 6, truncate(item.ItemName, 40), "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%.2f", item.Qty), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", item.Rate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%.1f", item.TaxPercent), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%.2f", item.Discount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", item.Amount), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(3)

	// Totals block
	writeTotal := func(label string, value float64, bold bool) {
		if bold {
			pdf.SetFont("Arial", "B", 10)
		} else {
			pdf.SetFont("Arial", "", 10)
		}
		pdf.CellFormat(130, 6, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", value), "", 1, "R", false, 0, "")
	}
	writeTotal("Subtotal", q.Subtotal, false)
	writeTotal("Tax", q.TaxAmount, false)
	writeTotal("Discount", q.DiscountAmount, false)
	writeTotal("Total", q.Total, true)

	if q.Notes != "" {
		pdf.Ln(5)
		pdf.SetFont("Arial", "I", 9)
		pdf.MultiCell(0, 5, q.Notes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// truncate shortens s to max runes. Counting runes keeps multi-byte names
// (Arabic product names in particular) from being cut mid-sequence.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
