package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/dipanshu-patidar/accounting-arabic-api/internal/listing"
	"github.com/dipanshu-patidar/accounting-arabic-api/internal/middleware"
	"github.com/dipanshu-patidar/accounting-arabic-api/internal/models"
	"github.com/dipanshu-patidar/accounting-arabic-api/internal/money"
	"github.com/dipanshu-patidar/accounting-arabic-api/internal/printer"
)

// QuotationRequest is the create/update payload for a sales quotation
type QuotationRequest struct {
	CustomerName  string                 `json:"customer_name"`
	CustomerEmail string                 `json:"customer_email"`
	QuotationDate *time.Time             `json:"quotation_date"`
	ValidUntil    *time.Time             `json:"valid_until"`
	Status        models.QuotationStatus `json:"status"`
	Notes         string                 `json:"notes"`
	Items         []struct {
		ItemName   string  `json:"item_name"`
		Qty        float64 `json:"qty"`
		Rate       float64 `json:"rate"`
		TaxPercent float64 `json:"tax_percent"`
		Discount   float64 `json:"discount"`
	} `json:"items"`
}

func (p *QuotationRequest) validate() error {
	if p.CustomerName == "" {
		return fmt.Errorf("customer name is required")
	}
	if len(p.Items) == 0 {
		return fmt.Errorf("at least one item is required")
	}
	for _, item := range p.Items {
		if item.ItemName == "" {
			return fmt.Errorf("item name is required on every line")
		}
	}
	switch p.Status {
	case "", models.QuotationStatusDraft, models.QuotationStatusSent,
		models.QuotationStatusAccepted, models.QuotationStatusRejected:
	default:
		return fmt.Errorf("unknown status %q", p.Status)
	}
	return nil
}

// buildItems converts payload lines to item rows and computes document
// totals with the tax-exclusive formula
func (p *QuotationRequest) buildItems() ([]models.QuotationItem, money.DocTotals) {
	docLines := make([]money.DocLine, 0, len(p.Items))
	items := make([]models.QuotationItem, 0, len(p.Items))
	for _, line := range p.Items {
		dl := money.DocLine{
			Qty:        line.Qty,
			Rate:       line.Rate,
			TaxPercent: line.TaxPercent,
			Discount:   line.Discount,
		}
		docLines = append(docLines, dl)
		items = append(items, models.QuotationItem{
			ItemName:   line.ItemName,
			Qty:        line.Qty,
			Rate:       line.Rate,
			TaxPercent: line.TaxPercent,
			Discount:   line.Discount,
			Amount:     money.LineAmount(dl),
		})
	}
	return items, money.ComputeDocTotals(docLines)
}

// listQuotations returns the company's quotations, newest first
func (rt *Router) listQuotations(w http.ResponseWriter, req *http.Request) {
	companyID, err := companyScope(req)
	if err != nil {
		respondError(w, http.StatusForbidden, err.Error())
		return
	}

	var quotations []models.Quotation
	if err := rt.db.Preload("Items").
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&quotations).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch quotations")
		return
	}

	q := req.URL.Query()
	search := q.Get("search")
	status := q.Get("status")
	filtered := listing.Filter(quotations, func(qt models.Quotation) bool {
		if !listing.MatchesFilter(string(qt.Status), status) {
			return false
		}
		return listing.MatchesSearch(qt.CustomerName, search) ||
			listing.MatchesSearch(qt.QuotationNumber, search)
	})

	page := queryInt(req, "page", 1)
	pageSize := queryInt(req, "page_size", listing.DefaultPageSize)
	window, totalPages := listing.Paginate(filtered, page, pageSize)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"quotations":  window,
		"total":       len(filtered),
		"page":        page,
		"total_pages": totalPages,
	})
}

func (rt *Router) getQuotation(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	quotation, ok := rt.findQuotation(w, req, id)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, quotation)
}

func (rt *Router) createQuotation(w http.ResponseWriter, req *http.Request) {
	companyID, err := companyScope(req)
	if err != nil {
		respondError(w, http.StatusForbidden, err.Error())
		return
	}

	var payload QuotationRequest
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := payload.validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, totals := payload.buildItems()

	quotationDate := time.Now()
	if payload.QuotationDate != nil {
		quotationDate = *payload.QuotationDate
	}
	status := payload.Status
	if status == "" {
		status = models.QuotationStatusDraft
	}

	quotation := models.Quotation{
		CompanyID:      companyID,
		CustomerName:   payload.CustomerName,
		CustomerEmail:  payload.CustomerEmail,
		QuotationDate:  quotationDate,
		ValidUntil:     payload.ValidUntil,
		Status:         status,
		Subtotal:       totals.Subtotal,
		TaxAmount:      totals.Tax,
		DiscountAmount: totals.Discount,
		Total:          totals.Total,
		Notes:          payload.Notes,
		CreatedBy:      middleware.UserID(req.Context()),
		Items:          items,
	}
	if err := rt.db.Create(&quotation).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create quotation")
		return
	}
	respondJSON(w, http.StatusCreated, quotation)
}

// updateQuotation replaces the quotation's lines and recomputes totals
func (rt *Router) updateQuotation(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	quotation, ok := rt.findQuotation(w, req, id)
	if !ok {
		return
	}

	var payload QuotationRequest
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := payload.validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, totals := payload.buildItems()

	quotation.CustomerName = payload.CustomerName
	quotation.CustomerEmail = payload.CustomerEmail
	if payload.QuotationDate != nil {
		quotation.QuotationDate = *payload.QuotationDate
	}
	quotation.ValidUntil = payload.ValidUntil
	if payload.Status != "" {
		quotation.Status = payload.Status
	}
	quotation.Subtotal = totals.Subtotal
	quotation.TaxAmount = totals.Tax
	quotation.DiscountAmount = totals.Discount
	quotation.Total = totals.Total
	quotation.Notes = payload.Notes

	quotation.Items = items

	// Replace lines and totals atomically so a failed save keeps the old
	// aggregate intact
	err = rt.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quotation_id = ?", quotation.ID).
			Delete(&models.QuotationItem{}).Error; err != nil {
			return err
		}
		return tx.Save(quotation).Error
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update quotation")
		return
	}
	respondJSON(w, http.StatusOK, quotation)
}

func (rt *Router) deleteQuotation(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, ok := rt.findQuotation(w, req, id); !ok {
		return
	}

	if err := rt.db.Delete(&models.Quotation{}, id).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete quotation")
		return
	}
	respondMessage(w, http.StatusOK, "Quotation deleted successfully")
}

// quotationPDF streams the printable quotation document
func (rt *Router) quotationPDF(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	quotation, ok := rt.findQuotation(w, req, id)
	if !ok {
		return
	}

	var company models.Company
	if err := rt.db.First(&company, quotation.CompanyID).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load company")
		return
	}

	pdf, err := printer.QuotationPDF(quotation, &company)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s.pdf", quotation.QuotationNumber))
	w.Write(pdf)
}

func (rt *Router) findQuotation(w http.ResponseWriter, req *http.Request, id uint) (*models.Quotation, bool) {
	var quotation models.Quotation
	if err := rt.db.Preload("Items").First(&quotation, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Quotation not found")
		return nil, false
	}
	if quotation.CompanyID != companyFromContext(req) {
		respondError(w, http.StatusForbidden, "Quotation belongs to another company")
		return nil, false
	}
	return &quotation, true
}
