package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dipanshu-patidar/accounting-arabic-api/internal/listing"
	"github.com/dipanshu-patidar/accounting-arabic-api/internal/middleware"
	"github.com/dipanshu-patidar/accounting-arabic-api/internal/models"
	"github.com/dipanshu-patidar/accounting-arabic-api/internal/money"
)

// InvoiceRequest is the checkout payload. Rates are tax inclusive and may
// be overridden per line at the register.
type InvoiceRequest struct {
	CustomerName string  `json:"customer_name"`
	WarehouseID  uint    `json:"warehouse_id"`
	TaxPercent   float64 `json:"tax_percent"`
	Items        []struct {
		ProductID uint    `json:"product_id"`
		Qty       float64 `json:"qty"`
		Rate      float64 `json:"rate"`
	} `json:"items"`
}

// createInvoice finalizes a POS sale. Stock is validated per line against
// the selling warehouse, then decremented and journaled in one transaction.
func (rt *Router) createInvoice(w http.ResponseWriter, req *http.Request) {
	companyID := companyFromContext(req)
	userID := middleware.UserID(req.Context())

	var payload InvoiceRequest
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.CustomerName == "" {
		respondError(w, http.StatusBadRequest, "Customer name is required")
		return
	}
	if len(payload.Items) == 0 {
		respondError(w, http.StatusBadRequest, "Cart is empty")
		return
	}
	if payload.TaxPercent <= -100 {
		respondError(w, http.StatusBadRequest, money.ErrInvalidTaxRate.Error())
		return
	}

	var warehouse models.Warehouse
	if err := rt.db.Where("id = ? AND company_id = ?", payload.WarehouseID, companyID).
		First(&warehouse).Error; err != nil {
		respondError(w, http.StatusBadRequest, "Unknown warehouse")
		return
	}

	var invoice models.Invoice
	err := rt.db.Transaction(func(tx *gorm.DB) error {
		lines := make([]money.CartLine, 0, len(payload.Items))
		items := make([]models.InvoiceItem, 0, len(payload.Items))

		for _, line := range payload.Items {
			var product models.Product
			if err := tx.Where("id = ? AND company_id = ?", line.ProductID, companyID).
				First(&product).Error; err != nil {
				return fmt.Errorf("product %d not found", line.ProductID)
			}

			var stock models.ProductStock
			if err := tx.Where("product_id = ? AND warehouse_id = ?", product.ID, payload.WarehouseID).
				First(&stock).Error; err != nil {
				return fmt.Errorf("%s is not stocked in this warehouse", product.Name)
			}
			if !money.CanFulfill(line.Qty, stock.Quantity) {
				return fmt.Errorf("insufficient stock for %s (available %.2f)", product.Name, stock.Quantity)
			}

			rate := line.Rate
			if rate == 0 {
				rate = product.SalePrice
			}

			stock.Quantity -= line.Qty
			if err := tx.Save(&stock).Error; err != nil {
				return err
			}

			lines = append(lines, money.CartLine{Qty: line.Qty, Rate: rate})
			items = append(items, models.InvoiceItem{
				ProductID: product.ID,
				ItemName:  product.Name,
				Qty:       line.Qty,
				Rate:      rate,
			})
		}

		totals, err := money.ComputeCartTotals(lines, payload.TaxPercent)
		if err != nil {
			return err
		}
		invoice = models.Invoice{
			CompanyID:    companyID,
			CustomerName: payload.CustomerName,
			WarehouseID:  payload.WarehouseID,
			TaxPercent:   payload.TaxPercent,
			Subtotal:     totals.Subtotal,
			TaxAmount:    totals.Tax,
			Total:        totals.Total,
			CreatedBy:    userID,
			Items:        items,
		}
		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}

		for _, item := range invoice.Items {
			movement := models.StockMovement{
				ID:          uuid.NewString(),
				CompanyID:   companyID,
				ProductID:   item.ProductID,
				WarehouseID: payload.WarehouseID,
				Type:        models.MovementSaleOut,
				QtyDelta:    -item.Qty,
				DocType:     "INV",
				DocID:       invoice.ID,
				CreatedBy:   userID,
				CreatedAt:   time.Now(),
			}
			if err := tx.Create(&movement).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rt.broadcast(companyID, "invoice_created", invoice)
	respondJSON(w, http.StatusCreated, invoice)
}

// listInvoices returns the company's invoices, newest first
func (rt *Router) listInvoices(w http.ResponseWriter, req *http.Request) {
	companyID, err := companyScope(req)
	if err != nil {
		respondError(w, http.StatusForbidden, err.Error())
		return
	}

	var invoices []models.Invoice
	if err := rt.db.Preload("Items").
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&invoices).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch invoices")
		return
	}

	search := req.URL.Query().Get("search")
	filtered := listing.Filter(invoices, func(inv models.Invoice) bool {
		return listing.MatchesSearch(inv.CustomerName, search) ||
			listing.MatchesSearch(inv.InvoiceNumber, search)
	})

	page := queryInt(req, "page", 1)
	pageSize := queryInt(req, "page_size", listing.DefaultPageSize)
	window, totalPages := listing.Paginate(filtered, page, pageSize)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"invoices":    window,
		"total":       len(filtered),
		"page":        page,
		"total_pages": totalPages,
	})
}

// getInvoice returns one invoice with its lines
func (rt *Router) getInvoice(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var invoice models.Invoice
	if err := rt.db.Preload("Items").Preload("Warehouse").First(&invoice, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Invoice not found")
		return
	}
	if invoice.CompanyID != companyFromContext(req) {
		respondError(w, http.StatusForbidden, "Invoice belongs to another company")
		return
	}
	respondJSON(w, http.StatusOK, invoice)
}
