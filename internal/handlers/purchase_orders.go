package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/dipanshu-patidar/accounting-arabic-api/internal/listing"
	"github.com/dipanshu-patidar/accounting-arabic-api/internal/middleware"
	"github.com/dipanshu-patidar/accounting-arabic-api/internal/models"
	"github.com/dipanshu-patidar/accounting-arabic-api/internal/money"
	"github.com/dipanshu-patidar/accounting-arabic-api/internal/workflow"
)

// PurchaseOrderRequest is the creation payload. It becomes the quotation
// step's data and is snapshotted on the order.
type PurchaseOrderRequest struct {
	VendorID        *uint           `json:"vendor_id"`
	WarehouseID     *uint           `json:"warehouse_id"`
	CompanyInfo     json.RawMessage `json:"company_info"`
	ShippingDetails json.RawMessage `json:"shipping_details"`
	Notes           string          `json:"notes"`
	Items           []struct {
		ProductID  *uint   `json:"product_id"`
		ItemName   string  `json:"item_name"`
		Qty        float64 `json:"qty"`
		Rate       float64 `json:"rate"`
		TaxPercent float64 `json:"tax_percent"`
		Discount   float64 `json:"discount"`
	} `json:"items"`
}

// errNoReceivingWarehouse rejects a goods receipt on an order that never
// named a warehouse to receive into
var errNoReceivingWarehouse = errors.New("order has no receiving warehouse")

// stepSaveStatus maps a step-save transaction error to a response. Only the
// known validation failure is the caller's fault; anything else is storage.
func stepSaveStatus(err error) (int, string) {
	if errors.Is(err, errNoReceivingWarehouse) {
		return http.StatusBadRequest, err.Error()
	}
	return http.StatusInternalServerError, "Failed to save step"
}

// decodeStepSave parses the step-save body `{"<stepName>": <stepData>}`.
// Exactly one step may be written per request.
func decodeStepSave(req *http.Request) (models.StepName, json.RawMessage, error) {
	var body map[string]json.RawMessage
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return "", nil, errors.New("invalid request payload")
	}
	if len(body) != 1 {
		return "", nil, errors.New("request must carry exactly one step")
	}
	for name, data := range body {
		return models.StepName(name), data, nil
	}
	return "", nil, errors.New("request must carry exactly one step")
}

// createPurchaseOrder opens a new workflow. The quotation step is completed
// immediately with the creation payload; the remaining four start pending.
func (rt *Router) createPurchaseOrder(w http.ResponseWriter, req *http.Request) {
	companyID := companyFromContext(req)
	userID := middleware.UserID(req.Context())

	var payload PurchaseOrderRequest
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if len(payload.Items) == 0 {
		respondError(w, http.StatusBadRequest, "At least one item is required")
		return
	}
	for _, item := range payload.Items {
		if item.ItemName == "" {
			respondError(w, http.StatusBadRequest, "Item name is required on every line")
			return
		}
	}

	if payload.VendorID != nil {
		var vendor models.Vendor
		if err := rt.db.Where("id = ? AND company_id = ?", *payload.VendorID, companyID).
			First(&vendor).Error; err != nil {
			respondError(w, http.StatusBadRequest, "Unknown vendor")
			return
		}
	}
	if payload.WarehouseID != nil {
		var warehouse models.Warehouse
		if err := rt.db.Where("id = ? AND company_id = ?", *payload.WarehouseID, companyID).
			First(&warehouse).Error; err != nil {
			respondError(w, http.StatusBadRequest, "Unknown warehouse")
			return
		}
	}

	docLines := make([]money.DocLine, 0, len(payload.Items))
	items := make([]models.OrderItem, 0, len(payload.Items))
	for _, line := range payload.Items {
		dl := money.DocLine{
			Qty:        line.Qty,
			Rate:       line.Rate,
			TaxPercent: line.TaxPercent,
			Discount:   line.Discount,
		}
		docLines = append(docLines, dl)
		items = append(items, models.OrderItem{
			ProductID:  line.ProductID,
			ItemName:   line.ItemName,
			Qty:        line.Qty,
			Rate:       line.Rate,
			TaxPercent: line.TaxPercent,
			Discount:   line.Discount,
			Amount:     money.LineAmount(dl),
		})
	}
	totals := money.ComputeDocTotals(docLines)

	quotationData, err := json.Marshal(payload)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	order := models.PurchaseOrder{
		CompanyID:       companyID,
		VendorID:        payload.VendorID,
		WarehouseID:     payload.WarehouseID,
		Status:          models.OrderStatusInProgress,
		CompanyInfo:     datatypes.JSON(payload.CompanyInfo),
		ShippingDetails: datatypes.JSON(payload.ShippingDetails),
		TotalAmount:     totals.Total,
		Notes:           payload.Notes,
		CreatedBy:       userID,
		Items:           items,
		Steps:           workflow.InitialSteps(datatypes.JSON(quotationData)),
	}

	if err := rt.db.Create(&order).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create purchase order")
		return
	}

	order.Steps = workflow.Materialize(order.Steps)
	rt.broadcast(companyID, "purchase_order_created", order)
	respondJSON(w, http.StatusCreated, order)
}

// listPurchaseOrders returns the company's orders, newest first
func (rt *Router) listPurchaseOrders(w http.ResponseWriter, req *http.Request) {
	companyID, err := companyScope(req)
	if err != nil {
		respondError(w, http.StatusForbidden, err.Error())
		return
	}

	var orders []models.PurchaseOrder
	if err := rt.db.Preload("Vendor").Preload("Steps").
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch purchase orders")
		return
	}

	q := req.URL.Query()
	search := q.Get("search")
	status := q.Get("status")
	filtered := listing.Filter(orders, func(o models.PurchaseOrder) bool {
		if !listing.MatchesFilter(string(o.Status), status) {
			return false
		}
		if listing.MatchesSearch(o.OrderNumber, search) {
			return true
		}
		return o.Vendor != nil && listing.MatchesSearch(o.Vendor.Name, search)
	})

	for i := range filtered {
		filtered[i].Steps = workflow.Materialize(filtered[i].Steps)
	}

	page := queryInt(req, "page", 1)
	pageSize := queryInt(req, "page_size", listing.DefaultPageSize)
	window, totalPages := listing.Paginate(filtered, page, pageSize)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"orders":      window,
		"total":       len(filtered),
		"page":        page,
		"total_pages": totalPages,
	})
}

// getPurchaseOrder returns one order with all five steps materialized
func (rt *Router) getPurchaseOrder(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, ok := rt.findPurchaseOrder(w, req, id)
	if !ok {
		return
	}
	order.Steps = workflow.Materialize(order.Steps)
	respondJSON(w, http.StatusOK, order)
}

// updatePurchaseOrderStep saves one workflow step. The step is only
// writable once every prior step is completed; saving marks it completed.
// First-time completion triggers the step's side effects.
func (rt *Router) updatePurchaseOrderStep(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, ok := rt.findPurchaseOrder(w, req, id)
	if !ok {
		return
	}

	stepName, stepData, err := decodeStepSave(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := workflow.CanSave(order, stepName); err != nil {
		var prior *workflow.PriorStepError
		switch {
		case errors.Is(err, workflow.ErrUnknownStep):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, workflow.ErrOrderCancelled):
			respondError(w, http.StatusConflict, err.Error())
		case errors.As(err, &prior):
			respondError(w, http.StatusConflict, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "Failed to validate step")
		}
		return
	}

	step := order.StepByName(stepName)
	if step == nil {
		respondError(w, http.StatusInternalServerError, "Order is missing its step records")
		return
	}
	firstCompletion := step.Status != models.StepStatusCompleted

	now := time.Now()
	userID := middleware.UserID(req.Context())

	err = rt.db.Transaction(func(tx *gorm.DB) error {
		step.Status = models.StepStatusCompleted
		step.CompletedAt = &now
		if len(stepData) > 0 {
			step.Data = datatypes.JSON(stepData)
		}
		if err := tx.Save(step).Error; err != nil {
			return err
		}

		if firstCompletion {
			if err := rt.applyStepEffects(tx, order, stepName, stepData, userID, now); err != nil {
				return err
			}
		}

		order.Status = workflow.OrderStatusAfter(stepName, order.Status)
		return tx.Model(order).Update("status", order.Status).Error
	})
	if err != nil {
		status, message := stepSaveStatus(err)
		respondError(w, status, message)
		return
	}

	// Re-read so the response reflects all writes of this save
	var fresh models.PurchaseOrder
	if err := rt.db.Preload("Items").Preload("Steps").Preload("Vendor").
		First(&fresh, order.ID).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to reload purchase order")
		return
	}
	fresh.Steps = workflow.Materialize(fresh.Steps)

	rt.broadcast(order.CompanyID, "purchase_order_updated", fresh)
	respondJSON(w, http.StatusOK, fresh)
}

// applyStepEffects runs the bookkeeping attached to a step's first
// completion: goods receipt books stock in, bill credits the vendor
// ledger, payment debits it.
func (rt *Router) applyStepEffects(tx *gorm.DB, order *models.PurchaseOrder, name models.StepName, data json.RawMessage, userID string, now time.Time) error {
	switch name {
	case models.StepGoodsReceipt:
		if order.WarehouseID == nil {
			return errNoReceivingWarehouse
		}
		for _, item := range order.Items {
			if item.ProductID == nil {
				continue
			}

			var stock models.ProductStock
			err := tx.Where("product_id = ? AND warehouse_id = ?", *item.ProductID, *order.WarehouseID).
				First(&stock).Error
			if err == gorm.ErrRecordNotFound {
				stock = models.ProductStock{ProductID: *item.ProductID, WarehouseID: *order.WarehouseID}
			} else if err != nil {
				return err
			}
			stock.Quantity += item.Qty
			if err := tx.Save(&stock).Error; err != nil {
				return err
			}

			movement := models.StockMovement{
				ID:          uuid.NewString(),
				CompanyID:   order.CompanyID,
				ProductID:   *item.ProductID,
				WarehouseID: *order.WarehouseID,
				Type:        models.MovementPurchaseIn,
				QtyDelta:    item.Qty,
				DocType:     "PO",
				DocID:       order.ID,
				CreatedBy:   userID,
				CreatedAt:   now,
			}
			if err := tx.Create(&movement).Error; err != nil {
				return err
			}
		}

	case models.StepBill:
		if order.VendorID == nil {
			return nil
		}
		entry := models.LedgerEntry{
			CompanyID:   order.CompanyID,
			VendorID:    *order.VendorID,
			EntryDate:   now,
			Description: "Bill for " + order.OrderNumber,
			DocType:     "PO_BILL",
			DocID:       order.ID,
			Credit:      stepAmount(data, order.TotalAmount),
		}
		return tx.Create(&entry).Error

	case models.StepPayment:
		if order.VendorID == nil {
			return nil
		}
		entry := models.LedgerEntry{
			CompanyID:   order.CompanyID,
			VendorID:    *order.VendorID,
			EntryDate:   now,
			Description: "Payment for " + order.OrderNumber,
			DocType:     "PO_PAYMENT",
			DocID:       order.ID,
			Debit:       stepAmount(data, order.TotalAmount),
		}
		return tx.Create(&entry).Error
	}
	return nil
}

// stepAmount reads an "amount" override from step data, falling back to
// the order total
func stepAmount(data json.RawMessage, fallback float64) float64 {
	var body struct {
		Amount float64 `json:"amount"`
	}
	if len(data) > 0 && json.Unmarshal(data, &body) == nil && body.Amount > 0 {
		return body.Amount
	}
	return fallback
}

// deletePurchaseOrder soft-deletes an order and its children stay for audit
func (rt *Router) deletePurchaseOrder(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, ok := rt.findPurchaseOrder(w, req, id)
	if !ok {
		return
	}

	if err := rt.db.Delete(&models.PurchaseOrder{}, order.ID).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete purchase order")
		return
	}
	respondMessage(w, http.StatusOK, "Purchase order deleted successfully")
}

// cancelPurchaseOrder marks the order cancelled. Cancellation is terminal;
// further step writes are rejected.
func (rt *Router) cancelPurchaseOrder(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, ok := rt.findPurchaseOrder(w, req, id)
	if !ok {
		return
	}
	if order.Status == models.OrderStatusCompleted {
		respondError(w, http.StatusConflict, "Completed orders cannot be cancelled")
		return
	}

	err = rt.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(order).Update("status", models.OrderStatusCancelled).Error; err != nil {
			return err
		}
		return tx.Model(&models.OrderStep{}).
			Where("order_id = ? AND status = ?", order.ID, models.StepStatusPending).
			Update("status", models.StepStatusCancelled).Error
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to cancel purchase order")
		return
	}

	order.Status = models.OrderStatusCancelled
	rt.broadcast(order.CompanyID, "purchase_order_cancelled", map[string]interface{}{
		"id":           order.ID,
		"order_number": order.OrderNumber,
	})
	respondMessage(w, http.StatusOK, "Purchase order cancelled")
}

func (rt *Router) findPurchaseOrder(w http.ResponseWriter, req *http.Request, id uint) (*models.PurchaseOrder, bool) {
	var order models.PurchaseOrder
	if err := rt.db.Preload("Items").Preload("Steps").Preload("Vendor").
		First(&order, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Purchase order not found")
		return nil, false
	}
	if order.CompanyID != companyFromContext(req) {
		respondError(w, http.StatusForbidden, "Purchase order belongs to another company")
		return nil, false
	}
	return &order, true
}
