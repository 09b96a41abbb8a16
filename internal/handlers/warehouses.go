package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dipanshu-patidar/accounting-arabic-api/internal/listing"
	"github.com/dipanshu-patidar/accounting-arabic-api/internal/models"
)

// listWarehouses returns the company's warehouses, searchable by name or code
func (rt *Router) listWarehouses(w http.ResponseWriter, req *http.Request) {
	companyID, err := companyScope(req)
	if err != nil {
		respondError(w, http.StatusForbidden, err.Error())
		return
	}

	var warehouses []models.Warehouse
	if err := rt.db.Where("company_id = ?", companyID).Order("name").Find(&warehouses).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch warehouses")
		return
	}

	search := req.URL.Query().Get("search")
	filtered := listing.Filter(warehouses, func(wh models.Warehouse) bool {
		return listing.MatchesSearch(wh.Name, search) || listing.MatchesSearch(wh.Code, search)
	})

	page := queryInt(req, "page", 1)
	pageSize := queryInt(req, "page_size", listing.DefaultPageSize)
	window, totalPages := listing.Paginate(filtered, page, pageSize)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"warehouses":  window,
		"total":       len(filtered),
		"page":        page,
		"total_pages": totalPages,
	})
}

func (rt *Router) getWarehouse(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	warehouse, ok := rt.findWarehouse(w, req, id)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, warehouse)
}

// WarehouseRequest is the create/update payload for a warehouse
type WarehouseRequest struct {
	Name    string `json:"name"`
	Code    string `json:"code"`
	Address string `json:"address"`
	City    string `json:"city"`
	Phone   string `json:"phone"`
}

func (rt *Router) createWarehouse(w http.ResponseWriter, req *http.Request) {
	companyID, err := companyScope(req)
	if err != nil {
		respondError(w, http.StatusForbidden, err.Error())
		return
	}

	var payload WarehouseRequest
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Name == "" {
		respondError(w, http.StatusBadRequest, "Warehouse name is required")
		return
	}

	warehouse := models.Warehouse{
		CompanyID: companyID,
		Name:      payload.Name,
		Code:      payload.Code,
		Address:   payload.Address,
		City:      payload.City,
		Phone:     payload.Phone,
		IsActive:  true,
	}
	if err := rt.db.Create(&warehouse).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create warehouse")
		return
	}
	respondJSON(w, http.StatusCreated, warehouse)
}

func (rt *Router) updateWarehouse(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	warehouse, ok := rt.findWarehouse(w, req, id)
	if !ok {
		return
	}

	var payload WarehouseRequest
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Name == "" {
		respondError(w, http.StatusBadRequest, "Warehouse name is required")
		return
	}

	warehouse.Name = payload.Name
	warehouse.Code = payload.Code
	warehouse.Address = payload.Address
	warehouse.City = payload.City
	warehouse.Phone = payload.Phone

	if err := rt.db.Save(warehouse).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update warehouse")
		return
	}
	respondJSON(w, http.StatusOK, warehouse)
}

// deleteWarehouse rejects deletion while the warehouse still holds stock
func (rt *Router) deleteWarehouse(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, ok := rt.findWarehouse(w, req, id); !ok {
		return
	}

	var stocked int64
	if err := rt.db.Model(&models.ProductStock{}).
		Where("warehouse_id = ? AND quantity > 0", id).
		Count(&stocked).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to check warehouse stock")
		return
	}
	if stocked > 0 {
		respondError(w, http.StatusConflict, "Warehouse still holds stock")
		return
	}

	if err := rt.db.Delete(&models.Warehouse{}, id).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete warehouse")
		return
	}
	respondMessage(w, http.StatusOK, "Warehouse deleted successfully")
}

func (rt *Router) findWarehouse(w http.ResponseWriter, req *http.Request, id uint) (*models.Warehouse, bool) {
	var warehouse models.Warehouse
	if err := rt.db.First(&warehouse, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Warehouse not found")
		return nil, false
	}
	if warehouse.CompanyID != companyFromContext(req) {
		respondError(w, http.StatusForbidden, "Warehouse belongs to another company")
		return nil, false
	}
	return &warehouse, true
}
