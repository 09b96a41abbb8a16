package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dipanshu-patidar/accounting-arabic-api/internal/listing"
	"github.com/dipanshu-patidar/accounting-arabic-api/internal/models"
	"github.com/dipanshu-patidar/accounting-arabic-api/internal/money"
)

// listVendors returns the company's vendors, searchable by name
func (rt *Router) listVendors(w http.ResponseWriter, req *http.Request) {
	companyID, err := companyScope(req)
	if err != nil {
		respondError(w, http.StatusForbidden, err.Error())
		return
	}

	var vendors []models.Vendor
	if err := rt.db.Where("company_id = ?", companyID).Order("name").Find(&vendors).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch vendors")
		return
	}

	search := req.URL.Query().Get("search")
	filtered := listing.Filter(vendors, func(v models.Vendor) bool {
		return listing.MatchesSearch(v.Name, search) ||
			listing.MatchesSearch(v.CompanyName, search) ||
			listing.MatchesSearch(v.Email, search)
	})

	page := queryInt(req, "page", 1)
	pageSize := queryInt(req, "page_size", listing.DefaultPageSize)
	window, totalPages := listing.Paginate(filtered, page, pageSize)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"vendors":     window,
		"total":       len(filtered),
		"page":        page,
		"total_pages": totalPages,
	})
}

func (rt *Router) getVendor(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	vendor, ok := rt.findVendor(w, req, id)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, vendor)
}

// VendorRequest is the create/update payload for a vendor
type VendorRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	CompanyName string `json:"company_name"`
	TaxNumber   string `json:"tax_number"`
}

func (rt *Router) createVendor(w http.ResponseWriter, req *http.Request) {
	companyID, err := companyScope(req)
	if err != nil {
		respondError(w, http.StatusForbidden, err.Error())
		return
	}

	var payload VendorRequest
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Name == "" {
		respondError(w, http.StatusBadRequest, "Vendor name is required")
		return
	}

	vendor := models.Vendor{
		CompanyID:   companyID,
		Name:        payload.Name,
		Email:       payload.Email,
		Phone:       payload.Phone,
		Address:     payload.Address,
		CompanyName: payload.CompanyName,
		TaxNumber:   payload.TaxNumber,
		IsActive:    true,
	}
	if err := rt.db.Create(&vendor).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create vendor")
		return
	}
	respondJSON(w, http.StatusCreated, vendor)
}

func (rt *Router) updateVendor(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	vendor, ok := rt.findVendor(w, req, id)
	if !ok {
		return
	}

	var payload VendorRequest
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Name == "" {
		respondError(w, http.StatusBadRequest, "Vendor name is required")
		return
	}

	vendor.Name = payload.Name
	vendor.Email = payload.Email
	vendor.Phone = payload.Phone
	vendor.Address = payload.Address
	vendor.CompanyName = payload.CompanyName
	vendor.TaxNumber = payload.TaxNumber

	if err := rt.db.Save(vendor).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update vendor")
		return
	}
	respondJSON(w, http.StatusOK, vendor)
}

func (rt *Router) deleteVendor(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, ok := rt.findVendor(w, req, id); !ok {
		return
	}

	if err := rt.db.Delete(&models.Vendor{}, id).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete vendor")
		return
	}
	respondMessage(w, http.StatusOK, "Vendor deleted successfully")
}

// ledgerLine is one statement row with its running balance
type ledgerLine struct {
	models.LedgerEntry
	Balance float64 `json:"balance"`
}

// vendorLedger returns the vendor's statement in entry order with a
// running balance. A positive balance is the amount still owed.
func (rt *Router) vendorLedger(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	vendor, ok := rt.findVendor(w, req, id)
	if !ok {
		return
	}

	var entries []models.LedgerEntry
	if err := rt.db.Where("vendor_id = ?", vendor.ID).
		Order("entry_date, id").
		Find(&entries).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch ledger")
		return
	}

	debits := make([]float64, len(entries))
	credits := make([]float64, len(entries))
	for i, e := range entries {
		debits[i] = e.Debit
		credits[i] = e.Credit
	}
	balances := money.RunningBalance(debits, credits)

	lines := make([]ledgerLine, len(entries))
	var outstanding float64
	for i, e := range entries {
		lines[i] = ledgerLine{LedgerEntry: e, Balance: balances[i]}
	}
	if len(balances) > 0 {
		outstanding = balances[len(balances)-1]
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"vendor":      vendor,
		"entries":     lines,
		"outstanding": outstanding,
	})
}

func (rt *Router) findVendor(w http.ResponseWriter, req *http.Request, id uint) (*models.Vendor, bool) {
	var vendor models.Vendor
	if err := rt.db.First(&vendor, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Vendor not found")
		return nil, false
	}
	if vendor.CompanyID != companyFromContext(req) {
		respondError(w, http.StatusForbidden, "Vendor belongs to another company")
		return nil, false
	}
	return &vendor, true
}
