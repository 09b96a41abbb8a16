package handlers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/dipanshu-patidar/accounting-arabic-api/internal/listing"
	"github.com/dipanshu-patidar/accounting-arabic-api/internal/models"
	"github.com/dipanshu-patidar/accounting-arabic-api/internal/printer"
)

// listProducts returns the company's products, filtered and paginated.
// Filters: search (name/SKU contains), category, warehouse, qty bucket.
func (rt *Router) listProducts(w http.ResponseWriter, req *http.Request) {
	companyID, err := companyScope(req)
	if err != nil {
		respondError(w, http.StatusForbidden, err.Error())
		return
	}

	var products []models.Product
	if err := rt.db.Preload("Stocks").Preload("Stocks.Warehouse").
		Where("company_id = ?", companyID).
		Order("name").
		Find(&products).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	q := req.URL.Query()
	search := q.Get("search")
	category := q.Get("category")
	warehouseID := q.Get("warehouse_id")
	qtyBucket := q.Get("qty_range")

	filtered := listing.Filter(products, func(p models.Product) bool {
		if !listing.MatchesSearch(p.Name, search) && !listing.MatchesSearch(p.SKU, search) {
			return false
		}
		if !listing.MatchesFilter(p.Category, category) {
			return false
		}
		if warehouseID != "" {
			found := false
			for _, s := range p.Stocks {
				if strconv.FormatUint(uint64(s.WarehouseID), 10) == warehouseID {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return listing.QuantityInBucket(p.TotalQuantity(), qtyBucket)
	})

	page := queryInt(req, "page", 1)
	pageSize := queryInt(req, "page_size", listing.DefaultPageSize)
	window, totalPages := listing.Paginate(filtered, page, pageSize)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"products":    window,
		"total":       len(filtered),
		"page":        page,
		"total_pages": totalPages,
	})
}

// getProduct returns a single product with its stock rows
func (rt *Router) getProduct(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	product, ok := rt.findProduct(w, req, id)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// ProductRequest is the create/update payload for a product. Warehouses
// lists initial stock per warehouse.
type ProductRequest struct {
	SKU         string  `json:"sku"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Unit        string  `json:"unit"`
	SalePrice   float64 `json:"sale_price"`
	CostPrice   float64 `json:"cost_price"`
	TaxPercent  float64 `json:"tax_percent"`
	Warehouses  []struct {
		WarehouseID uint    `json:"warehouse_id"`
		Quantity    float64 `json:"quantity"`
	} `json:"warehouses"`
}

// createProduct creates a product with its initial per-warehouse stock
func (rt *Router) createProduct(w http.ResponseWriter, req *http.Request) {
	companyID, err := companyScope(req)
	if err != nil {
		respondError(w, http.StatusForbidden, err.Error())
		return
	}

	var payload ProductRequest
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Name == "" {
		respondError(w, http.StatusBadRequest, "Product name is required")
		return
	}

	product := models.Product{
		CompanyID:   companyID,
		SKU:         payload.SKU,
		Name:        payload.Name,
		Description: payload.Description,
		Category:    payload.Category,
		Unit:        payload.Unit,
		SalePrice:   payload.SalePrice,
		CostPrice:   payload.CostPrice,
		TaxPercent:  payload.TaxPercent,
		IsActive:    true,
	}
	for _, whs := range payload.Warehouses {
		product.Stocks = append(product.Stocks, models.ProductStock{
			WarehouseID: whs.WarehouseID,
			Quantity:    whs.Quantity,
		})
	}

	if err := rt.db.Create(&product).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

// updateProduct updates product master data (not stock quantities)
func (rt *Router) updateProduct(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	product, ok := rt.findProduct(w, req, id)
	if !ok {
		return
	}

	var payload ProductRequest
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Name == "" {
		respondError(w, http.StatusBadRequest, "Product name is required")
		return
	}

	product.SKU = payload.SKU
	product.Name = payload.Name
	product.Description = payload.Description
	product.Category = payload.Category
	product.Unit = payload.Unit
	product.SalePrice = payload.SalePrice
	product.CostPrice = payload.CostPrice
	product.TaxPercent = payload.TaxPercent

	if err := rt.db.Save(product).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// deleteProduct soft-deletes a product
func (rt *Router) deleteProduct(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, ok := rt.findProduct(w, req, id); !ok {
		return
	}

	if err := rt.db.Delete(&models.Product{}, id).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	respondMessage(w, http.StatusOK, "Product deleted successfully")
}

// ImageUploadRequest carries a base64-encoded product image
type ImageUploadRequest struct {
	Image string `json:"image"` // optionally a data: URL
}

// uploadProductImage decodes a base64 image and stores it on disk
func (rt *Router) uploadProductImage(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	product, ok := rt.findProduct(w, req, id)
	if !ok {
		return
	}

	var payload ImageUploadRequest
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	raw := payload.Image
	ext := ".png"
	// Strip a data URL prefix like data:image/jpeg;base64,
	if strings.HasPrefix(raw, "data:") {
		comma := strings.Index(raw, ",")
		if comma < 0 {
			respondError(w, http.StatusBadRequest, "Malformed data URL")
			return
		}
		if strings.Contains(raw[:comma], "image/jpeg") {
			ext = ".jpg"
		}
		raw = raw[comma+1:]
	}

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid base64 image data")
		return
	}

	if err := os.MkdirAll(rt.cfg.UploadDir, 0o755); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to prepare upload directory")
		return
	}

	filename := fmt.Sprintf("product_%d_%s%s", product.ID, uuid.New().String(), ext)
	path := filepath.Join(rt.cfg.UploadDir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to store image")
		return
	}

	product.ImagePath = path
	if err := rt.db.Save(product).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"image_path": path})
}

// productLabel streams a PDF sheet of QR labels for the product
func (rt *Router) productLabel(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	product, ok := rt.findProduct(w, req, id)
	if !ok {
		return
	}

	cfg := printer.DefaultLabelConfig
	if count := queryInt(req, "count", 0); count > 0 {
		cfg.Count = count
	}

	pdf, err := printer.ProductLabelsPDF(product, cfg)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate labels")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=labels_%s.pdf", product.SKU))
	w.Write(pdf)
}

// findProduct loads a product and verifies it belongs to the caller's
// company. On failure it writes the error response and returns false.
func (rt *Router) findProduct(w http.ResponseWriter, req *http.Request, id uint) (*models.Product, bool) {
	var product models.Product
	if err := rt.db.Preload("Stocks").First(&product, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Product not found")
		return nil, false
	}
	if product.CompanyID != companyFromContext(req) {
		respondError(w, http.StatusForbidden, "Product belongs to another company")
		return nil, false
	}
	return &product, true
}
