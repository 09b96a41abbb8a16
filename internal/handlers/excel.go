package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dipanshu-patidar/accounting-arabic-api/internal/excel"
	"github.com/dipanshu-patidar/accounting-arabic-api/internal/middleware"
	"github.com/dipanshu-patidar/accounting-arabic-api/internal/models"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// exportProducts streams the company's products as an .xlsx sheet
func (rt *Router) exportProducts(w http.ResponseWriter, req *http.Request) {
	companyID, err := companyScope(req)
	if err != nil {
		respondError(w, http.StatusForbidden, err.Error())
		return
	}

	var products []models.Product
	if err := rt.db.Preload("Stocks").
		Where("company_id = ?", companyID).
		Order("name").
		Find(&products).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	rows := make([]excel.ProductRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, excel.ProductRow{
			Name:        p.Name,
			SKU:         p.SKU,
			Category:    p.Category,
			Unit:        p.Unit,
			SalePrice:   p.SalePrice,
			CostPrice:   p.CostPrice,
			TaxPercent:  p.TaxPercent,
			Quantity:    p.TotalQuantity(),
			Description: p.Description,
		})
	}

	data, err := excel.WriteProducts(rows)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to build workbook")
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", "attachment; filename=products.xlsx")
	w.Write(data)
}

// importProducts ingests an .xlsx upload. Rows are matched by SKU: a known
// SKU updates the product, an unknown one creates it. Quantities land in the
// warehouse given by warehouse_id and are journaled as import movements.
func (rt *Router) importProducts(w http.ResponseWriter, req *http.Request) {
	companyID, err := companyScope(req)
	if err != nil {
		respondError(w, http.StatusForbidden, err.Error())
		return
	}

	warehouseID := uint(queryInt(req, "warehouse_id", 0))
	if warehouseID != 0 {
		var warehouse models.Warehouse
		if err := rt.db.Where("id = ? AND company_id = ?", warehouseID, companyID).
			First(&warehouse).Error; err != nil {
			respondError(w, http.StatusBadRequest, "Unknown warehouse")
			return
		}
	}

	file, _, err := req.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing file upload")
		return
	}
	defer file.Close()

	rows, err := excel.ParseProducts(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(rows) == 0 {
		respondError(w, http.StatusBadRequest, "Workbook has no data rows")
		return
	}

	userID := middleware.UserID(req.Context())
	created, updated := 0, 0

	err = rt.db.Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			var product models.Product
			found := false
			if row.SKU != "" {
				err := tx.Where("company_id = ? AND sku = ?", companyID, row.SKU).
					First(&product).Error
				if err == nil {
					found = true
				} else if err != gorm.ErrRecordNotFound {
					return err
				}
			}

			product.CompanyID = companyID
			product.Name = row.Name
			product.SKU = row.SKU
			product.Category = row.Category
			product.Unit = row.Unit
			product.SalePrice = row.SalePrice
			product.CostPrice = row.CostPrice
			product.TaxPercent = row.TaxPercent
			product.Description = row.Description
			product.IsActive = true

			if err := tx.Save(&product).Error; err != nil {
				return err
			}
			if found {
				updated++
			} else {
				created++
			}

			if warehouseID == 0 || row.Quantity <= 0 {
				continue
			}

			var stock models.ProductStock
			err := tx.Where("product_id = ? AND warehouse_id = ?", product.ID, warehouseID).
				First(&stock).Error
			if err == gorm.ErrRecordNotFound {
				stock = models.ProductStock{ProductID: product.ID, WarehouseID: warehouseID}
			} else if err != nil {
				return err
			}
			stock.Quantity += row.Quantity
			if err := tx.Save(&stock).Error; err != nil {
				return err
			}

			movement := models.StockMovement{
				ID:          uuid.NewString(),
				CompanyID:   companyID,
				ProductID:   product.ID,
				WarehouseID: warehouseID,
				Type:        models.MovementImport,
				QtyDelta:    row.Quantity,
				Notes:       "Excel import",
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
		respondError(w, http.StatusInternalServerError, "Import failed, no rows were applied")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"created": created,
		"updated": updated,
		"total":   len(rows),
	})
}

// exportWarehouses streams the company's warehouses as an .xlsx sheet
func (rt *Router) exportWarehouses(w http.ResponseWriter, req *http.Request) {
	companyID, err := companyScope(req)
	if err != nil {
		respondError(w, http.StatusForbidden, err.Error())
		return
	}

	var warehouses []models.Warehouse
	if err := rt.db.Where("company_id = ?", companyID).Order("name").
		Find(&warehouses).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch warehouses")
		return
	}

	rows := make([]excel.WarehouseRow, 0, len(warehouses))
	for _, wh := range warehouses {
		rows = append(rows, excel.WarehouseRow{
			Name:    wh.Name,
			Code:    wh.Code,
			Address: wh.Address,
			City:    wh.City,
			Phone:   wh.Phone,
		})
	}

	data, err := excel.WriteWarehouses(rows)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to build workbook")
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", "attachment; filename=warehouses.xlsx")
	w.Write(data)
}

// importWarehouses ingests an .xlsx upload, matching rows by code
func (rt *Router) importWarehouses(w http.ResponseWriter, req *http.Request) {
	companyID, err := companyScope(req)
	if err != nil {
		respondError(w, http.StatusForbidden, err.Error())
		return
	}

	file, _, err := req.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing file upload")
		return
	}
	defer file.Close()

	rows, err := excel.ParseWarehouses(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(rows) == 0 {
		respondError(w, http.StatusBadRequest, "Workbook has no data rows")
		return
	}

	created, updated := 0, 0
	err = rt.db.Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			var warehouse models.Warehouse
			found := false
			if row.Code != "" {
				err := tx.Where("company_id = ? AND code = ?", companyID, row.Code).
					First(&warehouse).Error
				if err == nil {
					found = true
				} else if err != gorm.ErrRecordNotFound {
					return err
				}
			}

			warehouse.CompanyID = companyID
			warehouse.Name = row.Name
			warehouse.Code = row.Code
			warehouse.Address = row.Address
			warehouse.City = row.City
			warehouse.Phone = row.Phone
			warehouse.IsActive = true

			if err := tx.Save(&warehouse).Error; err != nil {
				return err
			}
			if found {
				updated++
			} else {
				created++
			}
		}
		return nil
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Import failed, no rows were applied")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"created": created,
		"updated": updated,
		"total":   len(rows),
	})
}
