package models

import (
	"time"

	"gorm.io/gorm"
)

// Product represents an inventory item owned by a company
type Product struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	CompanyID   uint    `gorm:"index;not null" json:"company_id"`
	SKU         string  `gorm:"index" json:"sku"`
	Name        string  `gorm:"not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Category    string  `gorm:"index" json:"category"`
	Unit        string  `gorm:"default:'pcs'" json:"unit"`
	SalePrice   float64 `json:"sale_price"`
	CostPrice   float64 `json:"cost_price"`
	TaxPercent  float64 `json:"tax_percent"`
	ImagePath   string  `json:"image_path"`
	IsActive    bool    `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Stocks []ProductStock `gorm:"foreignKey:ProductID" json:"stocks,omitempty"`
}

// TableName specifies the table name for Product model
func (Product) TableName() string {
	return "products"
}

// TotalQuantity sums the product's stock across all warehouses
func (p *Product) TotalQuantity() float64 {
	var total float64
	for _, s := range p.Stocks {
		total += s.Quantity
	}
	return total
}

// ProductStock is the quantity of a product held at one warehouse.
// POS cart quantities are validated against these rows.
type ProductStock struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	ProductID   uint    `gorm:"not null;uniqueIndex:idx_stock_product_warehouse,priority:1" json:"product_id"`
	WarehouseID uint    `gorm:"not null;uniqueIndex:idx_stock_product_warehouse,priority:2" json:"warehouse_id"`
	Quantity    float64 `gorm:"default:0" json:"quantity"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Warehouse *Warehouse `gorm:"foreignKey:WarehouseID" json:"warehouse,omitempty"`
}

// TableName specifies the table name for ProductStock model
func (ProductStock) TableName() string {
	return "product_stocks"
}

// MovementType classifies stock movements
type MovementType string

const (
	MovementPurchaseIn MovementType = "purchase_in" // goods receipt
	MovementSaleOut    MovementType = "sale_out"    // POS invoice
	MovementImport     MovementType = "import"      // Excel bulk import
	MovementAdjust     MovementType = "adjust"      // manual correction
)

// StockMovement is an append-only record of a quantity change. QtyDelta is
// positive for stock-in, negative for stock-out.
type StockMovement struct {
	ID          string       `gorm:"primaryKey;size:36" json:"id"` // uuid
	CompanyID   uint         `gorm:"index;not null" json:"company_id"`
	ProductID   uint         `gorm:"index;not null" json:"product_id"`
	WarehouseID uint         `gorm:"index;not null" json:"warehouse_id"`
	Type        MovementType `gorm:"size:20;not null" json:"type"`
	QtyDelta    float64      `gorm:"not null" json:"qty_delta"`
	DocType     string       `gorm:"size:20" json:"doc_type"` // PO, INV
	DocID       uint         `gorm:"index" json:"doc_id"`
	Notes       string       `json:"notes"`
	CreatedBy   string       `gorm:"type:uuid" json:"created_by"`
	CreatedAt   time.Time    `json:"created_at"`
}

// TableName specifies the table name for StockMovement model
func (StockMovement) TableName() string {
	return "stock_movements"
}
