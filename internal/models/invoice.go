package models

import (
	"time"

	"gorm.io/gorm"
)

// Invoice is a point-of-sale invoice. Totals follow the POS tax-inclusive
// convention: Total is the sum of rate*qty, Subtotal is the net after the
// uniform tax rate is removed from each line.
type Invoice struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	CompanyID     uint    `gorm:"index;not null" json:"company_id"`
	InvoiceNumber string  `gorm:"uniqueIndex;not null" json:"invoice_number"`
	CustomerName  string  `gorm:"not null" json:"customer_name"`
	WarehouseID   uint    `gorm:"index;not null" json:"warehouse_id"`
	TaxPercent    float64 `json:"tax_percent"`
	Subtotal      float64 `json:"subtotal"`
	TaxAmount     float64 `json:"tax_amount"`
	Total         float64 `json:"total"`
	CreatedBy     string  `gorm:"type:uuid" json:"created_by"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Warehouse *Warehouse    `gorm:"foreignKey:WarehouseID" json:"warehouse,omitempty"`
	Items     []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

// TableName specifies the table name for Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// BeforeCreate generates the invoice number before creating
func (inv *Invoice) BeforeCreate(tx *gorm.DB) error {
	if inv.InvoiceNumber == "" {
		inv.InvoiceNumber = generateDocNumber("INV")
	}
	return nil
}

// InvoiceItem is one sold line on a POS invoice. Rate may be overridden
// per line at the register and is tax inclusive.
type InvoiceItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	InvoiceID uint    `gorm:"index;not null" json:"invoice_id"`
	ProductID uint    `gorm:"index;not null" json:"product_id"`
	ItemName  string  `gorm:"not null" json:"item_name"`
	Qty       float64 `gorm:"not null" json:"qty"`
	Rate      float64 `gorm:"not null" json:"rate"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}
