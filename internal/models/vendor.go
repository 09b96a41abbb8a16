package models

import (
	"time"

	"gorm.io/gorm"
)

// Vendor is a supplier the company buys from
type Vendor struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	CompanyID   uint   `gorm:"index;not null" json:"company_id"`
	Name        string `gorm:"not null" json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	CompanyName string `json:"company_name"`
	TaxNumber   string `json:"tax_number"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for Vendor model
func (Vendor) TableName() string {
	return "vendors"
}

// LedgerEntry is an append-only vendor ledger line. Credits record amounts
// owed to the vendor (bills), debits record amounts paid. Entries are never
// updated or deleted; corrections are new entries.
type LedgerEntry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CompanyID   uint      `gorm:"index;not null" json:"company_id"`
	VendorID    uint      `gorm:"index;not null" json:"vendor_id"`
	EntryDate   time.Time `gorm:"index;not null" json:"entry_date"`
	Description string    `json:"description"`
	DocType     string    `gorm:"size:20" json:"doc_type"` // PO_BILL, PO_PAYMENT
	DocID       uint      `gorm:"index" json:"doc_id"`
	Debit       float64   `gorm:"default:0" json:"debit"`
	Credit      float64   `gorm:"default:0" json:"credit"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for LedgerEntry model
func (LedgerEntry) TableName() string {
	return "ledger_entries"
}
