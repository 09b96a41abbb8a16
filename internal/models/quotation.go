package models

import (
	"time"

	"gorm.io/gorm"
)

// QuotationStatus defines possible sales quotation statuses
type QuotationStatus string

const (
	QuotationStatusDraft    QuotationStatus = "draft"
	QuotationStatusSent     QuotationStatus = "sent"
	QuotationStatusAccepted QuotationStatus = "accepted"
	QuotationStatusRejected QuotationStatus = "rejected"
)

// Quotation is a sales quotation issued to a customer
type Quotation struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	CompanyID       uint            `gorm:"index;not null" json:"company_id"`
	QuotationNumber string          `gorm:"uniqueIndex;not null" json:"quotation_number"`
	CustomerName    string          `gorm:"not null" json:"customer_name"`
	CustomerEmail   string          `json:"customer_email"`
	QuotationDate   time.Time       `json:"quotation_date"`
	ValidUntil      *time.Time      `json:"valid_until,omitempty"`
	Status          QuotationStatus `gorm:"size:20;default:draft" json:"status"`
	Subtotal        float64         `json:"subtotal"`
	TaxAmount       float64         `json:"tax_amount"`
	DiscountAmount  float64         `json:"discount_amount"`
	Total           float64         `json:"total"`
	Notes           string          `gorm:"type:text" json:"notes"`
	CreatedBy       string          `gorm:"type:uuid" json:"created_by"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Items []QuotationItem `gorm:"foreignKey:QuotationID" json:"items,omitempty"`
}

// TableName specifies the table name for Quotation model
func (Quotation) TableName() string {
	return "quotations"
}

// BeforeCreate generates the quotation number before creating
func (q *Quotation) BeforeCreate(tx *gorm.DB) error {
	if q.QuotationNumber == "" {
		q.QuotationNumber = generateDocNumber("QT")
	}
	return nil
}

// QuotationItem is one quoted line. Rates are tax exclusive; tax and
// discount are applied on top per the document total formula.
type QuotationItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	QuotationID uint    `gorm:"index;not null" json:"quotation_id"`
	ItemName    string  `gorm:"not null" json:"item_name"`
	Qty         float64 `gorm:"not null" json:"qty"`
	Rate        float64 `gorm:"not null" json:"rate"`
	TaxPercent  float64 `json:"tax_percent"`
	Discount    float64 `json:"discount"`
	Amount      float64 `json:"amount"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for QuotationItem model
func (QuotationItem) TableName() string {
	return "quotation_items"
}
