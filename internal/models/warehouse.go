package models

import (
	"time"

	"gorm.io/gorm"
)

// Warehouse represents a storage location owned by a company
type Warehouse struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	CompanyID uint   `gorm:"index;not null" json:"company_id"`
	Name      string `gorm:"not null" json:"name"`
	Code      string `gorm:"index" json:"code"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Phone     string `json:"phone"`
	IsActive  bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Company *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}

// TableName specifies the table name for Warehouse model
func (Warehouse) TableName() string {
	return "warehouses"
}
