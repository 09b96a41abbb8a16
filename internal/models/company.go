package models

import (
	"time"

	"gorm.io/gorm"
)

// Company is the tenant boundary. Every list/detail query is scoped by
// company id resolved from the authenticated user's session.
type Company struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Country  string `json:"country"`
	TaxID    string `json:"tax_id"`
	Currency string `gorm:"default:'USD'" json:"currency"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for Company model
func (Company) TableName() string {
	return "companies"
}
