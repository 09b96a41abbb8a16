package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a user in the system
type User struct {
	ID        string     `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Username  string     `gorm:"unique;not null" json:"username"`
	Password  string     `gorm:"not null" json:"-"`
	Email     string     `gorm:"unique;not null" json:"email"`
	Name      string     `json:"name,omitempty"`
	Role      string     `gorm:"default:'user'" json:"role"`
	CompanyID uint       `gorm:"index;not null" json:"company_id"`
	IsActive  bool       `gorm:"default:true" json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Company     *Company     `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Permissions []Permission `gorm:"foreignKey:UserID" json:"permissions,omitempty"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// IsAdmin returns true if the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}

// Permission grants a user access to one application module.
// One row per (user, module); absence of a row means no access.
type Permission struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	UserID     string `gorm:"type:uuid;not null;uniqueIndex:idx_perm_user_module,priority:1" json:"user_id"`
	ModuleName string `gorm:"not null;uniqueIndex:idx_perm_user_module,priority:2" json:"module_name"`
	CanView    bool   `gorm:"default:false" json:"can_view"`
	CanCreate  bool   `gorm:"default:false" json:"can_create"`
	CanUpdate  bool   `gorm:"default:false" json:"can_update"`
	CanDelete  bool   `gorm:"default:false" json:"can_delete"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Permission model
func (Permission) TableName() string {
	return "permissions"
}

// Allows checks a single action (view, create, update, delete) on the module
func (p *Permission) Allows(action string) bool {
	switch action {
	case "view":
		return p.CanView
	case "create":
		return p.CanCreate
	case "update":
		return p.CanUpdate
	case "delete":
		return p.CanDelete
	}
	return false
}
