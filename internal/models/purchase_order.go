package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// StepName identifies one of the five fixed workflow stages
type StepName string

const (
	StepQuotation     StepName = "quotation"
	StepPurchaseOrder StepName = "purchase_order"
	StepGoodsReceipt  StepName = "goods_receipt"
	StepBill          StepName = "bill"
	StepPayment       StepName = "payment"
)

// StepOrder is the fixed total order of workflow stages
var StepOrder = []StepName{
	StepQuotation,
	StepPurchaseOrder,
	StepGoodsReceipt,
	StepBill,
	StepPayment,
}

// StepStatus defines possible step statuses
type StepStatus string

const (
	StepStatusPending   StepStatus = "pending"
	StepStatusCompleted StepStatus = "completed"
	StepStatusCancelled StepStatus = "cancelled"
)

// OrderStatus defines possible purchase order statuses
type OrderStatus string

const (
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// PurchaseOrder is the workflow aggregate. It owns denormalized company and
// shipping snapshots, the line items, and exactly five step records.
type PurchaseOrder struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	CompanyID   uint        `gorm:"index;not null" json:"company_id"`
	OrderNumber string      `gorm:"uniqueIndex;not null" json:"order_number"`
	VendorID    *uint       `gorm:"index" json:"vendor_id,omitempty"`
	WarehouseID *uint       `gorm:"index" json:"warehouse_id,omitempty"` // receiving warehouse
	Status      OrderStatus `gorm:"default:in_progress;index" json:"status"`

	// Snapshots captured at creation; not kept in sync with master data
	CompanyInfo     datatypes.JSON `json:"company_info"`
	ShippingDetails datatypes.JSON `json:"shipping_details"`

	TotalAmount float64 `json:"total_amount"`
	Notes       string  `gorm:"type:text" json:"notes"`
	CreatedBy   string  `gorm:"type:uuid" json:"created_by"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Vendor *Vendor     `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	Items  []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Steps  []OrderStep `gorm:"foreignKey:OrderID" json:"steps,omitempty"`
}

// TableName specifies the table name for PurchaseOrder model
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// BeforeCreate generates the order number before creating
func (o *PurchaseOrder) BeforeCreate(tx *gorm.DB) error {
	if o.OrderNumber == "" {
		o.OrderNumber = generateDocNumber("PO")
	}
	return nil
}

// StepByName returns the step record with the given name, or nil
func (o *PurchaseOrder) StepByName(name StepName) *OrderStep {
	for i := range o.Steps {
		if o.Steps[i].Step == name {
			return &o.Steps[i]
		}
	}
	return nil
}

// OrderStep is one of the five stages of a purchase order's lifecycle.
// Steps have no identity outside their aggregate; they are addressed by
// (order id, step name).
type OrderStep struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	OrderID     uint           `gorm:"not null;uniqueIndex:idx_step_order_name,priority:1" json:"order_id"`
	Step        StepName       `gorm:"size:20;not null;uniqueIndex:idx_step_order_name,priority:2" json:"step"`
	Status      StepStatus     `gorm:"size:20;default:pending" json:"status"`
	Data        datatypes.JSON `json:"data"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for OrderStep model
func (OrderStep) TableName() string {
	return "order_steps"
}

// OrderItem is a purchase order line item. It has no lifecycle of its own.
type OrderItem struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	OrderID    uint    `gorm:"index;not null" json:"order_id"`
	ProductID  *uint   `gorm:"index" json:"product_id,omitempty"`
	ItemName   string  `gorm:"not null" json:"item_name"`
	Qty        float64 `gorm:"not null" json:"qty"`
	Rate       float64 `gorm:"not null" json:"rate"`
	TaxPercent float64 `json:"tax_percent"`
	Discount   float64 `json:"discount"`
	Amount     float64 `json:"amount"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
