package models

import "time"

// Order statuses. PAID and CANCELLED are terminal.
const (
	OrderStatusPending       = "PENDING"
	OrderStatusInPreparation = "IN_PREPARATION"
	OrderStatusReady         = "READY"
	OrderStatusDelivered     = "DELIVERED"
	OrderStatusPaid          = "PAID"
	OrderStatusCancelled     = "CANCELLED"
)

// Payment methods, recorded when the order is settled.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
	PaymentOther    = "other"
)

// Origin channels for an order.
const (
	ChannelSelfService = "self_service"
	ChannelFloorStaff  = "floor_staff"
	ChannelPOS         = "pos"
)

// Order is a comanda: the customer's placed request for menu items, tracked
// through the status lifecycle to payment. The order owns its items; line
// prices are snapshots taken at creation time and never change afterwards.
type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	Number        string      `gorm:"type:varchar(20);unique;not null" json:"number"`
	TableID       *uint       `gorm:"index" json:"table_id,omitempty"`
	Table         *Table      `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"table,omitempty"`
	CustomerID    uint        `gorm:"not null;index" json:"customer_id"`
	Customer      Customer    `gorm:"foreignKey:CustomerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"customer"`
	StaffID       *uint       `gorm:"index" json:"staff_id,omitempty"`
	Staff         *User       `gorm:"foreignKey:StaffID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"staff,omitempty"`
	Status        string      `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	PaymentMethod *string     `gorm:"type:varchar(20)" json:"payment_method,omitempty"`
	Channel       string      `gorm:"type:varchar(20);not null" json:"channel"`
	Subtotal      float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"subtotal"`
	Tax           float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"tax"`
	Total         float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"total"`
	Notes         string      `gorm:"type:text" json:"notes,omitempty"`
	Items         []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusInPreparation, OrderStatusReady,
		OrderStatusDelivered, OrderStatusPaid, OrderStatusCancelled:
		return true
	}
	return false
}

// ValidPaymentMethod reports whether m is a known payment method.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentOther:
		return true
	}
	return false
}

// ValidChannel reports whether ch is a known origin channel.
func ValidChannel(ch string) bool {
	switch ch {
	case ChannelSelfService, ChannelFloorStaff, ChannelPOS:
		return true
	}
	return false
}

// OpenStatuses are the statuses under which an order still occupies its
// table (not yet paid or cancelled).
func OpenStatuses() []string {
	return []string{
		OrderStatusPending,
		OrderStatusInPreparation,
		OrderStatusReady,
		OrderStatusDelivered,
	}
}

// Terminal reports whether s admits no further status transitions.
func Terminal(s string) bool {
	return s == OrderStatusPaid || s == OrderStatusCancelled
}
