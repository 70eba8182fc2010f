package models

import "time"

// DefaultAttentionMessage is used when a customer rings without typing
// anything.
const DefaultAttentionMessage = "El cliente solicita atención"

// AttentionRequest is raised by a customer asking for staff assistance and
// acknowledged by floor staff once handled.
type AttentionRequest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TableID   *uint     `gorm:"index" json:"table_id,omitempty"`
	Table     *Table    `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"table,omitempty"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Handled   bool      `gorm:"not null;default:false" json:"handled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
