package models

import "time"

// Table is a physical table in the dining room. Tables are never deleted,
// only deactivated, so historical orders keep a valid reference.
type Table struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TableNumber string    `gorm:"type:varchar(50);unique;not null" json:"table_number"`
	Capacity    int       `gorm:"not null;default:4" json:"capacity"`
	Location    string    `gorm:"type:varchar(100)" json:"location,omitempty"`
	Active      bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
