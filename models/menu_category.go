package models

import "time"

// MenuCategory groups dishes on the public menu (starters, mains, drinks).
type MenuCategory struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(100);unique;not null" json:"name"`
	Description  string    `gorm:"type:varchar(255)" json:"description,omitempty"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	Active       bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
