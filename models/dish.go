package models

import "time"

// Dish is a menu item. A dish is visible on the public menu only when it is
// available and its category is active.
type Dish struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	CategoryID  uint         `gorm:"not null" json:"category_id"`
	Category    MenuCategory `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category,omitempty"`
	Name        string       `gorm:"type:varchar(150);not null" json:"name"`
	Description string       `gorm:"type:text" json:"description,omitempty"`
	Price       float64      `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageURL    string       `gorm:"type:varchar(500)" json:"image_url,omitempty"`
	Available   bool         `gorm:"not null;default:true" json:"available"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
