package models

import "time"

// Staff roles
const (
	RoleAdmin    = "admin"
	RoleMesonera = "mesonera"
	RolePOS      = "pos"
	RoleKitchen  = "kitchen"
)

type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"type:varchar(255);not null" json:"name"`
	Email     string `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password  string `gorm:"type:varchar(255);not null" json:"-"`
	Role      string `gorm:"type:varchar(50);not null" json:"role"`
	Active    bool   `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidRole reports whether role is one of the known staff roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleMesonera, RolePOS, RoleKitchen:
		return true
	}
	return false
}
