package models

import "time"

// Customer holds the billing particulars attached to every comanda.
// IDDocument (cedula) is the natural key; repeated orders from the same
// document overwrite the mutable fields with the latest values.
type Customer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	IDDocument string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"id_document"`
	FirstName  string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName   string    `gorm:"type:varchar(100);not null" json:"last_name"`
	Address    string    `gorm:"type:varchar(255)" json:"address,omitempty"`
	Phone      string    `gorm:"type:varchar(20);not null" json:"phone"`
	Email      string    `gorm:"type:varchar(255)" json:"email,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FullName -> "FirstName LastName" for responses and billing rows.
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
