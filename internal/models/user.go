package models

import "time"

// User represents an account that can act as customer, merchant or both.
// IsCustomer and IsMerchant are independent flags, not an exclusive role.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	Username     string    `json:"username" gorm:"uniqueIndex;type:varchar(100)"`
	Password     string    `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialized
	FirstName    string    `json:"first_name" gorm:"type:varchar(100)"`
	LastName     string    `json:"last_name" gorm:"type:varchar(100)"`
	PhoneNumber  string    `json:"phone_number" gorm:"type:varchar(32)"`
	Address      string    `json:"address" gorm:"type:text"`
	ProfileImage string    `json:"profile_image" gorm:"type:varchar(255)"`
	IsCustomer   bool      `json:"is_customer"`
	IsMerchant   bool      `json:"is_merchant"`
	IsStaff      bool      `json:"is_staff"`
	IsSuperuser  bool      `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"date_joined"`
	UpdatedAt    time.Time `json:"-"`
}

// FullName joins first and last name for display purposes.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
