package models

import (
	"time"
)

type User struct {
	ID        uint         `json:"id" gorm:"primaryKey"`
	Email     string       `json:"email" gorm:"uniqueIndex;not null"`
	Password  string       `json:"-" gorm:"not null"`
	FirstName string       `json:"first_name" gorm:"not null"`
	LastName  string       `json:"last_name" gorm:"not null"`
	Role      string       `json:"role" gorm:"default:'none'"` // customer, owner, none
	IsAdmin   bool         `json:"is_admin" gorm:"default:false"`
	IsActive  bool         `json:"is_active" gorm:"default:true"`
	Profile   *UserProfile `json:"user_profile,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time    `json:"date_joined"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleOwner    UserRole = "owner"
	RoleNone     UserRole = "none"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleCustomer, RoleOwner, RoleNone:
		return true
	}
	return false
}

func (u *User) HasRole(role UserRole) bool {
	return u.Role == string(role)
}

type UserProfile struct {
	ID          uint      `json:"-" gorm:"primaryKey"`
	UserID      uint      `json:"-" gorm:"uniqueIndex;not null"`
	OtherName   string    `json:"other_name" gorm:"not null"`
	DateOfBirth time.Time `json:"date_of_birth" gorm:"type:date;not null"`
	PhoneNumber string    `json:"phone_number" gorm:"type:varchar(10);not null"`
}

// Age returns the age in whole years at the given instant.
func (p *UserProfile) Age(now time.Time) int {
	if p.DateOfBirth.IsZero() {
		return 0
	}
	age := now.Year() - p.DateOfBirth.Year()
	if now.Month() < p.DateOfBirth.Month() ||
		(now.Month() == p.DateOfBirth.Month() && now.Day() < p.DateOfBirth.Day()) {
		age--
	}
	return age
}
