package handlers

import (
	"time"

	"food_ordering/internal/models"

	"github.com/shopspring/decimal"
)

type profileView struct {
	OtherName   string `json:"other_name"`
	DateOfBirth string `json:"date_of_birth"`
	PhoneNumber string `json:"phone_number"`
	Age         int    `json:"age"`
}

type userView struct {
	ID         uint         `json:"id"`
	Email      string       `json:"email"`
	FirstName  string       `json:"first_name"`
	LastName   string       `json:"last_name"`
	Role       string       `json:"role"`
	IsAdmin    bool         `json:"is_admin"`
	DateJoined time.Time    `json:"date_joined"`
	Profile    *profileView `json:"user_profile"`
}

func newProfileView(p *models.UserProfile, now time.Time) *profileView {
	if p == nil {
		return nil
	}
	return &profileView{
		OtherName:   p.OtherName,
		DateOfBirth: p.DateOfBirth.Format("2006-01-02"),
		PhoneNumber: p.PhoneNumber,
		Age:         p.Age(now),
	}
}

func newUserView(u *models.User, now time.Time) userView {
	return userView{
		ID:         u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Role:       u.Role,
		IsAdmin:    u.IsAdmin,
		DateJoined: u.CreatedAt,
		Profile:    newProfileView(u.Profile, now),
	}
}

type cartView struct {
	ID         uint              `json:"id"`
	TotalPrice decimal.Decimal   `json:"total_price"`
	Items      []models.CartItem `json:"cart_items"`
	AddedAt    time.Time         `json:"added_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

func newCartView(cart *models.Cart) cartView {
	items := cart.Items
	if items == nil {
		items = []models.CartItem{}
	}
	return cartView{
		ID:         cart.ID,
		TotalPrice: cart.TotalPrice(),
		Items:      items,
		AddedAt:    cart.CreatedAt,
		UpdatedAt:  cart.UpdatedAt,
	}
}
