package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("permission denied")
	ErrUnauthorized       = errors.New("authentication credentials were not provided or are invalid")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmptyCart          = errors.New("cart is empty, cannot place order")
	ErrRestaurantExists   = errors.New("you have already created a restaurant")
	ErrAlreadyOwner       = errors.New("user is already an owner")
	ErrEmailTaken         = errors.New("user with this email already exists")
)

// ErrOwnerRequired is returned when a non-owner tries to create a restaurant.
var ErrOwnerRequired = &kindError{kind: ErrForbidden, msg: "only users with owner role can create restaurants"}

// ValidationError reports a rejected input field before any mutation happens.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// kindError carries a caller-facing message while matching one of the
// sentinel errors above through errors.Is.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func notFound(what string) error {
	return &kindError{kind: ErrNotFound, msg: what + " not found"}
}

// lookupError turns a missing row into ErrNotFound and wraps anything else.
func lookupError(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(what)
	}
	return fmt.Errorf("failed to load %s: %w", what, err)
}
