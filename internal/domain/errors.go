package domain

import "errors"

// Sentinel errors for the hire workflow. The HTTP layer maps these to
// status codes with errors.Is; services wrap them with context.
var (
	ErrNoItems              = errors.New("hire must contain at least one item")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
	ErrInvalidDateRange     = errors.New("end date must be after start date")
	ErrMissingPhone         = errors.New("phone number is required for mpesa payment")
	ErrCarNotFound          = errors.New("car not found")
	ErrHireNotFound         = errors.New("hire not found")
	ErrCartNotFound         = errors.New("cart not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrHireStateConflict    = errors.New("hire is not in a state that allows this operation")
	ErrEmailTaken           = errors.New("email is already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
)
