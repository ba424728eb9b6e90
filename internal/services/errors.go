package services

import "errors"

// Domain failures returned by the services. Handlers map them to HTTP statuses.
var (
	ErrNoSuchAccount     = errors.New("account does not exist")
	ErrBadCredentials    = errors.New("invalid email or password")
	ErrDuplicateAccount  = errors.New("account already exists with this email")
	ErrPasswordTooLong   = errors.New("password must be at most 72 bytes")
	ErrProductNotFound   = errors.New("product not found")
	ErrInvalidQuantity   = errors.New("quantity must be greater than 0")
	ErrEmptyOrder        = errors.New("cart items are required")
	ErrInvalidCardNumber = errors.New("card number must have at least 4 characters")
)
