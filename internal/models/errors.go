package models

import (
	"errors"
)

var (
	ErrInvalidCredentials     = errors.New("models: invalid credentials")
	ErrDuplicateEmail         = errors.New("models: duplicate email")
	ErrUserNotFound           = errors.New("models: user not found")
	ErrProductNotFound        = errors.New("product not found")
	ErrCategoryNotFound       = errors.New("category not found")
	ErrSubcategoryNotFound    = errors.New("subcategory not found")
	ErrInvoiceNotFound        = errors.New("invoice not found")
	ErrPaymentInvoiceNotFound = errors.New("payment invoice not found")
	ErrOAuthProfileNotFound   = errors.New("oauth profile not found")
)

// Token verification failures map to 401/403 in the handlers.
var (
	ErrMissingAuth    = errors.New("missing authorization header")
	ErrMalformedAuth  = errors.New("invalid authorization format")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("invalid token")
	ErrTokenUsed      = errors.New("token already used")
)

var (
	ErrInvalidSignature  = errors.New("invalid signature")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidUUID       = errors.New("invalid UUID format")
)
