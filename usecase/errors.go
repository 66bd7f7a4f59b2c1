package usecase

import "errors"

var (
	ErrProfileNotFound      = errors.New("seller profile not found")
	ErrProfileExists        = errors.New("seller profile already exists")
	ErrForbidden            = errors.New("forbidden")
	ErrSellerNotApproved    = errors.New("seller is not approved")
	ErrItemNotFound         = errors.New("item not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
)
