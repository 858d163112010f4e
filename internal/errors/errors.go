package errors

import "fmt"

var (
	ErrUserAlreadyExists  = fmt.Errorf("user already registered")
	ErrUserNotFound       = fmt.Errorf("user not found")
	ErrInvalidItemCounts  = fmt.Errorf("invalid item counts")
	ErrInvalidTotal       = fmt.Errorf("invalid order total")
	ErrInvalidRedemption  = fmt.Errorf("invalid redemption amount")
	ErrInsufficientPoints = fmt.Errorf("insufficient points")
	ErrCodeInvalid        = fmt.Errorf("code is invalid or already used")
	ErrCodeExpired        = fmt.Errorf("code has expired")
	ErrGiftNotFound       = fmt.Errorf("gift not found or already written off")
	ErrBaristaNotFound    = fmt.Errorf("barista not found")
)
