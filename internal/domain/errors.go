package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound = errors.New("account not found")
	ErrPhoneTaken      = errors.New("phone already registered")

	// Transfer errors
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrSenderNotFound      = errors.New("sender not found")
	ErrReceiverNotFound    = errors.New("receiver not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrSameAccount         = errors.New("cannot transfer to own account")

	// Store errors, both safe to retry: the failed attempt committed nothing.
	ErrConcurrencyConflict = errors.New("concurrent update conflict")
	ErrStoreTimeout        = errors.New("store operation timed out")

	// Auth errors
	ErrInvalidOTP         = errors.New("invalid otp")
	ErrInvalidCredentials = errors.New("invalid phone or pin")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrUnauthorized       = errors.New("unauthorized")
)
