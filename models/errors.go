package models

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrTokenNotFound    = errors.New("token not found")
	ErrWalletTaken      = errors.New("wallet address already registered")
	ErrUsernameTaken    = errors.New("username already taken")
	ErrNegativeAward    = errors.New("point award must not be negative")
	ErrInvalidType      = errors.New("invalid analysis type")
	ErrInvalidWallet    = errors.New("invalid wallet address")
	ErrProviderDisabled = errors.New("provider not configured")
)
