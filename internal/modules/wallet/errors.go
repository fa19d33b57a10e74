package wallet

import "errors"

var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient balance")
	ErrUserNotFound      = errors.New("user not found")
	ErrWalletInactive    = errors.New("wallet is deactivated")
)
