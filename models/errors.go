package models

import "errors"

var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrAccountNotFound   = errors.New("account not found")
	ErrAccountClosed     = errors.New("account is closed")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrTermLocked        = errors.New("cannot withdraw before maturity date")
	ErrInvalidFrequency  = errors.New("invalid frequency")
	ErrSameAccount       = errors.New("source and destination accounts are the same")
	ErrOrderNotFound     = errors.New("standing order not found")
	ErrOrderNotActive    = errors.New("standing order is not active")
)
