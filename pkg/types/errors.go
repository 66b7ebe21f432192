package types

import "errors"

var (
	// Store errors
	ErrBusy        = errors.New("resource is held by another owner")
	ErrNotOwner    = errors.New("caller is not the record owner")
	ErrExpired     = errors.New("record has expired")
	ErrInvalidTTL  = errors.New("invalid record TTL")
	ErrUnavailable = errors.New("store is temporarily unavailable")

	// Manager errors
	ErrTimeout = errors.New("acquire exceeded max wait")
	ErrLost    = errors.New("ownership was lost")
)
