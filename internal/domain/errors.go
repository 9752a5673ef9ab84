package domain

import "errors"

var (
	// ErrValidation rejects a command before any mutation happens.
	ErrValidation = errors.New("validation")
	// ErrNotFound covers operations referencing a missing plate/item/user.
	ErrNotFound = errors.New("not found")
	// ErrInsufficientCredit is returned when a debit hits a zero or absent
	// membership balance.
	ErrInsufficientCredit = errors.New("insufficient credit")
	// ErrConflict covers duplicate active sessions and stage moves that the
	// state machine does not allow.
	ErrConflict = errors.New("conflict")
	// ErrOutOfStock rejects a lounge sale that would drive stock negative.
	ErrOutOfStock = errors.New("out of stock")
)
