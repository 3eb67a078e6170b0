package domain

import "errors"

var (
	// ErrItemNotFound is returned when an item id does not exist
	ErrItemNotFound = errors.New("inventory item not found")

	// ErrTransactionNotFound is returned when a transaction id does not exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidQuantity is returned for a non-positive transaction quantity
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrInvalidTransactionType is returned for anything other than IN or OUT
	ErrInvalidTransactionType = errors.New("transaction type must be IN or OUT")

	// ErrInvalidDate is returned when a date is not YYYY-MM-DD
	ErrInvalidDate = errors.New("date must be YYYY-MM-DD")

	// ErrInvalidInput is returned when a form field fails validation
	ErrInvalidInput = errors.New("invalid input")

	// ErrSessionNotFound is returned when an import session expired or never existed
	ErrSessionNotFound = errors.New("import session not found")
)
