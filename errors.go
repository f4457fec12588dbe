package finance

import "errors"

// Validation errors returned by the Store mutations. They are wrapped with
// the offending value, test them with errors.Is.
var (
	ErrInvalidAmount   = errors.New("amount must be strictly positive")
	ErrInvalidType     = errors.New("invalid type")
	ErrInvalidCurrency = errors.New("invalid currency")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidCategory = errors.New("invalid category name")
	ErrUnknownCategory = errors.New("unknown category")
	ErrInvalidTheme    = errors.New("invalid theme")
)

// ErrInvalidImport is returned by Store.Import when the payload cannot replace
// the current document. The current document is left untouched.
var ErrInvalidImport = errors.New("invalid import")
