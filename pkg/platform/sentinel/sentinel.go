package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) and services translate them into domain errors.
//
//   - ErrNotFound: entity does not exist in the store
//   - ErrConflict: a write lost a race or violated a uniqueness rule
//   - ErrInsufficientBalance: a conditional debit matched no row
//   - ErrInvalidState: entity is in the wrong state for the operation
//   - ErrUnavailable: a backing resource is temporarily unavailable
//
// Validation failures use pkg/domain-errors directly.
var (
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidState        = errors.New("invalid state")
	ErrUnavailable         = errors.New("unavailable")
)
