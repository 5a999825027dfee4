package domain

import "errors"

// Error kinds returned by the rental and billing services. Callers match them
// with errors.Is; the wrapped message carries the offending identifier.
var (
	ErrNotFound         = errors.New("not found")
	ErrInactive         = errors.New("account is not active")
	ErrNoAvailability   = errors.New("no available inventory")
	ErrAlreadyReturned  = errors.New("film has already been returned")
	ErrConflict         = errors.New("inventory copy was allocated concurrently")
	ErrValidation       = errors.New("validation failed")
	ErrHasActiveRentals = errors.New("customer has active rentals")
	ErrDuplicate        = errors.New("already exists")
)
