package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict on insert.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidPromoCode indicates the code is unknown, inactive or expired.
	ErrInvalidPromoCode = errors.New("invalid promo code")
	// ErrZoneNotFound indicates the delivery zone is not in reference data.
	ErrZoneNotFound = errors.New("delivery zone not found")
	// ErrOrderFinalized rejects a status change conflicting with an
	// already-terminal order.
	ErrOrderFinalized = errors.New("order already in terminal status")
)

// ValidationError rejects malformed checkout input before any lookup.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// BelowMinimumError rejects an admission whose net total is under the
// delivery date's minimum.
type BelowMinimumError struct {
	MinimumCents int64
	NetCents     int64
}

func (e *BelowMinimumError) Error() string {
	return fmt.Sprintf("order total %d below minimum %d", e.NetCents, e.MinimumCents)
}

// Shortfall is the amount missing to reach the minimum.
func (e *BelowMinimumError) Shortfall() int64 {
	return e.MinimumCents - e.NetCents
}
