package domain

import "time"

// DeliveryZone is read-only reference data administered out of band.
type DeliveryZone struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	FeeCents   int64     `json:"feeCents"`
	ETAMinutes int       `json:"etaMinutes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// MinimumOrderRule sets the smallest chargeable net total for a
// calendar date. Absence of a rule means no minimum applies.
type MinimumOrderRule struct {
	Date         string    `json:"date"`
	MinimumCents int64     `json:"minimumCents"`
	CreatedAt    time.Time `json:"createdAt"`
}
