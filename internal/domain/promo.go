package domain

import "time"

// PromoCode is an admin-defined percentage-off code.
type PromoCode struct {
	Code            string     `json:"code"`
	DiscountPercent int        `json:"discountPercent"`
	Active          bool       `json:"active"`
	ExpiresAt       *time.Time `json:"expiresAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// PromoState is the applied-code state carried in the customer's
// session token. At most one code per session.
type PromoState struct {
	Code            string `json:"code"`
	DiscountPercent int    `json:"discountPercent"`
}
