package domain

// CartLine is a single submitted cart position. Prices are minor units
// (cents). A discount is active only when both DiscountPercent and
// DiscountPriceCents are positive; otherwise the base price governs.
type CartLine struct {
	ProductID          string `json:"productId"`
	VariantID          string `json:"variantId,omitempty"`
	Quantity           int    `json:"quantity"`
	UnitBasePriceCents int64  `json:"unitBasePriceCents"`
	DiscountPercent    int    `json:"discountPercent,omitempty"`
	DiscountPriceCents int64  `json:"discountPriceCents,omitempty"`
}

// PricedLine is a cart line after discount resolution. Derived, never
// stored independently of its order.
type PricedLine struct {
	CartLine
	EffectiveUnitPriceCents int64 `json:"effectiveUnitPriceCents"`
	TotalCents              int64 `json:"totalCents"`
}
