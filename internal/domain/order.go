package domain

import "time"

type OrderStatus string

const (
	OrderPending OrderStatus = "pending"
	OrderPaid    OrderStatus = "paid"
	OrderFailed  OrderStatus = "failed"
)

// Terminal reports whether the status can no longer change.
func (s OrderStatus) Terminal() bool {
	return s == OrderPaid || s == OrderFailed
}

// Order is a persisted, admitted checkout. For every order
// TotalCents = SubtotalCents - DiscountCents + DeliveryFeeCents.
type Order struct {
	ID               string       `json:"id"`
	Lines            []PricedLine `json:"lines"`
	PromoCode        string       `json:"promoCode,omitempty"`
	DiscountCents    int64        `json:"discountCents"`
	DeliveryZoneID   string       `json:"deliveryZoneId"`
	DeliveryFeeCents int64        `json:"deliveryFeeCents"`
	DeliveryDate     string       `json:"deliveryDate"`
	SubtotalCents    int64        `json:"subtotalCents"`
	TotalCents       int64        `json:"totalCents"`
	Status           OrderStatus  `json:"status"`
	CreatedAt        time.Time    `json:"createdAt"`
}

// OrderDraft is a fully priced admission result that has not been
// persisted yet.
type OrderDraft struct {
	Lines            []PricedLine
	PromoCode        string
	DiscountCents    int64
	DeliveryZoneID   string
	DeliveryFeeCents int64
	DeliveryDate     string
	SubtotalCents    int64
	TotalCents       int64
}
