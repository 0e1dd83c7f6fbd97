package checkout

import (
	"context"
	"errors"
	"strings"
	"time"

	"flowershop-api/internal/domain"
	"flowershop-api/internal/pricing"
)

// Service decides whether a cart plus delivery date, zone and optional
// promo state is admissible as an order, prices it, and hands the
// draft to the order lifecycle. A rejection is a synchronous error
// with no side effects.
type Service struct {
	minimums minimumRepo
	zones    zoneRepo
	ledger   promoLedger
	orders   orderCreator
}

type minimumRepo interface {
	GetByDate(ctx context.Context, date string) (*domain.MinimumOrderRule, error)
}

type zoneRepo interface {
	GetByID(ctx context.Context, id string) (*domain.DeliveryZone, error)
}

type promoLedger interface {
	DiscountAmount(state domain.PromoState, subtotalCents int64) int64
}

type orderCreator interface {
	Create(ctx context.Context, draft domain.OrderDraft) (*domain.Order, error)
}

func New(minimums minimumRepo, zones zoneRepo, ledger promoLedger, orders orderCreator) *Service {
	return &Service{minimums: minimums, zones: zones, ledger: ledger, orders: orders}
}

type AdmitInput struct {
	Lines        []domain.CartLine
	DeliveryDate string
	ZoneID       string
	Promo        *domain.PromoState
}

// Admit runs the admission pipeline: price lines, apply promo, check
// the date minimum against the net total, resolve the delivery fee,
// then persist. net == minimum admits; net < minimum rejects with the
// shortfall.
func (s *Service) Admit(ctx context.Context, in AdmitInput) (*domain.Order, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ValidationError("cart is empty")
	}
	for _, line := range in.Lines {
		if line.Quantity < 1 {
			return nil, domain.ValidationError("quantity must be positive")
		}
		if line.UnitBasePriceCents < 0 {
			return nil, domain.ValidationError("price must not be negative")
		}
	}
	date := strings.TrimSpace(in.DeliveryDate)
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, domain.ValidationError("delivery date must be YYYY-MM-DD")
	}
	if strings.TrimSpace(in.ZoneID) == "" {
		return nil, domain.ValidationError("delivery zone required")
	}

	priced, subtotal := pricing.PriceLines(in.Lines)

	var discount int64
	var promoCode string
	if in.Promo != nil {
		discount = s.ledger.DiscountAmount(*in.Promo, subtotal)
		promoCode = in.Promo.Code
	}
	net := subtotal - discount

	rule, err := s.minimums.GetByDate(ctx, date)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if rule != nil && net < rule.MinimumCents {
		return nil, &domain.BelowMinimumError{MinimumCents: rule.MinimumCents, NetCents: net}
	}

	zone, err := s.zones.GetByID(ctx, in.ZoneID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrZoneNotFound
		}
		return nil, err
	}

	draft := domain.OrderDraft{
		Lines:            priced,
		PromoCode:        promoCode,
		DiscountCents:    discount,
		DeliveryZoneID:   zone.ID,
		DeliveryFeeCents: zone.FeeCents,
		DeliveryDate:     date,
		SubtotalCents:    subtotal,
		TotalCents:       net + zone.FeeCents,
	}
	return s.orders.Create(ctx, draft)
}
