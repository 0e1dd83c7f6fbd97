package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"flowershop-api/internal/domain"
	"flowershop-api/internal/notify"
	orderrepo "flowershop-api/internal/repository/order"
)

// Service is the order lifecycle: persist admitted drafts, expose
// lookup for confirmation-page polling, and apply payment-callback
// status transitions.
type Service struct {
	repo     repo
	notifier notifier
}

type repo interface {
	Create(ctx context.Context, draft domain.OrderDraft) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	SetStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
}

type notifier interface {
	Enqueue(msg notify.Message)
}

func New(repo orderrepo.Repository, notifier notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// Create persists the draft atomically and queues the operator
// notification. Notification problems never fail the create; the
// dispatcher owns retries and logging.
func (s *Service) Create(ctx context.Context, draft domain.OrderDraft) (*domain.Order, error) {
	created, err := s.repo.Create(ctx, draft)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.Enqueue(notify.Message{
			Subject: fmt.Sprintf("New order %s", created.ID),
			Body:    summarize(created),
		})
	}
	return created, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// SetStatus applies a payment-callback transition. Redelivery of a
// status the order already holds is a no-op; conflicting writes to a
// terminal order return domain.ErrOrderFinalized.
func (s *Service) SetStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	switch status {
	case domain.OrderPaid, domain.OrderFailed, domain.OrderPending:
	default:
		return nil, domain.ValidationError("unknown order status")
	}
	updated, err := s.repo.SetStatus(ctx, id, status)
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	// No row matched: either the order is missing or it is terminal
	// with a different status.
	existing, getErr := s.repo.GetByID(ctx, id)
	if getErr != nil {
		return nil, getErr
	}
	if existing.Status.Terminal() && existing.Status != status {
		return nil, domain.ErrOrderFinalized
	}
	return existing, nil
}

func summarize(o *domain.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order %s for %s (zone %s)\n", o.ID, o.DeliveryDate, o.DeliveryZoneID)
	for _, line := range o.Lines {
		fmt.Fprintf(&b, "- %s x%d @ %s = %s\n", line.ProductID, line.Quantity, cents(line.EffectiveUnitPriceCents), cents(line.TotalCents))
	}
	fmt.Fprintf(&b, "Subtotal: %s\n", cents(o.SubtotalCents))
	if o.DiscountCents > 0 {
		fmt.Fprintf(&b, "Promo %s: -%s\n", o.PromoCode, cents(o.DiscountCents))
	}
	fmt.Fprintf(&b, "Delivery: %s\n", cents(o.DeliveryFeeCents))
	fmt.Fprintf(&b, "Total: %s", cents(o.TotalCents))
	return b.String()
}

func cents(v int64) string {
	return fmt.Sprintf("%d.%02d", v/100, v%100)
}
