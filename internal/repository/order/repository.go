package order

import (
	"context"

	"flowershop-api/internal/domain"
)

// Repository persists admitted orders. Create writes the order and all
// of its lines in one transaction; a partially written order is never
// observable.
type Repository interface {
	Create(ctx context.Context, draft domain.OrderDraft) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	// SetStatus updates the order status when the stored status is
	// pending or already equal to the requested one. Returns
	// domain.ErrNotFound when no row matched.
	SetStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
}
