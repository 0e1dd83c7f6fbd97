package promo

import (
	"context"
	"time"

	"flowershop-api/internal/domain"
)

type CreateCodeInput struct {
	Code            string
	DiscountPercent int
	ExpiresAt       *time.Time
}

// Repository is the promo-code catalog. GetActiveByCode resolves only
// codes that are active and not expired; anything else is
// domain.ErrNotFound.
type Repository interface {
	GetActiveByCode(ctx context.Context, code string) (*domain.PromoCode, error)
	List(ctx context.Context) ([]domain.PromoCode, error)
	Create(ctx context.Context, in CreateCodeInput) (*domain.PromoCode, error)
	Deactivate(ctx context.Context, code string) error
}
