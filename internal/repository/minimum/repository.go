package minimum

import (
	"context"

	"flowershop-api/internal/domain"
)

// Repository reads and writes per-date minimum order rules. Dates are
// ISO calendar dates (YYYY-MM-DD); GetByDate returns domain.ErrNotFound
// when no rule constrains the date.
type Repository interface {
	GetByDate(ctx context.Context, date string) (*domain.MinimumOrderRule, error)
	List(ctx context.Context) ([]domain.MinimumOrderRule, error)
	Upsert(ctx context.Context, date string, minimumCents int64) (*domain.MinimumOrderRule, error)
	Delete(ctx context.Context, date string) error
}
