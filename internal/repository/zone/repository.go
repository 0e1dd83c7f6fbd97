package zone

import (
	"context"

	"flowershop-api/internal/domain"
)

type CreateZoneInput struct {
	Name       string
	FeeCents   int64
	ETAMinutes int
}

type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.DeliveryZone, error)
	List(ctx context.Context) ([]domain.DeliveryZone, error)
	Create(ctx context.Context, in CreateZoneInput) (*domain.DeliveryZone, error)
	Update(ctx context.Context, id string, in CreateZoneInput) (*domain.DeliveryZone, error)
}
