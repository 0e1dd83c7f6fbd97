package zone

import (
	"context"
	"errors"

	"flowershop-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.DeliveryZone, error) {
	const q = `
SELECT id::text, name, fee_cents, eta_minutes, created_at
FROM delivery_zones
WHERE id = $1
`
	var z domain.DeliveryZone
	if err := r.pool.QueryRow(ctx, q, id).Scan(&z.ID, &z.Name, &z.FeeCents, &z.ETAMinutes, &z.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &z, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.DeliveryZone, error) {
	const q = `
SELECT id::text, name, fee_cents, eta_minutes, created_at
FROM delivery_zones
ORDER BY name ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var zones []domain.DeliveryZone
	for rows.Next() {
		var z domain.DeliveryZone
		if err := rows.Scan(&z.ID, &z.Name, &z.FeeCents, &z.ETAMinutes, &z.CreatedAt); err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}
	return zones, rows.Err()
}

func (r *postgresRepo) Create(ctx context.Context, in CreateZoneInput) (*domain.DeliveryZone, error) {
	const q = `
INSERT INTO delivery_zones (name, fee_cents, eta_minutes)
VALUES ($1, $2, $3)
RETURNING id::text, name, fee_cents, eta_minutes, created_at
`
	var z domain.DeliveryZone
	if err := r.pool.QueryRow(ctx, q, in.Name, in.FeeCents, in.ETAMinutes).Scan(&z.ID, &z.Name, &z.FeeCents, &z.ETAMinutes, &z.CreatedAt); err != nil {
		return nil, err
	}
	return &z, nil
}

func (r *postgresRepo) Update(ctx context.Context, id string, in CreateZoneInput) (*domain.DeliveryZone, error) {
	const q = `
UPDATE delivery_zones
SET name = $1, fee_cents = $2, eta_minutes = $3
WHERE id = $4
RETURNING id::text, name, fee_cents, eta_minutes, created_at
`
	var z domain.DeliveryZone
	if err := r.pool.QueryRow(ctx, q, in.Name, in.FeeCents, in.ETAMinutes, id).Scan(&z.ID, &z.Name, &z.FeeCents, &z.ETAMinutes, &z.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &z, nil
}
