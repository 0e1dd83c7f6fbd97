package promo

import (
	"context"
	"errors"

	"flowershop-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) GetActiveByCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	const q = `
SELECT code, discount_percent, active, expires_at, created_at
FROM promo_codes
WHERE code = $1 AND active = TRUE AND (expires_at IS NULL OR expires_at > NOW())
`
	var p domain.PromoCode
	if err := r.pool.QueryRow(ctx, q, code).Scan(&p.Code, &p.DiscountPercent, &p.Active, &p.ExpiresAt, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.PromoCode, error) {
	const q = `
SELECT code, discount_percent, active, expires_at, created_at
FROM promo_codes
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codes []domain.PromoCode
	for rows.Next() {
		var p domain.PromoCode
		if err := rows.Scan(&p.Code, &p.DiscountPercent, &p.Active, &p.ExpiresAt, &p.CreatedAt); err != nil {
			return nil, err
		}
		codes = append(codes, p)
	}
	return codes, rows.Err()
}

func (r *postgresRepo) Create(ctx context.Context, in CreateCodeInput) (*domain.PromoCode, error) {
	const q = `
INSERT INTO promo_codes (code, discount_percent, active, expires_at)
VALUES ($1, $2, TRUE, $3)
RETURNING code, discount_percent, active, expires_at, created_at
`
	var p domain.PromoCode
	err := r.pool.QueryRow(ctx, q, in.Code, in.DiscountPercent, in.ExpiresAt).Scan(&p.Code, &p.DiscountPercent, &p.Active, &p.ExpiresAt, &p.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Deactivate(ctx context.Context, code string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE promo_codes SET active = FALSE WHERE code = $1`, code)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
