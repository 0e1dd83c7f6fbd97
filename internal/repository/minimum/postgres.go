package minimum

import (
	"context"
	"errors"
	"time"

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

func (r *postgresRepo) GetByDate(ctx context.Context, date string) (*domain.MinimumOrderRule, error) {
	// Minimums are a soft business constraint: a date that does not
	// parse means no rule, not an error.
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, domain.ErrNotFound
	}
	const q = `
SELECT to_char(rule_date, 'YYYY-MM-DD'), minimum_cents, created_at
FROM minimum_order_rules
WHERE rule_date = $1::date
`
	var rule domain.MinimumOrderRule
	if err := r.pool.QueryRow(ctx, q, date).Scan(&rule.Date, &rule.MinimumCents, &rule.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &rule, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.MinimumOrderRule, error) {
	const q = `
SELECT to_char(rule_date, 'YYYY-MM-DD'), minimum_cents, created_at
FROM minimum_order_rules
ORDER BY rule_date ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []domain.MinimumOrderRule
	for rows.Next() {
		var rule domain.MinimumOrderRule
		if err := rows.Scan(&rule.Date, &rule.MinimumCents, &rule.CreatedAt); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

func (r *postgresRepo) Upsert(ctx context.Context, date string, minimumCents int64) (*domain.MinimumOrderRule, error) {
	const q = `
INSERT INTO minimum_order_rules (rule_date, minimum_cents)
VALUES ($1::date, $2)
ON CONFLICT (rule_date) DO UPDATE SET minimum_cents = EXCLUDED.minimum_cents
RETURNING to_char(rule_date, 'YYYY-MM-DD'), minimum_cents, created_at
`
	var rule domain.MinimumOrderRule
	if err := r.pool.QueryRow(ctx, q, date, minimumCents).Scan(&rule.Date, &rule.MinimumCents, &rule.CreatedAt); err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *postgresRepo) Delete(ctx context.Context, date string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM minimum_order_rules WHERE rule_date = $1::date`, date)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
