package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type zoneSeed struct {
	Name       string
	FeeCents   int64
	ETAMinutes int
}

type codeSeed struct {
	Code            string
	DiscountPercent int
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	zones := []zoneSeed{
		{Name: "City Center", FeeCents: 300, ETAMinutes: 60},
		{Name: "Suburbs", FeeCents: 600, ETAMinutes: 120},
		{Name: "Airport", FeeCents: 1200, ETAMinutes: 180},
	}
	for _, z := range zones {
		if err := upsertZone(ctx, pool, z); err != nil {
			return fmt.Errorf("upsert zone %s: %w", z.Name, err)
		}
	}

	codes := []codeSeed{
		{Code: "SAVE10", DiscountPercent: 10},
		{Code: "WELCOME5", DiscountPercent: 5},
	}
	for _, c := range codes {
		if err := upsertCode(ctx, pool, c); err != nil {
			return fmt.Errorf("upsert promo code %s: %w", c.Code, err)
		}
	}

	// A sample holiday minimum two weeks out.
	date := time.Now().AddDate(0, 0, 14).Format("2006-01-02")
	if err := upsertMinimum(ctx, pool, date, 3000); err != nil {
		return fmt.Errorf("upsert minimum rule: %w", err)
	}

	return nil
}

func upsertZone(ctx context.Context, pool *pgxpool.Pool, z zoneSeed) error {
	const q = `
INSERT INTO delivery_zones (name, fee_cents, eta_minutes)
SELECT $1, $2, $3
WHERE NOT EXISTS (SELECT 1 FROM delivery_zones WHERE name = $1)
`
	_, err := pool.Exec(ctx, q, z.Name, z.FeeCents, z.ETAMinutes)
	return err
}

func upsertCode(ctx context.Context, pool *pgxpool.Pool, c codeSeed) error {
	const q = `
INSERT INTO promo_codes (code, discount_percent, active)
VALUES ($1, $2, TRUE)
ON CONFLICT (code) DO UPDATE
SET discount_percent = EXCLUDED.discount_percent,
    active = TRUE
`
	_, err := pool.Exec(ctx, q, c.Code, c.DiscountPercent)
	return err
}

func upsertMinimum(ctx context.Context, pool *pgxpool.Pool, date string, cents int64) error {
	const q = `
INSERT INTO minimum_order_rules (rule_date, minimum_cents)
VALUES ($1::date, $2)
ON CONFLICT (rule_date) DO UPDATE SET minimum_cents = EXCLUDED.minimum_cents
`
	_, err := pool.Exec(ctx, q, date, cents)
	return err
}
