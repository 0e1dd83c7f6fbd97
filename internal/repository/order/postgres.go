package order

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

func (r *postgresRepo) Create(ctx context.Context, draft domain.OrderDraft) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const insertOrder = `
INSERT INTO orders (promo_code, discount_cents, delivery_zone_id, delivery_fee_cents, delivery_date, subtotal_cents, total_cents, status)
VALUES (NULLIF($1, ''), $2, $3, $4, $5::date, $6, $7, 'pending')
RETURNING id::text, created_at
`
	var orderID string
	order := domain.Order{
		PromoCode:        draft.PromoCode,
		DiscountCents:    draft.DiscountCents,
		DeliveryZoneID:   draft.DeliveryZoneID,
		DeliveryFeeCents: draft.DeliveryFeeCents,
		DeliveryDate:     draft.DeliveryDate,
		SubtotalCents:    draft.SubtotalCents,
		TotalCents:       draft.TotalCents,
		Status:           domain.OrderPending,
	}
	if err := tx.QueryRow(ctx, insertOrder,
		draft.PromoCode,
		draft.DiscountCents,
		draft.DeliveryZoneID,
		draft.DeliveryFeeCents,
		draft.DeliveryDate,
		draft.SubtotalCents,
		draft.TotalCents,
	).Scan(&orderID, &order.CreatedAt); err != nil {
		return nil, err
	}
	order.ID = orderID

	const insertLine = `
INSERT INTO order_lines (order_id, product_id, variant_id, quantity, unit_base_price_cents, discount_percent, discount_price_cents, effective_unit_price_cents, total_cents)
VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9)
`
	for _, line := range draft.Lines {
		if _, err := tx.Exec(ctx, insertLine,
			orderID,
			line.ProductID,
			line.VariantID,
			line.Quantity,
			line.UnitBasePriceCents,
			line.DiscountPercent,
			line.DiscountPriceCents,
			line.EffectiveUnitPriceCents,
			line.TotalCents,
		); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	order.Lines = draft.Lines
	return &order, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const q = `
SELECT id::text, COALESCE(promo_code, ''), discount_cents, delivery_zone_id::text, delivery_fee_cents,
       to_char(delivery_date, 'YYYY-MM-DD'), subtotal_cents, total_cents, status, created_at
FROM orders
WHERE id = $1
`
	return r.fetchOrder(ctx, q, id)
}

func (r *postgresRepo) SetStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	const q = `
UPDATE orders
SET status = $2
WHERE id = $1 AND (status = 'pending' OR status = $2)
RETURNING id::text
`
	var orderID string
	if err := r.pool.QueryRow(ctx, q, id, string(status)).Scan(&orderID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return r.GetByID(ctx, orderID)
}

func (r *postgresRepo) fetchOrder(ctx context.Context, query string, args ...interface{}) (*domain.Order, error) {
	var order domain.Order
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&order.ID,
		&order.PromoCode,
		&order.DiscountCents,
		&order.DeliveryZoneID,
		&order.DeliveryFeeCents,
		&order.DeliveryDate,
		&order.SubtotalCents,
		&order.TotalCents,
		&order.Status,
		&order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	const linesQuery = `
SELECT product_id, COALESCE(variant_id, ''), quantity, unit_base_price_cents, discount_percent, discount_price_cents, effective_unit_price_cents, total_cents
FROM order_lines
WHERE order_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, linesQuery, order.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.PricedLine
		if err := rows.Scan(
			&line.ProductID,
			&line.VariantID,
			&line.Quantity,
			&line.UnitBasePriceCents,
			&line.DiscountPercent,
			&line.DiscountPriceCents,
			&line.EffectiveUnitPriceCents,
			&line.TotalCents,
		); err != nil {
			return nil, err
		}
		order.Lines = append(order.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &order, nil
}
