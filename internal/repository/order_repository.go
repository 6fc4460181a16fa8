package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"restaurant-order-api/internal/model"
)

type PostgresOrderRepository struct {
	db      *sql.DB
	timeout time.Duration
}

func NewPostgresOrderRepository(db *sql.DB, timeout time.Duration) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db, timeout: timeout}
}

func (r *PostgresOrderRepository) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	const q = `
		CREATE TABLE IF NOT EXISTS orders (
			id                     UUID PRIMARY KEY,
			restaurant_name        TEXT NOT NULL,
			items                  TEXT[] NOT NULL,
			total_amount           NUMERIC(10, 2) NOT NULL,
			currency               TEXT NOT NULL,
			ordered_at             TIMESTAMPTZ NOT NULL,
			estimated_arrival_time TIMESTAMPTZ NOT NULL,
			payment_mode           TEXT NOT NULL,
			status                 TEXT NOT NULL,
			delivery_address       TEXT NOT NULL,
			customer_notes         TEXT
		)
	`
	if _, err := r.db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("create orders table: %w", err)
	}
	return nil
}

func (r *PostgresOrderRepository) Create(ctx context.Context, order model.Order) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	const q = `
		INSERT INTO orders (
			id, restaurant_name, items, total_amount, currency, ordered_at,
			estimated_arrival_time, payment_mode, status, delivery_address, customer_notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	var notes sql.NullString
	if order.CustomerNotes != nil {
		notes = sql.NullString{String: *order.CustomerNotes, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, q,
		order.ID,
		order.RestaurantName,
		pq.Array(order.Items),
		order.TotalAmount,
		order.Currency,
		order.OrderedAt,
		order.EstimatedArrivalTime,
		order.PaymentMode,
		order.Status,
		order.DeliveryAddress,
		notes,
	)
	if err != nil {
		return fmt.Errorf("insert order id=%s: %w", order.ID, err)
	}
	return nil
}
