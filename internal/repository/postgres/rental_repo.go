package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"sndbilling/internal/domain"
	"sndbilling/internal/port"
)

// RentalRepo implements port.RentalRepository on PostgreSQL.
type RentalRepo struct {
	db *sqlx.DB
}

func NewRentalRepo(db *sqlx.DB) *RentalRepo {
	return &RentalRepo{db: db}
}

func (r *RentalRepo) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	const query = `
		SELECT r.id, r.rental_number, r.customer_id, c.name AS customer_name,
		       r.status, r.start_date, r.expected_end_date, r.actual_end_date,
		       r.subtotal, r.tax_amount, r.total_amount, r.payment_terms_days,
		       r.invoice_id, r.invoice_date, r.payment_due_date, r.payment_status,
		       r.created_at, r.updated_at
		FROM rentals r
		JOIN customers c ON c.id = r.customer_id
		WHERE r.id = $1`

	var rental domain.Rental
	if err := r.db.GetContext(ctx, &rental, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("rentalRepo.GetByID: %w", err)
	}
	return &rental, nil
}

func (r *RentalRepo) ListItems(ctx context.Context, rentalID int64) ([]domain.RentalItem, error) {
	const query = `
		SELECT id, rental_id, equipment_id, equipment_name, status, rate_type,
		       unit_price, start_date, completed_date, notes
		FROM rental_items
		WHERE rental_id = $1
		ORDER BY id`

	items := []domain.RentalItem{}
	if err := r.db.SelectContext(ctx, &items, query, rentalID); err != nil {
		return nil, fmt.Errorf("rentalRepo.ListItems: %w", err)
	}
	return items, nil
}

func (r *RentalRepo) SetInvoiceInfo(ctx context.Context, id int64, info port.RentalInvoiceInfo) error {
	const query = `
		UPDATE rentals
		SET invoice_id = $2,
		    invoice_date = $3,
		    payment_due_date = $4,
		    payment_status = $5,
		    total_amount = CASE WHEN $6::numeric > 0 THEN $6::numeric ELSE total_amount END,
		    updated_at = NOW()
		WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id,
		info.InvoiceID, info.InvoiceDate, info.PaymentDueDate, info.PaymentStatus, info.TotalAmount)
	if err != nil {
		return fmt.Errorf("rentalRepo.SetInvoiceInfo: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
