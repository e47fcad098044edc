package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"sndbilling/internal/domain"
)

// InvoiceRepo implements port.InvoiceRecordRepository on PostgreSQL.
type InvoiceRepo struct {
	db *sqlx.DB
}

func NewInvoiceRepo(db *sqlx.DB) *InvoiceRepo {
	return &InvoiceRepo{db: db}
}

func (r *InvoiceRepo) Create(ctx context.Context, rec *domain.RentalInvoice) error {
	const query = `
		INSERT INTO rental_invoices (id, rental_id, invoice_id, billing_month,
		                             invoice_date, due_date, amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.RentalID, rec.InvoiceID, rec.BillingMonth,
		rec.InvoiceDate, rec.DueDate, rec.Amount, rec.Status)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) ExistsForMonth(ctx context.Context, rentalID int64, billingMonth string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM rental_invoices
			WHERE rental_id = $1 AND billing_month = $2 AND status <> 'cancelled'
		)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, rentalID, billingMonth); err != nil {
		return false, fmt.Errorf("invoiceRepo.ExistsForMonth: %w", err)
	}
	return exists, nil
}

func (r *InvoiceRepo) SetStatus(ctx context.Context, rentalID int64, invoiceID, status string) error {
	const query = `
		UPDATE rental_invoices
		SET status = $3
		WHERE rental_id = $1 AND invoice_id = $2`

	res, err := r.db.ExecContext(ctx, query, rentalID, invoiceID, status)
	if err != nil {
		return fmt.Errorf("invoiceRepo.SetStatus: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InvoiceRepo) ListByRental(ctx context.Context, rentalID int64) ([]domain.RentalInvoice, error) {
	const query = `
		SELECT id, rental_id, invoice_id, billing_month, invoice_date,
		       due_date, amount, status, created_at
		FROM rental_invoices
		WHERE rental_id = $1
		ORDER BY invoice_date DESC, created_at DESC`

	records := []domain.RentalInvoice{}
	if err := r.db.SelectContext(ctx, &records, query, rentalID); err != nil {
		return nil, fmt.Errorf("invoiceRepo.ListByRental: %w", err)
	}
	return records, nil
}
