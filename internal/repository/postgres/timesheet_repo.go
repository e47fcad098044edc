package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// TimesheetRepo implements port.TimesheetRepository on PostgreSQL.
type TimesheetRepo struct {
	db *sqlx.DB
}

func NewTimesheetRepo(db *sqlx.DB) *TimesheetRepo {
	return &TimesheetRepo{db: db}
}

func (r *TimesheetRepo) HoursInRange(ctx context.Context, rentalItemID int64, from, to time.Time) (decimal.Decimal, error) {
	const query = `
		SELECT COALESCE(SUM(regular_hours + overtime_hours), 0)
		FROM rental_timesheets
		WHERE rental_item_id = $1 AND date BETWEEN $2 AND $3`

	var hours decimal.Decimal
	if err := r.db.GetContext(ctx, &hours, query, rentalItemID, from, to); err != nil {
		return decimal.Zero, fmt.Errorf("timesheetRepo.HoursInRange: %w", err)
	}
	return hours, nil
}

func (r *TimesheetRepo) Received(ctx context.Context, rentalID, rentalItemID int64, billingMonth string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM timesheet_receipts
			WHERE rental_id = $1 AND rental_item_id = $2 AND billing_month = $3
		)`

	var received bool
	if err := r.db.GetContext(ctx, &received, query, rentalID, rentalItemID, billingMonth); err != nil {
		return false, fmt.Errorf("timesheetRepo.Received: %w", err)
	}
	return received, nil
}
