package port

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"sndbilling/internal/domain"
)

// RentalInvoiceInfo carries the fields written back to a rental after an
// invoice has been created upstream.
type RentalInvoiceInfo struct {
	InvoiceID      string
	InvoiceDate    time.Time
	PaymentDueDate time.Time
	PaymentStatus  string
	// TotalAmount is applied only when positive; a zero value means the
	// upstream document carried no usable total and the stored amount is kept.
	TotalAmount decimal.Decimal
}

// RentalRepository defines the contract for rental persistence.
type RentalRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Rental, error)
	ListItems(ctx context.Context, rentalID int64) ([]domain.RentalItem, error)
	SetInvoiceInfo(ctx context.Context, id int64, info RentalInvoiceInfo) error
}

// CustomerRepository defines the contract for local customer lookups.
type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

// InvoiceRecordRepository tracks invoices generated per rental.
type InvoiceRecordRepository interface {
	Create(ctx context.Context, rec *domain.RentalInvoice) error
	ExistsForMonth(ctx context.Context, rentalID int64, billingMonth string) (bool, error)
	ListByRental(ctx context.Context, rentalID int64) ([]domain.RentalInvoice, error)
	SetStatus(ctx context.Context, rentalID int64, invoiceID, status string) error
}

// TimesheetRepository reads recorded equipment hours.
type TimesheetRepository interface {
	// HoursInRange sums regular plus overtime hours for a rental item
	// between from and to, inclusive.
	HoursInRange(ctx context.Context, rentalItemID int64, from, to time.Time) (decimal.Decimal, error)
	// Received reports whether the timesheet for the given billing month
	// has been marked as received for a rental item.
	Received(ctx context.Context, rentalID, rentalItemID int64, billingMonth string) (bool, error)
}
