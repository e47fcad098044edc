package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RentalStatus is the lifecycle state of a rental contract.
type RentalStatus string

const (
	RentalStatusDraft     RentalStatus = "draft"
	RentalStatusActive    RentalStatus = "active"
	RentalStatusCompleted RentalStatus = "completed"
	RentalStatusCancelled RentalStatus = "cancelled"
)

// RateType is the billing granularity of a rental item.
type RateType string

const (
	RateHourly  RateType = "hourly"
	RateDaily   RateType = "daily"
	RateWeekly  RateType = "weekly"
	RateMonthly RateType = "monthly"
)

// Rental represents an equipment rental contract with pre-calculated totals.
type Rental struct {
	ID               int64           `db:"id" json:"id"`
	RentalNumber     string          `db:"rental_number" json:"rental_number"`
	CustomerID       int64           `db:"customer_id" json:"customer_id"`
	CustomerName     string          `db:"customer_name" json:"customer_name"`
	Status           RentalStatus    `db:"status" json:"status"`
	StartDate        time.Time       `db:"start_date" json:"start_date"`
	ExpectedEndDate  *time.Time      `db:"expected_end_date" json:"expected_end_date,omitempty"`
	ActualEndDate    *time.Time      `db:"actual_end_date" json:"actual_end_date,omitempty"`
	Subtotal         decimal.Decimal `db:"subtotal" json:"subtotal"`
	TaxAmount        decimal.Decimal `db:"tax_amount" json:"tax_amount"`
	TotalAmount      decimal.Decimal `db:"total_amount" json:"total_amount"`
	PaymentTermsDays int             `db:"payment_terms_days" json:"payment_terms_days"`
	InvoiceID        *string         `db:"invoice_id" json:"invoice_id,omitempty"`
	InvoiceDate      *time.Time      `db:"invoice_date" json:"invoice_date,omitempty"`
	PaymentDueDate   *time.Time      `db:"payment_due_date" json:"payment_due_date,omitempty"`
	PaymentStatus    string          `db:"payment_status" json:"payment_status"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updated_at"`
}

// RentalItem is one billable equipment line on a rental.
type RentalItem struct {
	ID            int64           `db:"id" json:"id"`
	RentalID      int64           `db:"rental_id" json:"rental_id"`
	EquipmentID   int64           `db:"equipment_id" json:"equipment_id"`
	EquipmentName string          `db:"equipment_name" json:"equipment_name"`
	Status        string          `db:"status" json:"status"`
	RateType      RateType        `db:"rate_type" json:"rate_type"`
	UnitPrice     decimal.Decimal `db:"unit_price" json:"unit_price"`
	StartDate     *time.Time      `db:"start_date" json:"start_date,omitempty"`
	CompletedDate *time.Time      `db:"completed_date" json:"completed_date,omitempty"`
	Notes         string          `db:"notes" json:"notes"`
}

// Customer is the local customer record; ERPNextID is the canonical
// identifier in the accounting backend when a sync has happened.
type Customer struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	ERPNextID *string   `db:"erpnext_id" json:"erpnext_id,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// RentalInvoice is a tracking row for one invoice generated against a
// rental. Rentals can accumulate one row per billing month.
type RentalInvoice struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	RentalID     int64           `db:"rental_id" json:"rental_id"`
	InvoiceID    string          `db:"invoice_id" json:"invoice_id"`
	BillingMonth *string         `db:"billing_month" json:"billing_month,omitempty"`
	InvoiceDate  time.Time       `db:"invoice_date" json:"invoice_date"`
	DueDate      time.Time       `db:"due_date" json:"due_date"`
	Amount       decimal.Decimal `db:"amount" json:"amount"`
	Status       string          `db:"status" json:"status"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
}

// TimesheetEntry is one day of recorded equipment hours for a rental item.
type TimesheetEntry struct {
	ID            int64           `db:"id" json:"id"`
	RentalItemID  int64           `db:"rental_item_id" json:"rental_item_id"`
	Date          time.Time       `db:"date" json:"date"`
	RegularHours  decimal.Decimal `db:"regular_hours" json:"regular_hours"`
	OvertimeHours decimal.Decimal `db:"overtime_hours" json:"overtime_hours"`
}
