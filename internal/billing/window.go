package billing

import (
	"fmt"
	"time"

	"sndbilling/internal/domain"
)

const billingMonthLayout = "2006-01"

// Schedule is the resolved set of invoice dates for one billing run.
// Monthly schedules cover one calendar month; ad-hoc schedules derive
// from the rental's own dates.
type Schedule struct {
	BillingMonth string // "YYYY-MM", empty for ad-hoc runs
	PostingDate  time.Time
	DueDate      time.Time
	FromDate     time.Time
	ToDate       time.Time
}

// Monthly reports whether the schedule covers an explicit calendar month.
func (s Schedule) Monthly() bool { return s.BillingMonth != "" }

// Subject is the human-readable invoice subject line.
func (s Schedule) Subject(rentalNumber string) string {
	if s.Monthly() {
		return fmt.Sprintf("Invoice for %s - %s %d",
			rentalNumber, s.PostingDate.Month(), s.PostingDate.Year())
	}
	return fmt.Sprintf("Invoice for %s", rentalNumber)
}

// ComputeSchedule resolves invoice dates. With a billing month the
// window is that calendar month: posting on the last day, due 30 days
// later. Without one the invoice is anchored at the rental's stored
// invoice date or today, and the window runs from there through the
// payment terms.
func ComputeSchedule(rental *domain.Rental, billingMonth string, defaultTermsDays int, now time.Time) (Schedule, error) {
	if billingMonth != "" {
		monthStart, err := time.ParseInLocation(billingMonthLayout, billingMonth, time.UTC)
		if err != nil {
			return Schedule{}, domain.ErrInvalidBillingMonth
		}
		monthEnd := monthStart.AddDate(0, 1, -1)
		return Schedule{
			BillingMonth: billingMonth,
			PostingDate:  monthEnd,
			DueDate:      monthEnd.AddDate(0, 0, 30),
			FromDate:     monthStart,
			ToDate:       monthEnd,
		}, nil
	}

	terms := rental.PaymentTermsDays
	if terms <= 0 {
		terms = defaultTermsDays
	}

	anchor := now
	if rental.InvoiceDate != nil {
		anchor = *rental.InvoiceDate
	}

	return Schedule{
		PostingDate: anchor,
		DueDate:     anchor.AddDate(0, 0, terms),
		FromDate:    anchor,
		ToDate:      anchor.AddDate(0, 0, terms),
	}, nil
}
