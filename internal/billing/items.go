package billing

import (
	"sort"
	"strings"
	"time"

	"sndbilling/internal/domain"
)

// EffectiveEnd is the date a rental item stopped (or will stop) being
// billable: its own completion date, else the rental's actual end when
// the rental is completed, else now.
func EffectiveEnd(item domain.RentalItem, rental *domain.Rental, now time.Time) time.Time {
	if item.CompletedDate != nil {
		return *item.CompletedDate
	}
	if rental.Status == domain.RentalStatusCompleted && rental.ActualEndDate != nil {
		return *rental.ActualEndDate
	}
	return now
}

// FilterActive returns the items billable inside the schedule window:
// started on or before the window end and effectively ended on or after
// the window start. Items without a start date use the rental's. Every
// matching row is kept; no deduplication happens.
func FilterActive(items []domain.RentalItem, rental *domain.Rental, sched Schedule, now time.Time) []domain.RentalItem {
	out := make([]domain.RentalItem, 0, len(items))
	for _, item := range items {
		start := rental.StartDate
		if item.StartDate != nil {
			start = *item.StartDate
		}
		if start.After(sched.ToDate) {
			continue
		}
		if EffectiveEnd(item, rental, now).Before(sched.FromDate) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// SortForInvoice orders items the way they appear on the invoice:
// by equipment name, then active rows before inactive within each
// equipment group, then by start date.
func SortForInvoice(items []domain.RentalItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if c := strings.Compare(a.EquipmentName, b.EquipmentName); c != 0 {
			return c < 0
		}
		aActive := a.Status == "active"
		bActive := b.Status == "active"
		if aActive != bActive {
			return aActive
		}
		switch {
		case a.StartDate == nil:
			return b.StartDate != nil
		case b.StartDate == nil:
			return false
		default:
			return a.StartDate.Before(*b.StartDate)
		}
	})
}
