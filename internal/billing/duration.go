package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"sndbilling/internal/domain"
)

// Nominal hours covered by each rate period, used to convert a stored
// rate to an hourly rate when billing from timesheet hours.
var hoursPerPeriod = map[domain.RateType]decimal.Decimal{
	domain.RateDaily:   decimal.NewFromInt(10),
	domain.RateWeekly:  decimal.NewFromInt(70),
	domain.RateMonthly: decimal.NewFromInt(300),
}

// Line is one derived invoice line before wire conversion.
type Line struct {
	Description string
	Qty         decimal.Decimal
	Rate        decimal.Decimal
	Amount      decimal.Decimal
	UOM         string
}

// BuildLine derives the billable quantity, unit and rate for one item
// over the schedule window. When timesheet hours were recorded and
// received, billing happens by the hour with the stored rate converted
// to an hourly one; otherwise the quantity comes from the calendar
// overlap between the item's dates and the window.
func BuildLine(item domain.RentalItem, rental *domain.Rental, sched Schedule, hours decimal.Decimal, hoursReceived bool, now time.Time) Line {
	if hoursReceived && hours.IsPositive() {
		rate := hourlyRate(item)
		return Line{
			Description: describe(item, sched, fmt.Sprintf("%s Hour(s)", hours)),
			Qty:         hours,
			Rate:        rate,
			Amount:      hours.Mul(rate),
			UOM:         "Hour",
		}
	}

	days := overlapDays(item, rental, sched, now)
	qty, uom := periodQuantity(item.RateType, days)
	return Line{
		Description: describe(item, sched, fmt.Sprintf("%d Day(s)", days)),
		Qty:         qty,
		Rate:        item.UnitPrice,
		Amount:      qty.Mul(item.UnitPrice),
		UOM:         uom,
	}
}

// hourlyRate converts the item's stored rate to an hourly one.
func hourlyRate(item domain.RentalItem) decimal.Decimal {
	if divisor, ok := hoursPerPeriod[item.RateType]; ok {
		return item.UnitPrice.DivRound(divisor, 4)
	}
	return item.UnitPrice
}

// overlapDays counts the inclusive calendar days the item was active
// inside the window, clamped to the window bounds. Always at least one.
func overlapDays(item domain.RentalItem, rental *domain.Rental, sched Schedule, now time.Time) int {
	start := rental.StartDate
	if item.StartDate != nil {
		start = *item.StartDate
	}
	if start.Before(sched.FromDate) {
		start = sched.FromDate
	}
	end := EffectiveEnd(item, rental, now)
	if end.After(sched.ToDate) {
		end = sched.ToDate
	}

	days := int(truncateDay(end).Sub(truncateDay(start)).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return days
}

// periodQuantity converts a day count to billable units for the rate
// type, rounding partial periods up.
func periodQuantity(rt domain.RateType, days int) (decimal.Decimal, string) {
	switch rt {
	case domain.RateWeekly:
		return decimal.NewFromInt(int64(ceilDiv(days, 7))), "Week"
	case domain.RateMonthly:
		return decimal.NewFromInt(int64(ceilDiv(days, 30))), "Nos"
	case domain.RateHourly:
		return decimal.NewFromInt(int64(days) * 10), "Hour"
	default:
		return decimal.NewFromInt(int64(days)), "Day"
	}
}

func describe(item domain.RentalItem, sched Schedule, span string) string {
	base := fmt.Sprintf("Rental of %s (Asset #%d)", item.EquipmentName, item.EquipmentID)
	if sched.Monthly() {
		return fmt.Sprintf("%s - %s %d (%s)", base, sched.PostingDate.Month(), sched.PostingDate.Year(), span)
	}
	return fmt.Sprintf("%s (%s)", base, span)
}

func ceilDiv(n, d int) int { return (n + d - 1) / d }

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
