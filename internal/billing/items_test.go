package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sndbilling/internal/domain"
)

func ptr(t time.Time) *time.Time { return &t }

func marchSchedule(t *testing.T) Schedule {
	t.Helper()
	sched, err := ComputeSchedule(&domain.Rental{StartDate: date(2025, 1, 1)}, "2025-03", 30, date(2025, 4, 1))
	require.NoError(t, err)
	return sched
}

func TestEffectiveEnd(t *testing.T) {
	now := date(2025, 6, 15)
	completed := date(2025, 3, 10)
	rentalEnd := date(2025, 4, 1)

	active := &domain.Rental{Status: domain.RentalStatusActive, ActualEndDate: &rentalEnd}
	done := &domain.Rental{Status: domain.RentalStatusCompleted, ActualEndDate: &rentalEnd}

	assert.Equal(t, completed, EffectiveEnd(domain.RentalItem{CompletedDate: &completed}, active, now))
	assert.Equal(t, rentalEnd, EffectiveEnd(domain.RentalItem{}, done, now))
	assert.Equal(t, now, EffectiveEnd(domain.RentalItem{}, active, now))
}

func TestFilterActive_WindowBounds(t *testing.T) {
	sched := marchSchedule(t)
	now := date(2025, 6, 1)
	rental := &domain.Rental{Status: domain.RentalStatusActive, StartDate: date(2025, 1, 1)}

	items := []domain.RentalItem{
		// Started before the window, still open: kept.
		{ID: 1, StartDate: ptr(date(2025, 2, 1))},
		// Starts after the window ends: dropped.
		{ID: 2, StartDate: ptr(date(2025, 4, 1))},
		// Completed before the window starts: dropped.
		{ID: 3, StartDate: ptr(date(2025, 1, 5)), CompletedDate: ptr(date(2025, 2, 20))},
		// Completed on the window start boundary: kept.
		{ID: 4, StartDate: ptr(date(2025, 1, 5)), CompletedDate: ptr(date(2025, 3, 1))},
		// Starts on the window end boundary: kept.
		{ID: 5, StartDate: ptr(date(2025, 3, 31))},
		// No own start date: inherits the rental's and is kept.
		{ID: 6},
	}

	kept := FilterActive(items, rental, sched, now)
	ids := make([]int64, 0, len(kept))
	for _, it := range kept {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []int64{1, 4, 5, 6}, ids)
}

func TestFilterActive_KeepsDuplicateEquipmentRows(t *testing.T) {
	sched := marchSchedule(t)
	rental := &domain.Rental{Status: domain.RentalStatusActive, StartDate: date(2025, 1, 1)}

	items := []domain.RentalItem{
		{ID: 1, EquipmentID: 7, StartDate: ptr(date(2025, 3, 1)), CompletedDate: ptr(date(2025, 3, 10))},
		{ID: 2, EquipmentID: 7, StartDate: ptr(date(2025, 3, 15))},
	}

	kept := FilterActive(items, rental, sched, date(2025, 4, 1))
	assert.Len(t, kept, 2)
}

func TestFilterActive_AdHocWindowExcludesStaleItems(t *testing.T) {
	now := date(2025, 6, 1)
	rental := &domain.Rental{Status: domain.RentalStatusActive, StartDate: date(2025, 1, 10)}
	sched, err := ComputeSchedule(rental, "", 30, now)
	require.NoError(t, err)

	items := []domain.RentalItem{
		// Completed months before the anchor date: not billed again.
		{ID: 1, StartDate: ptr(date(2025, 1, 10)), CompletedDate: ptr(date(2025, 2, 1))},
		// Still open: billed.
		{ID: 2, StartDate: ptr(date(2025, 1, 10))},
	}

	kept := FilterActive(items, rental, sched, now)
	require.Len(t, kept, 1)
	assert.Equal(t, int64(2), kept[0].ID)
}

func TestSortForInvoice(t *testing.T) {
	items := []domain.RentalItem{
		{ID: 1, EquipmentName: "Excavator", Status: "completed", StartDate: ptr(date(2025, 3, 1))},
		{ID: 2, EquipmentName: "Crane", Status: "active", StartDate: ptr(date(2025, 3, 5))},
		{ID: 3, EquipmentName: "Excavator", Status: "active", StartDate: ptr(date(2025, 3, 10))},
		{ID: 4, EquipmentName: "Crane", Status: "active", StartDate: ptr(date(2025, 3, 1))},
	}

	SortForInvoice(items)

	ids := []int64{items[0].ID, items[1].ID, items[2].ID, items[3].ID}
	// Cranes first by name, earliest start first; then the active
	// excavator before the completed one.
	assert.Equal(t, []int64{4, 2, 3, 1}, ids)
}
