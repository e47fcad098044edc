package mocks

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockTimesheetRepo is a mock implementation of port.TimesheetRepository.
type MockTimesheetRepo struct {
	mock.Mock
}

func (m *MockTimesheetRepo) HoursInRange(ctx context.Context, rentalItemID int64, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, rentalItemID, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTimesheetRepo) Received(ctx context.Context, rentalID, rentalItemID int64, billingMonth string) (bool, error) {
	args := m.Called(ctx, rentalID, rentalItemID, billingMonth)
	return args.Bool(0), args.Error(1)
}
