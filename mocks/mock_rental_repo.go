package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sndbilling/internal/domain"
	"sndbilling/internal/port"
)

// MockRentalRepo is a mock implementation of port.RentalRepository.
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalRepo) ListItems(ctx context.Context, rentalID int64) ([]domain.RentalItem, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RentalItem), args.Error(1)
}

func (m *MockRentalRepo) SetInvoiceInfo(ctx context.Context, id int64, info port.RentalInvoiceInfo) error {
	args := m.Called(ctx, id, info)
	return args.Error(0)
}
