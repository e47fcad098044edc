package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sndbilling/internal/domain"
)

// MockInvoiceRepo is a mock implementation of port.InvoiceRecordRepository.
type MockInvoiceRepo struct {
	mock.Mock
}

func (m *MockInvoiceRepo) Create(ctx context.Context, rec *domain.RentalInvoice) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockInvoiceRepo) ExistsForMonth(ctx context.Context, rentalID int64, billingMonth string) (bool, error) {
	args := m.Called(ctx, rentalID, billingMonth)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvoiceRepo) SetStatus(ctx context.Context, rentalID int64, invoiceID, status string) error {
	args := m.Called(ctx, rentalID, invoiceID, status)
	return args.Error(0)
}

func (m *MockInvoiceRepo) ListByRental(ctx context.Context, rentalID int64) ([]domain.RentalInvoice, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RentalInvoice), args.Error(1)
}
