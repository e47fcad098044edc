package servicemocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sndbilling/internal/domain"
	"sndbilling/internal/erpnext"
	"sndbilling/internal/service"
)

// MockInvoiceService is a mock implementation of service.InvoiceService.
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) GenerateInvoice(ctx context.Context, input service.GenerateInvoiceInput) (*service.GenerateInvoiceResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GenerateInvoiceResult), args.Error(1)
}

func (m *MockInvoiceService) ListInvoices(ctx context.Context, rentalID int64) ([]domain.RentalInvoice, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RentalInvoice), args.Error(1)
}

func (m *MockInvoiceService) CancelInvoice(ctx context.Context, rentalID int64, invoiceID string) error {
	args := m.Called(ctx, rentalID, invoiceID)
	return args.Error(0)
}

func (m *MockInvoiceService) ListCustomerInvoices(ctx context.Context, customerID int64) ([]erpnext.SalesInvoiceDoc, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]erpnext.SalesInvoiceDoc), args.Error(1)
}
