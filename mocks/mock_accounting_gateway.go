package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sndbilling/internal/erpnext"
)

// MockAccountingGateway is a mock implementation of port.AccountingGateway.
type MockAccountingGateway struct {
	mock.Mock
}

func (m *MockAccountingGateway) ResolveCompany(ctx context.Context) string {
	args := m.Called(ctx)
	return args.String(0)
}

func (m *MockAccountingGateway) ResolveCustomer(ctx context.Context, ref erpnext.CustomerRef, company string) string {
	args := m.Called(ctx, ref, company)
	return args.String(0)
}

func (m *MockAccountingGateway) FindIncomeAccount(ctx context.Context) string {
	args := m.Called(ctx)
	return args.String(0)
}

func (m *MockAccountingGateway) FindCostCenter(ctx context.Context) string {
	args := m.Called(ctx)
	return args.String(0)
}

func (m *MockAccountingGateway) FindReceivableAccount(ctx context.Context) string {
	args := m.Called(ctx)
	return args.String(0)
}

func (m *MockAccountingGateway) FindTaxAccount(ctx context.Context, company string) string {
	args := m.Called(ctx, company)
	return args.String(0)
}

func (m *MockAccountingGateway) EnsureServiceItem(ctx context.Context) (erpnext.ServiceItem, error) {
	args := m.Called(ctx)
	return args.Get(0).(erpnext.ServiceItem), args.Error(1)
}

func (m *MockAccountingGateway) CreateSalesInvoice(ctx context.Context, inv *erpnext.SalesInvoice) (*erpnext.SalesInvoiceDoc, error) {
	args := m.Called(ctx, inv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*erpnext.SalesInvoiceDoc), args.Error(1)
}

func (m *MockAccountingGateway) GetSalesInvoice(ctx context.Context, name string) (*erpnext.SalesInvoiceDoc, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*erpnext.SalesInvoiceDoc), args.Error(1)
}

func (m *MockAccountingGateway) SubmitSalesInvoice(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockAccountingGateway) CancelSalesInvoice(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockAccountingGateway) ListInvoicesByCustomer(ctx context.Context, customer string) ([]erpnext.SalesInvoiceDoc, error) {
	args := m.Called(ctx, customer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]erpnext.SalesInvoiceDoc), args.Error(1)
}
