package port

import (
	"context"

	"sndbilling/internal/erpnext"
)

// AccountingGateway abstracts the external accounting backend. The
// resolution methods are best-effort: they degrade to configured or
// well-known defaults rather than failing the invoice run.
type AccountingGateway interface {
	// ResolveCompany returns the invoicing company name known to the
	// backend, or the configured default when the lookup fails.
	ResolveCompany(ctx context.Context) string

	// ResolveCustomer maps a local customer reference to the name the
	// backend knows the customer by, preferring records verifiably
	// linked to company. It degrades to the raw name as a last resort.
	ResolveCustomer(ctx context.Context, ref erpnext.CustomerRef, company string) string

	FindIncomeAccount(ctx context.Context) string
	FindCostCenter(ctx context.Context) string
	FindReceivableAccount(ctx context.Context) string
	FindTaxAccount(ctx context.Context, company string) string

	// EnsureServiceItem returns a usable billable item, creating the
	// standard rental service item when none exists.
	EnsureServiceItem(ctx context.Context) (erpnext.ServiceItem, error)

	CreateSalesInvoice(ctx context.Context, inv *erpnext.SalesInvoice) (*erpnext.SalesInvoiceDoc, error)
	GetSalesInvoice(ctx context.Context, name string) (*erpnext.SalesInvoiceDoc, error)
	SubmitSalesInvoice(ctx context.Context, name string) error
	CancelSalesInvoice(ctx context.Context, name string) error
	ListInvoicesByCustomer(ctx context.Context, customer string) ([]erpnext.SalesInvoiceDoc, error)
}
