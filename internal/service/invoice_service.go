package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"sndbilling/internal/billing"
	"sndbilling/internal/config"
	"sndbilling/internal/domain"
	"sndbilling/internal/erpnext"
	"sndbilling/internal/port"
)

// GenerateInvoiceInput identifies the rental to invoice and the period
// it covers. BillingMonth is "YYYY-MM" or empty for an ad-hoc invoice
// over the rental's own dates. InvoiceNumber is an optional local label.
type GenerateInvoiceInput struct {
	RentalID      int64
	BillingMonth  string
	InvoiceNumber string
}

// GenerateInvoiceResult describes the invoice created upstream.
type GenerateInvoiceResult struct {
	InvoiceID     string          `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	Status        string          `json:"status"`
	Customer      string          `json:"customer"`
	PostingDate   time.Time       `json:"posting_date"`
	DueDate       time.Time       `json:"due_date"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	LineCount     int             `json:"line_count"`
}

// InvoiceService generates, cancels and lists invoices for rentals.
type InvoiceService interface {
	GenerateInvoice(ctx context.Context, input GenerateInvoiceInput) (*GenerateInvoiceResult, error)
	ListInvoices(ctx context.Context, rentalID int64) ([]domain.RentalInvoice, error)
	CancelInvoice(ctx context.Context, rentalID int64, invoiceID string) error
	ListCustomerInvoices(ctx context.Context, customerID int64) ([]erpnext.SalesInvoiceDoc, error)
}

type invoiceService struct {
	rentals    port.RentalRepository
	customers  port.CustomerRepository
	invoices   port.InvoiceRecordRepository
	timesheets port.TimesheetRepository
	accounting port.AccountingGateway
	billingCfg config.BillingConfig
	log        zerolog.Logger
	now        func() time.Time
}

func NewInvoiceService(
	rentals port.RentalRepository,
	customers port.CustomerRepository,
	invoices port.InvoiceRecordRepository,
	timesheets port.TimesheetRepository,
	accounting port.AccountingGateway,
	billingCfg config.BillingConfig,
	log zerolog.Logger,
) InvoiceService {
	return &invoiceService{
		rentals:    rentals,
		customers:  customers,
		invoices:   invoices,
		timesheets: timesheets,
		accounting: accounting,
		billingCfg: billingCfg,
		log:        log,
		now:        time.Now,
	}
}

// GenerateInvoice runs the full invoicing sequence for one rental: local
// validation, customer and master-data resolution against the accounting
// backend, document assembly and submission, then local write-back. All
// validation happens before the first outbound call.
func (s *invoiceService) GenerateInvoice(ctx context.Context, input GenerateInvoiceInput) (*GenerateInvoiceResult, error) {
	rental, err := s.rentals.GetByID(ctx, input.RentalID)
	if err != nil {
		return nil, fmt.Errorf("invoiceService.GenerateInvoice: %w", err)
	}

	if rental.Status == domain.RentalStatusCancelled || rental.Status == domain.RentalStatusDraft {
		return nil, domain.ErrRentalNotBillable
	}
	if rental.CustomerID == 0 || rental.CustomerName == "" {
		return nil, domain.ErrMissingCustomer
	}
	if !rental.TotalAmount.IsPositive() {
		return nil, domain.ErrInvalidTotalAmount
	}

	// now is taken once so every date derived below agrees.
	now := s.now().UTC()

	sched, err := billing.ComputeSchedule(rental, input.BillingMonth, s.billingCfg.PaymentTermsDays, now)
	if err != nil {
		return nil, err
	}
	if sched.Monthly() {
		exists, err := s.invoices.ExistsForMonth(ctx, rental.ID, sched.BillingMonth)
		if err != nil {
			return nil, fmt.Errorf("invoiceService.GenerateInvoice: %w", err)
		}
		if exists {
			return nil, domain.ErrInvoiceExists
		}
	}

	allItems, err := s.rentals.ListItems(ctx, rental.ID)
	if err != nil {
		return nil, fmt.Errorf("invoiceService.GenerateInvoice: %w", err)
	}
	items := billing.FilterActive(allItems, rental, sched, now)
	if len(items) == 0 {
		return nil, domain.ErrNoBillableItems
	}
	billing.SortForInvoice(items)

	invoiceNumber := input.InvoiceNumber
	if invoiceNumber == "" {
		invoiceNumber = newInvoiceNumber(now)
	}

	company := s.accounting.ResolveCompany(ctx)
	customer := s.accounting.ResolveCustomer(ctx, s.customerRef(ctx, rental), company)

	serviceItem, err := s.accounting.EnsureServiceItem(ctx)
	if err != nil {
		return nil, fmt.Errorf("invoiceService.GenerateInvoice: resolving service item: %w", err)
	}
	incomeAccount := s.accounting.FindIncomeAccount(ctx)
	costCenter := s.accounting.FindCostCenter(ctx)
	receivable := s.accounting.FindReceivableAccount(ctx)
	taxAccount := s.accounting.FindTaxAccount(ctx, company)

	doc := s.assemble(ctx, rental, items, sched, now, assembleParams{
		company:       company,
		customer:      customer,
		serviceItem:   serviceItem,
		incomeAccount: incomeAccount,
		costCenter:    costCenter,
		receivable:    receivable,
	})
	erpnext.InjectDefaultTax(doc, taxAccount, s.billingCfg.VATRate)

	created, err := s.accounting.CreateSalesInvoice(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("invoiceService.GenerateInvoice: %w", err)
	}

	// Re-fetch for server-computed totals and status; fall back to the
	// creation response when the read fails.
	final, err := s.accounting.GetSalesInvoice(ctx, created.Name)
	if err != nil {
		s.log.Warn().Err(err).Str("invoice", created.Name).
			Msg("invoiceService.GenerateInvoice: fetch of created invoice failed, using creation response")
		final = created
	}

	grandTotal := decimal.NewFromFloat(final.GrandTotal)
	if err := s.rentals.SetInvoiceInfo(ctx, rental.ID, port.RentalInvoiceInfo{
		InvoiceID:      final.Name,
		InvoiceDate:    sched.PostingDate,
		PaymentDueDate: sched.DueDate,
		PaymentStatus:  "pending",
		TotalAmount:    grandTotal,
	}); err != nil {
		return nil, fmt.Errorf("invoiceService.GenerateInvoice: %w", err)
	}

	s.recordInvoice(ctx, rental, sched, final.Name, grandTotal)
	status := s.autoSubmit(ctx, final)

	s.log.Info().
		Int64("rental_id", rental.ID).
		Str("invoice", final.Name).
		Str("billing_month", sched.BillingMonth).
		Str("status", status).
		Msg("invoiceService.GenerateInvoice: invoice created")

	return &GenerateInvoiceResult{
		InvoiceID:     final.Name,
		InvoiceNumber: invoiceNumber,
		Status:        status,
		Customer:      customer,
		PostingDate:   sched.PostingDate,
		DueDate:       sched.DueDate,
		GrandTotal:    grandTotal,
		LineCount:     len(items),
	}, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, rentalID int64) ([]domain.RentalInvoice, error) {
	if _, err := s.rentals.GetByID(ctx, rentalID); err != nil {
		return nil, fmt.Errorf("invoiceService.ListInvoices: %w", err)
	}
	records, err := s.invoices.ListByRental(ctx, rentalID)
	if err != nil {
		return nil, fmt.Errorf("invoiceService.ListInvoices: %w", err)
	}
	return records, nil
}

// CancelInvoice cancels an invoice upstream and marks its local
// tracking row. The invoice must belong to the rental.
func (s *invoiceService) CancelInvoice(ctx context.Context, rentalID int64, invoiceID string) error {
	rental, err := s.rentals.GetByID(ctx, rentalID)
	if err != nil {
		return fmt.Errorf("invoiceService.CancelInvoice: %w", err)
	}

	records, err := s.invoices.ListByRental(ctx, rentalID)
	if err != nil {
		return fmt.Errorf("invoiceService.CancelInvoice: %w", err)
	}
	var rec *domain.RentalInvoice
	for i := range records {
		if records[i].InvoiceID == invoiceID && records[i].Status != "cancelled" {
			rec = &records[i]
			break
		}
	}
	if rec == nil {
		return domain.ErrNotFound
	}

	if err := s.accounting.CancelSalesInvoice(ctx, invoiceID); err != nil {
		return fmt.Errorf("invoiceService.CancelInvoice: %w", err)
	}

	if err := s.invoices.SetStatus(ctx, rentalID, invoiceID, "cancelled"); err != nil {
		s.log.Warn().Err(err).Str("invoice", invoiceID).
			Msg("invoiceService.CancelInvoice: tracking row update failed")
	}
	if rental.InvoiceID != nil && *rental.InvoiceID == invoiceID {
		if err := s.rentals.SetInvoiceInfo(ctx, rentalID, port.RentalInvoiceInfo{
			InvoiceID:      invoiceID,
			InvoiceDate:    rec.InvoiceDate,
			PaymentDueDate: rec.DueDate,
			PaymentStatus:  "cancelled",
		}); err != nil {
			s.log.Warn().Err(err).Str("invoice", invoiceID).
				Msg("invoiceService.CancelInvoice: rental update failed")
		}
	}

	s.log.Info().Int64("rental_id", rentalID).Str("invoice", invoiceID).
		Msg("invoiceService.CancelInvoice: invoice cancelled")
	return nil
}

// ListCustomerInvoices lists a customer's invoice headers as the
// accounting backend holds them, resolving the customer the same way
// invoice generation does.
func (s *invoiceService) ListCustomerInvoices(ctx context.Context, customerID int64) ([]erpnext.SalesInvoiceDoc, error) {
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("invoiceService.ListCustomerInvoices: %w", err)
	}

	ref := erpnext.CustomerRef{Name: customer.Name}
	if customer.ERPNextID != nil {
		ref.ExternalID = *customer.ERPNextID
	}
	company := s.accounting.ResolveCompany(ctx)
	resolved := s.accounting.ResolveCustomer(ctx, ref, company)

	docs, err := s.accounting.ListInvoicesByCustomer(ctx, resolved)
	if err != nil {
		return nil, fmt.Errorf("invoiceService.ListCustomerInvoices: %w", err)
	}
	return docs, nil
}

// customerRef builds the resolution reference for the rental's customer,
// attaching the stored backend id when the local record holds one. The
// local lookup is best-effort.
func (s *invoiceService) customerRef(ctx context.Context, rental *domain.Rental) erpnext.CustomerRef {
	ref := erpnext.CustomerRef{Name: rental.CustomerName}
	customer, err := s.customers.GetByID(ctx, rental.CustomerID)
	if err != nil {
		s.log.Warn().Err(err).Int64("customer_id", rental.CustomerID).
			Msg("invoiceService.customerRef: local customer lookup failed")
		return ref
	}
	if customer.ERPNextID != nil {
		ref.ExternalID = *customer.ERPNextID
	}
	return ref
}

type assembleParams struct {
	company       string
	customer      string
	serviceItem   erpnext.ServiceItem
	incomeAccount string
	costCenter    string
	receivable    string
}

func (s *invoiceService) assemble(
	ctx context.Context,
	rental *domain.Rental,
	items []domain.RentalItem,
	sched billing.Schedule,
	now time.Time,
	p assembleParams,
) *erpnext.SalesInvoice {
	lines := make([]erpnext.InvoiceItem, 0, len(items))
	for _, item := range items {
		hours, received := s.timesheetHours(ctx, rental.ID, item.ID, sched)
		line := billing.BuildLine(item, rental, sched, hours, received, now)
		lines = append(lines, erpnext.InvoiceItem{
			ItemCode:         p.serviceItem.Code,
			ItemName:         item.EquipmentName,
			Description:      line.Description,
			Qty:              line.Qty.InexactFloat64(),
			Rate:             line.Rate.InexactFloat64(),
			Amount:           line.Amount.InexactFloat64(),
			UOM:              line.UOM,
			ConversionFactor: 1,
			IncomeAccount:    p.incomeAccount,
			CostCenter:       p.costCenter,
		})
	}

	const dateLayout = "2006-01-02"
	return &erpnext.SalesInvoice{
		NamingSeries:      "ACC-SINV-.YYYY.-",
		Customer:          p.customer,
		CustomerName:      rental.CustomerName,
		PostingDate:       sched.PostingDate.Format(dateLayout),
		DueDate:           sched.DueDate.Format(dateLayout),
		SetPostingTime:    1,
		Company:           p.company,
		DebitTo:           p.receivable,
		CustomSubject:     sched.Subject(rental.RentalNumber),
		CustomFrom:        sched.FromDate.Format(dateLayout),
		CustomTo:          sched.ToDate.Format(dateLayout),
		Currency:          s.billingCfg.Currency,
		ConversionRate:    1,
		SellingPriceList:  s.billingCfg.SellingPriceList,
		PriceListCurrency: s.billingCfg.Currency,
		PLCConversionRate: 1,
		Items:             lines,
	}
}

// timesheetHours reads recorded hours for one item when the billing run
// is monthly and the month's timesheet has been marked received. Read
// failures fall back to calendar billing.
func (s *invoiceService) timesheetHours(ctx context.Context, rentalID, itemID int64, sched billing.Schedule) (decimal.Decimal, bool) {
	if !sched.Monthly() {
		return decimal.Zero, false
	}
	received, err := s.timesheets.Received(ctx, rentalID, itemID, sched.BillingMonth)
	if err != nil {
		s.log.Warn().Err(err).Int64("rental_item_id", itemID).
			Msg("invoiceService.timesheetHours: receipt lookup failed, billing by calendar")
		return decimal.Zero, false
	}
	if !received {
		return decimal.Zero, false
	}
	hours, err := s.timesheets.HoursInRange(ctx, itemID, sched.FromDate, sched.ToDate)
	if err != nil {
		s.log.Warn().Err(err).Int64("rental_item_id", itemID).
			Msg("invoiceService.timesheetHours: hours lookup failed, billing by calendar")
		return decimal.Zero, false
	}
	return hours, true
}

// recordInvoice writes the per-month tracking row. Failure is logged,
// not fatal: the rental itself already carries the invoice reference.
func (s *invoiceService) recordInvoice(ctx context.Context, rental *domain.Rental, sched billing.Schedule, invoiceID string, amount decimal.Decimal) {
	var month *string
	if sched.Monthly() {
		m := sched.BillingMonth
		month = &m
	}
	rec := &domain.RentalInvoice{
		ID:           uuid.New(),
		RentalID:     rental.ID,
		InvoiceID:    invoiceID,
		BillingMonth: month,
		InvoiceDate:  sched.PostingDate,
		DueDate:      sched.DueDate,
		Amount:       amount,
		Status:       "created",
	}
	if err := s.invoices.Create(ctx, rec); err != nil {
		s.log.Warn().Err(err).Str("invoice", invoiceID).
			Msg("invoiceService.recordInvoice: tracking row insert failed")
	}
}

// autoSubmit promotes a draft invoice to submitted. A failed submission
// leaves the invoice as a draft upstream and is reported as such.
func (s *invoiceService) autoSubmit(ctx context.Context, doc *erpnext.SalesInvoiceDoc) string {
	if doc.Docstatus != 0 && doc.Status != "Draft" {
		return doc.Status
	}
	if err := s.accounting.SubmitSalesInvoice(ctx, doc.Name); err != nil {
		s.log.Warn().Err(err).Str("invoice", doc.Name).
			Msg("invoiceService.autoSubmit: submission failed, invoice left as draft")
		return "Draft"
	}
	return "Submitted"
}

// newInvoiceNumber builds a short local label for the invoice.
func newInvoiceNumber(now time.Time) string {
	suffix := uuid.NewString()[:3]
	return fmt.Sprintf("INV-%s-%d", suffix, now.UnixMilli())
}
