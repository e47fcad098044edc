package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"sndbilling/internal/billing"
	"sndbilling/internal/config"
	"sndbilling/internal/export"
	"sndbilling/internal/port"
)

// StatementService renders per-rental billing statements.
type StatementService interface {
	// WriteStatement renders the statement for the given billing month
	// ("YYYY-MM") or, when empty, for the current payment-terms window.
	WriteStatement(ctx context.Context, rentalID int64, billingMonth string, w io.Writer) error
}

type statementService struct {
	rentals    port.RentalRepository
	invoices   port.InvoiceRecordRepository
	billingCfg config.BillingConfig
	now        func() time.Time
}

func NewStatementService(rentals port.RentalRepository, invoices port.InvoiceRecordRepository, billingCfg config.BillingConfig) StatementService {
	return &statementService{
		rentals:    rentals,
		invoices:   invoices,
		billingCfg: billingCfg,
		now:        time.Now,
	}
}

func (s *statementService) WriteStatement(ctx context.Context, rentalID int64, billingMonth string, w io.Writer) error {
	rental, err := s.rentals.GetByID(ctx, rentalID)
	if err != nil {
		return fmt.Errorf("statementService.WriteStatement: %w", err)
	}

	now := s.now().UTC()
	sched, err := billing.ComputeSchedule(rental, billingMonth, s.billingCfg.PaymentTermsDays, now)
	if err != nil {
		return err
	}

	allItems, err := s.rentals.ListItems(ctx, rentalID)
	if err != nil {
		return fmt.Errorf("statementService.WriteStatement: %w", err)
	}
	items := billing.FilterActive(allItems, rental, sched, now)
	billing.SortForInvoice(items)

	period := sched.FromDate.Format("2006-01-02") + " to " + sched.ToDate.Format("2006-01-02")
	lines := make([]export.Line, 0, len(items))
	subtotal := decimal.Zero
	for _, item := range items {
		// Statement lines bill by calendar; recorded hours only affect
		// the submitted invoice.
		bl := billing.BuildLine(item, rental, sched, decimal.Zero, false, now)
		lines = append(lines, export.Line{
			Equipment: item.EquipmentName,
			Period:    period,
			Qty:       bl.Qty,
			UOM:       bl.UOM,
			Rate:      bl.Rate,
			Amount:    bl.Amount,
		})
		subtotal = subtotal.Add(bl.Amount)
	}
	vat := subtotal.Mul(decimal.NewFromFloat(s.billingCfg.VATRate)).Div(decimal.NewFromInt(100))

	records, err := s.invoices.ListByRental(ctx, rentalID)
	if err != nil {
		return fmt.Errorf("statementService.WriteStatement: %w", err)
	}

	return export.WriteXLSX(w, &export.Statement{
		Rental:     rental,
		Lines:      lines,
		Subtotal:   subtotal,
		VATRate:    s.billingCfg.VATRate,
		VATAmount:  vat,
		GrandTotal: subtotal.Add(vat),
		Invoices:   records,
	})
}
