package export

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"sndbilling/internal/domain"
)

const sheetName = "Billing Statement"

// lineColumns heads the billable-line table.
var lineColumns = []string{
	"Equipment",
	"Period",
	"Qty",
	"UOM",
	"Rate",
	"Amount",
}

// invoiceColumns heads the invoice history table.
var invoiceColumns = []string{
	"Invoice ID",
	"Billing Month",
	"Invoice Date",
	"Due Date",
	"Amount",
	"Status",
}

// Line is one billable row on the statement.
type Line struct {
	Equipment string
	Period    string
	Qty       decimal.Decimal
	UOM       string
	Rate      decimal.Decimal
	Amount    decimal.Decimal
}

// Statement is the data behind one exported billing statement: the
// rental summary, its billable lines with totals, and the invoice
// history recorded locally.
type Statement struct {
	Rental     *domain.Rental
	Lines      []Line
	Subtotal   decimal.Decimal
	VATRate    float64
	VATAmount  decimal.Decimal
	GrandTotal decimal.Decimal
	Invoices   []domain.RentalInvoice
}

// WriteXLSX renders the statement as an xlsx workbook: a rental summary
// block, the billable-line table with subtotal, VAT and grand total
// rows, then one row per tracked invoice.
func WriteXLSX(w io.Writer, st *Statement) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("creating statement sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	row := 1
	summary := [][]any{
		{"Rental Number", st.Rental.RentalNumber},
		{"Customer", st.Rental.CustomerName},
		{"Status", string(st.Rental.Status)},
		{"Start Date", st.Rental.StartDate.Format("2006-01-02")},
		{"Total Amount", st.Rental.TotalAmount.String()},
		{"Payment Status", st.Rental.PaymentStatus},
	}
	for _, pair := range summary {
		if err := writeRow(f, row, pair); err != nil {
			return err
		}
		row++
	}
	row++

	if err := writeRow(f, row, toRow(lineColumns)); err != nil {
		return err
	}
	row++
	for _, line := range st.Lines {
		cells := []any{
			line.Equipment,
			line.Period,
			line.Qty.InexactFloat64(),
			line.UOM,
			line.Rate.InexactFloat64(),
			line.Amount.InexactFloat64(),
		}
		if err := writeRow(f, row, cells); err != nil {
			return err
		}
		row++
	}

	totals := [][]any{
		{"", "", "", "", "Subtotal", st.Subtotal.InexactFloat64()},
		{"", "", "", "", fmt.Sprintf("VAT %g%%", st.VATRate), st.VATAmount.InexactFloat64()},
		{"", "", "", "", "Grand Total", st.GrandTotal.InexactFloat64()},
	}
	for _, cells := range totals {
		if err := writeRow(f, row, cells); err != nil {
			return err
		}
		row++
	}
	row++

	if err := writeRow(f, row, toRow(invoiceColumns)); err != nil {
		return err
	}
	row++
	for _, inv := range st.Invoices {
		if err := writeRow(f, row, invoiceToRow(inv)); err != nil {
			return err
		}
		row++
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, row int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("addressing row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
		return fmt.Errorf("writing row %d: %w", row, err)
	}
	return nil
}

func toRow(header []string) []any {
	out := make([]any, len(header))
	for i, h := range header {
		out[i] = h
	}
	return out
}

func invoiceToRow(inv domain.RentalInvoice) []any {
	month := ""
	if inv.BillingMonth != nil {
		month = *inv.BillingMonth
	}
	return []any{
		inv.InvoiceID,
		month,
		inv.InvoiceDate.Format("2006-01-02"),
		inv.DueDate.Format("2006-01-02"),
		inv.Amount.InexactFloat64(),
		inv.Status,
	}
}
