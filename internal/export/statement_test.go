package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"sndbilling/internal/domain"
)

func TestWriteXLSX(t *testing.T) {
	month := "2025-03"
	st := &Statement{
		Rental: &domain.Rental{
			RentalNumber:  "RNT-0042",
			CustomerName:  "Al Rajhi Trading",
			Status:        domain.RentalStatusActive,
			StartDate:     time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
			TotalAmount:   decimal.NewFromInt(6200),
			PaymentStatus: "pending",
		},
		Lines: []Line{
			{
				Equipment: "Excavator CAT 320",
				Period:    "2025-03-01 to 2025-03-31",
				Qty:       decimal.NewFromInt(31),
				UOM:       "Day",
				Rate:      decimal.NewFromInt(200),
				Amount:    decimal.NewFromInt(6200),
			},
		},
		Subtotal:   decimal.NewFromInt(6200),
		VATRate:    15,
		VATAmount:  decimal.NewFromInt(930),
		GrandTotal: decimal.NewFromInt(7130),
		Invoices: []domain.RentalInvoice{
			{
				InvoiceID:    "ACC-SINV-2025-00001",
				BillingMonth: &month,
				InvoiceDate:  time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
				DueDate:      time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC),
				Amount:       decimal.NewFromInt(7130),
				Status:       "created",
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, st))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetName}, f.GetSheetList())

	rentalNumber, err := f.GetCellValue(sheetName, "B1")
	require.NoError(t, err)
	assert.Equal(t, "RNT-0042", rentalNumber)

	// Line header sits one blank row below the six summary rows.
	header, err := f.GetCellValue(sheetName, "A8")
	require.NoError(t, err)
	assert.Equal(t, "Equipment", header)

	equipment, err := f.GetCellValue(sheetName, "A9")
	require.NoError(t, err)
	assert.Equal(t, "Excavator CAT 320", equipment)
	amount, err := f.GetCellValue(sheetName, "F9")
	require.NoError(t, err)
	assert.Equal(t, "6200", amount)

	// Totals follow the single line row.
	subtotalLabel, err := f.GetCellValue(sheetName, "E10")
	require.NoError(t, err)
	assert.Equal(t, "Subtotal", subtotalLabel)
	vatLabel, err := f.GetCellValue(sheetName, "E11")
	require.NoError(t, err)
	assert.Equal(t, "VAT 15%", vatLabel)
	vatAmount, err := f.GetCellValue(sheetName, "F11")
	require.NoError(t, err)
	assert.Equal(t, "930", vatAmount)
	grandLabel, err := f.GetCellValue(sheetName, "E12")
	require.NoError(t, err)
	assert.Equal(t, "Grand Total", grandLabel)
	grandTotal, err := f.GetCellValue(sheetName, "F12")
	require.NoError(t, err)
	assert.Equal(t, "7130", grandTotal)

	invoiceHeader, err := f.GetCellValue(sheetName, "A14")
	require.NoError(t, err)
	assert.Equal(t, "Invoice ID", invoiceHeader)
	invoiceID, err := f.GetCellValue(sheetName, "A15")
	require.NoError(t, err)
	assert.Equal(t, "ACC-SINV-2025-00001", invoiceID)
	billingMonth, err := f.GetCellValue(sheetName, "B15")
	require.NoError(t, err)
	assert.Equal(t, "2025-03", billingMonth)
}

func TestWriteXLSX_Empty(t *testing.T) {
	st := &Statement{
		Rental: &domain.Rental{
			RentalNumber: "RNT-0001",
			CustomerName: "Acme",
			Status:       domain.RentalStatusActive,
			StartDate:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		VATRate: 15,
	}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, st))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	// Summary, line header, totals and invoice header with no data rows.
	assert.Len(t, rows, 13)

	subtotal, err := f.GetCellValue(sheetName, "F9")
	require.NoError(t, err)
	assert.Equal(t, "0", subtotal)
}
