package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sndbilling/internal/service"
)

// InvoiceHandler serves invoice generation and listing for rentals.
type InvoiceHandler struct {
	invoices service.InvoiceService
}

func NewInvoiceHandler(invoices service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices}
}

type generateInvoiceRequest struct {
	BillingMonth  string `json:"billing_month"`
	InvoiceNumber string `json:"invoice_number"`
}

// Generate handles POST /api/v1/rentals/:id/invoices.
//
// @Summary Generate an invoice for a rental
// @Description Assemble and submit a sales invoice to the accounting backend for the given rental and optional billing month
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path int true "Rental ID"
// @Param request body generateInvoiceRequest false "Billing month (YYYY-MM) and optional invoice label"
// @Success 201 {object} APIResponse{data=service.GenerateInvoiceResult} "Invoice created"
// @Failure 400 {object} APIResponse "Validation failure"
// @Failure 404 {object} APIResponse "Rental not found"
// @Failure 409 {object} APIResponse "Invoice already exists for the month"
// @Failure 502 {object} APIResponse "Accounting backend rejected the document"
// @Router /api/v1/rentals/{id}/invoices [post]
func (h *InvoiceHandler) Generate(c *gin.Context) {
	rentalID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "rental id must be an integer")
		return
	}

	var req generateInvoiceRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON")
			return
		}
	}

	result, err := h.invoices.GenerateInvoice(c.Request.Context(), service.GenerateInvoiceInput{
		RentalID:      rentalID,
		BillingMonth:  req.BillingMonth,
		InvoiceNumber: req.InvoiceNumber,
	})
	if err != nil {
		status, code, msg := MapDomainError(err)
		RespondError(c, status, code, msg)
		return
	}
	RespondCreated(c, result)
}

// List handles GET /api/v1/rentals/:id/invoices.
//
// @Summary List invoices tracked for a rental
// @Tags invoices
// @Produce json
// @Param id path int true "Rental ID"
// @Success 200 {object} APIResponse{data=[]domain.RentalInvoice} "Tracked invoices"
// @Failure 404 {object} APIResponse "Rental not found"
// @Router /api/v1/rentals/{id}/invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	rentalID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "rental id must be an integer")
		return
	}

	records, err := h.invoices.ListInvoices(c.Request.Context(), rentalID)
	if err != nil {
		status, code, msg := MapDomainError(err)
		RespondError(c, status, code, msg)
		return
	}
	RespondOK(c, records)
}

// Cancel handles DELETE /api/v1/rentals/:id/invoices/:invoice_id.
//
// @Summary Cancel an invoice
// @Description Cancel the invoice in the accounting backend and mark its local tracking row
// @Tags invoices
// @Produce json
// @Param id path int true "Rental ID"
// @Param invoice_id path string true "Invoice document name"
// @Success 200 {object} APIResponse "Invoice cancelled"
// @Failure 404 {object} APIResponse "Rental or invoice not found"
// @Failure 502 {object} APIResponse "Accounting backend rejected the cancellation"
// @Router /api/v1/rentals/{id}/invoices/{invoice_id} [delete]
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	rentalID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "rental id must be an integer")
		return
	}
	invoiceID := c.Param("invoice_id")

	if err := h.invoices.CancelInvoice(c.Request.Context(), rentalID, invoiceID); err != nil {
		status, code, msg := MapDomainError(err)
		RespondError(c, status, code, msg)
		return
	}
	RespondOK(c, gin.H{"invoice_id": invoiceID, "status": "cancelled"})
}

// ListByCustomer handles GET /api/v1/customers/:id/invoices.
//
// @Summary List a customer's invoices from the accounting backend
// @Tags invoices
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} APIResponse{data=[]erpnext.SalesInvoiceDoc} "Invoice headers"
// @Failure 404 {object} APIResponse "Customer not found"
// @Failure 502 {object} APIResponse "Accounting backend unavailable"
// @Router /api/v1/customers/{id}/invoices [get]
func (h *InvoiceHandler) ListByCustomer(c *gin.Context) {
	customerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "customer id must be an integer")
		return
	}

	docs, err := h.invoices.ListCustomerInvoices(c.Request.Context(), customerID)
	if err != nil {
		status, code, msg := MapDomainError(err)
		RespondError(c, status, code, msg)
		return
	}
	RespondOK(c, docs)
}
