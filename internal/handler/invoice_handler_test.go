package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sndbilling/internal/domain"
	"sndbilling/internal/erpnext"
	"sndbilling/internal/service"
	mocks "sndbilling/mocks/servicemocks"
)

func setupRouter(svc service.InvoiceService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewInvoiceHandler(svc)
	r.POST("/api/v1/rentals/:id/invoices", h.Generate)
	r.GET("/api/v1/rentals/:id/invoices", h.List)
	r.DELETE("/api/v1/rentals/:id/invoices/:invoice_id", h.Cancel)
	r.GET("/api/v1/customers/:id/invoices", h.ListByCustomer)
	return r
}

func TestGenerate_Success(t *testing.T) {
	svc := new(mocks.MockInvoiceService)
	svc.On("GenerateInvoice", mock.Anything, service.GenerateInvoiceInput{
		RentalID:     42,
		BillingMonth: "2025-03",
	}).Return(&service.GenerateInvoiceResult{InvoiceID: "ACC-SINV-2025-00001", Status: "Submitted"}, nil)

	body := bytes.NewBufferString(`{"billing_month":"2025-03"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/rentals/42/invoices", body)
	w := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	svc.AssertExpectations(t)
}

func TestGenerate_EmptyBodyIsAdHoc(t *testing.T) {
	svc := new(mocks.MockInvoiceService)
	svc.On("GenerateInvoice", mock.Anything, service.GenerateInvoiceInput{RentalID: 42}).
		Return(&service.GenerateInvoiceResult{InvoiceID: "ACC-SINV-2025-00002"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/rentals/42/invoices", nil)
	w := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestGenerate_InvalidID(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/rentals/abc/invoices", nil)
	w := httptest.NewRecorder()
	setupRouter(new(mocks.MockInvoiceService)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerate_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"not billable", domain.ErrRentalNotBillable, http.StatusBadRequest, "RENTAL_NOT_BILLABLE"},
		{"zero total", domain.ErrInvalidTotalAmount, http.StatusBadRequest, "INVALID_TOTAL_AMOUNT"},
		{"no items", domain.ErrNoBillableItems, http.StatusBadRequest, "NO_BILLABLE_ITEMS"},
		{"bad month", domain.ErrInvalidBillingMonth, http.StatusBadRequest, "INVALID_BILLING_MONTH"},
		{"duplicate", domain.ErrInvoiceExists, http.StatusConflict, "INVOICE_EXISTS"},
		{"missing config", &erpnext.ConfigError{Missing: []string{"SNDBILL_ERPNEXT_API_KEY"}}, http.StatusInternalServerError, "CONFIG_ERROR"},
		{"upstream failure", &erpnext.APIError{Status: 500, Endpoint: "/api/resource/Sales Invoice"}, http.StatusBadGateway, "UPSTREAM_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockInvoiceService)
			svc.On("GenerateInvoice", mock.Anything, mock.Anything).Return(nil, tt.err)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/rentals/42/invoices", nil)
			w := httptest.NewRecorder()
			setupRouter(svc).ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code)

			var resp APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestList_Success(t *testing.T) {
	svc := new(mocks.MockInvoiceService)
	svc.On("ListInvoices", mock.Anything, int64(42)).Return([]domain.RentalInvoice{
		{RentalID: 42, InvoiceID: "ACC-SINV-2025-00001"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rentals/42/invoices", nil)
	w := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ACC-SINV-2025-00001")
}

func TestCancel_Success(t *testing.T) {
	svc := new(mocks.MockInvoiceService)
	svc.On("CancelInvoice", mock.Anything, int64(42), "ACC-SINV-2025-00001").Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/rentals/42/invoices/ACC-SINV-2025-00001", nil)
	w := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"cancelled"`)
	svc.AssertExpectations(t)
}

func TestCancel_UnknownInvoice(t *testing.T) {
	svc := new(mocks.MockInvoiceService)
	svc.On("CancelInvoice", mock.Anything, int64(42), "ACC-SINV-2025-00099").Return(domain.ErrNotFound)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/rentals/42/invoices/ACC-SINV-2025-00099", nil)
	w := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListByCustomer_Success(t *testing.T) {
	svc := new(mocks.MockInvoiceService)
	svc.On("ListCustomerInvoices", mock.Anything, int64(7)).Return([]erpnext.SalesInvoiceDoc{
		{Name: "ACC-SINV-2025-00001", Status: "Paid"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers/7/invoices", nil)
	w := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ACC-SINV-2025-00001")
}

func TestListByCustomer_InvalidID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers/abc/invoices", nil)
	w := httptest.NewRecorder()
	setupRouter(new(mocks.MockInvoiceService)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
