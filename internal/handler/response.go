package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sndbilling/internal/domain"
	"sndbilling/internal/erpnext"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain and upstream errors to HTTP status
// codes and error codes. Upstream diagnostics are passed through so
// operators can see what the accounting backend rejected.
func MapDomainError(err error) (status int, code, msg string) {
	var cfgErr *erpnext.ConfigError
	var apiErr *erpnext.APIError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrRentalNotBillable):
		return http.StatusBadRequest, "RENTAL_NOT_BILLABLE", domain.ErrRentalNotBillable.Error()
	case errors.Is(err, domain.ErrMissingCustomer):
		return http.StatusBadRequest, "MISSING_CUSTOMER", domain.ErrMissingCustomer.Error()
	case errors.Is(err, domain.ErrInvalidTotalAmount):
		return http.StatusBadRequest, "INVALID_TOTAL_AMOUNT", domain.ErrInvalidTotalAmount.Error()
	case errors.Is(err, domain.ErrNoBillableItems):
		return http.StatusBadRequest, "NO_BILLABLE_ITEMS", domain.ErrNoBillableItems.Error()
	case errors.Is(err, domain.ErrInvalidBillingMonth):
		return http.StatusBadRequest, "INVALID_BILLING_MONTH", domain.ErrInvalidBillingMonth.Error()
	case errors.Is(err, domain.ErrInvoiceExists):
		return http.StatusConflict, "INVOICE_EXISTS", domain.ErrInvoiceExists.Error()
	case errors.As(err, &cfgErr):
		return http.StatusInternalServerError, "CONFIG_ERROR", cfgErr.Error()
	case errors.As(err, &apiErr):
		return http.StatusBadGateway, "UPSTREAM_ERROR", apiErr.Error()
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"
	}
}
