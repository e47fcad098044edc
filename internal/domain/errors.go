package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrRentalNotBillable   = errors.New("cannot generate invoice for cancelled or draft rental")
	ErrMissingCustomer     = errors.New("customer information is missing from rental data")
	ErrInvalidTotalAmount  = errors.New("rental total amount is invalid or zero")
	ErrNoBillableItems     = errors.New("no rental items active in the requested billing period")
	ErrInvoiceExists       = errors.New("invoice already exists for this rental and billing period")
	ErrInvalidBillingMonth = errors.New("billing month must be in YYYY-MM format")
)
