package erpnext

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

const insertMethodPath = "/api/method/frappe.client.insert"

// attemptOutcome classifies one submission attempt so the single-retry
// contract is explicit: only a retryable primary failure triggers the
// method-endpoint fallback.
type attemptOutcome int

const (
	attemptSuccess attemptOutcome = iota
	attemptRetryable
	attemptFatal
)

func classifyAttempt(err error) attemptOutcome {
	if err == nil {
		return attemptSuccess
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Retryable() {
		return attemptRetryable
	}
	return attemptFatal
}

// InjectDefaultTax adds the single flat VAT row when the document
// carries no tax table. Documents that already have tax rows pass
// through untouched.
func InjectDefaultTax(inv *SalesInvoice, taxAccount string, rate float64) {
	if len(inv.Taxes) > 0 {
		return
	}
	inv.Taxes = []TaxCharge{{
		ChargeType:  "On Net Total",
		AccountHead: taxAccount,
		Description: fmt.Sprintf("VAT %g%%", rate),
		Rate:        rate,
	}}
}

// CreateSalesInvoice submits the invoice through the resource endpoint.
// A 404 or 417 triggers exactly one retry through the RPC-style insert
// method with the document wrapped in a doc envelope; when both fail
// the returned error carries diagnostics from both attempts. Other
// statuses fail immediately without a fallback.
func (c *Client) CreateSalesInvoice(ctx context.Context, inv *SalesInvoice) (*SalesInvoiceDoc, error) {
	inv.Doctype = doctypeSalesInvoice

	data, primaryErr := c.do(ctx, http.MethodPost, resourcePath(doctypeSalesInvoice), inv)
	switch classifyAttempt(primaryErr) {
	case attemptSuccess:
		return decodeInvoice(data)
	case attemptFatal:
		return nil, primaryErr
	}

	c.log.Warn().Err(primaryErr).
		Msg("erpnext.Client.CreateSalesInvoice: resource endpoint rejected document, retrying via method endpoint")

	data, fallbackErr := c.do(ctx, http.MethodPost, insertMethodPath, map[string]any{"doc": inv})
	if fallbackErr != nil {
		return nil, fmt.Errorf("sales invoice submission failed on both endpoints: primary: %v; fallback: %v",
			primaryErr, fallbackErr)
	}

	doc, err := decodeInvoice(data)
	if err != nil {
		return nil, err
	}
	c.log.Info().Str("invoice", doc.Name).
		Msg("erpnext.Client.CreateSalesInvoice: created via method endpoint fallback")
	return doc, nil
}

// GetSalesInvoice fetches an invoice document by name.
func (c *Client) GetSalesInvoice(ctx context.Context, name string) (*SalesInvoiceDoc, error) {
	var doc SalesInvoiceDoc
	if err := c.get(ctx, resourcePath(doctypeSalesInvoice, name), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// UpdateSalesInvoice writes the given fields onto an invoice document
// and returns the updated document. Docstatus transitions (submit,
// cancel) go through here as well.
func (c *Client) UpdateSalesInvoice(ctx context.Context, name string, fields map[string]any) (*SalesInvoiceDoc, error) {
	data, err := c.do(ctx, http.MethodPut, resourcePath(doctypeSalesInvoice, name), fields)
	if err != nil {
		return nil, err
	}
	return decodeInvoice(data)
}

// SubmitSalesInvoice moves a draft invoice to the submitted state.
func (c *Client) SubmitSalesInvoice(ctx context.Context, name string) error {
	_, err := c.UpdateSalesInvoice(ctx, name, map[string]any{"docstatus": 1})
	return err
}

// CancelSalesInvoice cancels a submitted invoice.
func (c *Client) CancelSalesInvoice(ctx context.Context, name string) error {
	_, err := c.UpdateSalesInvoice(ctx, name, map[string]any{"docstatus": 2})
	return err
}

// ListInvoicesByCustomer returns invoice headers for one customer.
func (c *Client) ListInvoicesByCustomer(ctx context.Context, customer string) ([]SalesInvoiceDoc, error) {
	filters, err := json.Marshal([][]string{{"customer", "=", customer}})
	if err != nil {
		return nil, fmt.Errorf("building invoice filters: %w", err)
	}
	q := url.Values{
		"filters":           {string(filters)},
		"fields":            {`["name","status","posting_date","due_date","grand_total","outstanding_amount"]`},
		"limit_page_length": {listPageLength},
	}
	var out []SalesInvoiceDoc
	if err := c.get(ctx, resourcePath(doctypeSalesInvoice)+"?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeInvoice(data json.RawMessage) (*SalesInvoiceDoc, error) {
	var doc SalesInvoiceDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding sales invoice response: %w", err)
	}
	return &doc, nil
}
