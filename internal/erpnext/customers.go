package erpnext

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

const customerSearchLimit = 10

// ResolveCompany returns the invoicing company name the backend reports,
// falling back to the configured default when the lookup fails or comes
// back empty. The lookup is read-only and failure is not fatal.
func (c *Client) ResolveCompany(ctx context.Context) string {
	var companies []Company
	q := url.Values{"limit_page_length": {"1"}}
	if err := c.get(ctx, resourcePath("Company")+"?"+q.Encode(), &companies); err != nil {
		c.log.Warn().Err(err).Str("default", c.defaultCompany).
			Msg("erpnext.Client.ResolveCompany: lookup failed, using default")
		return c.defaultCompany
	}
	if len(companies) == 0 {
		return c.defaultCompany
	}
	return companies[0].Name
}

// IsLinkedToCompany reports whether a customer record references the
// given company in its accounts or companies sub-collections or as its
// default company. Comparison trims whitespace and is otherwise exact,
// matching the backend's own naming.
func IsLinkedToCompany(detail *CustomerDetail, company string) bool {
	target := strings.TrimSpace(company)
	for _, a := range detail.Accounts {
		if strings.TrimSpace(a.Company) == target {
			return true
		}
	}
	for _, cl := range detail.Companies {
		if strings.TrimSpace(cl.Company) == target {
			return true
		}
	}
	return strings.TrimSpace(detail.DefaultCompany) == target
}

// FirstLinked walks candidates in order and returns the name of the
// first one whose fetched detail passes the company-linkage check.
// Fetch failures skip the candidate.
func FirstLinked(
	candidates []CustomerSummary,
	company string,
	fetch func(name string) (*CustomerDetail, error),
) (string, bool) {
	for _, cand := range candidates {
		detail, err := fetch(cand.Name)
		if err != nil {
			continue
		}
		if IsLinkedToCompany(detail, company) {
			return cand.Name, true
		}
	}
	return "", false
}

// PickFallback selects a customer name when no linked candidate exists:
// an exact match on name or display name, else the first search result,
// else the raw name itself.
func PickFallback(candidates []CustomerSummary, rawName string) string {
	for _, cand := range candidates {
		if cand.Name == rawName || cand.CustomerName == rawName {
			return cand.Name
		}
	}
	if len(candidates) > 0 {
		return candidates[0].Name
	}
	return rawName
}

// GetCustomer fetches a full customer record by its backend name.
func (c *Client) GetCustomer(ctx context.Context, name string) (*CustomerDetail, error) {
	var detail CustomerDetail
	if err := c.get(ctx, resourcePath("Customer", name), &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// SearchCustomers searches customers by partial display-name match.
func (c *Client) SearchCustomers(ctx context.Context, name string) ([]CustomerSummary, error) {
	filters, err := json.Marshal([][]string{
		{"customer_name", "like", "%" + strings.TrimSpace(name) + "%"},
	})
	if err != nil {
		return nil, fmt.Errorf("building customer filters: %w", err)
	}
	q := url.Values{
		"filters":           {string(filters)},
		"fields":            {`["name","customer_name"]`},
		"limit_page_length": {fmt.Sprint(customerSearchLimit)},
	}

	var out []CustomerSummary
	if err := c.get(ctx, resourcePath("Customer")+"?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ResolveCustomer maps a local customer reference to the name the
// backend knows the customer by. Priority order:
//
//  1. a stored external id whose record verifies as linked to company;
//  2. the first linked candidate among name-search results;
//  3. an exact-name match among results, else the first result;
//  4. the raw name (submission may still fail downstream).
//
// Resolution is best-effort and never blocks invoice creation; lookup
// failures degrade down the chain with a logged warning.
func (c *Client) ResolveCustomer(ctx context.Context, ref CustomerRef, company string) string {
	if ref.ExternalID != "" {
		detail, err := c.GetCustomer(ctx, ref.ExternalID)
		switch {
		case err != nil:
			c.log.Warn().Err(err).Str("external_id", ref.ExternalID).
				Msg("erpnext.Client.ResolveCustomer: stored id fetch failed, falling back to search")
		case IsLinkedToCompany(detail, company):
			return ref.ExternalID
		default:
			// Stale local ids pointing at unlinked records cause 417s
			// at submission, so an unlinked record is treated as a miss.
			c.log.Warn().Str("external_id", ref.ExternalID).Str("company", company).
				Msg("erpnext.Client.ResolveCustomer: stored id not linked to company, falling back to search")
		}
	}

	candidates, err := c.SearchCustomers(ctx, ref.Name)
	if err != nil {
		c.log.Warn().Err(err).Str("customer", ref.Name).
			Msg("erpnext.Client.ResolveCustomer: search failed, using raw name")
		return ref.Name
	}

	if name, ok := FirstLinked(candidates, company, func(name string) (*CustomerDetail, error) {
		return c.GetCustomer(ctx, name)
	}); ok {
		return name
	}

	resolved := PickFallback(candidates, ref.Name)
	if resolved != ref.Name {
		c.log.Warn().Str("customer", ref.Name).Str("resolved", resolved).Str("company", company).
			Msg("erpnext.Client.ResolveCustomer: no candidate linked to company, using fallback")
	}
	return resolved
}
