package erpnext

import (
	"context"
	"net/url"
	"strings"
)

// Fallback master-data names used when the backend holds no matching
// record and creation also fails. Submission with a stale name will
// surface a normal upstream error rather than failing here.
const (
	fallbackIncomeAccount     = "Service - SND"
	fallbackCostCenter        = "Main - SND"
	fallbackReceivableAccount = "Debtors - SND"
	fallbackTaxAccount        = "VAT - SND"
	serviceItemCode           = "RENTAL-SERVICE"
)

const listPageLength = "100"

func (c *Client) listAccounts(ctx context.Context) ([]Account, error) {
	q := url.Values{
		"fields":            {`["name","account_type","company","is_group"]`},
		"limit_page_length": {listPageLength},
	}
	var out []Account
	if err := c.get(ctx, resourcePath("Account")+"?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) listItems(ctx context.Context) ([]Item, error) {
	q := url.Values{
		"fields":            {`["name","item_name","item_group"]`},
		"limit_page_length": {listPageLength},
	}
	var out []Item
	if err := c.get(ctx, resourcePath("Item")+"?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindIncomeAccount locates the income account invoice lines post to.
// Preference order: the conventional sales account, then any income
// account mentioning service or rental, then any income account at
// all, then the fallback name.
func (c *Client) FindIncomeAccount(ctx context.Context) string {
	accounts, err := c.listAccounts(ctx)
	if err != nil {
		c.log.Warn().Err(err).Str("fallback", fallbackIncomeAccount).
			Msg("erpnext.Client.FindIncomeAccount: account listing failed")
		return fallbackIncomeAccount
	}

	income := filterAccounts(accounts, "Income")
	if name, ok := pickAccount(income, "Sales - SND"); ok {
		return name
	}
	for _, a := range income {
		lower := strings.ToLower(a.Name)
		if strings.Contains(lower, "service") || strings.Contains(lower, "rental") {
			return a.Name
		}
	}
	if len(income) > 0 {
		return income[0].Name
	}
	return fallbackIncomeAccount
}

// FindCostCenter locates a leaf cost center for invoice lines.
func (c *Client) FindCostCenter(ctx context.Context) string {
	q := url.Values{
		"filters":           {`[["is_group","=",0]]`},
		"fields":            {`["name","is_group"]`},
		"limit_page_length": {listPageLength},
	}
	var centers []CostCenter
	if err := c.get(ctx, resourcePath("Cost Center")+"?"+q.Encode(), &centers); err != nil {
		c.log.Warn().Err(err).Str("fallback", fallbackCostCenter).
			Msg("erpnext.Client.FindCostCenter: cost center listing failed")
		return fallbackCostCenter
	}

	for _, cc := range centers {
		if cc.Name == fallbackCostCenter {
			return cc.Name
		}
	}
	for _, cc := range centers {
		if strings.Contains(strings.ToLower(cc.Name), "main") {
			return cc.Name
		}
	}
	if len(centers) > 0 {
		return centers[0].Name
	}
	return fallbackCostCenter
}

// FindReceivableAccount locates the receivable account invoices debit.
func (c *Client) FindReceivableAccount(ctx context.Context) string {
	accounts, err := c.listAccounts(ctx)
	if err != nil {
		c.log.Warn().Err(err).Str("fallback", fallbackReceivableAccount).
			Msg("erpnext.Client.FindReceivableAccount: account listing failed")
		return fallbackReceivableAccount
	}

	receivable := filterAccounts(accounts, "Receivable")
	if name, ok := pickAccount(receivable, fallbackReceivableAccount); ok {
		return name
	}
	for _, a := range receivable {
		if strings.Contains(strings.ToLower(a.Name), "debtor") {
			return a.Name
		}
	}
	if len(receivable) > 0 {
		return receivable[0].Name
	}
	return fallbackReceivableAccount
}

// FindTaxAccount locates the output VAT account for the tax table,
// preferring accounts scoped to the invoicing company.
func (c *Client) FindTaxAccount(ctx context.Context, company string) string {
	accounts, err := c.listAccounts(ctx)
	if err != nil {
		c.log.Warn().Err(err).Str("fallback", fallbackTaxAccount).
			Msg("erpnext.Client.FindTaxAccount: account listing failed")
		return fallbackTaxAccount
	}

	tax := filterAccounts(accounts, "Tax")
	if company != "" {
		scoped := make([]Account, 0, len(tax))
		for _, a := range tax {
			if strings.TrimSpace(a.Company) == strings.TrimSpace(company) {
				scoped = append(scoped, a)
			}
		}
		if len(scoped) > 0 {
			tax = scoped
		}
	}

	for _, a := range tax {
		lower := strings.ToLower(a.Name)
		if strings.Contains(lower, "output") && strings.Contains(lower, "vat") && strings.Contains(lower, "15") {
			return a.Name
		}
	}
	for _, a := range tax {
		if strings.Contains(strings.ToLower(a.Name), "vat") {
			return a.Name
		}
	}
	if len(tax) > 0 {
		return tax[0].Name
	}
	return fallbackTaxAccount
}

// EnsureServiceItem resolves the generic billable item all rental lines
// reference, creating it when absent. The lookup is get-or-create: when
// a usable item already exists no create call is issued.
func (c *Client) EnsureServiceItem(ctx context.Context) (ServiceItem, error) {
	items, err := c.listItems(ctx)
	if err != nil {
		return ServiceItem{}, err
	}

	if item, ok := pickServiceItem(items); ok {
		return item, nil
	}

	payload := map[string]any{
		"doctype":       doctypeItem,
		"item_code":     serviceItemCode,
		"item_name":     "Rental Service",
		"item_group":    "Services",
		"stock_uom":     "Nos",
		"is_stock_item": 0,
	}
	if _, err := c.do(ctx, "POST", resourcePath(doctypeItem), payload); err != nil {
		c.log.Warn().Err(err).Msg("erpnext.Client.EnsureServiceItem: create failed, scanning for any usable item")
		if len(items) > 0 {
			return ServiceItem{Code: items[0].Name, Name: itemDisplayName(items[0])}, nil
		}
		return ServiceItem{}, err
	}
	return ServiceItem{Code: serviceItemCode, Name: "Rental Service"}, nil
}

// pickServiceItem returns the first existing item plausibly usable as
// the rental service item: exact code match first, then any item whose
// name or group mentions service or rental.
func pickServiceItem(items []Item) (ServiceItem, bool) {
	for _, it := range items {
		if it.Name == serviceItemCode {
			return ServiceItem{Code: it.Name, Name: itemDisplayName(it)}, true
		}
	}
	for _, it := range items {
		probe := strings.ToLower(it.Name + " " + it.ItemName + " " + it.ItemGroup)
		if strings.Contains(probe, "service") || strings.Contains(probe, "rental") {
			return ServiceItem{Code: it.Name, Name: itemDisplayName(it)}, true
		}
	}
	return ServiceItem{}, false
}

func itemDisplayName(it Item) string {
	if it.ItemName != "" {
		return it.ItemName
	}
	return it.Name
}

func filterAccounts(accounts []Account, accountType string) []Account {
	out := make([]Account, 0, len(accounts))
	for _, a := range accounts {
		if a.AccountType == accountType && a.IsGroup == 0 {
			out = append(out, a)
		}
	}
	return out
}

func pickAccount(accounts []Account, name string) (string, bool) {
	for _, a := range accounts {
		if a.Name == name {
			return a.Name, true
		}
	}
	return "", false
}
