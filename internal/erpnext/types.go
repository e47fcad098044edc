package erpnext

// Doctype names used when inserting documents through the RPC-style
// method endpoint, which requires them inline.
const (
	doctypeSalesInvoice = "Sales Invoice"
	doctypeItem         = "Item"
)

// SalesInvoice is the outbound invoice document. Amounts are plain
// floats at the wire boundary; decimal math happens upstream.
type SalesInvoice struct {
	Doctype           string        `json:"doctype"`
	NamingSeries      string        `json:"naming_series,omitempty"`
	Customer          string        `json:"customer"`
	CustomerName      string        `json:"customer_name,omitempty"`
	PostingDate       string        `json:"posting_date"`
	DueDate           string        `json:"due_date"`
	SetPostingTime    int           `json:"set_posting_time,omitempty"`
	Company           string        `json:"company"`
	DebitTo           string        `json:"debit_to,omitempty"`
	CustomSubject     string        `json:"custom_subject,omitempty"`
	CustomFrom        string        `json:"custom_from,omitempty"`
	CustomTo          string        `json:"custom_to,omitempty"`
	Currency          string        `json:"currency"`
	ConversionRate    float64       `json:"conversion_rate,omitempty"`
	SellingPriceList  string        `json:"selling_price_list,omitempty"`
	PriceListCurrency string        `json:"price_list_currency,omitempty"`
	PLCConversionRate float64       `json:"plc_conversion_rate,omitempty"`
	Items             []InvoiceItem `json:"items"`
	Taxes             []TaxCharge   `json:"taxes,omitempty"`
}

// InvoiceItem is one line on a sales invoice.
type InvoiceItem struct {
	ItemCode         string  `json:"item_code"`
	ItemName         string  `json:"item_name,omitempty"`
	Description      string  `json:"description,omitempty"`
	Qty              float64 `json:"qty"`
	Rate             float64 `json:"rate"`
	Amount           float64 `json:"amount"`
	UOM              string  `json:"uom,omitempty"`
	ConversionFactor float64 `json:"conversion_factor,omitempty"`
	IncomeAccount    string  `json:"income_account,omitempty"`
	CostCenter       string  `json:"cost_center,omitempty"`
	BaseRate         float64 `json:"base_rate,omitempty"`
	BaseAmount       float64 `json:"base_amount,omitempty"`
}

// TaxCharge is one row of the sales taxes and charges table.
type TaxCharge struct {
	ChargeType  string  `json:"charge_type"`
	AccountHead string  `json:"account_head"`
	Description string  `json:"description,omitempty"`
	Rate        float64 `json:"rate"`
}

// SalesInvoiceDoc is the created invoice as the backend returns it.
type SalesInvoiceDoc struct {
	Name              string  `json:"name"`
	Status            string  `json:"status"`
	Docstatus         int     `json:"docstatus"`
	Customer          string  `json:"customer"`
	PostingDate       string  `json:"posting_date"`
	DueDate           string  `json:"due_date"`
	Total             float64 `json:"total"`
	GrandTotal        float64 `json:"grand_total"`
	OutstandingAmount float64 `json:"outstanding_amount"`
}

// CustomerRef is a local reference used to resolve the customer in the
// accounting backend: a stored external id when present, else a name.
type CustomerRef struct {
	ExternalID string
	Name       string
}

// CustomerSummary is a customer search result row.
type CustomerSummary struct {
	Name         string `json:"name"`
	CustomerName string `json:"customer_name"`
}

// CompanyLink is one row of a customer's company sub-collections.
type CompanyLink struct {
	Company string `json:"company"`
}

// CustomerDetail is a full customer record, including the sub-collections
// inspected for company linkage.
type CustomerDetail struct {
	Name           string        `json:"name"`
	CustomerName   string        `json:"customer_name"`
	DefaultCompany string        `json:"default_company"`
	Accounts       []CompanyLink `json:"accounts"`
	Companies      []CompanyLink `json:"companies"`
}

// Account is a ledger account record.
type Account struct {
	Name        string `json:"name"`
	AccountName string `json:"account_name"`
	AccountType string `json:"account_type"`
	Company     string `json:"company"`
	IsGroup     int    `json:"is_group"`
}

// CostCenter is a cost center record.
type CostCenter struct {
	Name    string `json:"name"`
	IsGroup int    `json:"is_group"`
}

// Item is a billable item record.
type Item struct {
	Name      string `json:"name"`
	ItemCode  string `json:"item_code"`
	ItemName  string `json:"item_name"`
	ItemGroup string `json:"item_group"`
	StockUOM  string `json:"stock_uom"`
	Disabled  int    `json:"disabled"`
}

// ServiceItem is the resolved billable item an invoice line refers to.
type ServiceItem struct {
	Code string
	Name string
}

// Company is a company record.
type Company struct {
	Name string `json:"name"`
}
