package model

import "encoding/json"

// InvoiceRecord is the normalized output for one Fattura Elettronica document.
// It is assembled once per input file and not mutated afterwards; serialization
// goes through Pruned so empty values never reach the output.
type InvoiceRecord struct {
	Header     Header     `json:"header"`
	Document   Document   `json:"document"`
	LineItems  []LineItem `json:"line_items"`
	Payment    Payment    `json:"payment"`
	TaxSummary []TaxLine  `json:"tax_summary"`
}

// Header holds the two party identity blocks of the invoice header.
type Header struct {
	Supplier Party `json:"supplier"`
	Customer Party `json:"customer"`
}

// Party is a supplier or customer identity block.
type Party struct {
	Name       string  `json:"name"`
	FiscalCode string  `json:"fiscal_code"`
	VATNumber  string  `json:"vat_number"`
	Address    Address `json:"address"`
}

// Address is the registered office of a party.
type Address struct {
	Street     string `json:"street"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
	Province   string `json:"province"`
	Country    string `json:"country"`
}

// Document holds the general document data block.
type Document struct {
	Type        string  `json:"type"`
	Number      string  `json:"number"`
	Date        string  `json:"date"`
	Currency    string  `json:"currency"`
	TotalAmount float64 `json:"total_amount"`
}

// LineItem is one detail line. LineNumber is passed through exactly as the
// document declares it: values may repeat or skip, and document order is the
// only ordering guarantee.
type LineItem struct {
	LineNumber  int     `json:"line_number"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
	VATRate     float64 `json:"vat_rate"`
	VATNature   string  `json:"vat_nature"`
}

// Payment holds the first payment-detail block, if any.
type Payment struct {
	Method string `json:"method"`
	Terms  string `json:"terms"`
	IBAN   string `json:"iban"`
}

// TaxLine is one VAT-summary bucket. Duplicate rates pass through as given.
type TaxLine struct {
	Rate    float64 `json:"rate"`
	Taxable float64 `json:"taxable"`
	Amount  float64 `json:"amount"`
}

// Metrics are lightweight per-invoice extraction quality indicators.
type Metrics struct {
	LineItemCount     int     `json:"line_items_count"`
	TotalGrossAmount  float64 `json:"total_gross_amount"`
	TaxSummaryPresent bool    `json:"vat_summary_available"`
}

// Pruned returns the record as a generic map with empty values removed,
// ready for serialization. The JSON round trip keeps the output key names
// in one place (the struct tags).
func (r InvoiceRecord) Pruned() (map[string]any, error) {
	raw, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	pruned, _ := Prune(m).(map[string]any)
	if pruned == nil {
		pruned = map[string]any{}
	}
	return pruned, nil
}
