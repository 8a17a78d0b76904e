package output

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rezonia/fattura-processor/internal/processor"
)

var invoiceColumns = []string{
	"file",
	"supplier_name",
	"supplier_fiscal_code",
	"supplier_vat_number",
	"customer_name",
	"customer_fiscal_code",
	"customer_vat_number",
	"document_type",
	"document_number",
	"document_date",
	"currency",
	"total_amount",
	"line_items",
}

// WriteCSV writes one flattened row per successful invoice.
func WriteCSV(w io.Writer, results []*processor.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(invoiceColumns); err != nil {
		return err
	}

	for _, res := range results {
		if !res.Success() {
			continue
		}
		rec := res.Record
		row := []string{
			res.File,
			rec.Header.Supplier.Name,
			rec.Header.Supplier.FiscalCode,
			rec.Header.Supplier.VATNumber,
			rec.Header.Customer.Name,
			rec.Header.Customer.FiscalCode,
			rec.Header.Customer.VATNumber,
			rec.Document.Type,
			rec.Document.Number,
			rec.Document.Date,
			rec.Document.Currency,
			formatFloat(rec.Document.TotalAmount),
			strconv.Itoa(len(rec.LineItems)),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

var metricsColumns = []string{
	"file",
	"line_items_count",
	"total_gross_amount",
	"vat_summary_available",
}

// WriteMetricsCSV writes the per-invoice metrics companion, one row per
// successful invoice.
func WriteMetricsCSV(w io.Writer, results []*processor.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(metricsColumns); err != nil {
		return err
	}

	for _, res := range results {
		if !res.Success() {
			continue
		}
		m := res.Metrics
		row := []string{
			res.File,
			strconv.Itoa(m.LineItemCount),
			formatFloat(m.TotalGrossAmount),
			strconv.FormatBool(m.TaxSummaryPresent),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
