package output

import (
	"github.com/xuri/excelize/v2"

	"github.com/rezonia/fattura-processor/internal/processor"
)

// WriteXLSX writes a workbook with an Invoices sheet and a Metrics sheet,
// mirroring the CSV and metrics-CSV column layouts.
func WriteXLSX(path string, results []*processor.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	invoices := f.GetSheetName(0)
	if err := f.SetSheetName(invoices, "Invoices"); err != nil {
		return err
	}
	if _, err := f.NewSheet("Metrics"); err != nil {
		return err
	}

	setRow := func(sheet string, row int, values []any) error {
		for i, v := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
		return nil
	}

	if err := setRow("Invoices", 1, toAny(invoiceColumns)); err != nil {
		return err
	}
	if err := setRow("Metrics", 1, toAny(metricsColumns)); err != nil {
		return err
	}

	row := 2
	for _, res := range results {
		if !res.Success() {
			continue
		}
		rec := res.Record
		err := setRow("Invoices", row, []any{
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
			rec.Document.TotalAmount,
			len(rec.LineItems),
		})
		if err != nil {
			return err
		}
		err = setRow("Metrics", row, []any{
			res.File,
			res.Metrics.LineItemCount,
			res.Metrics.TotalGrossAmount,
			res.Metrics.TaxSummaryPresent,
		})
		if err != nil {
			return err
		}
		row++
	}

	return f.SaveAs(path)
}

func toAny(columns []string) []any {
	out := make([]any, len(columns))
	for i, c := range columns {
		out[i] = c
	}
	return out
}
