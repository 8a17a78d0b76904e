// Package fatturalib provides a public API for extracting structured data
// from Italian Fattura Elettronica XML documents.
//
// Example usage:
//
//	p := fatturalib.NewProcessor(fatturalib.DefaultOptions())
//	result := p.ProcessFile(ctx, "fattura.xml")
//	if result.Success() {
//	    fmt.Println(result.Record.Document.Number)
//	}
package fatturalib

import "github.com/rezonia/fattura-processor/internal/model"

// Re-export core types for the public API
type (
	InvoiceRecord = model.InvoiceRecord
	Header        = model.Header
	Party         = model.Party
	Address       = model.Address
	LineItem      = model.LineItem
	Payment       = model.Payment
	TaxLine       = model.TaxLine
	Metrics       = model.Metrics
	ErrorKind     = model.ErrorKind
	ProcessError  = model.ProcessError
)

// Re-export error kinds
const (
	KindFileNotFound      = model.KindFileNotFound
	KindEmptyFile         = model.KindEmptyFile
	KindMalformedXML      = model.KindMalformedXML
	KindExtractionFailure = model.KindExtractionFailure
	KindUnexpectedFailure = model.KindUnexpectedFailure
)

// Prune recursively removes empty values from a generic structure.
func Prune(v any) any {
	return model.Prune(v)
}
