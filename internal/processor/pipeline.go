// Package processor assembles normalized invoice records and drives
// per-file and batch processing.
package processor

import (
	"time"

	"github.com/beevik/etree"

	"github.com/rezonia/fattura-processor/internal/config"
	"github.com/rezonia/fattura-processor/internal/model"
	"github.com/rezonia/fattura-processor/internal/money"
	xmlparser "github.com/rezonia/fattura-processor/internal/parser/xml"
)

// Pipeline assembles one InvoiceRecord from a parsed document: it runs the
// section extractors, applies business-rule normalization, and computes the
// per-invoice metrics. Assembly never fails for missing fields, only for a
// structurally unusable document.
type Pipeline struct {
	parser *xmlparser.Parser
	cfg    *config.Config
}

// NewPipeline creates a pipeline with the given configuration snapshot.
func NewPipeline(cfg *config.Config) *Pipeline {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Pipeline{
		parser: xmlparser.NewParser(),
		cfg:    cfg,
	}
}

// Run extracts, normalizes, and measures one loaded document.
func (p *Pipeline) Run(doc *etree.Document) (*model.InvoiceRecord, *model.Metrics, error) {
	record, err := p.parser.Extract(doc)
	if err != nil {
		return nil, nil, err
	}
	p.normalize(record)
	return record, p.metrics(record), nil
}

// normalize applies the configured business rules. Unlike pruning this
// mutates extracted data: a missing currency becomes the default currency
// and an absent or zero VAT rate becomes the default rate.
func (p *Pipeline) normalize(record *model.InvoiceRecord) {
	if record.Document.Currency == "" {
		record.Document.Currency = p.cfg.DefaultCurrency
	}
	for i := range record.LineItems {
		if record.LineItems[i].VATRate == 0 {
			record.LineItems[i].VATRate = p.cfg.DefaultVATRate
		}
	}
	record.Document.Date = p.canonicalDate(record.Document.Date)
}

// canonicalDate re-renders an ISO date in the configured output format.
// Non-ISO strings pass through untouched, matching the coercer's lossy
// fallback.
func (p *Pipeline) canonicalDate(s string) string {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return s
	}
	return t.Format(p.cfg.DateFormat)
}

func (p *Pipeline) metrics(record *model.InvoiceRecord) *model.Metrics {
	totals := make([]float64, 0, len(record.LineItems))
	for _, item := range record.LineItems {
		totals = append(totals, item.TotalPrice)
	}
	return &model.Metrics{
		LineItemCount:     len(record.LineItems),
		TotalGrossAmount:  money.SumFloats(totals),
		TaxSummaryPresent: len(record.TaxSummary) > 0,
	}
}
