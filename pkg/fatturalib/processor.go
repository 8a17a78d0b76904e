package fatturalib

import (
	"context"

	"github.com/rezonia/fattura-processor/internal/config"
	"github.com/rezonia/fattura-processor/internal/processor"
)

// Options configures processing behavior.
type Options struct {
	// DefaultCurrency is applied when a document declares no currency.
	DefaultCurrency string
	// DefaultVATRate is applied to line items with an absent or zero rate.
	DefaultVATRate float64
	// DateFormat is the output layout for canonical dates.
	DateFormat string
	// Parallelism is the batch worker count; 0 means all CPUs.
	Parallelism int
}

// DefaultOptions returns the built-in defaults (EUR, 22% VAT, ISO dates).
func DefaultOptions() Options {
	return Options{
		DefaultCurrency: "EUR",
		DefaultVATRate:  22.0,
		DateFormat:      "2006-01-02",
	}
}

// Result is the outcome for one input.
type Result = processor.Result

// Report is the aggregated outcome of a batch.
type Report = processor.Report

// Processor extracts invoice records from files or in-memory content.
type Processor struct {
	driver *processor.Driver
}

// NewProcessor creates a processor with the given options.
func NewProcessor(opts Options) *Processor {
	cfg := config.Default()
	if opts.DefaultCurrency != "" {
		cfg.DefaultCurrency = opts.DefaultCurrency
	}
	if opts.DefaultVATRate > 0 {
		cfg.DefaultVATRate = opts.DefaultVATRate
	}
	if opts.DateFormat != "" {
		cfg.DateFormat = opts.DateFormat
	}
	cfg.Parallelism = opts.Parallelism
	return &Processor{driver: processor.NewDriver(cfg)}
}

// ProcessFile processes one file, classifying every failure into a tagged
// result instead of returning an error.
func (p *Processor) ProcessFile(ctx context.Context, path string) *Result {
	return p.driver.ProcessFile(ctx, path)
}

// ProcessBytes processes in-memory XML content. name is used for reporting.
func (p *Processor) ProcessBytes(ctx context.Context, name string, data []byte) *Result {
	return p.driver.ProcessBytes(ctx, name, data)
}

// ProcessBatch fans a list of file paths out across a worker pool.
func (p *Processor) ProcessBatch(ctx context.Context, files []string) *Report {
	return p.driver.ProcessBatch(ctx, files)
}
