package processor

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/beevik/etree"

	"github.com/rezonia/fattura-processor/internal/config"
	"github.com/rezonia/fattura-processor/internal/logger"
	"github.com/rezonia/fattura-processor/internal/model"
	xmlparser "github.com/rezonia/fattura-processor/internal/parser/xml"
)

// Result is the terminal outcome for one input file: either a record with
// metrics, or a classified error. Exactly one of Record and Err is set.
type Result struct {
	File    string
	Record  *model.InvoiceRecord
	Metrics *model.Metrics
	Err     *model.ProcessError
}

// Success reports whether the file produced a record.
func (r *Result) Success() bool {
	return r.Err == nil
}

// Driver wraps one file's full extraction in failure-kind classification.
// Failures never propagate to the caller; every path terminates in a tagged
// Result.
type Driver struct {
	pipeline *Pipeline
	parser   *xmlparser.Parser
	cfg      *config.Config
}

// NewDriver creates a driver with the given configuration snapshot.
func NewDriver(cfg *config.Config) *Driver {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Driver{
		pipeline: NewPipeline(cfg),
		parser:   xmlparser.NewParser(),
		cfg:      cfg,
	}
}

// Config returns the driver's configuration snapshot.
func (d *Driver) Config() *config.Config {
	return d.cfg
}

// ProcessFile classifies and processes a single file. Terminal states:
// file_not_found, empty_file, xml_parse_error, extraction_error,
// unexpected_error, or success.
func (d *Driver) ProcessFile(ctx context.Context, path string) (result *Result) {
	log := logger.WithComponent("driver")
	result = &Result{File: path}

	defer func() {
		if r := recover(); r != nil {
			result.Err = model.NewProcessError(path, model.KindUnexpectedFailure,
				fmt.Sprintf("panic during processing: %v", r), nil)
			log.Error().Str("file", path).Interface("panic", r).Msg("unexpected failure")
		}
	}()

	info, err := os.Stat(path)
	if err != nil {
		result.Err = model.NewProcessError(path, model.KindFileNotFound, "file not found or not readable", err)
		return result
	}
	if info.Size() == 0 {
		result.Err = model.NewProcessError(path, model.KindEmptyFile, "file is empty", nil)
		return result
	}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Err = model.NewProcessError(path, model.KindUnexpectedFailure, "failed to read file", err)
		return result
	}

	return d.process(ctx, path, data)
}

// ProcessBytes processes in-memory XML content, classifying failures the
// same way as ProcessFile. name is used for reporting only.
func (d *Driver) ProcessBytes(ctx context.Context, name string, data []byte) *Result {
	result := &Result{File: name}
	if len(data) == 0 {
		result.Err = model.NewProcessError(name, model.KindEmptyFile, "content is empty", nil)
		return result
	}
	return d.process(ctx, name, data)
}

func (d *Driver) process(ctx context.Context, name string, data []byte) *Result {
	log := logger.WithComponent("driver")
	result := &Result{File: name}

	if err := ctx.Err(); err != nil {
		result.Err = model.NewProcessError(name, model.KindUnexpectedFailure, "processing cancelled", err)
		return result
	}

	doc, err := d.parser.Load(bytes.NewReader(data))
	if err != nil {
		result.Err = model.NewProcessError(name, model.KindMalformedXML, err.Error(), err)
		log.Warn().Str("file", name).Err(err).Msg("malformed XML")
		return result
	}

	record, metrics, err := d.runPipeline(doc)
	if err != nil {
		result.Err = model.NewProcessError(name, model.KindExtractionFailure, err.Error(), err)
		log.Warn().Str("file", name).Err(err).Msg("extraction failed")
		return result
	}

	result.Record = record
	result.Metrics = metrics
	log.Debug().Str("file", name).Int("line_items", metrics.LineItemCount).Msg("processed")
	return result
}

// runPipeline shields the driver from panics inside extraction or
// normalization; those classify as extraction failures since the XML itself
// already parsed.
func (d *Driver) runPipeline(doc *etree.Document) (record *model.InvoiceRecord, metrics *model.Metrics, err error) {
	defer func() {
		if r := recover(); r != nil {
			record, metrics = nil, nil
			err = model.NewExtractionError("pipeline", fmt.Sprintf("panic: %v", r), nil)
		}
	}()
	return d.pipeline.Run(doc)
}
