package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/rezonia/fattura-processor/internal/model"
	"github.com/rezonia/fattura-processor/internal/processor"
)

// ErrorEntry is the structured form of one failed file, used by the HTTP
// API and batch summary.
type ErrorEntry struct {
	File   string          `json:"file"`
	Kind   model.ErrorKind `json:"error_kind"`
	Detail string          `json:"details"`
}

// ErrorEntries collects the failures of a report in input order.
func ErrorEntries(report *processor.Report) []ErrorEntry {
	entries := make([]ErrorEntry, 0, report.Failed)
	for _, res := range report.Failures() {
		entries = append(entries, ErrorEntry{
			File:   res.File,
			Kind:   res.Err.Kind,
			Detail: res.Err.Detail,
		})
	}
	return entries
}

// WriteErrorReport writes the line-oriented error report, one block per
// failed file.
func WriteErrorReport(w io.Writer, entries []ErrorEntry) error {
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "File: %s\nError Kind: %s\nDetails: %s\n%s\n",
			e.File, e.Kind, e.Detail, strings.Repeat("-", 50)); err != nil {
			return err
		}
	}
	return nil
}
