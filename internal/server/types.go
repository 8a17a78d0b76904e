package server

import (
	"github.com/rezonia/fattura-processor/internal/model"
	"github.com/rezonia/fattura-processor/internal/output"
	"github.com/rezonia/fattura-processor/internal/processor"
)

// ProcessResponse is the response for the single-document endpoint.
type ProcessResponse struct {
	Invoice map[string]any `json:"invoice"`
	Metrics *model.Metrics `json:"metrics"`
}

// BatchResponse is the response for the upload endpoint.
type BatchResponse struct {
	Invoices []map[string]any        `json:"invoices"`
	Errors   []output.ErrorEntry     `json:"errors,omitempty"`
	Summary  Summary                 `json:"summary"`
	Tally    map[model.ErrorKind]int `json:"error_counts,omitempty"`
	Metrics  []BatchMetrics          `json:"metrics,omitempty"`
}

// Summary counts the outcome of an upload batch.
type Summary struct {
	Files     int `json:"files"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// BatchMetrics pairs an uploaded file with its extraction metrics.
type BatchMetrics struct {
	File    string         `json:"file"`
	Metrics *model.Metrics `json:"metrics"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func batchMetrics(report *processor.Report) []BatchMetrics {
	out := make([]BatchMetrics, 0, report.Succeeded)
	for _, res := range report.Successes() {
		out = append(out, BatchMetrics{File: res.File, Metrics: res.Metrics})
	}
	return out
}

func newBatchResponse(report *processor.Report, invoices []map[string]any, files int) BatchResponse {
	resp := BatchResponse{
		Invoices: invoices,
		Errors:   output.ErrorEntries(report),
		Summary: Summary{
			Files:     files,
			Succeeded: report.Succeeded,
			Failed:    report.Failed,
		},
		Metrics: batchMetrics(report),
	}
	if len(report.Tally) > 0 {
		resp.Tally = report.Tally
	}
	return resp
}
