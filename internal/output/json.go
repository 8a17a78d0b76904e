// Package output serializes batch results: a JSON/CSV/XLSX invoice file, a
// metrics companion, and the error report.
package output

import (
	"encoding/json"
	"io"

	"github.com/rezonia/fattura-processor/internal/processor"
)

// WriteJSON writes the pruned records of all successful results as a JSON
// array: two-space indentation, UTF-8, non-ASCII characters preserved
// literally.
func WriteJSON(w io.Writer, results []*processor.Result) error {
	records := make([]map[string]any, 0, len(results))
	for _, res := range results {
		if !res.Success() {
			continue
		}
		pruned, err := res.Record.Pruned()
		if err != nil {
			return err
		}
		records = append(records, pruned)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(records)
}
