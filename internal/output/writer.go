package output

import (
	"fmt"
	"os"

	"github.com/rezonia/fattura-processor/internal/logger"
	"github.com/rezonia/fattura-processor/internal/processor"
)

// WriteFiles writes the batch output under the given base path in the chosen
// format (json, csv, or xlsx), plus the metrics companion for tabular
// formats and an error report when any file failed. Returns the paths
// written.
func WriteFiles(report *processor.Report, base, format string) ([]string, error) {
	log := logger.WithComponent("output")
	var written []string

	switch format {
	case "json":
		path := base + ".json"
		if err := writeTo(path, func(f *os.File) error {
			return WriteJSON(f, report.Results)
		}); err != nil {
			return written, err
		}
		written = append(written, path)

	case "csv":
		path := base + ".csv"
		if err := writeTo(path, func(f *os.File) error {
			return WriteCSV(f, report.Results)
		}); err != nil {
			return written, err
		}
		written = append(written, path)

		metricsPath := base + "_metrics.csv"
		if err := writeTo(metricsPath, func(f *os.File) error {
			return WriteMetricsCSV(f, report.Results)
		}); err != nil {
			return written, err
		}
		written = append(written, metricsPath)

	case "xlsx":
		path := base + ".xlsx"
		if err := WriteXLSX(path, report.Results); err != nil {
			return written, err
		}
		written = append(written, path)

	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}

	if report.Failed > 0 {
		path := base + "_errors.log"
		if err := writeTo(path, func(f *os.File) error {
			return WriteErrorReport(f, ErrorEntries(report))
		}); err != nil {
			return written, err
		}
		written = append(written, path)
		log.Warn().Int("failed", report.Failed).Str("report", path).Msg("error report written")
	}

	return written, nil
}

func writeTo(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return write(f)
}
