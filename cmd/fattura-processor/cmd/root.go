package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rezonia/fattura-processor/internal/config"
	"github.com/rezonia/fattura-processor/internal/logger"
)

var (
	version = "1.0.0"

	// Global flags
	verbose      bool
	outputFormat string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "fattura-processor",
	Short: "Extract structured data from Italian Fattura Elettronica XML",
	Long: `Fattura Processor extracts structured invoice data (parties, line
items, totals, tax, payment terms) from Italian electronic invoices and
emits normalized JSON, CSV, or XLSX records.

Inputs can be single XML files, directories (scanned recursively), or ZIP
archives containing XML members. Field lookup tolerates any namespace
prefix or its absence, and a bad file never aborts the batch: failures are
classified and reported alongside the valid invoices.

Examples:
  # Process a single invoice
  fattura-processor process fattura.xml

  # Process a directory and a ZIP archive into CSV
  fattura-processor process invoices/ batch.zip -f csv -o output

  # Start the HTTP upload server
  fattura-processor serve --address :8080`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}
		if verbose {
			cfg.LogLevel = "debug"
		}
		return logger.Setup(logger.Options{
			Level:  cfg.LogLevel,
			Format: cfg.LogFormat,
			Output: cfg.LogOutput,
			File:   cfg.LogFile,
		})
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json, csv, xlsx)")
}
