package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rezonia/fattura-processor/internal/output"
	"github.com/rezonia/fattura-processor/internal/processor"
	"github.com/rezonia/fattura-processor/internal/scan"
)

var (
	outputBase  string
	parallelism int
	fileTimeout time.Duration
)

var processCmd = &cobra.Command{
	Use:   "process [paths...]",
	Short: "Process invoice files",
	Long: `Process one or more inputs and extract structured invoice data.

Each path may be a single .xml file, a directory (scanned recursively for
.xml files), or a ZIP archive (XML members are extracted to a temporary
scratch area). Unsupported inputs are skipped with a warning.

The run always completes: invoices that extract cleanly are written to the
output file, failures go to <output>_errors.log, and the summary counts
both.

Examples:
  fattura-processor process fattura.xml
  fattura-processor process invoices/ -f csv -o fatture
  fattura-processor process batch.zip --parallel 4`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVarP(&outputBase, "output", "o", "output", "Output base path (extension added per format)")
	processCmd.Flags().IntVar(&parallelism, "parallel", 0, "Number of parallel workers (0 = all CPUs)")
	processCmd.Flags().DurationVar(&fileTimeout, "timeout", 2*time.Minute, "Processing timeout per file")
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg.Parallelism = parallelism
	cfg.FileTimeout = fileTimeout

	scratch, err := scan.NewScratch()
	if err != nil {
		return err
	}
	defer scratch.Cleanup()

	files := scan.Discover(args, scratch)
	if len(files) == 0 {
		return fmt.Errorf("no XML files found to process")
	}
	log.Info().Int("files", len(files)).Msg("starting batch")

	driver := processor.NewDriver(cfg)
	report := driver.ProcessBatch(context.Background(), files)

	written, err := output.WriteFiles(report, outputBase, outputFormat)
	if err != nil {
		return err
	}

	for _, path := range written {
		log.Info().Str("path", path).Msg("output written")
	}
	for kind, count := range report.Tally {
		log.Warn().Str("kind", string(kind)).Int("count", count).Msg("failures")
	}

	fmt.Printf("Processed %d files: %d succeeded, %d failed\n",
		len(files), report.Succeeded, report.Failed)
	return nil
}
