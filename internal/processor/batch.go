package processor

import (
	"context"
	"runtime"
	"sync"

	"github.com/rezonia/fattura-processor/internal/logger"
	"github.com/rezonia/fattura-processor/internal/model"
)

// Tally counts failures per error kind across a run.
type Tally map[model.ErrorKind]int

// Add increments the count for a kind.
func (t Tally) Add(kind model.ErrorKind) {
	t[kind]++
}

// Merge folds another tally into this one.
func (t Tally) Merge(other Tally) {
	for kind, n := range other {
		t[kind] += n
	}
}

// Report is the aggregated outcome of a batch run. Results appear in input
// order regardless of completion order.
type Report struct {
	Results   []*Result
	Succeeded int
	Failed    int
	Tally     Tally
}

// Successes returns the successful results in input order.
func (r *Report) Successes() []*Result {
	out := make([]*Result, 0, r.Succeeded)
	for _, res := range r.Results {
		if res.Success() {
			out = append(out, res)
		}
	}
	return out
}

// Failures returns the failed results in input order.
func (r *Report) Failures() []*Result {
	out := make([]*Result, 0, r.Failed)
	for _, res := range r.Results {
		if !res.Success() {
			out = append(out, res)
		}
	}
	return out
}

// ProcessBatch fans the file list out across a worker pool. Files are
// independent, so the only coordination is collecting results; each worker
// keeps a local failure tally and the tallies are merged once after all
// workers finish, avoiding any shared counter.
func (d *Driver) ProcessBatch(ctx context.Context, files []string) *Report {
	log := logger.WithComponent("batch")

	workers := d.cfg.Parallelism
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(files) {
		workers = len(files)
	}

	results := make([]*Result, len(files))
	jobs := make(chan int)
	tallies := make(chan Tally, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := Tally{}
			for i := range jobs {
				fileCtx, cancel := context.WithTimeout(ctx, d.cfg.FileTimeout)
				res := d.ProcessFile(fileCtx, files[i])
				cancel()
				results[i] = res
				if res.Err != nil {
					local.Add(res.Err.Kind)
				}
			}
			tallies <- local
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	close(tallies)

	report := &Report{
		Results: results,
		Tally:   Tally{},
	}
	for t := range tallies {
		report.Tally.Merge(t)
	}
	for _, res := range results {
		if res.Success() {
			report.Succeeded++
		} else {
			report.Failed++
		}
	}

	log.Info().
		Int("files", len(files)).
		Int("succeeded", report.Succeeded).
		Int("failed", report.Failed).
		Msg("batch complete")
	return report
}
