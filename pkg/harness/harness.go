// Package harness implements the Validation Harness (C6): it runs an
// external solver against every emitted component file through a
// worker pool, classifies each result, and produces a deterministic
// roll-up report (spec §4.6).
package harness

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Status is a single component file's validation outcome.
type Status string

const (
	StatusSAT      Status = "SAT"
	StatusUNSAT    Status = "UNSAT"
	StatusError    Status = "ERROR"
	StatusTimeout  Status = "TIMEOUT"
	StatusOversize Status = "OVERSIZE"
	StatusSkipped  Status = "SKIPPED"
)

// OversizeThreshold is the absolute per-file byte ceiling; files over
// this are classified OVERSIZE without ever invoking the solver.
const OversizeThreshold = 1000

// DefaultTimeout is the per-invocation wall-clock budget.
const DefaultTimeout = 10 * time.Second

// headLimit bounds how much of a solver's stdout/stderr is retained
// in a Result, per spec §4.6.
const headLimit = 500

// Result is one component file's validation record.
type Result struct {
	Component  string        `json:"component"`
	Path       string        `json:"path"`
	Status     Status        `json:"status"`
	Elapsed    time.Duration `json:"elapsed_ns"`
	StdoutHead string        `json:"stdout_head,omitempty"`
	StderrHead string        `json:"stderr_head,omitempty"`
}

// Report is the deterministic, file-name-ordered roll-up of a
// validation run. RunID is a fresh random id for one Run; it is not
// attached to the Prometheus samples and has no bearing on result
// ordering.
type Report struct {
	RunID   string         `json:"run_id"`
	Results []Result       `json:"results"`
	Counts  map[Status]int `json:"counts"`
}

// AnyFailed reports whether the run contains any ERROR, UNSAT, TIMEOUT,
// or OVERSIZE result — the CLI surface's exit-code signal (spec §4.6).
func (r Report) AnyFailed() bool {
	return r.Counts[StatusError] > 0 || r.Counts[StatusUNSAT] > 0 || r.Counts[StatusTimeout] > 0 || r.Counts[StatusOversize] > 0
}

// Options configures a Run.
type Options struct {
	Parallel int
	Timeout  time.Duration
	// DemoMode, when true, skips solver invocation entirely; every
	// file is classified SKIPPED (spec §6.2's DEMO_MODE).
	DemoMode bool
	Metrics  Recorder
}

// Run validates every file in paths, dispatching solver invocations
// across a worker pool of opts.Parallel goroutines (spec §4.6, §5);
// the workers share only a jobs channel and a results channel.
func Run(ctx context.Context, oracle Oracle, paths []string, opts Options) (Report, error) {
	if opts.Parallel <= 0 {
		opts.Parallel = 1
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Metrics == nil {
		opts.Metrics = NoopRecorder{}
	}

	jobs := make(chan string)
	resultsCh := make(chan Result)
	var wg sync.WaitGroup

	for i := 0; i < opts.Parallel; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				resultsCh <- evaluate(ctx, oracle, path, opts)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, p := range paths {
			select {
			case jobs <- p:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultsCh)
	}()

	var results []Result
	for r := range resultsCh {
		results = append(results, r)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Component < results[j].Component })

	counts := map[Status]int{}
	for _, r := range results {
		counts[r.Status]++
		opts.Metrics.Observe(r.Status, r.Elapsed)
	}
	return Report{RunID: uuid.NewString(), Results: results, Counts: counts}, nil
}

func evaluate(ctx context.Context, oracle Oracle, path string, opts Options) Result {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	res := Result{Component: name, Path: path}

	info, err := os.Stat(path)
	if err != nil {
		res.Status = StatusError
		res.StderrHead = truncate(err.Error())
		return res
	}
	if info.Size() > OversizeThreshold {
		res.Status = StatusOversize
		return res
	}
	if opts.DemoMode {
		res.Status = StatusSkipped
		return res
	}

	runCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	start := time.Now()
	outcome, err := oracle.Solve(runCtx, path)
	res.Elapsed = time.Since(start)
	res.StdoutHead = truncate(outcome.Stdout)
	res.StderrHead = truncate(outcome.Stderr)

	switch {
	case runCtx.Err() == context.DeadlineExceeded:
		res.Status = StatusTimeout
	case err != nil:
		res.Status = StatusError
	default:
		res.Status = classify(outcome.Stdout)
	}
	return res
}

// classify implements spec §4.6's stdout parsing rule: an explicit
// unsat marker wins over the generic "solution" marker, since "unsat"
// itself contains "sat" as a substring.
func classify(stdout string) Status {
	lower := strings.ToLower(stdout)
	switch {
	case strings.Contains(lower, "unsat"):
		return StatusUNSAT
	case strings.Contains(lower, "solution"), strings.Contains(lower, "sat"):
		return StatusSAT
	default:
		return StatusError
	}
}

func truncate(s string) string {
	if len(s) <= headLimit {
		return s
	}
	return s[:headLimit]
}
