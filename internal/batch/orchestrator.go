// Package batch discovers transcript files and runs one processing job per
// file with bounded parallelism.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/nguyentantai21042004/caption-rag/internal/logger"
	"github.com/nguyentantai21042004/caption-rag/internal/processor"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the pool size used when none is configured.
const DefaultWorkers = 3

// Orchestrator runs processing jobs over a set of input files.
type Orchestrator struct {
	processor processor.Processor
	logger    logger.Logger
	workers   int
	outputDir string
	suffix    string
}

// Options configures an Orchestrator.
type Options struct {
	Workers   int
	OutputDir string
	Suffix    string
}

// New creates an Orchestrator. The processor is shared by every worker.
func New(proc processor.Processor, log logger.Logger, opts Options) *Orchestrator {
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Orchestrator{
		processor: proc,
		logger:    log,
		workers:   workers,
		outputDir: opts.OutputDir,
		suffix:    opts.Suffix,
	}
}

// RunDir discovers the eligible files in inputDir and runs them. Discovery
// failure is the only error; per-file failures are reported in the Result.
func (o *Orchestrator) RunDir(ctx context.Context, inputDir string) (Result, error) {
	files, err := Discover(inputDir, o.suffix)
	if err != nil {
		return Result{}, err
	}
	return o.RunFiles(ctx, inputDir, files)
}

// RunFiles runs files already discovered in inputDir, creating the output
// directory first.
func (o *Orchestrator) RunFiles(ctx context.Context, inputDir string, files []string) (Result, error) {
	if err := os.MkdirAll(o.outputDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create output directory: %w", err)
	}

	if len(files) == 0 {
		o.logger.Info(ctx, "No transcripts found to process in %s", inputDir)
		return Result{}, nil
	}

	o.logger.Info(ctx, "Found %d files. Starting parallel processing (%d workers)...", len(files), o.workers)
	return o.Run(ctx, files), nil
}

// Run executes one job per input with at most the configured number running
// at once. Jobs are collected in completion order.
func (o *Orchestrator) Run(ctx context.Context, inputs []string) Result {
	start := time.Now()
	total := len(inputs)
	results := make(chan Job)

	go func() {
		var g errgroup.Group
		g.SetLimit(o.workers)

		seen := make(map[string]string, total)
		for _, in := range inputs {
			job := newJob(in, OutputPath(o.outputDir, in, o.suffix))
			if first, dup := seen[job.OutputPath]; dup {
				o.logger.Warn(ctx, "Skipping %s: shares output %s with %s", filepath.Base(in), filepath.Base(job.OutputPath), filepath.Base(first))
				job.Status = StatusSkipped
				results <- job
				continue
			}
			seen[job.OutputPath] = in

			g.Go(func() error {
				results <- o.runJob(ctx, job)
				return nil
			})
		}
		_ = g.Wait()
		close(results)
	}()

	jobs := make([]Job, 0, total)
	for job := range results {
		jobs = append(jobs, job)
		o.logProgress(ctx, len(jobs), total, job)
	}

	result := Result{Jobs: jobs, Elapsed: time.Since(start)}
	o.logger.Info(ctx, "Batch completed in %s: %d succeeded, %d skipped, %d failed",
		FormatDuration(result.Elapsed), result.Succeeded(), result.Skipped(), result.Failed())
	return result
}

// RunOne runs a single input outside a batch, as watch mode does. Ineligible
// files come back Skipped.
func (o *Orchestrator) RunOne(ctx context.Context, input string) Job {
	job := newJob(input, OutputPath(o.outputDir, input, o.suffix))
	if !Eligible(filepath.Base(input), o.suffix) {
		job.Status = StatusSkipped
		return job
	}
	return o.runJob(ctx, job)
}

func (o *Orchestrator) runJob(ctx context.Context, job Job) Job {
	start := time.Now()
	filename := filepath.Base(job.InputPath)

	finish := func(status Status, err error) Job {
		job.Status = status
		job.Err = err
		job.Duration = time.Since(start)
		return job
	}

	if err := ctx.Err(); err != nil {
		return finish(StatusFailed, err)
	}

	if _, err := os.Stat(job.OutputPath); err == nil {
		o.logger.Info(ctx, "Skipping: %s (output already exists)", filename)
		return finish(StatusSkipped, nil)
	} else if !errors.Is(err, os.ErrNotExist) {
		o.logger.Error(ctx, "Failed to check output for %s: %v", filename, err)
		return finish(StatusFailed, fmt.Errorf("check output: %w", err))
	}

	report, err := o.processor.Process(ctx, processor.Task{
		ID:         job.ID,
		InputPath:  job.InputPath,
		OutputPath: job.OutputPath,
	})
	job.Attempts = report.Attempts
	job.Bytes = report.Bytes
	if err != nil {
		o.logger.Error(ctx, "Error processing file %s: %v", filename, err)
		return finish(StatusFailed, err)
	}

	o.logger.Debug(ctx, "Wrote %s (%s)", filepath.Base(job.OutputPath), humanize.Bytes(uint64(report.Bytes)))
	return finish(StatusSucceeded, nil)
}

func (o *Orchestrator) logProgress(ctx context.Context, done, total int, job Job) {
	filename := filepath.Base(job.InputPath)
	switch job.Status {
	case StatusFailed:
		o.logger.Error(ctx, "[%d/%d] Failed: %s: %v", done, total, filename, job.Err)
	case StatusSkipped:
		o.logger.Info(ctx, "[%d/%d] Skipped: %s", done, total, filename)
	default:
		o.logger.Info(ctx, "[%d/%d] Completed: %s", done, total, filename)
	}
}
