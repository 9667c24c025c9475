package processor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/caption-rag/internal/enricher"
	"github.com/nguyentantai21042004/caption-rag/internal/metadata"
)

var (
	// ErrEmptyContent means the input had no text once cleaned.
	ErrEmptyContent = errors.New("empty content")
	// ErrNoOutput means the enricher produced nothing usable.
	ErrNoOutput = errors.New("enricher returned no content")
)

// Process runs the pipeline for a single file: read, clean, enrich with
// retries, apply terminology rules and write the output.
func (p *implProcessor) Process(ctx context.Context, task Task) (Report, error) {
	var report Report
	startTime := time.Now()
	filename := filepath.Base(task.InputPath)
	log := p.logger.With("job", task.ID, "file", filename)

	log.Info(ctx, "Starting processing: %s", filename)

	// Step 1: Read and clean
	content, err := readInput(task.InputPath)
	if err != nil {
		return report, fmt.Errorf("read input: %w", err)
	}
	if isSubtitle(task.InputPath) {
		log.Debug(ctx, "Converting subtitle to clean text: %s", filename)
		content = cleanSubtitle(content)
	}
	if strings.TrimSpace(content) == "" {
		log.Warn(ctx, "Empty file: %s", filename)
		return report, ErrEmptyContent
	}

	// Step 2: Enrich
	meta := metadata.FromFilename(filename)
	req := enricher.Request{
		Text:        content,
		Filename:    filename,
		Title:       meta.Title,
		CurrentDate: metadata.FormatDate(p.now()),
		EventDate:   meta.EventDate,
	}

	var enriched string
	policy := p.policy
	policy.OnRetry = func(attempt int, delay time.Duration, transient bool, err error) {
		if transient {
			log.Warn(ctx, "Rate limit hit for %s. Waiting %s (attempt %d/%d)...", filename, delay, attempt, policy.MaxAttempts)
			return
		}
		log.Error(ctx, "Enricher error for %s: %v", filename, err)
	}
	report.Attempts, err = policy.Do(ctx, func(ctx context.Context) error {
		out, err := p.enricher.Enrich(ctx, req)
		if err != nil {
			return err
		}
		enriched = out
		return nil
	})
	if err != nil {
		return report, fmt.Errorf("enrich: %w", err)
	}
	if strings.TrimSpace(enriched) == "" {
		return report, ErrNoOutput
	}

	// Step 3: Terminology rules
	final := p.rules.Apply(ctx, enriched)

	// Step 4: Write output
	report.Bytes, err = writeOutput(task.OutputPath, final, content)
	if err != nil {
		return report, fmt.Errorf("write output: %w", err)
	}
	if p.docx {
		if err := p.writeDocx(ctx, task.OutputPath, meta.Title, final); err != nil {
			log.Warn(ctx, "Failed to write docx for %s: %v", filename, err)
		}
	}

	log.Info(ctx, "Completed %s in %s", filename, time.Since(startTime).Round(time.Millisecond))
	return report, nil
}
