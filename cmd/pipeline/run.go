package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/mattn/go-isatty"
	"github.com/nguyentantai21042004/caption-rag/internal/batch"
	"github.com/nguyentantai21042004/caption-rag/internal/config"
	"github.com/nguyentantai21042004/caption-rag/internal/enricher"
	"github.com/nguyentantai21042004/caption-rag/internal/logger"
	"github.com/nguyentantai21042004/caption-rag/internal/processor"
	"github.com/nguyentantai21042004/caption-rag/internal/retry"
	"github.com/nguyentantai21042004/caption-rag/internal/terminology"
	"github.com/nguyentantai21042004/caption-rag/internal/watcher"
)

func run(ctx context.Context, cfg *config.Config, watch bool, out io.Writer) error {
	log := logger.New(cfg.Logging.Level)

	keys := cfg.APIKeys()
	if len(keys) == 0 {
		return fmt.Errorf("no Gemini API key: set %s in the environment or a .env file", cfg.Gemini.APIKeyEnv)
	}

	enr, err := enricher.NewGemini(ctx, enricher.Options{
		APIKeys:           keys,
		Model:             cfg.Gemini.Model,
		RequestsPerMinute: cfg.Performance.RequestsPerMinute,
	}, log)
	if err != nil {
		return err
	}

	log.Info(ctx, "========================================")
	log.Info(ctx, "Transcript RAG Pipeline")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "Model: %s (%d API key(s))", cfg.Gemini.Model, len(keys))
	log.Info(ctx, "Workers: %d", cfg.Performance.MaxConcurrent)

	return runPipeline(ctx, cfg, enr, log, watch, out)
}

// runPipeline processes the input directory once and, in watch mode, keeps
// processing new transcripts until ctx is cancelled.
func runPipeline(ctx context.Context, cfg *config.Config, enr enricher.Enricher, log logger.Logger, watch bool, out io.Writer) error {
	rules, err := loadRules(ctx, cfg.Paths.Rules, log)
	if err != nil {
		return err
	}

	proc := processor.New(enr, terminology.NewEngine(rules, log), log, processor.Options{
		Policy: retry.Policy{
			MaxAttempts: cfg.Retry.MaxAttempts,
			BaseDelay:   cfg.Retry.BaseDelay,
			FixedDelay:  cfg.Retry.FixedDelay,
		},
		Docx: cfg.Output.Docx,
	})
	orch := batch.New(proc, log, batch.Options{
		Workers:   cfg.Performance.MaxConcurrent,
		OutputDir: cfg.Paths.Output,
		Suffix:    cfg.Output.Suffix,
	})

	// Discover before Lock: Lock creates the output directory, which is
	// often the input directory.
	files, err := batch.Discover(cfg.Paths.Input, cfg.Output.Suffix)
	if err != nil {
		return err
	}

	unlock, err := orch.Lock()
	if err != nil {
		return err
	}
	defer func() {
		if err := unlock(); err != nil {
			log.Warn(ctx, "Failed to release output lock: %v", err)
		}
	}()

	log.Info(ctx, "Input: %s", cfg.Paths.Input)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)

	result, err := orch.RunFiles(ctx, cfg.Paths.Input, files)
	if err != nil {
		return err
	}
	if result.Total() > 0 {
		result.Render(out, isTerminal(out))
	}

	if !watch {
		return nil
	}
	return watchDir(ctx, cfg, orch, log)
}

func watchDir(ctx context.Context, cfg *config.Config, orch *batch.Orchestrator, log logger.Logger) error {
	handler := func(ctx context.Context, path string) error {
		job := orch.RunOne(ctx, path)
		return job.Err
	}

	w, err := watcher.New(cfg.Paths.Input, handler, log, watcher.Options{
		Filter: func(name string) bool {
			return batch.Eligible(name, cfg.Output.Suffix)
		},
		MaxConcurrent: cfg.Performance.MaxConcurrent,
		SettleDelay:   watcher.DefaultSettleDelay,
	})
	if err != nil {
		return err
	}
	defer w.Stop()

	log.Info(ctx, "Press Ctrl+C to stop")
	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// loadRules reads the terminology rules. A missing file means no rules.
func loadRules(ctx context.Context, path string, log logger.Logger) ([]terminology.Rule, error) {
	rules, exists, err := terminology.Load(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		log.Warn(ctx, "Rules file %s not found, continuing without terminology rules", path)
		return nil, nil
	}
	log.Info(ctx, "Loaded %d terminology rule(s) from %s", len(rules), path)
	return rules, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
