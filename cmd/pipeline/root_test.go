package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nguyentantai21042004/caption-rag/internal/config"
	"github.com/nguyentantai21042004/caption-rag/internal/enricher"
	"github.com/nguyentantai21042004/caption-rag/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadDefaults(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	return cfg
}

func TestApplyFlags(t *testing.T) {
	cmd := newRootCommand()
	require.NoError(t, cmd.Flags().Parse([]string{"--dir", "talks", "--workers", "5", "--rpm", "20", "--docx"}))

	cfg := loadDefaults(t)
	var flags rootFlags
	flags.dir, _ = cmd.Flags().GetString("dir")
	flags.workers, _ = cmd.Flags().GetInt("workers")
	flags.rpm, _ = cmd.Flags().GetInt("rpm")
	flags.docx, _ = cmd.Flags().GetBool("docx")

	require.NoError(t, applyFlags(cfg, cmd.Flags(), flags))
	assert.Equal(t, "talks", cfg.Paths.Input)
	assert.Equal(t, "talks", cfg.Paths.Output)
	assert.Equal(t, 5, cfg.Performance.MaxConcurrent)
	assert.Equal(t, 20, cfg.Performance.RequestsPerMinute)
	assert.True(t, cfg.Output.Docx)
	assert.Equal(t, "rules.txt", cfg.Paths.Rules)
}

func TestApplyFlagsKeepsExplicitOutput(t *testing.T) {
	cmd := newRootCommand()
	require.NoError(t, cmd.Flags().Parse([]string{"--dir", "talks"}))

	cfg := loadDefaults(t)
	cfg.Paths.Output = "out"
	require.NoError(t, applyFlags(cfg, cmd.Flags(), rootFlags{dir: "talks"}))
	assert.Equal(t, "out", cfg.Paths.Output)
}

func TestApplyFlagsRejectsZeroWorkers(t *testing.T) {
	cmd := newRootCommand()
	require.NoError(t, cmd.Flags().Parse([]string{"--workers", "0"}))
	assert.Error(t, applyFlags(loadDefaults(t), cmd.Flags(), rootFlags{}))
}

func TestRunWithoutAPIKey(t *testing.T) {
	cfg := loadDefaults(t)
	cfg.Gemini.APIKeyEnv = "CAPTION_RAG_TEST_MISSING_KEY"
	t.Setenv("CAPTION_RAG_TEST_MISSING_KEY", "")

	err := run(context.Background(), cfg, false, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CAPTION_RAG_TEST_MISSING_KEY")
}

func TestRunPipeline(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "talk.txt"), []byte("Moon landing"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rules.txt"), []byte("Moon -> Lua\n"), 0o644))

	cfg := loadDefaults(t)
	cfg.Paths.Input = dir
	cfg.Paths.Output = dir
	cfg.Paths.Rules = filepath.Join(dir, "rules.txt")
	cfg.Retry.BaseDelay = time.Millisecond
	cfg.Retry.FixedDelay = time.Millisecond

	enr := enricher.Func(func(_ context.Context, req enricher.Request) (string, error) {
		return "# " + req.Title + "\n" + req.Text, nil
	})

	var out bytes.Buffer
	require.NoError(t, runPipeline(context.Background(), cfg, enr, logger.Nop(), false, &out))

	data, err := os.ReadFile(filepath.Join(dir, "talk_rag.txt"))
	require.NoError(t, err)
	enriched, _, found := strings.Cut(string(data), "\n\n---\n\n")
	require.True(t, found)
	assert.Contains(t, enriched, "Lua landing")
	assert.Contains(t, out.String(), "talk.txt")
}

func TestRunPipelineMissingInput(t *testing.T) {
	tests := []struct {
		name         string
		sharedOutput bool
	}{
		{name: "separate output directory"},
		{name: "output follows input", sharedOutput: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			missing := filepath.Join(t.TempDir(), "missing")
			cfg := loadDefaults(t)
			cfg.Paths.Input = missing
			cfg.Paths.Output = t.TempDir()
			if tt.sharedOutput {
				cfg.Paths.Output = missing
			}

			var calls int
			enr := enricher.Func(func(context.Context, enricher.Request) (string, error) {
				calls++
				return "x", nil
			})
			assert.Error(t, runPipeline(context.Background(), cfg, enr, logger.Nop(), false, &bytes.Buffer{}))
			assert.NoDirExists(t, missing)
			assert.Zero(t, calls)
		})
	}
}
