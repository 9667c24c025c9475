package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{"debug level", "debug"},
		{"info level", "info"},
		{"warn level", "warn"},
		{"error level", "error"},
		{"invalid level", "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.level)
			if log == nil {
				t.Error("New() returned nil")
			}
		})
	}
}

func TestLoggerLevels(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info")

	log.Debug(ctx, "debug message")
	log.Info(ctx, "info message")
	log.Warn(ctx, "warn message")
	log.Error(ctx, "error message")
	log.Info(ctx, "formatted message: %s %d", "test", 123)

	out := buf.String()
	if strings.Contains(out, "debug message") {
		t.Errorf("debug record written at info level:\n%s", out)
	}
	for _, want := range []string{"info message", "warn message", "error message", "formatted message: test 123"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWithAddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "debug").With("job", "abc", "file", "a.srt")

	log.Debug(context.Background(), "hello")

	out := buf.String()
	if !strings.Contains(out, "job=abc") || !strings.Contains(out, "file=a.srt") {
		t.Errorf("attributes missing from output:\n%s", out)
	}
}

func TestPercentWithoutArgsIsKept(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info")

	log.Info(context.Background(), "100% done")

	if !strings.Contains(buf.String(), "100% done") {
		t.Errorf("message altered:\n%s", buf.String())
	}
}

func TestShouldLog(t *testing.T) {
	tests := []struct {
		name        string
		configLevel string
		logLevel    string
		shouldLog   bool
	}{
		{"debug logs at debug level", "debug", "debug", true},
		{"info logs at debug level", "debug", "info", true},
		{"debug doesn't log at info level", "info", "debug", false},
		{"info logs at info level", "info", "info", true},
		{"error always logs", "debug", "error", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.configLevel).(*implLogger)
			result := log.shouldLog(tt.logLevel)
			if result != tt.shouldLog {
				t.Errorf("shouldLog() = %v, want %v", result, tt.shouldLog)
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		written []string
		dropped []string
	}{
		{"debug writes all", "debug", []string{"d-msg", "i-msg", "w-msg", "e-msg"}, nil},
		{"error drops warn", "error", []string{"e-msg"}, []string{"d-msg", "i-msg", "w-msg"}},
		{"unknown level acts as info", "verbose", []string{"i-msg", "w-msg", "e-msg"}, []string{"d-msg"}},
		{"level is case insensitive", "WARN", []string{"w-msg", "e-msg"}, []string{"d-msg", "i-msg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			var buf bytes.Buffer
			log := NewWithWriter(&buf, tt.level)

			log.Debug(ctx, "d-msg")
			log.Info(ctx, "i-msg")
			log.Warn(ctx, "w-msg")
			log.Error(ctx, "e-msg")

			out := buf.String()
			for _, want := range tt.written {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, unwanted := range tt.dropped {
				if strings.Contains(out, unwanted) {
					t.Errorf("output contains %q:\n%s", unwanted, out)
				}
			}
		})
	}
}
