package processor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TranscriptHeading introduces the cleaned input appended to every output.
const TranscriptHeading = "## Transcrição Completa Original"

// FormatOutput joins the enriched document and the cleaned input with a
// delimited section.
func FormatOutput(enriched, original string) string {
	var sb strings.Builder
	sb.WriteString(enriched)
	sb.WriteString("\n\n---\n\n")
	sb.WriteString(TranscriptHeading)
	sb.WriteString("\n\n")
	sb.WriteString(original)
	return sb.String()
}

// writeOutput writes into a hidden temp file in the destination directory
// and renames it into place, so a partial file never satisfies the
// existence check.
func writeOutput(path, enriched, original string) (int64, error) {
	data := FormatOutput(enriched, original)

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return 0, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("move output into place: %w", err)
	}
	return int64(len(data)), nil
}
