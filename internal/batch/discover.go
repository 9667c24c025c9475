package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
)

// Extensions lists the input extensions picked up by discovery.
var Extensions = []string{".txt", ".srt"}

// excludedFiles are known non-transcript files that commonly sit next to
// transcripts.
var excludedFiles = map[string]bool{
	"historico.txt":    true,
	"cookies.txt":      true,
	"requirements.txt": true,
	"rules.txt":        true,
	"LICENSE":          true,
	"README.md":        true,
}

// Eligible reports whether a file name should become a job: a recognized
// extension, not hidden, not excluded and not already an output.
func Eligible(name, suffix string) bool {
	if strings.HasPrefix(name, ".") || excludedFiles[name] {
		return false
	}
	ext := filepath.Ext(name)
	if !slices.Contains(Extensions, strings.ToLower(ext)) {
		return false
	}
	stem := strings.TrimSuffix(name, ext)
	return !strings.HasSuffix(stem, suffix)
}

// OutputPath returns the output file for input inside outputDir.
func OutputPath(outputDir, input, suffix string) string {
	name := filepath.Base(input)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return filepath.Join(outputDir, stem+suffix+".txt")
}

// Discover lists the eligible files directly inside dir, sorted by name.
// A missing or unreadable directory is an error.
func Discover(dir, suffix string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("input directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input directory: %s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !Eligible(e.Name(), suffix) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}

	sort.Strings(files)
	return files, nil
}
