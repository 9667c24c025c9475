package processor

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/nguyentantai21042004/caption-rag/internal/subtitle"
)

func readInput(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func isSubtitle(path string) bool {
	return slices.Contains(subtitle.Extensions, strings.ToLower(filepath.Ext(path)))
}

func cleanSubtitle(content string) string {
	return subtitle.Clean(content)
}
