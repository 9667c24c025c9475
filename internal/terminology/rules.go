// Package terminology enforces naming rules on generated text.
//
// Rules are loaded once from a line-oriented file and applied in order, each
// rule seeing the output of the previous one.
package terminology

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"
	"strings"
)

const (
	regexPrefix = "REGEX:"
	separator   = "->"
)

// Rule replaces Pattern with Replacement. Literal rules match exact,
// case-sensitive substrings; regex rules use RE2 syntax and may reference
// groups as $1 in Replacement.
type Rule struct {
	Pattern     string
	Replacement string
	IsRegex     bool

	re         *regexp.Regexp
	compileErr error
}

// NewRule builds a rule, compiling the pattern when isRegex is set. A pattern
// that does not compile still yields a rule; applying it reports the error.
func NewRule(pattern, replacement string, isRegex bool) Rule {
	r := Rule{Pattern: pattern, Replacement: replacement, IsRegex: isRegex}
	if isRegex {
		r.re, r.compileErr = regexp.Compile(pattern)
	}
	return r
}

// Load reads rules from path. A missing file is not an error: it yields no
// rules and exists reports false.
func Load(path string) (rules []Rule, exists bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("open rules: %w", err)
	}
	defer f.Close()

	rules, err = Parse(f)
	if err != nil {
		return nil, true, fmt.Errorf("read rules %s: %w", path, err)
	}
	return rules, true, nil
}

// Parse reads rules in the "original -> replacement" line format. Blank
// lines and lines starting with # are ignored, a REGEX: prefix marks a
// pattern rule, and lines without "->" are skipped.
func Parse(r io.Reader) ([]Rule, error) {
	var rules []Rule

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		isRegex := false
		if rest, ok := strings.CutPrefix(line, regexPrefix); ok {
			isRegex = true
			line = strings.TrimSpace(rest)
		}

		original, replacement, ok := strings.Cut(line, separator)
		if !ok {
			continue
		}
		rules = append(rules, NewRule(strings.TrimSpace(original), strings.TrimSpace(replacement), isRegex))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rules, nil
}
