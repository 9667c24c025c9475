package terminology

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/caption-rag/internal/logger"
)

// Outcome records what a single rule did during one Apply call.
type Outcome struct {
	Rule    Rule
	Changed bool
	Err     error
}

// Engine applies an ordered rule set. It never mutates its rules and is safe
// for concurrent use.
type Engine struct {
	rules  []Rule
	logger logger.Logger
}

// NewEngine creates an Engine over a private copy of rules.
func NewEngine(rules []Rule, log logger.Logger) *Engine {
	return &Engine{
		rules:  append([]Rule(nil), rules...),
		logger: log,
	}
}

// Len returns the number of rules.
func (e *Engine) Len() int {
	return len(e.rules)
}

// Apply runs every rule over text in order. Rules that cannot be applied are
// logged and skipped.
func (e *Engine) Apply(ctx context.Context, text string) string {
	out, outcomes := e.ApplyWithReport(text)
	for _, o := range outcomes {
		if o.Err != nil {
			e.logger.Error(ctx, "Skipping rule %q: %v", o.Rule.Pattern, o.Err)
		}
	}
	return out
}

// ApplyWithReport runs every rule over text in order and returns the result
// with one Outcome per rule.
func (e *Engine) ApplyWithReport(text string) (string, []Outcome) {
	outcomes := make([]Outcome, 0, len(e.rules))
	for _, rule := range e.rules {
		next, err := rule.apply(text)
		outcomes = append(outcomes, Outcome{Rule: rule, Changed: err == nil && next != text, Err: err})
		if err == nil {
			text = next
		}
	}
	return text, outcomes
}

func (r Rule) apply(text string) (string, error) {
	if !r.IsRegex {
		if r.Pattern == "" {
			return text, fmt.Errorf("empty literal pattern")
		}
		return strings.ReplaceAll(text, r.Pattern, r.Replacement), nil
	}
	if r.compileErr != nil {
		return text, fmt.Errorf("compile regex: %w", r.compileErr)
	}
	if r.re == nil {
		return text, fmt.Errorf("regex rule %q was not compiled", r.Pattern)
	}
	return r.re.ReplaceAllString(text, r.Replacement), nil
}
