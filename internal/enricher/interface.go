// Package enricher turns cleaned transcripts into RAG source documents
// using Gemini.
package enricher

import "context"

// Request carries the cleaned transcript and its filename metadata.
type Request struct {
	Text        string
	Filename    string
	Title       string
	CurrentDate string
	EventDate   string
}

// Enricher turns a cleaned transcript into a structured document.
// Implementations must be safe for concurrent use.
type Enricher interface {
	Enrich(ctx context.Context, req Request) (string, error)
}

// Func adapts a function to the Enricher interface.
type Func func(ctx context.Context, req Request) (string, error)

// Enrich calls f.
func (f Func) Enrich(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
