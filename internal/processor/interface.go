package processor

import "context"

// Task identifies one input file and where its output goes.
type Task struct {
	ID         string
	InputPath  string
	OutputPath string
}

// Report describes a completed Process call.
type Report struct {
	// Attempts is the number of enricher calls made.
	Attempts int
	// Bytes is the size of the written output.
	Bytes int64
}

// Processor runs the cleaning, enrichment and rule pipeline for one file.
type Processor interface {
	Process(ctx context.Context, task Task) (Report, error)
}
