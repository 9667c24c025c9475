package processor

import (
	"time"

	"github.com/nguyentantai21042004/caption-rag/internal/enricher"
	"github.com/nguyentantai21042004/caption-rag/internal/logger"
	"github.com/nguyentantai21042004/caption-rag/internal/retry"
	"github.com/nguyentantai21042004/caption-rag/internal/terminology"
)

type implProcessor struct {
	enricher enricher.Enricher
	rules    *terminology.Engine
	policy   retry.Policy
	logger   logger.Logger
	docx     bool
	now      func() time.Time
}

// Options holds the optional processor settings.
type Options struct {
	Policy retry.Policy
	// Docx also renders each output as a .docx document next to it.
	Docx bool
	// Now overrides the clock used for the transcription date.
	Now func() time.Time
}

// New creates a Processor. The enricher and rule engine are shared by every
// call and must not be mutated afterwards.
func New(enr enricher.Enricher, rules *terminology.Engine, log logger.Logger, opts Options) Processor {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &implProcessor{
		enricher: enr,
		rules:    rules,
		policy:   opts.Policy,
		logger:   log,
		docx:     opts.Docx,
		now:      now,
	}
}
