package enricher

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nguyentantai21042004/caption-rag/internal/logger"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

type generateFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

type implGemini struct {
	mu         sync.Mutex
	generators []generateFunc
	currentKey int

	model   string
	limiter *rate.Limiter
	logger  logger.Logger
}

// Options configures the Gemini enricher.
type Options struct {
	APIKeys []string
	Model   string
	// RequestsPerMinute caps the request rate across all workers; 0 disables it.
	RequestsPerMinute int
}

// NewGemini creates one Gemini client per API key. Rate-limited keys are
// rotated so the next attempt uses a different key.
func NewGemini(ctx context.Context, opts Options, log logger.Logger) (Enricher, error) {
	if len(opts.APIKeys) == 0 {
		return nil, errors.New("gemini: at least one API key is required")
	}

	generators := make([]generateFunc, 0, len(opts.APIKeys))
	for i, key := range opts.APIKeys {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("create client for key %d: %w", i+1, err)
		}
		generators = append(generators, client.Models.GenerateContent)
	}

	return newGemini(generators, opts, log), nil
}

func newGemini(generators []generateFunc, opts Options, log logger.Logger) *implGemini {
	model := opts.Model
	if model == "" {
		model = DefaultModel
	}

	var limiter *rate.Limiter
	if opts.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(opts.RequestsPerMinute)/60.0), 1)
	}

	return &implGemini{
		generators: generators,
		model:      model,
		limiter:    limiter,
		logger:     log,
	}
}
