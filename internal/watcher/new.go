package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/caption-rag/internal/logger"
)

// DefaultSettleDelay is how long a new file is left alone before handling,
// so writers can finish.
const DefaultSettleDelay = 500 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	Filter        Filter
	MaxConcurrent int
	SettleDelay   time.Duration
}

// New creates a Watcher on inputDir that runs handler for every created file
// accepted by the filter, at most MaxConcurrent at a time.
func New(inputDir string, handler EventHandler, log logger.Logger, opts Options) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(inputDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	maxConcurrent := opts.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}
	filter := opts.Filter
	if filter == nil {
		filter = func(string) bool { return true }
	}
	settle := opts.SettleDelay
	if settle < 0 {
		settle = 0
	}

	return &implWatcher{
		inputDir:      inputDir,
		handler:       handler,
		filter:        filter,
		logger:        log,
		watcher:       watcher,
		maxConcurrent: maxConcurrent,
		settleDelay:   settle,
		semaphore:     make(chan struct{}, maxConcurrent),
		pending:       make(map[string]bool),
	}, nil
}
