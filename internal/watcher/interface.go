package watcher

import "context"

// Watcher defines the interface for file system monitoring
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler handles one newly created file.
type EventHandler func(ctx context.Context, filePath string) error

// Filter reports whether a created file name should be handled.
type Filter func(name string) bool
