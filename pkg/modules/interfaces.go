package modules

import (
	"context"

	"qlang/pkg/source"
)

// Resolver finds qlang source files and reads them.
type Resolver interface {
	Name() string

	// Discover returns the source files under roots, sorted and deduplicated.
	// A root naming a file is returned as-is, whatever its extension.
	Discover(roots ...string) ([]string, error)

	// Load reads a discovered path.
	Load(path string) (*source.SourceFile, error)
}

// ParseWorkerPool parses files concurrently. Results arrive in completion
// order, not submission order.
type ParseWorkerPool interface {
	Start(ctx context.Context, numWorkers int) error
	Submit(job *ParseJob) error
	Results() <-chan *ParseResult
	Shutdown(ctx context.Context) error
	HasActiveJobs() bool
	GetStats() WorkerPoolStats
}
