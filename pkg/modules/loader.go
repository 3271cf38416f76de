package modules

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"

	"qlang/pkg/parser"
)

// LoaderConfig configures a multi-file check
type LoaderConfig struct {
	Pool    *PoolConfig
	Options parser.Options
	Timeout time.Duration // 0 = no limit; checked between jobs
}

// Loader discovers source files and parses them on a worker pool
type Loader struct {
	resolver Resolver
	config   LoaderConfig
	logger   logr.Logger
}

// NewLoader creates a loader reading through resolver
func NewLoader(resolver Resolver, config LoaderConfig, logger logr.Logger) *Loader {
	if config.Pool == nil {
		config.Pool = DefaultPoolConfig()
	}
	return &Loader{
		resolver: resolver,
		config:   config,
		logger:   logger.WithName("loader"),
	}
}

// Check parses every file under roots. The registry holds one result per
// discovered file, including files that could not be read. A non-nil error
// means discovery failed or the check was cancelled; the registry then holds
// whatever finished first.
func (l *Loader) Check(ctx context.Context, roots ...string) (*Registry, CheckStats, error) {
	start := time.Now()
	registry := NewRegistry()

	files, err := l.resolver.Discover(roots...)
	if err != nil {
		return registry, CheckStats{}, err
	}
	l.logger.V(1).Info("discovered files", "count", len(files), "resolver", l.resolver.Name())

	if l.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.config.Timeout)
		defer cancel()
	}

	pool := NewWorkerPool(l.config.Pool, l.logger)
	if err := pool.Start(ctx, 0); err != nil {
		return registry, CheckStats{}, err
	}

	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for res := range pool.Results() {
			registry.Set(res)
		}
	}()

	var checkErr error
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			checkErr = fmt.Errorf("check interrupted: %w", err)
			break
		}

		src, err := l.resolver.Load(path)
		if err != nil {
			l.logger.Error(err, "failed to load source", "path", path)
			registry.Set(&ParseResult{Path: path, Error: err, Timestamp: time.Now()})
			continue
		}

		job := &ParseJob{
			Path:      path,
			Source:    src,
			Options:   l.config.Options,
			Timestamp: time.Now(),
		}
		if err := pool.Submit(job); err != nil {
			checkErr = fmt.Errorf("check interrupted: %w", err)
			break
		}
	}

	if err := pool.Shutdown(context.Background()); err != nil {
		return registry, CheckStats{}, err
	}
	<-collected

	if checkErr == nil && ctx.Err() != nil {
		checkErr = fmt.Errorf("check interrupted: %w", ctx.Err())
	}

	stats := registry.Stats()
	stats.Pool = pool.GetStats()
	stats.Elapsed = time.Since(start)
	l.logger.V(1).Info("check finished",
		"files", stats.Files,
		"failed", stats.Failed,
		"diagnostics", stats.Diagnostics,
		"elapsed", stats.Elapsed)
	return registry, stats, checkErr
}
