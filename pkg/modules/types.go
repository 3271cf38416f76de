package modules

import (
	"runtime"
	"time"

	"qlang/pkg/errors"
	"qlang/pkg/parser"
	"qlang/pkg/source"
)

// FileState represents the current state of a file during a check
type FileState int

const (
	FileUnknown    FileState = iota // Initial state
	FileDiscovered                  // Found by the resolver
	FileLoaded                      // Source read successfully
	FileParsing                     // Currently parsing
	FileParsed                      // Parsed without diagnostics
	FileFailed                      // Parsed with diagnostics
	FileError                       // Could not be read or parsed
)

func (s FileState) String() string {
	switch s {
	case FileUnknown:
		return "unknown"
	case FileDiscovered:
		return "discovered"
	case FileLoaded:
		return "loaded"
	case FileParsing:
		return "parsing"
	case FileParsed:
		return "parsed"
	case FileFailed:
		return "failed"
	case FileError:
		return "error"
	default:
		return "invalid"
	}
}

// ParseJob represents a file parsing task for the worker pool
type ParseJob struct {
	Path      string             // Path the file was discovered at
	Source    *source.SourceFile // Source content
	Options   parser.Options     // Dialect and diagnostic limit
	Timestamp time.Time          // When job was created
}

// ParseResult represents the result of parsing a file
type ParseResult struct {
	Path          string              // Path that was parsed
	Source        *source.SourceFile  // Source the diagnostics refer to
	AST           *parser.Program     // Parsed AST, partial when diagnostics exist
	Diagnostics   []errors.Diagnostic // Parse diagnostics in source order
	Imports       []string            // Library paths named by import declarations
	ParseDuration time.Duration       // Time taken to parse
	WorkerID      int                 // ID of worker that parsed this
	Error         error               // Read error (if any)
	Timestamp     time.Time           // When parsing completed
}

// State reports how the file fared.
func (r *ParseResult) State() FileState {
	switch {
	case r.Error != nil:
		return FileError
	case len(r.Diagnostics) > 0:
		return FileFailed
	case r.AST != nil:
		return FileParsed
	default:
		return FileUnknown
	}
}

// Failed returns true when the file could not be read or has diagnostics.
func (r *ParseResult) Failed() bool {
	s := r.State()
	return s == FileFailed || s == FileError
}

// PoolConfig configures the parse worker pool
type PoolConfig struct {
	NumWorkers       int // Number of parser workers (0 = auto)
	JobBufferSize    int // Size of job queue buffer
	ResultBufferSize int // Size of result channel buffer
}

// DefaultPoolConfig returns sensible default configuration
func DefaultPoolConfig() *PoolConfig {
	return &PoolConfig{
		NumWorkers:       runtime.NumCPU(),
		JobBufferSize:    100,
		ResultBufferSize: 100,
	}
}

// WorkerPoolStats contains statistics about worker pool performance
type WorkerPoolStats struct {
	TotalJobs     int           // Total jobs submitted
	ActiveJobs    int           // Currently active jobs
	CompletedJobs int           // Jobs parsed without diagnostics
	FailedJobs    int           // Jobs that produced diagnostics or errors
	AverageTime   time.Duration // Average processing time per job
	TotalTime     time.Duration // Total time spent processing
	WorkerCount   int           // Number of active workers
}

// CheckStats summarizes a multi-file check
type CheckStats struct {
	Files       int            // Files parsed
	Failed      int            // Files with diagnostics or read errors
	Diagnostics int            // Total diagnostics across files
	ByCode      map[errors.Code]int
	Pool        WorkerPoolStats
	Elapsed     time.Duration
}
