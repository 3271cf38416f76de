package source

import (
	"path/filepath"
	"strings"
)

// SourceFile represents a source file with its content and metadata
type SourceFile struct {
	Name    string // Display name (e.g., "main.q", "<stdin>", "<repl>")
	Path    string // Full file path (empty for REPL/stdin)
	Content string // The source code content

	lines []string   // Cached split lines (lazy initialization)
	index *LineIndex // Cached offset index (lazy initialization)
}

// NewSourceFile creates a new source file
func NewSourceFile(name, path, content string) *SourceFile {
	return &SourceFile{
		Name:    name,
		Path:    path,
		Content: content,
	}
}

// NewEvalSource creates a source file for inline input (e.g. a flag value)
func NewEvalSource(content string) *SourceFile {
	return NewSourceFile("<eval>", "", content)
}

// NewReplSource creates a source file for REPL input
func NewReplSource(content string) *SourceFile {
	return NewSourceFile("<repl>", "", content)
}

// NewStdinSource creates a source file for stdin input
func NewStdinSource(content string) *SourceFile {
	return NewSourceFile("<stdin>", "", content)
}

// FromFile creates a SourceFile from a file path and content
func FromFile(filePath, content string) *SourceFile {
	return NewSourceFile(filepath.Base(filePath), filePath, content)
}

// Lines returns the source split into lines (cached).
// A trailing newline does not produce an extra empty line.
func (sf *SourceFile) Lines() []string {
	if sf.lines == nil {
		sf.lines = SplitLines(sf.Content)
	}
	return sf.lines
}

// PositionOf converts a byte offset into a line/column position.
func (sf *SourceFile) PositionOf(offset int) Position {
	if sf.index == nil {
		sf.index = NewLineIndex(sf.Content)
	}
	return sf.index.Position(offset)
}

// DisplayPath returns the best path for display (prefers Path, falls back to Name)
func (sf *SourceFile) DisplayPath() string {
	if sf.Path != "" {
		return sf.Path
	}
	return sf.Name
}

// IsFile returns true if this represents an actual file (has a path)
func (sf *SourceFile) IsFile() bool {
	return sf.Path != ""
}

// SplitLines splits text on '\n' the way diagnostics count lines: a final
// newline terminates the last line instead of opening an empty one.
func SplitLines(text string) []string {
	if text == "" {
		return []string{}
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
