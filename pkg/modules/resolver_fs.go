package modules

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dlclark/regexp2"

	"qlang/pkg/source"
)

// FileSystemResolver discovers source files in a file system
type FileSystemResolver struct {
	name string // Human-readable name
	fs   fs.FS  // File system to resolve from

	// Configuration
	extensions []string          // File extensions to collect (e.g. ".q")
	exclude    []*regexp2.Regexp // Patterns matched against slash-separated paths
}

// NewFileSystemResolver creates a new file system resolver
func NewFileSystemResolver(filesystem fs.FS) *FileSystemResolver {
	return &FileSystemResolver{
		name:       "FileSystem",
		fs:         filesystem,
		extensions: []string{".q"},
	}
}

// NewOSFileSystemResolver creates a resolver that uses the OS file system.
// Paths are taken relative to baseDir; an empty baseDir leaves them as given.
func NewOSFileSystemResolver(baseDir string) *FileSystemResolver {
	return &FileSystemResolver{
		name:       "OSFileSystem",
		fs:         &osFS{baseDir: baseDir},
		extensions: []string{".q"},
	}
}

// Name returns the resolver name
func (r *FileSystemResolver) Name() string {
	return r.name
}

// SetExtensions sets the file extensions collected from directories
func (r *FileSystemResolver) SetExtensions(extensions []string) {
	r.extensions = extensions
}

// SetExclude compiles the exclusion patterns
func (r *FileSystemResolver) SetExclude(patterns []string) error {
	compiled := make([]*regexp2.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp2.Compile(p, regexp2.None)
		if err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	r.exclude = compiled
	return nil
}

// Discover walks roots and collects matching files
func (r *FileSystemResolver) Discover(roots ...string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, root := range roots {
		root = cleanPath(root)
		info, err := fs.Stat(r.fs, root)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = fs.WalkDir(r.fs, root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if p != root && r.excluded(p+"/") {
					return fs.SkipDir
				}
				return nil
			}
			if r.hasExtension(p) && !r.excluded(p) {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// Load reads path into a SourceFile, dropping a byte order mark
func (r *FileSystemResolver) Load(p string) (*source.SourceFile, error) {
	f, err := r.fs.Open(p)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", p, err)
	}
	defer f.Close()

	content, err := source.Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", p, err)
	}
	return source.FromFile(p, content), nil
}

func (r *FileSystemResolver) hasExtension(p string) bool {
	for _, ext := range r.extensions {
		if strings.HasSuffix(p, ext) {
			return true
		}
	}
	return false
}

func (r *FileSystemResolver) excluded(p string) bool {
	for _, re := range r.exclude {
		if ok, err := re.MatchString(p); err == nil && ok {
			return true
		}
	}
	return false
}

// cleanPath normalizes a root to the slash form fs.FS walks with
func cleanPath(p string) string {
	p = path.Clean(filepath.ToSlash(p))
	if p == "" {
		return "."
	}
	return p
}

// osFS serves the OS file system. Unlike os.DirFS it
// accepts absolute and parent-relative names, as typed on a command line.
type osFS struct {
	baseDir string
}

func (osfs *osFS) full(name string) string {
	name = filepath.FromSlash(name)
	if osfs.baseDir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(osfs.baseDir, name)
}

func (osfs *osFS) Open(name string) (fs.File, error) {
	return os.Open(osfs.full(name))
}

func (osfs *osFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(osfs.full(name))
}

func (osfs *osFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(osfs.full(name))
}
