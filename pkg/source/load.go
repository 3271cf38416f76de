package source

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// Read reads all of r, dropping a leading UTF-8 byte order mark. Every other
// byte is kept as is, invalid UTF-8 included, so spans index the original
// file.
func Read(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(bytes.TrimPrefix(data, utf8BOM)), nil
}

// Load reads the file at path into a SourceFile.
func Load(path string) (*SourceFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file '%s': %w", path, err)
	}
	defer f.Close()

	content, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode file '%s': %w", path, err)
	}
	return FromFile(path, content), nil
}

// LoadStdin reads standard input into a SourceFile.
func LoadStdin(r io.Reader) (*SourceFile, error) {
	content, err := Read(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return NewStdinSource(content), nil
}
