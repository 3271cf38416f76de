package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps tests from picking up configuration outside the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("QLANG_CONFIG", "")
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")
}

func execute(t *testing.T, stdin string, argv ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(argv, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseFile(t *testing.T) {
	isolate(t)
	path := writeSource(t, t.TempDir(), "main.q", "const limit = 10;\n")

	code, out, errOut := execute(t, "", "parse", path)
	assert.Equal(t, exitOK, code, errOut)
	assert.Equal(t, "Program\n  Const limit @0..17\n    IntegerLiteral 10 @14..16\n", out)
}

func TestParseStdinFormats(t *testing.T) {
	isolate(t)
	src := `import (print) from "std"; fn main() -> void { print(1); }`

	code, out, _ := execute(t, src, "parse", "-", "--format", "source")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "import (print) from \"std\";\nfn main() -> void {\n  print(1);\n}\n", out)

	code, out, _ = execute(t, src, "parse", "--format", "json")
	require.Equal(t, exitOK, code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Program", doc["type"])

	code, out, _ = execute(t, src, "parse", "-f", "yaml")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "type: Program")
}

func TestParseDiagnostics(t *testing.T) {
	isolate(t)
	path := writeSource(t, t.TempDir(), "bad.q", "const x = 5a;\n")

	code, out, errOut := execute(t, "", "parse", path)
	assert.Equal(t, exitDiagnostics, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "error: invalid number literal `5a` [E1005]")
	assert.Contains(t, errOut, "bad.q:1:11")
	assert.Contains(t, errOut, "hint: number literals can't have alphabetical characters in them!")
	assert.NotContains(t, errOut, "\x1b[", "NO_COLOR disables color")
}

func TestParseColorAlways(t *testing.T) {
	isolate(t)
	code, _, errOut := execute(t, "const x = 5a;", "parse", "--color", "always")
	assert.Equal(t, exitDiagnostics, code)
	assert.Contains(t, errOut, "\x1b[")
}

func TestDialectFlag(t *testing.T) {
	isolate(t)
	src := "const x = 1 + 2;"

	code, _, _ := execute(t, src, "parse")
	assert.Equal(t, exitOK, code)

	code, _, errOut := execute(t, src, "parse", "--dialect", "minimal")
	assert.Equal(t, exitDiagnostics, code)
	assert.Contains(t, errOut, "[E1007]")
}

func TestUsageErrors(t *testing.T) {
	isolate(t)
	tests := []struct {
		name string
		argv []string
	}{
		{"missing file", []string{"parse", filepath.Join(t.TempDir(), "nope.q")}},
		{"too many args", []string{"parse", "a.q", "b.q"}},
		{"bad format", []string{"parse", "--format", "xml"}},
		{"bad dialect", []string{"parse", "--dialect", "full"}},
		{"bad color", []string{"parse", "--color", "purple"}},
		{"unknown flag", []string{"parse", "--frobnicate"}},
		{"unknown command", []string{"frobnicate"}},
		{"missing config", []string{"parse", "--config", filepath.Join(t.TempDir(), "none.toml")}},
		{"missing check path", []string{"check", filepath.Join(t.TempDir(), "nowhere")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := execute(t, "", tt.argv...)
			assert.Equal(t, exitUsage, code, errOut)
			assert.Contains(t, errOut, "error: ")
		})
	}
}

func TestConfigFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	cfgPath := writeSource(t, dir, "qlang.toml", "[parser]\ndialect = \"minimal\"\n\n[output]\nformat = \"source\"\n")

	code, out, _ := execute(t, "const x = 1;", "parse", "--config", cfgPath)
	require.Equal(t, exitOK, code)
	assert.Equal(t, "const x = 1;\n", out)

	code, _, _ = execute(t, "const x = 1 + 2;", "parse", "--config", cfgPath)
	assert.Equal(t, exitDiagnostics, code)

	// Flags override the file.
	code, _, _ = execute(t, "const x = 1 + 2;", "parse", "--config", cfgPath, "--dialect", "extended")
	assert.Equal(t, exitOK, code)
}

func TestTokens(t *testing.T) {
	isolate(t)
	code, out, _ := execute(t, "fn f() -> int {}", "tokens")
	require.Equal(t, exitOK, code)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, []string{"1:1", "0..2", "FN", `"fn"`}, strings.Fields(lines[0]))
	assert.Equal(t, "->", strings.Fields(lines[4])[2])
	assert.Equal(t, "EOF", strings.Fields(lines[8])[2])
}

func TestCheck(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeSource(t, dir, "main.q", `import (print) from "std"; fn main() -> void { print(1); }`)
	writeSource(t, dir, "lib/ok.q", "const ok = 1;\n")
	writeSource(t, dir, "lib/bad.q", "const bad = 5a;\n")

	code, out, _ := execute(t, "", "check", dir)
	assert.Equal(t, exitDiagnostics, code)
	assert.Contains(t, out, "[E1005]")
	assert.Contains(t, out, "bad.q:1:13")
	assert.True(t, strings.HasSuffix(out, "checked 3 files: 1 failed, 1 diagnostic\n"), out)

	code, out, _ = execute(t, "", "check", filepath.Join(dir, "lib", "ok.q"), filepath.Join(dir, "main.q"))
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "checked 2 files: 0 failed, 0 diagnostics\n", out)
}

func TestRepl(t *testing.T) {
	isolate(t)
	input := ".h\nconst x = 1;\n\nconst y = 5a;\n.q\nconst never = 1;\n"

	code, out, _ := execute(t, input, "repl")
	require.Equal(t, exitOK, code)
	assert.True(t, strings.HasPrefix(out, "qlang (.h for help, .q to quit)\n> "))
	assert.Contains(t, out, ".q    quit")
	assert.Contains(t, out, "Const x @0..12")
	assert.Contains(t, out, "[E1005]")
	assert.Contains(t, out, "<repl>:1:11")
	assert.NotContains(t, out, "never")
	assert.NotContains(t, out, "Goodbye!")
}

func TestReplEndOfInput(t *testing.T) {
	isolate(t)
	code, out, _ := execute(t, "const x = 1;\n", "repl")
	require.Equal(t, exitOK, code)
	assert.True(t, strings.HasSuffix(out, "\nGoodbye!\n"), out)
}

func TestVerboseLogging(t *testing.T) {
	isolate(t)
	code, _, errOut := execute(t, "const x = 1;", "parse", "-v")
	require.Equal(t, exitOK, code)
	assert.Contains(t, errOut, `"msg":"parsed source"`)
	assert.Contains(t, errOut, `"session":`)

	code, _, errOut = execute(t, "const x = 1;", "parse")
	require.Equal(t, exitOK, code)
	assert.Empty(t, errOut)
}
