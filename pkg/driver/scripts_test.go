package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dlclark/regexp2"

	"qlang/pkg/config"
	"qlang/pkg/source"
)

// Expectation represents the expected outcome of a script.
type Expectation struct {
	OK       bool     // parse without diagnostics
	Codes    []string // diagnostic codes in source order, e.g. E1005
	Messages []string // substrings some diagnostic message must contain
	Dialect  string   // dialect to parse with, empty for the default
}

var directiveRegex = regexp2.MustCompile(`^//\s*(expect|expect_message|dialect):\s*(.*?)\s*$`, regexp2.Multiline)

// parseExpectation extracts the expectation from the script's comments.
// Looks for lines like:
//
//	// expect: ok
//	// expect: E1005 E1006
//	// expect_message: invalid number literal
//	// dialect: minimal
func parseExpectation(content string) (*Expectation, error) {
	exp := &Expectation{}
	found := false

	m, err := directiveRegex.FindStringMatch(content)
	for ; m != nil && err == nil; m, err = directiveRegex.FindNextMatch(m) {
		groups := m.Groups()
		value := groups[2].String()
		switch groups[1].String() {
		case "expect":
			found = true
			if value == "ok" {
				exp.OK = true
			} else {
				exp.Codes = append(exp.Codes, strings.Fields(value)...)
			}
		case "expect_message":
			exp.Messages = append(exp.Messages, value)
		case "dialect":
			exp.Dialect = value
		}
	}
	if err != nil {
		return nil, fmt.Errorf("error scanning directives: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("no expectation comment found (e.g., // expect: ok)")
	}
	if exp.OK && len(exp.Codes) > 0 {
		return nil, fmt.Errorf("script expects both success and diagnostics")
	}
	return exp, nil
}

func TestParseExpectation(t *testing.T) {
	exp, err := parseExpectation("// dialect: minimal\n// expect: E1005 E1006\n// expect_message: oops \nconst x = 1;\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exp.Dialect != "minimal" || exp.OK {
		t.Errorf("got %+v", exp)
	}
	if strings.Join(exp.Codes, ",") != "E1005,E1006" {
		t.Errorf("codes = %v", exp.Codes)
	}
	if len(exp.Messages) != 1 || exp.Messages[0] != "oops" {
		t.Errorf("messages = %q", exp.Messages)
	}

	if _, err := parseExpectation("const x = 1;"); err == nil {
		t.Error("expected an error for a script without expectation")
	}
	if _, err := parseExpectation("// expect: ok\n// expect: E1001\n"); err == nil {
		t.Error("expected an error for contradictory expectations")
	}
}

func TestScripts(t *testing.T) {
	scriptDir := filepath.Join("testdata", "scripts")
	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		t.Fatalf("Failed to read script directory %q: %v", scriptDir, err)
	}

	ran := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".q") {
			continue
		}
		ran++

		scriptPath := filepath.Join(scriptDir, entry.Name())
		t.Run(entry.Name(), func(t *testing.T) {
			sf, err := source.Load(scriptPath)
			if err != nil {
				t.Fatalf("Failed to read script file %q: %v", scriptPath, err)
			}

			expectation, err := parseExpectation(sf.Content)
			if err != nil {
				t.Fatalf("Failed to parse expectation in %q: %v", scriptPath, err)
			}

			cfg := config.Default()
			if expectation.Dialect != "" {
				cfg.Parser.Dialect = expectation.Dialect
			}
			s := NewSession(Options{Config: cfg})
			res := s.Parse(sf)

			var rendered strings.Builder
			s.DisplayResult(&rendered, res)

			if expectation.OK {
				if !res.OK() {
					t.Fatalf("Unexpected diagnostics:\n%s", rendered.String())
				}
				return
			}

			var got []string
			for _, d := range res.Diagnostics {
				got = append(got, d.Code.String())
			}
			if strings.Join(got, " ") != strings.Join(expectation.Codes, " ") {
				t.Fatalf("Expected codes %v, got %v:\n%s", expectation.Codes, got, rendered.String())
			}

			for _, want := range expectation.Messages {
				found := false
				for _, d := range res.Diagnostics {
					if strings.Contains(d.Msg, want) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("Expected a diagnostic containing %q, got:\n%s", want, rendered.String())
				}
			}

			// Every reported diagnostic renders with a hint.
			for _, d := range res.Diagnostics {
				if len(d.Hints) == 0 {
					t.Errorf("Diagnostic %s has no hint", d.Code)
				}
			}
		})
	}

	if ran == 0 {
		t.Fatal("no scripts found")
	}
}
