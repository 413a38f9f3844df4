package printer

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/tmorris/fstrify/pkg/lexer"
	"github.com/tmorris/fstrify/pkg/parser"
	"github.com/tmorris/fstrify/pkg/pyast"
)

// TestSpec represents a test case from rewrite.yaml
type TestSpec struct {
	Name   string `yaml:"name"`
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	First  int    `yaml:"first,omitempty"`
	Last   int    `yaml:"last,omitempty"`
}

// TestFile represents the rewrite.yaml file structure
type TestFile struct {
	Tests []TestSpec `yaml:"tests"`
}

func render(t *testing.T, input string, first, last int) string {
	t.Helper()

	l := lexer.New(input)
	p := parser.New(l)
	mod := p.ParseModule()
	if len(p.Errors()) > 0 {
		t.Fatalf("parser errors: %v", p.Errors())
	}

	var out, errOut bytes.Buffer
	pr := New(&out)
	pr.SetErrOutput(&errOut)
	pr.SetSource(input)
	if first > 0 || last > 0 {
		if first == 0 {
			first = 1
		}
		if last == 0 {
			last = int(^uint(0) >> 1)
		}
		pr.SetWindow(first, last)
	}
	if err := pr.Render(mod); err != nil {
		t.Fatalf("render failed: %v\n%s", err, errOut.String())
	}
	pr.Finish()
	return out.String()
}

func TestRewriteYAML(t *testing.T) {
	data, err := os.ReadFile("../../testdata/rewrite.yaml")
	if err != nil {
		t.Fatalf("failed to read rewrite.yaml: %v", err)
	}

	var testFile TestFile
	if err := yaml.Unmarshal(data, &testFile); err != nil {
		t.Fatalf("failed to parse rewrite.yaml: %v", err)
	}

	for _, tc := range testFile.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			got := render(t, tc.Input, tc.First, tc.Last)
			if got != tc.Output {
				t.Errorf("output mismatch\nexpected:\n%s\ngot:\n%s", tc.Output, got)
			}
		})
	}
}

// Rewritten output parses again, and a second pass leaves it unchanged.
func TestRewriteIsIdempotent(t *testing.T) {
	inputs := []string{
		"msg = '%s%s, %s!' % (greeting[0].upper(), greeting[1:], target)\n",
		"label = '%r' % (x,)\n",
		"count = '%d' % (n,)\n",
		"print('%s' % name)\n",
		"s = '%s' % ('x',)\n",
		"s = '%s' % (\"it's\",)\n",
	}
	for _, input := range inputs {
		once := render(t, input, 0, 0)
		twice := render(t, once, 0, 0)
		if once != twice {
			t.Errorf("second pass changed output\nfirst:\n%s\nsecond:\n%s", once, twice)
		}
	}
}

func TestMalformedNodeError(t *testing.T) {
	mod := &pyast.Module{
		At: pyast.Pos{Line: 1, Col: 0},
		Body: []pyast.Stmt{
			&pyast.ExprStmt{At: pyast.Pos{Line: 1, Col: 0}},
		},
	}

	var out, errOut bytes.Buffer
	pr := New(&out)
	pr.SetErrOutput(&errOut)
	pr.SetSource("pass\n")

	err := pr.Render(mod)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var nodeErr *NodeError
	if !errors.As(err, &nodeErr) {
		t.Fatalf("expected *NodeError, got %T", err)
	}
	if want := "line 1, col 0: *pyast.ExprStmt missing expression"; err.Error() != want {
		t.Errorf("error message wrong. expected %q, got %q", want, err.Error())
	}
}

// every frame of the failure path gets a backtrace entry, innermost first
func TestBacktraceOutput(t *testing.T) {
	mod := &pyast.Module{
		At: pyast.Pos{Line: 1, Col: 0},
		Body: []pyast.Stmt{
			&pyast.Return{
				At:    pyast.Pos{Line: 1, Col: 0},
				Value: &pyast.BinOp{At: pyast.Pos{Line: 1, Col: 7}, Op: pyast.OpAdd},
			},
		},
	}

	var out, errOut bytes.Buffer
	pr := New(&out)
	pr.SetErrOutput(&errOut)
	pr.SetSource("return broken\n")

	if err := pr.Render(mod); err == nil {
		t.Fatal("expected error, got nil")
	}

	trace := errOut.String()
	frames := []string{"*pyast.BinOp", "*pyast.Return", "*pyast.Module"}
	pos := 0
	for _, frame := range frames {
		i := strings.Index(trace[pos:], "At node "+frame)
		if i < 0 {
			t.Fatalf("missing backtrace frame %s in:\n%s", frame, trace)
		}
		pos += i
	}
	if !strings.Contains(trace, "return broken\n") {
		t.Errorf("backtrace should quote the source line:\n%s", trace)
	}
	if !strings.Contains(trace, "       ^") {
		t.Errorf("backtrace should mark the failing column:\n%s", trace)
	}
}
