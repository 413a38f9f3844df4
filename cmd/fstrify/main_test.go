package main

import (
	"bytes"
	"strings"
	"testing"
)

func runCmd(t *testing.T, input string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(strings.NewReader(input), &out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRewriteEndToEnd(t *testing.T) {
	out, errOut, err := runCmd(t, "print('%s, %s!' % (greeting, target))\n")
	if err != nil {
		t.Fatalf("unexpected error: %v\nstderr: %s", err, errOut)
	}
	want := "print(f'{greeting}, {target}!')\n"
	if out != want {
		t.Errorf("output wrong. expected %q, got %q", want, out)
	}
}

func TestIneligibleTemplateUnchanged(t *testing.T) {
	input := "count = '%d' % (n,)\n"
	out, _, err := runCmd(t, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != input {
		t.Errorf("output wrong. expected %q, got %q", input, out)
	}
}

func TestWindowArguments(t *testing.T) {
	input := "a = 1\nb = '%s' % (2,)\nc = 3\n"
	out, _, err := runCmd(t, input, "2", "2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "b = f'{2}'\n"
	if out != want {
		t.Errorf("output wrong. expected %q, got %q", want, out)
	}
}

func TestNonIntegerWindowIsUnbounded(t *testing.T) {
	input := "a = 1\nb = 2\nc = 3\n"
	for _, args := range [][]string{
		{"x", "y"},
		{"3", "x"},
		{"x", "3"},
	} {
		out, _, err := runCmd(t, input, args...)
		if err != nil {
			t.Fatalf("args %v: unexpected error: %v", args, err)
		}
		if out != input {
			t.Errorf("args %v: output wrong. expected %q, got %q", args, input, out)
		}
	}
}

func TestDumpASTFlag(t *testing.T) {
	defer func() { dAST = false }()

	out, _, err := runCmd(t, "x = 1\n", "--dast")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Module\n  Assign x = 1 @1:0\n"
	if out != want {
		t.Errorf("dump wrong. expected %q, got %q", want, out)
	}
}

func TestParseErrorReported(t *testing.T) {
	_, errOut, err := runCmd(t, "def f(:\n")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(errOut, "<stdin>: line 1") {
		t.Errorf("stderr should carry a positioned diagnostic, got %q", errOut)
	}
}

func TestParseWindowArgs(t *testing.T) {
	tests := []struct {
		args  []string
		first int
		last  int
	}{
		{nil, 0, 0},
		{[]string{"2", "5"}, 2, 5},
		{[]string{"a", "5"}, 0, 0},
		{[]string{"2", "b"}, 0, 0},
		{[]string{"7"}, 0, 0},
	}
	for i, tt := range tests {
		w := parseWindowArgs(tt.args)
		if w.first != tt.first || w.last != tt.last {
			t.Errorf("tests[%d] - window wrong. expected %d..%d, got %d..%d",
				i, tt.first, tt.last, w.first, w.last)
		}
	}
}

func TestNormalizeFlags(t *testing.T) {
	args := normalizeFlags([]string{"-dast", "2", "5"})
	if args[0] != "--dast" || args[1] != "2" || args[2] != "5" {
		t.Errorf("normalized args wrong: %v", args)
	}
}
