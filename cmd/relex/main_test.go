package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KromDaniel/relex/pkg/relex"
)

const oddDFA = `2
a
1 'a' 2
2 'a' 1
1
2
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRunDFA(t *testing.T) {
	dir := t.TempDir()
	desc := writeFile(t, dir, "dfa.txt", oddDFA)
	inputs := writeFile(t, dir, "str.txt", "aa\naaa\n")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"arguments", []string{"dfa", desc, "a", "aa", "aaa"}, "Accept\nReject\nAccept\n"},
		{"input file", []string{"dfa", desc, "-i", inputs}, "Reject\nAccept\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runCLI(t, tt.args...)
			if err != nil {
				t.Fatalf("run() error = %v", err)
			}
			if out != tt.want {
				t.Errorf("run() output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestRunDFAFormatError(t *testing.T) {
	desc := writeFile(t, t.TempDir(), "bad.txt", "2\na\n1 'a' 2\n1\n2\n")
	_, _, err := runCLI(t, "dfa", desc, "a")
	if !errors.Is(err, relex.ErrFormat) {
		t.Errorf("run() error = %v, want ErrFormat", err)
	}
}

func TestRunNFA(t *testing.T) {
	desc := writeFile(t, t.TempDir(), "nfa.txt", "2\na\n1 'a' 2\n2 'e' 1\n\n1\n2\n")

	out, _, err := runCLI(t, "nfa", desc)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	d, err := relex.ReadDFA(strings.NewReader(out))
	if err != nil {
		t.Fatalf("output is not a DFA description: %v\n%s", err, out)
	}
	if !d.Simulate("aaa") || d.Simulate("") {
		t.Errorf("converted DFA does not recognise a+:\n%s", out)
	}

	out, _, err = runCLI(t, "nfa", "--format", "yaml", desc)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(out, "transitions:") {
		t.Errorf("yaml output missing transitions:\n%s", out)
	}
}

func TestRunRegex(t *testing.T) {
	dir := t.TempDir()
	def := writeFile(t, dir, "regex.txt", "\"ab\"\n\"(a|b)*abb\"\n")
	out, _, err := runCLI(t, "regex", def, "abb", "ab")
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if out != "Accept\nReject\n" {
		t.Errorf("run() output = %q", out)
	}

	bad := writeFile(t, dir, "bad.txt", "\"ab\"\n\"(a\"\n")
	out, errOut, err := runCLI(t, "regex", bad, "a")
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if out != "Reject\n" || !strings.Contains(errOut, "invalid expression") {
		t.Errorf("run() output = %q, stderr = %q", out, errOut)
	}
}

func TestRunDescribe(t *testing.T) {
	out, errOut, err := runCLI(t, "--verbose", "describe", "-a", "ab", "a")
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	want := "3\nab\n1 'a' 1\n1 'b' 1\n2 'a' 3\n2 'b' 1\n3 'a' 1\n3 'b' 1\n2\n3\n"
	if out != want {
		t.Errorf("run() output = %q, want %q", out, want)
	}
	if !strings.Contains(errOut, "=== Subset Construction ===") {
		t.Errorf("verbose log missing from stderr: %q", errOut)
	}

	if _, _, err := runCLI(t, "describe", "-a", "ab", "a|"); err == nil {
		t.Errorf("run() with an invalid pattern error = nil")
	}
}

func TestRunDescribeVerboseEnv(t *testing.T) {
	t.Setenv("RELEX_VERBOSE", "true")
	_, errOut, err := runCLI(t, "describe", "-a", "a", "a*")
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(errOut, "[relex]") {
		t.Errorf("RELEX_VERBOSE did not enable logging: %q", errOut)
	}
}

func TestRunLex(t *testing.T) {
	dir := t.TempDir()
	spec := writeFile(t, dir, "regex.txt", "\"ab01\"\nID \"(a|b)(a|b|0|1)*\"\nNUM \"(0|1)(0|1)*\"\n")
	src := writeFile(t, dir, "src.txt", "ab1 10\nba\n")

	for _, args := range [][]string{{"lex", spec, src}, {"lex", "--parallel", spec, src}} {
		out, _, err := runCLI(t, args...)
		if err != nil {
			t.Fatalf("run(%v) error = %v", args, err)
		}
		if out != "ID ab1\nNUM 10\nID ba\n" {
			t.Errorf("run(%v) output = %q", args, out)
		}
	}

	bad := writeFile(t, dir, "bad.txt", "ab ?")
	out, _, err := runCLI(t, "lex", spec, bad)
	if !errors.Is(err, relex.ErrNoMatch) {
		t.Errorf("run() error = %v, want ErrNoMatch", err)
	}
	if out != "ID ab\nInvalid token\n" {
		t.Errorf("run() output = %q", out)
	}
}

func TestRunGen(t *testing.T) {
	dir := t.TempDir()
	spec := writeFile(t, dir, "calc.lex", "\"01+\"\nNUM \"(0|1)(0|1)*\"\nPLUS \"+\"\n")
	out := filepath.Join(dir, "calc.go")

	if _, _, err := runCLI(t, "gen", spec, "--name", "Calc", "-o", out, "--package", "calc"); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output file was not created: %v", err)
	}
	if !bytes.Contains(data, []byte("func NextCalc(")) {
		t.Errorf("generated file missing NextCalc")
	}
}

func TestRunUsageErrors(t *testing.T) {
	tests := [][]string{
		{"describe", "a"},
		{"nfa", "--format", "xml", "missing.txt"},
		{"unknown"},
	}
	for _, args := range tests {
		if _, _, err := runCLI(t, args...); err == nil {
			t.Errorf("run(%v) error = nil, want error", args)
		}
	}
}
