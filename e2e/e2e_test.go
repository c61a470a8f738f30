package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/d4l3k/messagediff"

	"github.com/KromDaniel/relex/pkg/relex"
)

// TestCase is a token specification and the inputs to tokenize with it.
type TestCase struct {
	Spec   string   `json:"spec"`
	Inputs []string `json:"inputs"`
}

// driver tokenizes every input read from stdin with the generated lexer and
// prints one token list per input.
const driver = `package main

import (
	"encoding/json"
	"os"
)

func main() {
	var inputs []string
	if err := json.NewDecoder(os.Stdin).Decode(&inputs); err != nil {
		panic(err)
	}
	out := make([][]string, 0, len(inputs))
	for _, rest := range inputs {
		var tokens []string
		for {
			tok, next, err := NextNAME(rest)
			if err == ErrNAMEEndOfInput {
				break
			}
			if err != nil {
				tokens = append(tokens, "!invalid")
				break
			}
			tokens = append(tokens, tok.Type+" "+tok.Lexeme)
			rest = next
		}
		out = append(out, tokens)
	}
	if err := json.NewEncoder(os.Stdout).Encode(out); err != nil {
		panic(err)
	}
}
`

// expected tokenizes inputs with the library lexer, in the driver's output shape.
func expected(t *testing.T, spec string, inputs []string) [][]string {
	t.Helper()
	out := make([][]string, 0, len(inputs))
	for _, in := range inputs {
		l, err := relex.NewLexer(strings.NewReader(spec), in, relex.LexerConfig{})
		if err != nil {
			t.Fatalf("NewLexer() error = %v", err)
		}
		tokens, err := l.All()
		var lines []string
		for _, tok := range tokens {
			lines = append(lines, tok.Type+" "+tok.Lexeme)
		}
		if err != nil {
			lines = append(lines, "!invalid")
		}
		out = append(out, lines)
	}
	return out
}

// TestE2E generates a lexer for every case, builds it with a driver program
// and checks that it tokenizes exactly like the library lexer.
func TestE2E(t *testing.T) {
	goBin, err := exec.LookPath("go")
	if err != nil {
		t.Skip("go toolchain not available")
	}

	data, err := os.ReadFile("testdata.json")
	if err != nil {
		t.Fatalf("Failed to read test data: %v", err)
	}
	var testCases []TestCase
	if err := json.Unmarshal(data, &testCases); err != nil {
		t.Fatalf("Failed to parse test data: %v", err)
	}
	if len(testCases) == 0 {
		t.Fatal("No test cases found in testdata.json")
	}

	tempDir := t.TempDir()
	for i, tc := range testCases {
		name := fmt.Sprintf("Case%02d", i+1)
		t.Run(name, func(t *testing.T) {
			caseDir := filepath.Join(tempDir, name)
			if err := os.MkdirAll(caseDir, 0o755); err != nil {
				t.Fatalf("Failed to create test directory: %v", err)
			}

			specFile := filepath.Join(caseDir, "spec.lex")
			if err := os.WriteFile(specFile, []byte(tc.Spec), 0o644); err != nil {
				t.Fatal(err)
			}
			err := relex.Generate(relex.GenerateOptions{
				SpecFile:   specFile,
				Name:       name,
				OutputFile: filepath.Join(caseDir, "lexer.go"),
				Package:    "main",
			})
			if err != nil {
				t.Fatalf("Failed to generate code: %v", err)
			}
			src := strings.ReplaceAll(driver, "NAME", name)
			if err := os.WriteFile(filepath.Join(caseDir, "main.go"), []byte(src), 0o644); err != nil {
				t.Fatal(err)
			}

			initCmd := exec.Command(goBin, "mod", "init", "testmodule")
			initCmd.Dir = caseDir
			if output, err := initCmd.CombinedOutput(); err != nil {
				t.Fatalf("Failed to initialize go module:\nOutput: %s\nError: %v", output, err)
			}

			stdin, err := json.Marshal(tc.Inputs)
			if err != nil {
				t.Fatal(err)
			}
			var stdout, stderr bytes.Buffer
			runCmd := exec.Command(goBin, "run", ".")
			runCmd.Dir = caseDir
			runCmd.Stdin = bytes.NewReader(stdin)
			runCmd.Stdout = &stdout
			runCmd.Stderr = &stderr
			if err := runCmd.Run(); err != nil {
				t.Fatalf("Generated lexer failed:\nStderr: %s\nError: %v", stderr.String(), err)
			}

			var got [][]string
			if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
				t.Fatalf("Failed to parse driver output %q: %v", stdout.String(), err)
			}
			if diff, equal := messagediff.PrettyDiff(expected(t, tc.Spec, tc.Inputs), got); !equal {
				t.Errorf("generated lexer differs from library lexer:\n%s", diff)
			}
		})
	}
}
