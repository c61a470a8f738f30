package relex

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		alphabet string
		invalid  bool
		accepts  []string
		rejects  []string
	}{
		{"example", "(a|b)*abb", "ab", false, []string{"abb", "aabb"}, []string{"ab", ""}},
		{"epsilon", "e", "ab", false, []string{""}, []string{"a"}},
		{"empty language", "N", "ab", false, nil, []string{"", "a"}},
		{"unbalanced", "(ab", "ab", true, nil, []string{"ab", ""}},
		{"unknown symbol", "abc", "ab", true, nil, []string{"abc"}},
		{"reserved alphabet", "a", "ae", true, nil, []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Compile(tt.pattern, tt.alphabet)
			if r.Invalid() != tt.invalid {
				t.Fatalf("Invalid() = %v, want %v (err %v)", r.Invalid(), tt.invalid, r.Err())
			}
			if tt.invalid && r.DFA() != nil {
				t.Errorf("DFA() != nil for an invalid pattern")
			}
			for _, s := range tt.accepts {
				if !r.Match(s) {
					t.Errorf("Match(%q) = false, want true", s)
				}
			}
			for _, s := range tt.rejects {
				if r.Match(s) {
					t.Errorf("Match(%q) = true, want false", s)
				}
			}
		})
	}
}

func TestCompileInvalidError(t *testing.T) {
	r := Compile("a|", "ab")
	if !errors.Is(r.Err(), ErrInvalidExpression) {
		t.Errorf("Err() = %v, want ErrInvalidExpression", r.Err())
	}
	if r.Pattern() != "a|" || r.Alphabet() != "ab" {
		t.Errorf("Pattern(), Alphabet() = %q, %q", r.Pattern(), r.Alphabet())
	}
}

func TestReadRegex(t *testing.T) {
	r, err := ReadRegex(strings.NewReader("\"ab\"\n\"(a|b)*abb\"\n"))
	if err != nil {
		t.Fatalf("ReadRegex() error = %v", err)
	}
	if r.Alphabet() != "ab" || r.Pattern() != "(a|b)*abb" {
		t.Errorf("ReadRegex() = %q over %q", r.Pattern(), r.Alphabet())
	}
	if !r.Match("babb") {
		t.Errorf("Match(%q) = false, want true", "babb")
	}

	// A well-formed file with a bad pattern is not an error.
	r, err = ReadRegex(strings.NewReader("\"ab\"\n\"a||b\"\n"))
	if err != nil {
		t.Fatalf("ReadRegex() error = %v", err)
	}
	if !r.Invalid() {
		t.Errorf("Invalid() = false for a||b")
	}
}

func TestReadRegexErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"missing pattern", "\"ab\"\n"},
		{"unquoted alphabet", "ab\n\"a\"\n"},
		{"unquoted pattern", "\"ab\"\na\n"},
		{"single quote", "\"ab\"\n\"a\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadRegex(strings.NewReader(tt.input)); !errors.Is(err, ErrFormat) {
				t.Errorf("ReadRegex() error = %v, want ErrFormat", err)
			}
		})
	}
}

func TestReadNFAToDFA(t *testing.T) {
	// NFA for a(b|e) with an explicit epsilon edge.
	const desc = `4
ab
1 'a' 2
2 'e' 3
2 'b' 4

1
3 4
`
	n, err := ReadNFA(strings.NewReader(desc))
	if err != nil {
		t.Fatalf("ReadNFA() error = %v", err)
	}
	d, err := ToDFA(n)
	if err != nil {
		t.Fatalf("ToDFA() error = %v", err)
	}

	tests := []struct {
		input string
		want  bool
	}{
		{"a", true},
		{"ab", true},
		{"", false},
		{"b", false},
		{"abb", false},
	}
	for _, tt := range tests {
		if got := d.Simulate(tt.input); got != tt.want {
			t.Errorf("Simulate(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestReadDFA(t *testing.T) {
	const desc = `2
a
1 'a' 2
2 'a' 1
1
2
`
	d, err := ReadDFA(strings.NewReader(desc))
	if err != nil {
		t.Fatalf("ReadDFA() error = %v", err)
	}
	if !d.Simulate("aaa") || d.Simulate("aa") {
		t.Errorf("odd-length DFA gives Simulate(aaa) = %v, Simulate(aa) = %v", d.Simulate("aaa"), d.Simulate("aa"))
	}
}

func TestNewLexer(t *testing.T) {
	spec := `"ab01"
ID "(a|b)(a|b|0|1)*"
NUM "(0|1)(0|1)*"
`
	l, err := NewLexer(strings.NewReader(spec), "ab1 01\nb", LexerConfig{})
	if err != nil {
		t.Fatalf("NewLexer() error = %v", err)
	}
	tokens, err := l.All()
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	want := []Token{{Type: "ID", Lexeme: "ab1"}, {Type: "NUM", Lexeme: "01"}, {Type: "ID", Lexeme: "b"}}
	if len(tokens) != len(want) {
		t.Fatalf("All() = %v, want %v", tokens, want)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, tokens[i], want[i])
		}
	}

	if _, err := NewLexer(strings.NewReader("ab\n"), "", LexerConfig{}); !errors.Is(err, ErrFormat) {
		t.Errorf("NewLexer() with a bad spec error = %v, want ErrFormat", err)
	}
}

func TestGenerateOptionsValidate(t *testing.T) {
	valid := GenerateOptions{SpecFile: "calc.lex", Name: "Calc", OutputFile: "calc.go", Package: "calc"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	tests := []struct {
		name   string
		modify func(*GenerateOptions)
	}{
		{"no spec", func(o *GenerateOptions) { o.SpecFile = "" }},
		{"no name", func(o *GenerateOptions) { o.Name = "" }},
		{"no output", func(o *GenerateOptions) { o.OutputFile = "" }},
		{"no package", func(o *GenerateOptions) { o.Package = "" }},
		{"bad name", func(o *GenerateOptions) { o.Name = "1calc" }},
		{"bad package", func(o *GenerateOptions) { o.Package = "my-pkg" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := valid
			tt.modify(&opts)
			if err := opts.Validate(); err == nil {
				t.Errorf("Validate() error = nil, want error")
			}
		})
	}
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	specFile := filepath.Join(dir, "calc.lex")
	if err := os.WriteFile(specFile, []byte("\"01+\"\nNUM \"(0|1)(0|1)*\"\nPLUS \"+\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "calc_lexer.go")

	err := Generate(GenerateOptions{SpecFile: specFile, Name: "Calc", OutputFile: out, Package: "calc"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output file was not created: %v", err)
	}
	for _, want := range []string{"package calc", "// Token specification: calc.lex", "func NextCalc(", "\"PLUS\""} {
		if !strings.Contains(string(data), want) {
			t.Errorf("generated file missing %q", want)
		}
	}

	if err := Generate(GenerateOptions{SpecFile: filepath.Join(dir, "missing.lex"), Name: "Calc", OutputFile: out, Package: "calc"}); err == nil {
		t.Errorf("Generate() with a missing spec file error = nil")
	}
}
