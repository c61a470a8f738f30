// Package codegen generates Go source for a compiled token specification.
package codegen

import (
	"fmt"
	"go/token"
)

// Variable names used in generated code
const (
	InputName   = "input"
	RunesName   = "runes"
	StateName   = "state"
	LongestName = "longest"
	TypName     = "typ"
	RecvName    = "d"
)

// Names of the declarations generated for a lexer called name.
type Names struct {
	Alphabet     string // rune -> symbol index map
	DFA          string // per token type table struct
	DFAs         string // tables in priority order
	Newlines     string // newline replacer
	Token        string
	EndOfInput   string
	InvalidToken string
	Match        string
	Next         string
}

// NamesFor returns the generated identifiers for a lexer called name.
func NamesFor(name string) Names {
	lower := LowerFirst(name)
	upper := UpperFirst(name)
	return Names{
		Alphabet:     lower + "Alphabet",
		DFA:          lower + "DFA",
		DFAs:         lower + "DFAs",
		Newlines:     lower + "Newlines",
		Token:        upper + "Token",
		EndOfInput:   "Err" + upper + "EndOfInput",
		InvalidToken: "Err" + upper + "InvalidToken",
		Match:        "Match" + upper,
		Next:         "Next" + upper,
	}
}

// ValidName checks that name can prefix exported and unexported identifiers.
func ValidName(name string) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}
	c := name[0]
	if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
		return fmt.Errorf("name %q must start with an ASCII letter", name)
	}
	if !token.IsIdentifier(name) {
		return fmt.Errorf("name %q is not a valid Go identifier", name)
	}
	return nil
}

// LowerFirst converts the first character of a string to lowercase.
func LowerFirst(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]|0x20) + s[1:]
}

// UpperFirst converts the first character of a string to uppercase.
func UpperFirst(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]&^0x20) + s[1:]
}
