// Package automaton holds the finite automaton model shared by the regex
// compiler and the lexer: alphabets, state sets, NFAs and DFAs, and the
// plain-text / YAML description formats used to exchange them.
package automaton

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFormat is matched by every *FormatError via errors.Is.
var ErrFormat = errors.New("format error")

// FormatError reports a malformed automaton, alphabet or specification.
// Line is 1-based; 0 means the error is not tied to a line.
type FormatError struct {
	Line int
	Msg  string
}

// NewFormatError creates a FormatError with a formatted message.
func NewFormatError(line int, format string, args ...interface{}) *FormatError {
	return &FormatError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("format error at line %d: %s", e.Line, e.Msg)
	}
	return "format error: " + e.Msg
}

// Is reports whether target is ErrFormat.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// Alphabet is an ordered set of single-character symbols.
type Alphabet struct {
	symbols []rune
	index   map[rune]int
}

// NewAlphabet builds an alphabet from the characters of symbols, in order.
// A repeated character is a FormatError.
func NewAlphabet(symbols string) (*Alphabet, error) {
	a := &Alphabet{index: make(map[rune]int)}
	for _, r := range symbols {
		if _, dup := a.index[r]; dup {
			return nil, NewFormatError(0, "duplicate symbol %q in alphabet", r)
		}
		a.index[r] = len(a.symbols)
		a.symbols = append(a.symbols, r)
	}
	return a, nil
}

// Len returns the number of symbols.
func (a *Alphabet) Len() int {
	return len(a.symbols)
}

// Symbol returns the i-th symbol.
func (a *Alphabet) Symbol(i int) rune {
	return a.symbols[i]
}

// Symbols returns a copy of the symbols in declaration order.
func (a *Alphabet) Symbols() []rune {
	out := make([]rune, len(a.symbols))
	copy(out, a.symbols)
	return out
}

// Index returns the position of r in the alphabet.
func (a *Alphabet) Index(r rune) (int, bool) {
	i, ok := a.index[r]
	return i, ok
}

// Contains reports whether r is a symbol of the alphabet.
func (a *Alphabet) Contains(r rune) bool {
	_, ok := a.index[r]
	return ok
}

func (a *Alphabet) String() string {
	var b strings.Builder
	for _, r := range a.symbols {
		b.WriteRune(r)
	}
	return b.String()
}
