package lexer

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/KromDaniel/relex/internal/automaton"
	"github.com/KromDaniel/relex/internal/regex"
)

// TokenSpec declares one token type and the pattern its lexemes match.
type TokenSpec struct {
	Type    string
	Pattern string
}

// Spec is an ordered token specification. The index of a token type in
// Tokens is its priority; 0 is the highest.
type Spec struct {
	Alphabet string
	Tokens   []TokenSpec
}

// Validate checks the alphabet and the token type names. Patterns are not
// checked here: an invalid pattern only disables its own token type.
func (s *Spec) Validate() error {
	alphabet, err := automaton.NewAlphabet(s.Alphabet)
	if err != nil {
		return err
	}
	if err := regex.ValidateAlphabet(alphabet); err != nil {
		return err
	}
	seen := make(map[string]bool, len(s.Tokens))
	for i, t := range s.Tokens {
		if t.Type == "" {
			return automaton.NewFormatError(0, "token %d has no type", i+1)
		}
		if seen[t.Type] {
			return automaton.NewFormatError(0, "duplicate token type %q", t.Type)
		}
		seen[t.Type] = true
	}
	return nil
}

// ParseSpec reads a token specification: the alphabet in double quotes on
// the first line, then one `<type> "<pattern>"` line per token type in
// priority order. Blank lines are skipped.
func ParseSpec(r io.Reader) (*Spec, error) {
	sc := bufio.NewScanner(r)
	spec := &Spec{}
	line := 0
	haveAlphabet := false

	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if !haveAlphabet {
			symbols, ok := unquote(text)
			if !ok {
				return nil, automaton.NewFormatError(line, "alphabet must be enclosed in double quotes, got %s", text)
			}
			spec.Alphabet = symbols
			haveAlphabet = true
			continue
		}

		fields := strings.Fields(text)
		if len(fields) < 2 {
			return nil, automaton.NewFormatError(line, "want <type> \"<pattern>\", got %s", text)
		}
		typ := fields[0]
		pattern, ok := unquote(strings.TrimSpace(strings.TrimPrefix(text, typ)))
		if !ok {
			return nil, automaton.NewFormatError(line, "pattern for %s must be enclosed in double quotes", typ)
		}
		spec.Tokens = append(spec.Tokens, TokenSpec{Type: typ, Pattern: pattern})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read token specification: %w", err)
	}
	if !haveAlphabet {
		return nil, automaton.NewFormatError(0, "missing alphabet line")
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

func unquote(s string) (string, bool) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", false
	}
	return s[1 : len(s)-1], true
}
