package regex

import (
	"fmt"

	"github.com/KromDaniel/relex/internal/automaton"
)

// Reserved characters of the regex language.
const (
	EpsilonChar = 'e'
	EmptyChar   = 'N'
	escapeChar  = '\\'
)

type tokenKind int

const (
	tokSymbol tokenKind = iota
	tokEpsilon
	tokEmpty
	tokLParen
	tokRParen
	tokStar
	tokUnion
	tokConcat
)

func (k tokenKind) String() string {
	switch k {
	case tokSymbol:
		return "symbol"
	case tokEpsilon:
		return "e"
	case tokEmpty:
		return "N"
	case tokLParen:
		return "("
	case tokRParen:
		return ")"
	case tokStar:
		return "*"
	case tokUnion:
		return "|"
	case tokConcat:
		return "concatenation"
	}
	return fmt.Sprintf("tokenKind(%d)", int(k))
}

// precedence orders the operators; parentheses are handled as barriers.
func (k tokenKind) precedence() int {
	switch k {
	case tokUnion:
		return 0
	case tokConcat:
		return 1
	case tokStar:
		return 2
	}
	return 3
}

func (k tokenKind) arity() int {
	if k == tokStar {
		return 1
	}
	return 2
}

// endsOperand reports whether a token of kind k can end an operand.
func (k tokenKind) endsOperand() bool {
	switch k {
	case tokSymbol, tokEpsilon, tokEmpty, tokRParen, tokStar:
		return true
	}
	return false
}

// startsOperand reports whether a token of kind k can start an operand.
func (k tokenKind) startsOperand() bool {
	switch k {
	case tokSymbol, tokEpsilon, tokEmpty, tokLParen:
		return true
	}
	return false
}

type token struct {
	kind tokenKind
	sym  rune // for tokSymbol
	pos  int  // byte offset in the pattern
}

func isSpecial(r rune) bool {
	switch r {
	case '(', ')', '*', '|', escapeChar:
		return true
	}
	return false
}

// ValidateAlphabet rejects alphabets that contain the reserved e and N
// literals, which could not be told apart from the symbols.
func ValidateAlphabet(alphabet *automaton.Alphabet) error {
	for _, r := range []rune{EpsilonChar, EmptyChar} {
		if alphabet.Contains(r) {
			return automaton.NewFormatError(0, "alphabet may not contain the reserved symbol %q", r)
		}
	}
	return nil
}

// tokenize splits pattern into tokens. Alphabet symbols that are also
// special characters must be escaped.
func tokenize(pattern string, alphabet *automaton.Alphabet) ([]token, error) {
	var tokens []token
	escaped := false
	escapePos := 0
	for pos, r := range pattern {
		if escaped {
			escaped = false
			if !isSpecial(r) {
				return nil, fmt.Errorf("%w: unknown escape \\%c at offset %d", ErrInvalidExpression, r, escapePos)
			}
			if !alphabet.Contains(r) {
				return nil, fmt.Errorf("%w: escaped symbol %q at offset %d is not in the alphabet", ErrInvalidExpression, r, escapePos)
			}
			tokens = append(tokens, token{kind: tokSymbol, sym: r, pos: escapePos})
			continue
		}

		switch r {
		case escapeChar:
			escaped = true
			escapePos = pos
		case EpsilonChar:
			tokens = append(tokens, token{kind: tokEpsilon, pos: pos})
		case EmptyChar:
			tokens = append(tokens, token{kind: tokEmpty, pos: pos})
		case '(':
			tokens = append(tokens, token{kind: tokLParen, pos: pos})
		case ')':
			tokens = append(tokens, token{kind: tokRParen, pos: pos})
		case '*':
			tokens = append(tokens, token{kind: tokStar, pos: pos})
		case '|':
			tokens = append(tokens, token{kind: tokUnion, pos: pos})
		default:
			if !alphabet.Contains(r) {
				return nil, fmt.Errorf("%w: symbol %q at offset %d is not in the alphabet", ErrInvalidExpression, r, pos)
			}
			tokens = append(tokens, token{kind: tokSymbol, sym: r, pos: pos})
		}
	}
	if escaped {
		return nil, fmt.Errorf("%w: trailing escape at offset %d", ErrInvalidExpression, escapePos)
	}
	return tokens, nil
}

// insertConcat makes concatenation explicit: a concatenation token goes
// between every token that ends an operand and a following token that
// starts one.
func insertConcat(tokens []token) []token {
	out := make([]token, 0, 2*len(tokens))
	for i, tok := range tokens {
		if i > 0 && tokens[i-1].kind.endsOperand() && tok.kind.startsOperand() {
			out = append(out, token{kind: tokConcat, pos: tok.pos})
		}
		out = append(out, tok)
	}
	return out
}
