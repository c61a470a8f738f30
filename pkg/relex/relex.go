// Package relex compiles regular expressions over a declared alphabet into
// DFAs and tokenizes text with one DFA per token type.
package relex

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/KromDaniel/relex/internal/automaton"
	"github.com/KromDaniel/relex/internal/compiler"
	"github.com/KromDaniel/relex/internal/lexer"
	"github.com/KromDaniel/relex/internal/regex"
)

type (
	// DFA is a deterministic finite automaton with states numbered from 1.
	DFA = automaton.DFA
	// NFA is a nondeterministic finite automaton with epsilon moves.
	NFA = automaton.NFA
	// FormatError reports a malformed description or definition file.
	FormatError = automaton.FormatError
	// Lexer is a maximal-munch tokenizer.
	Lexer = lexer.Lexer
	// LexerConfig configures NewLexer.
	LexerConfig = lexer.Config
	// Token is a lexeme and its token type.
	Token = lexer.Token
	// ErrInvalidToken is returned by Lexer.Next when no token type matches.
	ErrInvalidToken = lexer.ErrInvalidToken
)

var (
	// ErrFormat matches every FormatError under errors.Is.
	ErrFormat = automaton.ErrFormat
	// ErrEndOfInput is returned by Lexer.Next when the input is exhausted.
	ErrEndOfInput = lexer.ErrEndOfInput
	// ErrNoMatch matches every *ErrInvalidToken under errors.Is.
	ErrNoMatch = lexer.ErrNoMatch
	// ErrInvalidExpression matches the error of an invalid Regex.
	ErrInvalidExpression = regex.ErrInvalidExpression
)

var defaultCache = mustCache()

func mustCache() *compiler.Cache {
	c, err := compiler.NewCache(compiler.DefaultCacheSize)
	if err != nil {
		panic(err)
	}
	return c
}

// Regex is a compiled regular expression. An invalid pattern still yields a
// Regex: it reports Invalid and matches nothing.
type Regex struct {
	pattern  string
	alphabet string
	dfa      *DFA
	err      error
}

// Compile compiles pattern over the symbols of alphabet. It never fails;
// check Invalid or Err for a pattern that could not be compiled.
func Compile(pattern, alphabet string) *Regex {
	d, err := defaultCache.Compile(compiler.Config{Pattern: pattern, Alphabet: alphabet})
	return &Regex{pattern: pattern, alphabet: alphabet, dfa: d, err: err}
}

// Pattern returns the source pattern.
func (r *Regex) Pattern() string { return r.pattern }

// Alphabet returns the symbols the pattern was compiled over.
func (r *Regex) Alphabet() string { return r.alphabet }

// Invalid reports whether the pattern failed to compile.
func (r *Regex) Invalid() bool { return r.err != nil }

// Err returns the compile error, or nil.
func (r *Regex) Err() error { return r.err }

// DFA returns the compiled DFA, or nil when the pattern is invalid.
func (r *Regex) DFA() *DFA { return r.dfa }

// Match reports whether s is in the language of the pattern. It is always
// false for an invalid pattern.
func (r *Regex) Match(s string) bool {
	if r.err != nil {
		return false
	}
	return r.dfa.Simulate(s)
}

// ReadRegex reads a regex definition: the alphabet in double quotes on the
// first line and the pattern in double quotes on the second. Only a
// malformed file is an error; an invalid pattern gives an invalid Regex.
func ReadRegex(r io.Reader) (*Regex, error) {
	sc := bufio.NewScanner(r)
	var fields [2]string
	for i, what := range []string{"alphabet", "pattern"} {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, fmt.Errorf("failed to read regex definition: %w", err)
			}
			return nil, automaton.NewFormatError(i+1, "missing %s line", what)
		}
		line := sc.Text()
		first, last := strings.IndexByte(line, '"'), strings.LastIndexByte(line, '"')
		if first < 0 || first == last {
			return nil, automaton.NewFormatError(i+1, "%s must be enclosed in double quotes", what)
		}
		fields[i] = line[first+1 : last]
	}
	return Compile(fields[1], fields[0]), nil
}

// ReadDFA reads a DFA description.
func ReadDFA(r io.Reader) (*DFA, error) {
	return automaton.ReadDFA(r)
}

// ReadNFA reads an NFA description. The symbol e stands for epsilon.
func ReadNFA(r io.Reader) (*NFA, error) {
	return automaton.ReadNFA(r)
}

// ToDFA converts an NFA to an equivalent DFA by the subset construction.
func ToDFA(n *NFA) (*DFA, error) {
	return compiler.ToDFA(n)
}

// NewLexer reads a token specification from spec and returns a lexer over
// input. Token types with an invalid pattern never match.
func NewLexer(spec io.Reader, input string, config LexerConfig) (*Lexer, error) {
	s, err := lexer.ParseSpec(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to read token specification: %w", err)
	}
	if config.Cache == nil {
		config.Cache = defaultCache
	}
	return lexer.New(s, input, config), nil
}
