// Package lexer splits input text into tokens using one DFA per token type
// and the maximal-munch rule.
package lexer

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/KromDaniel/relex/internal/automaton"
	"github.com/KromDaniel/relex/internal/compiler"
)

// Separator ends a token once some token type has matched. Before that it is
// skipped. Newlines and carriage returns in the input are read as Separator.
const Separator = ' '

// ErrEndOfInput is returned by Next when only separators remain.
var ErrEndOfInput = errors.New("end of input")

// ErrNoMatch matches every *ErrInvalidToken under errors.Is.
var ErrNoMatch = errors.New("no token type matches")

// ErrInvalidToken is returned by Next when input remains but no token type
// matches a prefix of it.
type ErrInvalidToken struct {
	Offset    int    // Offset of the unmatched input, in runes
	Remaining string // Unconsumed input
}

func (e *ErrInvalidToken) Error() string {
	rest := e.Remaining
	if r := []rune(rest); len(r) > 20 {
		rest = string(r[:20]) + "..."
	}
	return fmt.Sprintf("invalid token at offset %d: %q", e.Offset, rest)
}

// Is reports whether target is ErrNoMatch.
func (e *ErrInvalidToken) Is(target error) bool {
	return target == ErrNoMatch
}

// Token is one lexeme and the type that matched it.
type Token struct {
	Type   string
	Lexeme string
}

// TokenValue is a compiled token type. A token value whose pattern failed to
// compile has a nil DFA and never matches.
type TokenValue struct {
	DFA      *automaton.DFA
	Type     string
	Priority int   // Declaration order, 0 is the highest priority
	Err      error // Compile error of the pattern, if any
}

// Valid reports whether the token value can match anything.
func (v *TokenValue) Valid() bool {
	return v.DFA != nil
}

// Config holds lexer options.
type Config struct {
	Parallel bool             // Scan every token type in its own goroutine
	Verbose  bool             // Log token value construction and scan decisions
	Cache    *compiler.Cache  // Optional cache of compiled DFAs
	Logger   *compiler.Logger // Logger to use instead of one built from Verbose
}

// Lexer is a maximal-munch tokenizer. The token values are built once by New;
// Reset only replaces the input. A Lexer is not safe for concurrent use.
type Lexer struct {
	config Config
	logger *compiler.Logger
	values []*TokenValue
	input  []rune
	offset int
}

// New compiles every token type of spec and loads input. spec must be valid.
func New(spec *Spec, input string, config Config) *Lexer {
	logger := config.Logger
	if logger == nil {
		logger = compiler.NewLogger(config.Verbose)
	}
	l := &Lexer{
		config: config,
		logger: logger,
		values: make([]*TokenValue, 0, len(spec.Tokens)),
	}

	logger.Section("Token Values")
	for i, t := range spec.Tokens {
		cfg := compiler.Config{
			Pattern:  t.Pattern,
			Alphabet: spec.Alphabet,
			Verbose:  config.Verbose,
			Logger:   logger,
		}
		var (
			d   *automaton.DFA
			err error
		)
		if config.Cache != nil {
			d, err = config.Cache.Compile(cfg)
		} else {
			d, err = compiler.New(cfg).Compile()
		}

		v := &TokenValue{DFA: d, Type: t.Type, Priority: i, Err: err}
		if err != nil {
			metricInvalidPatternsTotal.Inc()
			logger.Log("Token %s (priority %d): %v, it will never match", t.Type, i, err)
		} else {
			logger.Log("Token %s (priority %d): %q -> %d DFA states", t.Type, i, t.Pattern, d.NumStates())
		}
		l.values = append(l.values, v)
	}

	l.Reset(input)
	return l
}

// TokenValues returns the compiled token types in priority order.
func (l *Lexer) TokenValues() []*TokenValue {
	return l.values
}

// Reset replaces the input and rewinds the lexer.
func (l *Lexer) Reset(input string) {
	input = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(input)
	l.input = []rune(input)
	l.offset = 0
	l.skipTrailingSeparators()
}

// Remaining returns the unconsumed input.
func (l *Lexer) Remaining() string {
	return string(l.input[l.offset:])
}

// Offset returns the number of runes consumed so far.
func (l *Lexer) Offset() int {
	return l.offset
}

// Next returns the next token. It returns ErrEndOfInput once the input is
// exhausted and an *ErrInvalidToken when no token type matches.
func (l *Lexer) Next() (Token, error) {
	rest := l.input[l.offset:]
	if len(rest) == 0 {
		return Token{}, ErrEndOfInput
	}

	lengths := l.scanAll(rest)

	// Values are in priority order, so a strict comparison keeps the
	// highest-priority type among equally long matches.
	best, bestLen := -1, 0
	for i, n := range lengths {
		if n > bestLen {
			best, bestLen = i, n
		}
	}
	if best < 0 {
		metricInvalidTokensTotal.Inc()
		l.logger.Log("No token type matches at offset %d", l.offset)
		return Token{}, &ErrInvalidToken{Offset: l.offset, Remaining: string(rest)}
	}

	v := l.values[best]
	lexeme := strings.ReplaceAll(string(rest[:bestLen]), string(Separator), "")
	l.logger.Log("Token %s %q at offset %d (length %d)", v.Type, lexeme, l.offset, bestLen)
	l.offset += bestLen
	l.skipTrailingSeparators()

	metricTokensTotal.WithLabelValues(v.Type).Inc()
	return Token{Type: v.Type, Lexeme: lexeme}, nil
}

// All returns every remaining token. On an invalid token it returns the
// tokens read so far with the error.
func (l *Lexer) All() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.Next()
		if errors.Is(err, ErrEndOfInput) {
			return tokens, nil
		}
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
}

// skipTrailingSeparators drops the rest of the input if it holds only
// separators.
func (l *Lexer) skipTrailingSeparators() {
	for _, r := range l.input[l.offset:] {
		if r != Separator {
			return
		}
	}
	l.offset = len(l.input)
}

// scanAll returns, for every token value, the length of its longest match at
// the start of input, or 0.
func (l *Lexer) scanAll(input []rune) []int {
	lengths := make([]int, len(l.values))
	if !l.config.Parallel {
		for i, v := range l.values {
			lengths[i] = scan(v, input)
		}
		return lengths
	}

	var g errgroup.Group
	for i, v := range l.values {
		i, v := i, v
		g.Go(func() error {
			lengths[i] = scan(v, input)
			return nil
		})
	}
	_ = g.Wait()
	return lengths
}

// scan runs v's DFA over input and returns one past the offset of the last
// accept state entered, or 0 when no accept state was entered.
func scan(v *TokenValue, input []rune) int {
	if !v.Valid() {
		return 0
	}
	d := v.DFA
	alphabet := d.Alphabet()
	state := d.Start()
	longest := 0

	for i, r := range input {
		if r == Separator {
			if longest > 0 {
				break
			}
			continue
		}
		idx, ok := alphabet.Index(r)
		if !ok {
			break
		}
		state = d.Step(state, idx)
		if d.IsReject(state) {
			break
		}
		if d.IsAccept(state) {
			longest = i + 1
		}
	}
	return longest
}
