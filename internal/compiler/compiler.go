// Package compiler implements the regex -> NFA -> DFA pipeline.
package compiler

import (
	"fmt"

	"github.com/KromDaniel/relex/internal/automaton"
	"github.com/KromDaniel/relex/internal/regex"
)

// Config holds the configuration for compiling one pattern.
type Config struct {
	Pattern  string  // Regular expression to compile
	Alphabet string  // Alphabet symbols, one per character, in order
	Verbose  bool    // Enable verbose logging of construction steps
	Logger   *Logger // Logger to use instead of one built from Verbose
}

// Compiler compiles a pattern into a DFA.
type Compiler struct {
	config   Config
	logger   *Logger
	alphabet *automaton.Alphabet
	tree     regex.Node     // Syntax tree, set by Parse
	nfa      *automaton.NFA // Thompson NFA, set by Compile
}

// New creates a new compiler instance.
func New(config Config) *Compiler {
	logger := config.Logger
	if logger == nil {
		logger = NewLogger(config.Verbose)
	}
	return &Compiler{
		config: config,
		logger: logger,
	}
}

// Parse validates the alphabet and parses the pattern into a syntax tree.
func (c *Compiler) Parse() (regex.Node, error) {
	if c.tree != nil {
		return c.tree, nil
	}

	c.logger.Section("Pattern Analysis")
	c.logger.Log("Pattern: %s", c.config.Pattern)
	c.logger.Log("Alphabet: %q", c.config.Alphabet)

	alphabet, err := automaton.NewAlphabet(c.config.Alphabet)
	if err != nil {
		return nil, fmt.Errorf("invalid alphabet: %w", err)
	}
	if err := regex.ValidateAlphabet(alphabet); err != nil {
		return nil, fmt.Errorf("invalid alphabet: %w", err)
	}
	c.alphabet = alphabet

	tree, err := regex.Parse(c.config.Pattern, alphabet)
	if err != nil {
		c.logger.Log("Parse failed: %v", err)
		return nil, fmt.Errorf("failed to parse pattern: %w", err)
	}
	c.logger.Log("Syntax tree: %s (%d nodes)", tree, regex.Size(tree))
	c.tree = tree
	return tree, nil
}

// Compile runs the whole pipeline and returns the DFA for the pattern.
func (c *Compiler) Compile() (*automaton.DFA, error) {
	tree, err := c.Parse()
	if err != nil {
		metricPatternsTotal.WithLabelValues(resultInvalid).Inc()
		return nil, err
	}

	c.logger.Section("Thompson Construction")
	c.nfa = BuildNFA(tree, c.alphabet)
	c.logger.Log("NFA states: %d", c.nfa.NumStates())
	c.logger.Log("NFA start: %d, accept: %v", c.nfa.Start(), c.nfa.Accept())

	c.logger.Section("Subset Construction")
	d, sets, err := convert(c.nfa)
	if err != nil {
		metricPatternsTotal.WithLabelValues(resultInvalid).Inc()
		return nil, fmt.Errorf("failed to build DFA: %w", err)
	}
	if c.logger.Enabled() {
		for s := 1; s < len(sets); s++ {
			c.logger.Log("DFA state %d = NFA states %v (accept: %v)", s, sets[s], d.IsAccept(s))
		}
	}
	if r, ok := d.Reject(); ok {
		c.logger.Log("DFA states: %d (reject state %d)", d.NumStates(), r)
	} else {
		c.logger.Log("DFA states: %d (no reject state)", d.NumStates())
	}

	metricPatternsTotal.WithLabelValues(resultOK).Inc()
	metricDFAStates.Observe(float64(d.NumStates()))
	return d, nil
}

// NFA returns the Thompson NFA built by the last successful Compile.
func (c *Compiler) NFA() *automaton.NFA {
	return c.nfa
}

// Compile compiles pattern over alphabet with a silent logger.
func Compile(pattern, alphabet string) (*automaton.DFA, error) {
	return New(Config{Pattern: pattern, Alphabet: alphabet}).Compile()
}
