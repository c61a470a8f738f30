package automaton

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// epsilonSymbol spells Epsilon in NFA descriptions.
const epsilonSymbol = 'e'

// The description format is line oriented:
//
//	N                       state count, states are 1..N
//	ab                      alphabet, one symbol per character
//	1 'a' 2                 zero or more transition records
//	...
//	1                       start state
//	2 3                     accept states, may be empty
type descriptionReader struct {
	sc   *bufio.Scanner
	line int
}

func (r *descriptionReader) next() (string, bool) {
	if !r.sc.Scan() {
		return "", false
	}
	r.line++
	return strings.TrimSpace(r.sc.Text()), true
}

type rawTransition struct {
	line   int
	from   int
	symbol rune
	to     int
}

type rawDescription struct {
	alphabet    *Alphabet
	numStates   int
	transitions []rawTransition
	start       int
	accept      []int
}

func (r *descriptionReader) state(field string, n int) (int, error) {
	s, err := strconv.Atoi(field)
	if err != nil {
		return 0, NewFormatError(r.line, "state %q is not a number", field)
	}
	if s < 1 || s > n {
		return 0, NewFormatError(r.line, "state %d out of range 1..%d", s, n)
	}
	return s, nil
}

func (r *descriptionReader) symbol(field string, alphabet *Alphabet, allowEpsilon bool) (rune, error) {
	if len(field) >= 2 && field[0] == '\'' && field[len(field)-1] == '\'' {
		field = field[1 : len(field)-1]
	}
	if utf8.RuneCountInString(field) != 1 {
		return 0, NewFormatError(r.line, "symbol %q is not a single character", field)
	}
	sym, _ := utf8.DecodeRuneInString(field)
	if allowEpsilon && sym == epsilonSymbol {
		return Epsilon, nil
	}
	if !alphabet.Contains(sym) {
		return 0, NewFormatError(r.line, "symbol %q is not in the alphabet", sym)
	}
	return sym, nil
}

func readDescription(in io.Reader, allowEpsilon bool) (*rawDescription, error) {
	r := &descriptionReader{sc: bufio.NewScanner(in)}
	desc := &rawDescription{}

	line, ok := r.next()
	if !ok {
		return nil, NewFormatError(1, "missing state count")
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return nil, NewFormatError(r.line, "state count %q is not a number", line)
	}
	if n < 1 {
		return nil, NewFormatError(r.line, "state count must be positive, got %d", n)
	}
	desc.numStates = n

	line, ok = r.next()
	if !ok {
		return nil, NewFormatError(r.line+1, "missing alphabet")
	}
	alphabet, err := NewAlphabet(line)
	if err != nil {
		return nil, NewFormatError(r.line, "%s", err.(*FormatError).Msg)
	}
	if allowEpsilon && alphabet.Contains(epsilonSymbol) {
		return nil, NewFormatError(r.line, "alphabet may not contain the epsilon symbol %q", epsilonSymbol)
	}
	desc.alphabet = alphabet

	// Transition records run until the first line that is not a 3-field record.
	var fields []string
	for {
		line, ok = r.next()
		if !ok {
			return nil, NewFormatError(r.line+1, "missing start state")
		}
		fields = strings.Fields(line)
		if len(fields) != 3 {
			break
		}
		from, err := r.state(fields[0], n)
		if err != nil {
			return nil, err
		}
		sym, err := r.symbol(fields[1], alphabet, allowEpsilon)
		if err != nil {
			return nil, err
		}
		to, err := r.state(fields[2], n)
		if err != nil {
			return nil, err
		}
		desc.transitions = append(desc.transitions, rawTransition{line: r.line, from: from, symbol: sym, to: to})
	}

	for len(fields) == 0 {
		line, ok = r.next()
		if !ok {
			return nil, NewFormatError(r.line+1, "missing start state")
		}
		fields = strings.Fields(line)
	}
	if len(fields) != 1 {
		return nil, NewFormatError(r.line, "expected a single start state, got %q", line)
	}
	if desc.start, err = r.state(fields[0], n); err != nil {
		return nil, err
	}

	if line, ok = r.next(); ok {
		for _, f := range strings.Fields(line) {
			s, err := r.state(f, n)
			if err != nil {
				return nil, err
			}
			desc.accept = append(desc.accept, s)
		}
	}

	for {
		line, ok = r.next()
		if !ok {
			break
		}
		if line != "" {
			return nil, NewFormatError(r.line, "unexpected trailing content %q", line)
		}
	}
	if err := r.sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read description: %w", err)
	}
	return desc, nil
}

// ReadDFA reads a DFA description. The transition function must be total
// and may not map a (state, symbol) pair to two different states.
func ReadDFA(r io.Reader) (*DFA, error) {
	desc, err := readDescription(r, false)
	if err != nil {
		return nil, err
	}

	k := desc.alphabet.Len()
	table := make([][]int, desc.numStates)
	for i := range table {
		table[i] = make([]int, k)
	}
	for _, t := range desc.transitions {
		i, _ := desc.alphabet.Index(t.symbol)
		if prev := table[t.from-1][i]; prev != 0 && prev != t.to {
			return nil, NewFormatError(t.line, "state %d has two transitions on '%c' (%d and %d)", t.from, t.symbol, prev, t.to)
		}
		table[t.from-1][i] = t.to
	}
	for s, row := range table {
		for i, to := range row {
			if to == 0 {
				return nil, NewFormatError(0, "state %d has no transition on '%c'", s+1, desc.alphabet.Symbol(i))
			}
		}
	}

	return NewDFA(desc.alphabet, desc.numStates, desc.start, desc.accept, table)
}

// ReadNFA reads an NFA description. The symbol 'e' denotes an epsilon edge.
func ReadNFA(r io.Reader) (*NFA, error) {
	desc, err := readDescription(r, true)
	if err != nil {
		return nil, err
	}

	n := NewNFA(desc.alphabet)
	n.Grow(desc.numStates)
	for _, t := range desc.transitions {
		n.AddTransition(t.from, t.symbol, t.to)
	}
	n.SetStart(desc.start)
	n.SetAccept(NewStateSet(desc.accept...))
	return n, nil
}

// WriteTo writes d in the description format.
func (d *DFA) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%d\n%s\n", d.numStates, d.alphabet)
	for s, row := range d.table {
		for i, to := range row {
			fmt.Fprintf(&b, "%d '%c' %d\n", s+1, d.alphabet.Symbol(i), to)
		}
	}
	fmt.Fprintf(&b, "%d\n%s\n", d.start, joinStates(d.AcceptStates()))
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// WriteTo writes n in the description format, spelling epsilon edges as 'e'.
func (n *NFA) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%d\n%s\n", n.numStates, n.alphabet)
	for s := 1; s <= n.numStates; s++ {
		for _, sym := range n.Symbols(s) {
			spelled := sym
			if sym == Epsilon {
				spelled = epsilonSymbol
			}
			for _, to := range n.Next(s, sym) {
				fmt.Fprintf(&b, "%d '%c' %d\n", s, spelled, to)
			}
		}
	}
	fmt.Fprintf(&b, "\n%d\n%s\n", n.start, joinStates(n.accept))
	written, err := io.WriteString(w, b.String())
	return int64(written), err
}

func joinStates(states []int) string {
	parts := make([]string, len(states))
	for i, s := range states {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, " ")
}
