package automaton

import (
	"fmt"
	"unicode/utf8"

	"sigs.k8s.io/yaml"
)

// Description is the structured form of a DFA used for YAML (and JSON)
// exchange.
type Description struct {
	States      int          `json:"states"`
	Alphabet    string       `json:"alphabet"`
	Start       int          `json:"start"`
	Accept      []int        `json:"accept"`
	Transitions []Transition `json:"transitions"`
}

// Transition is one edge of a Description.
type Transition struct {
	From   int    `json:"from"`
	Symbol string `json:"symbol"`
	To     int    `json:"to"`
}

// Describe returns the structured description of d.
func (d *DFA) Describe() Description {
	desc := Description{
		States:      d.numStates,
		Alphabet:    d.alphabet.String(),
		Start:       d.start,
		Accept:      d.AcceptStates(),
		Transitions: make([]Transition, 0, d.numStates*d.alphabet.Len()),
	}
	if desc.Accept == nil {
		desc.Accept = []int{}
	}
	for s, row := range d.table {
		for i, to := range row {
			desc.Transitions = append(desc.Transitions, Transition{
				From:   s + 1,
				Symbol: string(d.alphabet.Symbol(i)),
				To:     to,
			})
		}
	}
	return desc
}

// DFA validates the description and builds the automaton it describes.
func (desc Description) DFA() (*DFA, error) {
	alphabet, err := NewAlphabet(desc.Alphabet)
	if err != nil {
		return nil, err
	}
	if desc.States < 1 {
		return nil, NewFormatError(0, "state count must be positive, got %d", desc.States)
	}

	table := make([][]int, desc.States)
	for i := range table {
		table[i] = make([]int, alphabet.Len())
	}
	for _, t := range desc.Transitions {
		if utf8.RuneCountInString(t.Symbol) != 1 {
			return nil, NewFormatError(0, "symbol %q is not a single character", t.Symbol)
		}
		sym, _ := utf8.DecodeRuneInString(t.Symbol)
		i, ok := alphabet.Index(sym)
		if !ok {
			return nil, NewFormatError(0, "symbol %q is not in the alphabet", sym)
		}
		if t.From < 1 || t.From > desc.States {
			return nil, NewFormatError(0, "state %d out of range 1..%d", t.From, desc.States)
		}
		if prev := table[t.From-1][i]; prev != 0 && prev != t.To {
			return nil, NewFormatError(0, "state %d has two transitions on '%c'", t.From, sym)
		}
		table[t.From-1][i] = t.To
	}
	for s, row := range table {
		for i, to := range row {
			if to == 0 {
				return nil, NewFormatError(0, "state %d has no transition on '%c'", s+1, alphabet.Symbol(i))
			}
		}
	}
	return NewDFA(alphabet, desc.States, desc.Start, desc.Accept, table)
}

// EncodeYAML renders d as YAML.
func EncodeYAML(d *DFA) ([]byte, error) {
	return yaml.Marshal(d.Describe())
}

// DecodeYAML parses a YAML description. Unknown fields are rejected.
func DecodeYAML(data []byte) (*DFA, error) {
	var desc Description
	if err := yaml.UnmarshalStrict(data, &desc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return desc.DFA()
}
