package automaton

// Epsilon is the transition symbol of edges that consume no input.
const Epsilon rune = -1

// NFA is a nondeterministic finite automaton with epsilon transitions.
// States are 1..NumStates; transitions may be partial.
//
// An NFA is filled in with AddTransition, SetStart and SetAccept and is
// treated as read-only once handed to the subset construction.
type NFA struct {
	alphabet  *Alphabet
	numStates int
	start     int
	accept    StateSet
	trans     map[int]map[rune]StateSet
}

// NewNFA returns an empty NFA over alphabet.
func NewNFA(alphabet *Alphabet) *NFA {
	return &NFA{
		alphabet: alphabet,
		trans:    make(map[int]map[rune]StateSet),
	}
}

// Alphabet returns the NFA alphabet.
func (n *NFA) Alphabet() *Alphabet {
	return n.alphabet
}

// NumStates returns the number of states.
func (n *NFA) NumStates() int {
	return n.numStates
}

// Grow makes sure states 1..count exist.
func (n *NFA) Grow(count int) {
	if count > n.numStates {
		n.numStates = count
	}
}

// Start returns the start state.
func (n *NFA) Start() int {
	return n.start
}

// SetStart sets the start state.
func (n *NFA) SetStart(state int) {
	n.Grow(state)
	n.start = state
}

// Accept returns the accept states. The result must not be modified.
func (n *NFA) Accept() StateSet {
	return n.accept
}

// SetAccept replaces the accept states.
func (n *NFA) SetAccept(states StateSet) {
	for _, s := range states {
		n.Grow(s)
	}
	n.accept = states
}

// IsAccept reports whether state accepts.
func (n *NFA) IsAccept(state int) bool {
	return n.accept.Contains(state)
}

// AddTransition adds an edge from -> to on symbol, keeping any edges that
// already leave from on the same symbol.
func (n *NFA) AddTransition(from int, symbol rune, to int) {
	n.Grow(from)
	n.Grow(to)
	row, ok := n.trans[from]
	if !ok {
		row = make(map[rune]StateSet)
		n.trans[from] = row
	}
	row[symbol] = row[symbol].Add(to)
}

// Next returns the states reachable from state by one edge on symbol.
func (n *NFA) Next(state int, symbol rune) StateSet {
	return n.trans[state][symbol]
}

// Symbols returns the symbols with at least one edge leaving state,
// in alphabet order with Epsilon first.
func (n *NFA) Symbols(state int) []rune {
	row := n.trans[state]
	if len(row) == 0 {
		return nil
	}
	var out []rune
	if _, ok := row[Epsilon]; ok {
		out = append(out, Epsilon)
	}
	for _, r := range n.alphabet.symbols {
		if _, ok := row[r]; ok {
			out = append(out, r)
		}
	}
	return out
}
