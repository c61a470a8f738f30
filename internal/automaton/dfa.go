package automaton

// DFA is an immutable deterministic finite automaton with states 1..N and a
// total transition function over its alphabet.
type DFA struct {
	alphabet  *Alphabet
	numStates int
	table     [][]int // table[state-1][symbol index]
	start     int
	accept    []bool // indexed by state
	reject    int    // 0 when there is no reject state
}

// NewDFA validates and builds a DFA. table[s-1][i] is the target of state s
// on alphabet.Symbol(i); every row must have an entry for every symbol.
// The table is copied.
func NewDFA(alphabet *Alphabet, numStates, start int, accept []int, table [][]int) (*DFA, error) {
	if numStates < 1 {
		return nil, NewFormatError(0, "state count must be positive, got %d", numStates)
	}
	if start < 1 || start > numStates {
		return nil, NewFormatError(0, "start state %d out of range 1..%d", start, numStates)
	}
	if len(table) != numStates {
		return nil, NewFormatError(0, "transition table has %d rows, want %d", len(table), numStates)
	}

	d := &DFA{
		alphabet:  alphabet,
		numStates: numStates,
		table:     make([][]int, numStates),
		start:     start,
		accept:    make([]bool, numStates+1),
	}
	for i, row := range table {
		if len(row) != alphabet.Len() {
			return nil, NewFormatError(0, "state %d has %d transitions, want one per symbol (%d)", i+1, len(row), alphabet.Len())
		}
		for j, to := range row {
			if to < 1 || to > numStates {
				return nil, NewFormatError(0, "transition %d '%c' -> %d out of range 1..%d", i+1, alphabet.Symbol(j), to, numStates)
			}
		}
		d.table[i] = append([]int(nil), row...)
	}
	for _, s := range accept {
		if s < 1 || s > numStates {
			return nil, NewFormatError(0, "accept state %d out of range 1..%d", s, numStates)
		}
		d.accept[s] = true
	}

	// State 1 is the reject state when nothing ever leaves it and it does not accept.
	if !d.accept[1] {
		dead := true
		for _, to := range d.table[0] {
			if to != 1 {
				dead = false
				break
			}
		}
		if dead {
			d.reject = 1
		}
	}

	return d, nil
}

// Alphabet returns the DFA alphabet.
func (d *DFA) Alphabet() *Alphabet {
	return d.alphabet
}

// NumStates returns N; states are 1..N.
func (d *DFA) NumStates() int {
	return d.numStates
}

// Start returns the start state.
func (d *DFA) Start() int {
	return d.start
}

// IsAccept reports whether state accepts.
func (d *DFA) IsAccept(state int) bool {
	return state >= 1 && state <= d.numStates && d.accept[state]
}

// AcceptStates returns the accept states in ascending order.
func (d *DFA) AcceptStates() []int {
	var out []int
	for s := 1; s <= d.numStates; s++ {
		if d.accept[s] {
			out = append(out, s)
		}
	}
	return out
}

// Reject returns the reject (dead) state, which is always state 1 when present.
func (d *DFA) Reject() (int, bool) {
	return d.reject, d.reject != 0
}

// IsReject reports whether state is the reject state.
func (d *DFA) IsReject(state int) bool {
	return d.reject != 0 && state == d.reject
}

// Transition returns the target of state on symbol. ok is false when the
// state is out of range or the symbol is not in the alphabet.
func (d *DFA) Transition(state int, symbol rune) (next int, ok bool) {
	if state < 1 || state > d.numStates {
		return 0, false
	}
	i, ok := d.alphabet.Index(symbol)
	if !ok {
		return 0, false
	}
	return d.table[state-1][i], true
}

// Step returns the target of state on the symbol at alphabet index i.
func (d *DFA) Step(state, i int) int {
	return d.table[state-1][i]
}

// Simulate reports whether the DFA accepts input. Input containing a symbol
// outside the alphabet is rejected.
func (d *DFA) Simulate(input string) bool {
	state := d.start
	for _, r := range input {
		next, ok := d.Transition(state, r)
		if !ok {
			return false
		}
		state = next
	}
	return d.accept[state]
}

// Table returns a copy of the transition table, indexed [state-1][symbol index].
func (d *DFA) Table() [][]int {
	out := make([][]int, len(d.table))
	for i, row := range d.table {
		out[i] = append([]int(nil), row...)
	}
	return out
}
