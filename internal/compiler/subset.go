package compiler

import (
	"fmt"

	"github.com/KromDaniel/relex/internal/automaton"
)

// subsetConverter turns an NFA into a DFA by the subset construction.
// DFA state 1 is the empty NFA state set (the reject state) and state 2 is
// the epsilon closure of the NFA start state; further sets are numbered in
// the order they are discovered.
type subsetConverter struct {
	nfa        *automaton.NFA
	ids        map[string]int       // NFA state set key -> DFA state
	sets       []automaton.StateSet // DFA state -> NFA state set, index 0 unused
	rows       [][]int              // DFA state -> transitions, index 0 unused
	foundEmpty bool
}

// ToDFA converts n to an equivalent DFA.
func ToDFA(n *automaton.NFA) (*automaton.DFA, error) {
	d, _, err := convert(n)
	return d, err
}

// convert runs the subset construction and also returns, for every DFA
// state, the NFA state set it stands for.
func convert(n *automaton.NFA) (*automaton.DFA, []automaton.StateSet, error) {
	if n.Start() < 1 {
		return nil, nil, fmt.Errorf("nfa has no start state")
	}

	c := &subsetConverter{
		nfa:  n,
		ids:  make(map[string]int),
		sets: []automaton.StateSet{nil},
		rows: [][]int{nil},
	}

	startSet := epsilonClosure(n, automaton.NewStateSet(n.Start()))
	c.register(nil)
	c.register(startSet)

	// Process states using worklist algorithm
	worklist := []automaton.StateSet{startSet}
	processed := make(map[int]bool)
	alphabet := n.Alphabet()

	for len(worklist) > 0 {
		set := worklist[0]
		worklist = worklist[1:]

		id := c.ids[set.Key()]
		if processed[id] {
			continue
		}
		processed[id] = true

		row := make([]int, alphabet.Len())
		for i := 0; i < alphabet.Len(); i++ {
			dest := epsilonClosure(n, move(n, set, alphabet.Symbol(i)))
			if dest.IsEmpty() {
				c.foundEmpty = true
				row[i] = 1
				continue
			}
			next, seen := c.ids[dest.Key()]
			if !seen {
				next = c.register(dest)
				worklist = append(worklist, dest)
			}
			row[i] = next
		}
		c.rows[id] = row
	}

	return c.finalize()
}

func (c *subsetConverter) register(set automaton.StateSet) int {
	id := len(c.sets)
	c.ids[set.Key()] = id
	c.sets = append(c.sets, set)
	c.rows = append(c.rows, nil)
	return id
}

// finalize closes the reject state, or drops it and shifts every state down
// by one when no transition ever reached the empty set.
func (c *subsetConverter) finalize() (*automaton.DFA, []automaton.StateSet, error) {
	alphabet := c.nfa.Alphabet()
	shift := 0
	if c.foundEmpty {
		reject := make([]int, alphabet.Len())
		for i := range reject {
			reject[i] = 1
		}
		c.rows[1] = reject
	} else {
		shift = 1
	}

	numStates := len(c.sets) - 1 - shift
	table := make([][]int, 0, numStates)
	sets := make([]automaton.StateSet, 1, numStates+1)
	var accept []int
	for id := 1 + shift; id < len(c.sets); id++ {
		row := c.rows[id]
		if shift > 0 {
			shifted := make([]int, len(row))
			for i, to := range row {
				shifted[i] = to - shift
			}
			row = shifted
		}
		table = append(table, row)
		sets = append(sets, c.sets[id])
		if c.sets[id].Intersects(c.nfa.Accept()) {
			accept = append(accept, id-shift)
		}
	}

	d, err := automaton.NewDFA(alphabet, numStates, 2-shift, accept, table)
	if err != nil {
		return nil, nil, fmt.Errorf("subset construction produced an invalid DFA: %w", err)
	}
	return d, sets, nil
}

// epsilonClosure returns the states reachable from seed through epsilon
// edges only, seed included. It is a breadth-first traversal.
func epsilonClosure(n *automaton.NFA, seed automaton.StateSet) automaton.StateSet {
	if seed.IsEmpty() {
		return nil
	}
	seen := make(map[int]bool, len(seed))
	queue := make([]int, 0, len(seed))
	for _, s := range seed {
		seen[s] = true
		queue = append(queue, s)
	}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, t := range n.Next(s, automaton.Epsilon) {
			if !seen[t] {
				seen[t] = true
				queue = append(queue, t)
			}
		}
	}

	states := make([]int, 0, len(seen))
	for s := range seen {
		states = append(states, s)
	}
	return automaton.NewStateSet(states...)
}

// move returns the states reachable from set by one edge on symbol.
func move(n *automaton.NFA, set automaton.StateSet, symbol rune) automaton.StateSet {
	var out automaton.StateSet
	for _, s := range set {
		out = out.Union(n.Next(s, symbol))
	}
	return out
}
