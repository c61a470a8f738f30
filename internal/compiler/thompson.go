package compiler

import (
	"fmt"

	"github.com/KromDaniel/relex/internal/automaton"
	"github.com/KromDaniel/relex/internal/regex"
)

// stateCounter hands out NFA state ids. A single counter is threaded through
// the whole tree walk so sibling sub-automata never share a state.
type stateCounter struct {
	last int
}

func (c *stateCounter) next() int {
	c.last++
	return c.last
}

// fragment is the sub-automaton built for one syntax tree node.
type fragment struct {
	start  int
	accept automaton.StateSet
}

// thompsonBuilder performs Thompson's construction. All fragments write into
// the same NFA; state ids are globally unique so no merging is needed.
type thompsonBuilder struct {
	nfa     *automaton.NFA
	counter *stateCounter
}

// BuildNFA converts a syntax tree to an epsilon-NFA over alphabet.
// Children are built before their parent, left before right, so the right
// operand of a binary node is numbered above every state of the left one.
func BuildNFA(root regex.Node, alphabet *automaton.Alphabet) *automaton.NFA {
	b := &thompsonBuilder{
		nfa:     automaton.NewNFA(alphabet),
		counter: &stateCounter{},
	}
	f := b.build(root)
	b.nfa.Grow(b.counter.last)
	b.nfa.SetStart(f.start)
	b.nfa.SetAccept(f.accept)
	return b.nfa
}

func (b *thompsonBuilder) epsilon(from, to int) {
	b.nfa.AddTransition(from, automaton.Epsilon, to)
}

func (b *thompsonBuilder) build(n regex.Node) fragment {
	switch n := n.(type) {
	case regex.Symbol:
		from := b.counter.next()
		to := b.counter.next()
		b.nfa.AddTransition(from, n.Value, to)
		return fragment{start: from, accept: automaton.NewStateSet(to)}

	case regex.Epsilon:
		s := b.counter.next()
		return fragment{start: s, accept: automaton.NewStateSet(s)}

	case regex.Empty:
		return fragment{start: b.counter.next()}

	case regex.Union:
		left := b.build(n.Left)
		right := b.build(n.Right)
		s := b.counter.next()
		b.epsilon(s, left.start)
		b.epsilon(s, right.start)
		return fragment{start: s, accept: left.accept.Union(right.accept)}

	case regex.Concat:
		left := b.build(n.Left)
		right := b.build(n.Right)
		for _, a := range left.accept {
			b.epsilon(a, right.start)
		}
		return fragment{start: left.start, accept: right.accept}

	case regex.Star:
		sub := b.build(n.Sub)
		s := b.counter.next()
		b.epsilon(s, sub.start)
		for _, a := range sub.accept {
			b.epsilon(a, sub.start)
		}
		return fragment{start: s, accept: sub.accept.Add(s)}
	}
	panic(fmt.Sprintf("compiler: unknown syntax tree node %T", n))
}
