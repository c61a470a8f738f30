// Package regex parses the restricted regular expression language used by
// token definitions: alphabet literals, the epsilon literal e, the
// empty-language literal N, union |, implicit concatenation, Kleene star *
// and parentheses. Special characters are matched literally with a
// backslash escape: \( \) \* \| \\.
package regex

// Node is a node of the regex syntax tree. The concrete types are Symbol,
// Epsilon, Empty, Union, Concat and Star.
type Node interface {
	node()
	String() string
}

// Symbol matches one alphabet symbol.
type Symbol struct {
	Value rune
}

// Epsilon matches the empty string.
type Epsilon struct{}

// Empty matches nothing.
type Empty struct{}

// Union matches either operand.
type Union struct {
	Left, Right Node
}

// Concat matches Left followed by Right.
type Concat struct {
	Left, Right Node
}

// Star matches zero or more repetitions of Sub.
type Star struct {
	Sub Node
}

func (Symbol) node()  {}
func (Epsilon) node() {}
func (Empty) node()   {}
func (Union) node()   {}
func (Concat) node()  {}
func (Star) node()    {}

func (n Symbol) String() string {
	if isSpecial(n.Value) {
		return `\` + string(n.Value)
	}
	return string(n.Value)
}

func (Epsilon) String() string { return "e" }
func (Empty) String() string   { return "N" }

func (n Union) String() string {
	return "(" + n.Left.String() + "|" + n.Right.String() + ")"
}

func (n Concat) String() string {
	return n.Left.String() + n.Right.String()
}

func (n Star) String() string {
	switch n.Sub.(type) {
	case Concat:
		return "(" + n.Sub.String() + ")*"
	default:
		return n.Sub.String() + "*"
	}
}

// Size returns the number of nodes in the tree rooted at n.
func Size(n Node) int {
	switch n := n.(type) {
	case Union:
		return 1 + Size(n.Left) + Size(n.Right)
	case Concat:
		return 1 + Size(n.Left) + Size(n.Right)
	case Star:
		return 1 + Size(n.Sub)
	default:
		return 1
	}
}
