package automaton

import (
	"sort"
	"strconv"
	"strings"
)

// StateSet is a sorted, duplicate-free set of automaton states.
// The sorted form makes equal sets compare and hash identically.
type StateSet []int

// NewStateSet returns the canonical set holding states.
func NewStateSet(states ...int) StateSet {
	if len(states) == 0 {
		return nil
	}
	s := make(StateSet, len(states))
	copy(s, states)
	sort.Ints(s)
	out := s[:1]
	for _, x := range s[1:] {
		if x != out[len(out)-1] {
			out = append(out, x)
		}
	}
	return out
}

// Len returns the number of states.
func (s StateSet) Len() int {
	return len(s)
}

// IsEmpty reports whether the set has no states.
func (s StateSet) IsEmpty() bool {
	return len(s) == 0
}

// Contains reports whether x is in the set.
func (s StateSet) Contains(x int) bool {
	i := sort.SearchInts(s, x)
	return i < len(s) && s[i] == x
}

// Add returns the set with x inserted. s is not modified.
func (s StateSet) Add(x int) StateSet {
	i := sort.SearchInts(s, x)
	if i < len(s) && s[i] == x {
		return s
	}
	out := make(StateSet, 0, len(s)+1)
	out = append(out, s[:i]...)
	out = append(out, x)
	return append(out, s[i:]...)
}

// Union returns the union of s and o.
func (s StateSet) Union(o StateSet) StateSet {
	if len(o) == 0 {
		return s
	}
	if len(s) == 0 {
		return o
	}
	out := make(StateSet, 0, len(s)+len(o))
	i, j := 0, 0
	for i < len(s) && j < len(o) {
		switch {
		case s[i] < o[j]:
			out = append(out, s[i])
			i++
		case s[i] > o[j]:
			out = append(out, o[j])
			j++
		default:
			out = append(out, s[i])
			i++
			j++
		}
	}
	out = append(out, s[i:]...)
	return append(out, o[j:]...)
}

// Intersects reports whether s and o share a state.
func (s StateSet) Intersects(o StateSet) bool {
	i, j := 0, 0
	for i < len(s) && j < len(o) {
		switch {
		case s[i] < o[j]:
			i++
		case s[i] > o[j]:
			j++
		default:
			return true
		}
	}
	return false
}

// Equal reports whether s and o hold the same states.
func (s StateSet) Equal(o StateSet) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

// Key returns a string usable as a map key for set equality.
func (s StateSet) Key() string {
	var b strings.Builder
	for i, x := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(x))
	}
	return b.String()
}

func (s StateSet) String() string {
	return "{" + s.Key() + "}"
}
