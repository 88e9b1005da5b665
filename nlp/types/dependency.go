package types

import (
	"fmt"
	"strings"
)

// DepArc is a head→dependent relation.
type DepArc struct {
	Head      Token
	Dependent Token
}

func (a DepArc) GetHead() int {
	return a.Head.ID
}

func (a DepArc) GetModifier() int {
	return a.Dependent.ID
}

func (a DepArc) Equal(other DepArc) bool {
	return a.Head.Equal(other.Head) && a.Dependent.Equal(other.Dependent)
}

func (a DepArc) String() string {
	return fmt.Sprintf("(%v, %v)", a.Head, a.Dependent)
}

type DepArcs []DepArc

func (arcs DepArcs) String() string {
	parts := make([]string, len(arcs))
	for i, arc := range arcs {
		parts[i] = arc.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Heads returns the head position of every token, indexed by dependent
// position; index 0 is unused. Unattached tokens get -1.
func (arcs DepArcs) Heads(sentLength int) []int {
	heads := make([]int, sentLength+1)
	for i := range heads {
		heads[i] = -1
	}
	for _, arc := range arcs {
		if mod := arc.GetModifier(); mod > 0 && mod <= sentLength {
			heads[mod] = arc.GetHead()
		}
	}
	return heads
}
