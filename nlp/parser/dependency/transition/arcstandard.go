package transition

import (
	"arcstd/alg/transition"
)

// Transition System:
// SH	(S   ,	wi|B,	A) => (S|wi,	   B,	A)
// LA	(S|wi|wj,	B,	A) => (S|wj,	   B,	A+{(wj,wi)})
// RA	(S|wi|wj,	B,	A) => (S|wi,	   B,	A+{(wi,wj)})
//
// Only the shape of the configuration is checked. Whether an arc makes
// sense, e.g. never attaching ROOT as a dependent, is up to the oracle.

// Legal reports whether Apply would accept t in the current configuration.
func (s *ParseState) Legal(t transition.Transition) bool {
	switch t {
	case transition.SHIFT:
		return s.buffer.Size() > 0
	case transition.LEFT, transition.RIGHT:
		return s.stack.Size() >= 2
	default:
		return false
	}
}

// LegalTransitions lists the transitions Apply would accept.
func (s *ParseState) LegalTransitions() []transition.Transition {
	retval := make([]transition.Transition, 0, 3)
	for _, t := range []transition.Transition{transition.SHIFT, transition.LEFT, transition.RIGHT} {
		if s.Legal(t) {
			retval = append(retval, t)
		}
	}
	return retval
}

// Apply performs a single transition in place. An illegal transition
// returns an *IllegalTransitionError and leaves the state untouched.
func (s *ParseState) Apply(t transition.Transition) error {
	if !s.Legal(t) {
		return &IllegalTransitionError{t, s.stack.Size(), s.buffer.Size()}
	}
	switch t {
	case transition.SHIFT:
		wi, _ := s.buffer.Dequeue()
		s.stack.Push(wi)
	case transition.LEFT:
		second, _ := s.stack.Remove(1)
		first, _ := s.stack.Peek()
		s.addArc(first, second)
	case transition.RIGHT:
		first, _ := s.stack.Pop()
		second, _ := s.stack.Peek()
		s.addArc(second, first)
	}
	s.applied++
	return nil
}
