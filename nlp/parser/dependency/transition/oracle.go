package transition

import (
	"fmt"

	"arcstd/alg/transition"
	nlp "arcstd/nlp/types"
)

// Oracle picks the next transition for each state of a batch. The result
// must have one transition per state, in the same order, and each must be
// legal for its state. An oracle that cannot answer for some states returns
// StateErrors along with the transitions of the others; any other error
// fails the whole batch.
type Oracle interface {
	Predict(states []*ParseState) ([]transition.Transition, error)
}

// OracleFunc adapts a plain function to the Oracle interface.
type OracleFunc func(states []*ParseState) ([]transition.Transition, error)

func (f OracleFunc) Predict(states []*ParseState) ([]transition.Transition, error) {
	return f(states)
}

// SequenceOracle replays a fixed transition sequence per sentence. The
// position in a sequence is the number of transitions the state has seen,
// so the oracle itself keeps no cursor.
type SequenceOracle struct {
	Sequences [][]transition.Transition
}

var _ Oracle = &SequenceOracle{}

func (o *SequenceOracle) Predict(states []*ParseState) ([]transition.Transition, error) {
	retval := make([]transition.Transition, len(states))
	var errs StateErrors
	for i, state := range states {
		t, err := o.Transition(state)
		if err != nil {
			if errs == nil {
				errs = make(StateErrors, len(states))
			}
			errs[i] = err
			continue
		}
		retval[i] = t
	}
	if errs != nil {
		return retval, errs
	}
	return retval, nil
}

// Transition returns the scripted transition for a single state.
func (o *SequenceOracle) Transition(state *ParseState) (transition.Transition, error) {
	index := state.Index()
	if index < 0 || index >= len(o.Sequences) {
		return 0, fmt.Errorf("%w %d", ErrUnknownSentence, index)
	}
	seq := o.Sequences[index]
	if state.Len() >= len(seq) {
		return 0, fmt.Errorf("%w after %d transitions", ErrSequenceExhausted, len(seq))
	}
	return seq[state.Len()], nil
}

// StaticOracle derives arc-standard transitions from gold heads:
// LA	if	head(s1) = s0, s1 != ROOT
// RA	if	head(s0) = s1 and every gold dependent of s0 is attached
// SH	otherwise
// When no rule applies and the buffer is empty (non-projective gold), it
// reduces with RA so the parse still terminates. Sentences whose gold tree
// leaves a token without a head fail with ErrNoGoldHeads.
type StaticOracle struct {
	heads      [][]int
	dependents [][]int
	invalid    []error
}

var _ Oracle = &StaticOracle{}

// NewStaticOracle takes, per sentence, the head position of every token
// indexed by token position (index 0 is ignored).
func NewStaticOracle(heads [][]int) *StaticOracle {
	o := &StaticOracle{
		heads:      heads,
		dependents: make([][]int, len(heads)),
		invalid:    make([]error, len(heads)),
	}
	for i, sentHeads := range heads {
		counts := make([]int, len(sentHeads))
		for dep := 1; dep < len(sentHeads); dep++ {
			head := sentHeads[dep]
			if head < 0 || head >= len(sentHeads) {
				o.invalid[i] = fmt.Errorf("%w: token %d has head %d", ErrNoGoldHeads, dep, head)
				break
			}
			counts[head]++
		}
		o.dependents[i] = counts
	}
	return o
}

func (o *StaticOracle) Predict(states []*ParseState) ([]transition.Transition, error) {
	retval := make([]transition.Transition, len(states))
	var errs StateErrors
	for i, state := range states {
		t, err := o.Transition(state)
		if err != nil {
			if errs == nil {
				errs = make(StateErrors, len(states))
			}
			errs[i] = err
			continue
		}
		retval[i] = t
	}
	if errs != nil {
		return retval, errs
	}
	return retval, nil
}

// Transition computes the gold transition for a single state.
func (o *StaticOracle) Transition(state *ParseState) (transition.Transition, error) {
	index := state.Index()
	if index < 0 || index >= len(o.heads) {
		return 0, fmt.Errorf("%w %d", ErrUnknownSentence, index)
	}
	heads := o.heads[index]
	if len(heads) != len(state.Sentence())+1 {
		return 0, fmt.Errorf("%w %d: %d heads for %d tokens", ErrUnknownSentence, index, len(heads)-1, len(state.Sentence()))
	}
	if err := o.invalid[index]; err != nil {
		return 0, err
	}
	s0, s0Exists := state.stack.Index(0)
	s1, s1Exists := state.stack.Index(1)
	if s0Exists && s1Exists {
		if s1 != nlp.ROOT_ID && heads[s1] == s0 {
			return transition.LEFT, nil
		}
		if heads[s0] == s1 && state.numDependents(s0) == o.dependents[index][s0] &&
			(s1 != nlp.ROOT_ID || state.buffer.Size() == 0) {
			return transition.RIGHT, nil
		}
	}
	if state.buffer.Size() > 0 {
		return transition.SHIFT, nil
	}
	return transition.RIGHT, nil
}

// RecordingOracle passes predictions through from another oracle and keeps
// the sequence each sentence received.
type RecordingOracle struct {
	Oracle    Oracle
	Sequences map[int][]transition.Transition
}

var _ Oracle = &RecordingOracle{}

func NewRecordingOracle(oracle Oracle) *RecordingOracle {
	return &RecordingOracle{Oracle: oracle, Sequences: make(map[int][]transition.Transition)}
}

func (o *RecordingOracle) Predict(states []*ParseState) ([]transition.Transition, error) {
	predicted, err := o.Oracle.Predict(states)
	errs := stateErrors(err, len(states))
	if err != nil && errs == nil {
		return nil, err
	}
	for i, state := range states {
		if i < len(predicted) && (errs == nil || errs[i] == nil) {
			o.Sequences[state.Index()] = append(o.Sequences[state.Index()], predicted[i])
		}
	}
	return predicted, err
}

// Sequence returns the transitions recorded for sentence index.
func (o *RecordingOracle) Sequence(index int) []transition.Transition {
	return o.Sequences[index]
}
