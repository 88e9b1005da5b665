package transition

import (
	"fmt"
	"strings"

	"arcstd/alg"
	"arcstd/alg/transition"
	nlp "arcstd/nlp/types"
)

// ParseState is the arc-standard configuration of one sentence: the stack
// (ROOT at the bottom), the buffer of unread positions and the arcs built so
// far. Stack and buffer hold token positions, 0 being ROOT.
type ParseState struct {
	sent    nlp.Sentence
	index   int
	stack   alg.Stack
	buffer  alg.Queue
	arcs    nlp.DepArcs
	applied int
}

func NewParseState(sent nlp.Sentence) *ParseState {
	sentLength := len(sent)
	s := &ParseState{
		sent:   sent.Copy(),
		stack:  alg.NewStackArray(sentLength + 1),
		buffer: alg.NewQueueSlice(sentLength),
		arcs:   make(nlp.DepArcs, 0, sentLength),
	}
	s.stack.Push(nlp.ROOT_ID)
	for i := 1; i <= sentLength; i++ {
		s.buffer.Enqueue(i)
	}
	return s
}

// Index is the position of the sentence in the batch it is parsed with.
func (s *ParseState) Index() int {
	return s.index
}

func (s *ParseState) Sentence() nlp.Sentence {
	return s.sent
}

// Terminal is true once the buffer is empty and only ROOT is on the stack.
func (s *ParseState) Terminal() bool {
	return s.buffer.Size() == 0 && s.stack.Size() == 1
}

// Len is the number of transitions applied so far.
func (s *ParseState) Len() int {
	return s.applied
}

// Dependencies returns a copy of the arcs in the order they were created.
func (s *ParseState) Dependencies() nlp.DepArcs {
	retval := make(nlp.DepArcs, len(s.arcs))
	copy(retval, s.arcs)
	return retval
}

// Stack returns the stack tokens, bottom (ROOT) to top.
func (s *ParseState) Stack() []nlp.Token {
	return s.tokens(s.stack.Values())
}

// Buffer returns the unread tokens, front to back.
func (s *ParseState) Buffer() []nlp.Token {
	return s.tokens(s.buffer.Values())
}

func (s *ParseState) StackSize() int {
	return s.stack.Size()
}

func (s *ParseState) BufferSize() int {
	return s.buffer.Size()
}

// StackTop returns the token at depth i of the stack, 0 being the top.
func (s *ParseState) StackTop(i int) (nlp.Token, bool) {
	pos, exists := s.stack.Index(i)
	if !exists {
		return nlp.Token{}, false
	}
	return s.token(pos), true
}

// BufferFront returns the token at offset i of the buffer.
func (s *ParseState) BufferFront(i int) (nlp.Token, bool) {
	pos, exists := s.buffer.Index(i)
	if !exists {
		return nlp.Token{}, false
	}
	return s.token(pos), true
}

// Parse applies a whole transition sequence and returns the resulting arcs.
// It stops at the first illegal transition.
func (s *ParseState) Parse(transitions []transition.Transition) (nlp.DepArcs, error) {
	for i, t := range transitions {
		if err := s.Apply(t); err != nil {
			return nil, fmt.Errorf("transition %d: %w", i, err)
		}
	}
	return s.Dependencies(), nil
}

func (s *ParseState) String() string {
	return fmt.Sprintf("stack: [%s] buffer: [%s] arcs: %v",
		joinTokens(s.Stack()), joinTokens(s.Buffer()), s.arcs)
}

func (s *ParseState) token(pos int) nlp.Token {
	tok, _ := s.sent.Token(pos)
	return tok
}

func (s *ParseState) tokens(positions []int) []nlp.Token {
	retval := make([]nlp.Token, len(positions))
	for i, pos := range positions {
		retval[i] = s.token(pos)
	}
	return retval
}

func (s *ParseState) addArc(head, dependent int) {
	s.arcs = append(s.arcs, nlp.DepArc{Head: s.token(head), Dependent: s.token(dependent)})
}

func (s *ParseState) numDependents(head int) int {
	var count int
	for _, arc := range s.arcs {
		if arc.GetHead() == head {
			count++
		}
	}
	return count
}

func joinTokens(tokens []nlp.Token) string {
	forms := make([]string, len(tokens))
	for i, tok := range tokens {
		forms[i] = tok.Form
	}
	return strings.Join(forms, " ")
}
