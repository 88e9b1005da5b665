package transition

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/alecthomas/assert/v2"

	"arcstd/alg/transition"
	nlp "arcstd/nlp/types"
)

var (
	NIVRE_SENT  = nlp.Sentence{"Economic", "news", "had", "little", "effect", "on", "financial", "markets", "."}
	NIVRE_HEADS = []int{-1, 2, 3, 0, 5, 3, 5, 8, 6, 3}
	CAT_HEADS   = []int{-1, 2, 0, 2}
)

// goldArcs lists the arcs of a head vector as a set keyed by dependent.
func goldArcs(heads []int) map[int]int {
	retval := make(map[int]int, len(heads))
	for dep := 1; dep < len(heads); dep++ {
		retval[dep] = heads[dep]
	}
	return retval
}

func arcsByDependent(arcs nlp.DepArcs) map[int]int {
	retval := make(map[int]int, len(arcs))
	for _, arc := range arcs {
		retval[arc.GetModifier()] = arc.GetHead()
	}
	return retval
}

// batchLog records the sentence indices of every batch an oracle is given
// and fails the test if a terminal state is ever included.
type batchLog struct {
	t       *testing.T
	oracle  Oracle
	batches [][]int
}

func (b *batchLog) Predict(states []*ParseState) ([]transition.Transition, error) {
	indices := make([]int, len(states))
	for i, state := range states {
		if state.Terminal() {
			b.t.Errorf("oracle asked about terminal sentence %d", state.Index())
		}
		indices[i] = state.Index()
	}
	b.batches = append(b.batches, indices)
	return b.oracle.Predict(states)
}

func TestParseManyOrderPreserved(t *testing.T) {
	sents := []nlp.Sentence{NIVRE_SENT, {"hello"}, TEST_SENT}
	heads := [][]int{NIVRE_HEADS, {-1, 0}, CAT_HEADS}
	results, err := ParseMany(sents, NewStaticOracle(heads), 2)
	assert.NoError(t, err)
	assert.Equal(t, 3, len(results))
	for i := range sents {
		assert.Equal(t, goldArcs(heads[i]), arcsByDependent(results[i]), "sentence %d", i)
	}
	assert.Equal(t, TEST_ARCS, results[2])
}

func TestParseManyRefillPolicy(t *testing.T) {
	sents := []nlp.Sentence{{"a"}, TEST_SENT, {"b"}}
	heads := [][]int{{-1, 0}, CAT_HEADS, {-1, 0}}
	oracle := &batchLog{t: t, oracle: NewStaticOracle(heads)}
	parser := &BatchParser{Oracle: oracle, BatchSize: 2}
	results, err := parser.ParseMany(sents)
	assert.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1}, {0, 1}, {1, 2}, {1, 2}, {1}, {1}}, oracle.batches)
	assert.Equal(t, 6, parser.Rounds)
	assert.Equal(t, TEST_ARCS, results[1])
}

func TestParseManyAllAtOnce(t *testing.T) {
	sents := []nlp.Sentence{TEST_SENT, {"a"}, NIVRE_SENT}
	heads := [][]int{CAT_HEADS, {-1, 0}, NIVRE_HEADS}
	oracle := &batchLog{t: t, oracle: NewStaticOracle(heads)}
	parser := &BatchParser{Oracle: oracle}
	_, err := parser.ParseMany(sents)
	assert.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, oracle.batches[0])
	assert.Equal(t, 2*len(NIVRE_SENT), parser.Rounds)
}

func TestParseManyEmpty(t *testing.T) {
	called := false
	oracle := OracleFunc(func(states []*ParseState) ([]transition.Transition, error) {
		called = true
		return nil, errors.New("should not be called")
	})
	results, err := ParseMany(nil, oracle, 4)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(results))

	results, err = ParseMany([]nlp.Sentence{{}, {}}, oracle, 1)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(results))
	for _, deps := range results {
		assert.NotZero(t, deps, "empty sentences get an empty, non-nil result")
		assert.Equal(t, 0, len(deps))
	}
	assert.False(t, called)
}

func TestParseManyEmptySentenceSkipped(t *testing.T) {
	sents := []nlp.Sentence{{}, TEST_SENT, {}}
	oracle := &batchLog{t: t, oracle: NewStaticOracle([][]int{{-1}, CAT_HEADS, {-1}})}
	results, err := ParseMany(sents, oracle, 1)
	assert.NoError(t, err)
	for _, batch := range oracle.batches {
		assert.Equal(t, []int{1}, batch)
	}
	assert.Equal(t, TEST_ARCS, results[1])
	assert.Equal(t, 0, len(results[0]))
}

func TestParseManyIllegalTransitionIsolated(t *testing.T) {
	sents := []nlp.Sentence{TEST_SENT, {"x", "y"}, NIVRE_SENT}
	static := NewStaticOracle([][]int{CAT_HEADS, {-1, 0, 1}, NIVRE_HEADS})
	oracle := OracleFunc(func(states []*ParseState) ([]transition.Transition, error) {
		predicted, err := static.Predict(states)
		if err != nil {
			return nil, err
		}
		for i, state := range states {
			if state.Index() == 1 && state.Len() == 0 {
				predicted[i] = transition.RIGHT
			}
		}
		return predicted, nil
	})
	for _, concurrent := range []bool{false, true} {
		t.Run(fmt.Sprintf("concurrent=%v", concurrent), func(t *testing.T) {
			parser := &BatchParser{Oracle: oracle, BatchSize: 2, Concurrent: concurrent}
			results, err := parser.ParseMany(sents)
			assert.IsError(t, err, ErrIllegalTransition)
			var parseErr *ParseError
			assert.True(t, errors.As(err, &parseErr))
			assert.Equal(t, 1, parseErr.Index)
			assert.Contains(t, err.Error(), "sentence 1")

			assert.Equal(t, 3, len(results))
			assert.Zero(t, results[1])
			assert.Equal(t, TEST_ARCS, results[0])
			assert.Equal(t, goldArcs(NIVRE_HEADS), arcsByDependent(results[2]))
		})
	}
}

func TestParseManyShortScriptIsolated(t *testing.T) {
	sents := []nlp.Sentence{TEST_SENT, {"hi"}, {"yo"}}
	oracle := &SequenceOracle{Sequences: [][]transition.Transition{
		TEST_TRANSITIONS,
		{transition.SHIFT},
		{transition.SHIFT, transition.RIGHT},
	}}
	for _, concurrent := range []bool{false, true} {
		t.Run(fmt.Sprintf("concurrent=%v", concurrent), func(t *testing.T) {
			parser := &BatchParser{Oracle: oracle, BatchSize: 3, Concurrent: concurrent}
			results, err := parser.ParseMany(sents)
			assert.IsError(t, err, ErrSequenceExhausted)
			var parseErr *ParseError
			assert.True(t, errors.As(err, &parseErr))
			assert.Equal(t, 1, parseErr.Index)

			assert.Equal(t, 3, len(results))
			assert.Equal(t, TEST_ARCS, results[0])
			assert.Zero(t, results[1])
			assert.Equal(t, nlp.DepArcs{{Head: nlp.Root, Dependent: nlp.Token{ID: 1, Form: "yo"}}}, results[2])
		})
	}
}

func TestParseManyStateErrorsSkipApply(t *testing.T) {
	failure := errors.New("no prediction")
	static := NewStaticOracle([][]int{CAT_HEADS, CAT_HEADS})
	var failed []*ParseState
	oracle := OracleFunc(func(states []*ParseState) ([]transition.Transition, error) {
		predicted, err := static.Predict(states)
		if err != nil {
			return nil, err
		}
		errs := make(StateErrors, len(states))
		for i, state := range states {
			if state.Index() == 0 && state.Len() == 2 {
				errs[i] = failure
				failed = append(failed, state)
				predicted[i] = transition.LEFT
			}
		}
		return predicted, errs
	})
	results, err := ParseMany([]nlp.Sentence{TEST_SENT, TEST_SENT}, oracle, 2)
	assert.IsError(t, err, failure)
	assert.Equal(t, 1, len(failed))
	assert.Equal(t, 2, failed[0].Len(), "the failed state is left as it was")
	assert.Equal(t, 0, len(failed[0].Dependencies()))
	assert.Zero(t, results[0])
	assert.Equal(t, TEST_ARCS, results[1])

	clean := OracleFunc(func(states []*ParseState) ([]transition.Transition, error) {
		predicted, _ := static.Predict(states)
		return predicted, make(StateErrors, len(states))
	})
	results, err = ParseMany([]nlp.Sentence{TEST_SENT}, clean, 1)
	assert.NoError(t, err)
	assert.Equal(t, TEST_ARCS, results[0])
}

func TestParseManyOracleFailure(t *testing.T) {
	failure := errors.New("model unavailable")
	oracle := OracleFunc(func(states []*ParseState) ([]transition.Transition, error) {
		return nil, failure
	})
	results, err := ParseMany([]nlp.Sentence{TEST_SENT}, oracle, 1)
	assert.IsError(t, err, failure)
	assert.Zero(t, results)

	short := OracleFunc(func(states []*ParseState) ([]transition.Transition, error) {
		return []transition.Transition{transition.SHIFT}, nil
	})
	results, err = ParseMany([]nlp.Sentence{TEST_SENT, TEST_SENT}, short, 2)
	assert.IsError(t, err, ErrOracleBatchSize)
	assert.Zero(t, results)
}

func TestParseManyNoOracle(t *testing.T) {
	_, err := (&BatchParser{}).ParseMany([]nlp.Sentence{TEST_SENT})
	assert.Error(t, err)
}

// randomTree builds a random projective head vector of length n by
// attaching each span to a head chosen inside it.
func randomTree(rng *rand.Rand, heads []int, from, to, parent int) {
	if from > to {
		return
	}
	head := from + rng.Intn(to-from+1)
	heads[head] = parent
	randomTree(rng, heads, from, head-1, head)
	randomTree(rng, heads, head+1, to, head)
}

func TestParseManyConcurrentMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const NUM_SENTS = 40
	sents := make([]nlp.Sentence, NUM_SENTS)
	heads := make([][]int, NUM_SENTS)
	for i := range sents {
		n := rng.Intn(15)
		sents[i] = make(nlp.Sentence, n)
		for j := range sents[i] {
			sents[i][j] = fmt.Sprintf("w%d", j+1)
		}
		heads[i] = make([]int, n+1)
		heads[i][0] = -1
		randomTree(rng, heads[i], 1, n, 0)
	}
	for _, batchSize := range []int{1, 3, 8, 0} {
		sequential, err := (&BatchParser{Oracle: NewStaticOracle(heads), BatchSize: batchSize}).ParseMany(sents)
		assert.NoError(t, err)
		concurrent, err := (&BatchParser{Oracle: NewStaticOracle(heads), BatchSize: batchSize, Concurrent: true}).ParseMany(sents)
		assert.NoError(t, err)
		assert.Equal(t, sequential, concurrent, "batch size %d", batchSize)
		for i := range sents {
			assert.Equal(t, len(sents[i]), len(sequential[i]), "arc count of sentence %d", i)
			assert.Equal(t, goldArcs(heads[i]), arcsByDependent(sequential[i]), "sentence %d", i)
		}
	}
}
