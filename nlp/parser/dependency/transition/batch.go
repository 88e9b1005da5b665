package transition

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"arcstd/alg/transition"
	nlp "arcstd/nlp/types"
)

// BatchParser drives many parse states to completion, asking the oracle
// for one transition per unfinished state per round.
//
// At most BatchSize states are active at a time. Finished states leave the
// active set after each round and the free slots are filled from the pending
// states in input order. BatchSize <= 0 puts every sentence in one batch.
type BatchParser struct {
	Oracle     Oracle
	BatchSize  int
	Concurrent bool
	Log        bool

	// Rounds is the number of oracle calls made by the last ParseMany.
	Rounds int
}

// ParseMany parses sents and returns their arcs in input order.
//
// A sentence whose oracle transition is illegal, or that the oracle reports
// through StateErrors, is dropped from the run: its result is nil and a
// *ParseError naming it is included in the returned error, while the
// remaining sentences are parsed as usual. Any other oracle failure aborts
// the whole run and returns no results.
func (p *BatchParser) ParseMany(sents []nlp.Sentence) ([]nlp.DepArcs, error) {
	if p.Oracle == nil {
		return nil, errors.New("batch parser has no oracle")
	}
	states := make([]*ParseState, len(sents))
	results := make([]nlp.DepArcs, len(sents))
	pending := make([]int, 0, len(sents))
	for i, sent := range sents {
		states[i] = NewParseState(sent)
		states[i].index = i
		if states[i].Terminal() {
			results[i] = states[i].Dependencies()
			continue
		}
		pending = append(pending, i)
	}

	batchSize := p.BatchSize
	if batchSize <= 0 || batchSize > len(pending) {
		batchSize = len(pending)
	}

	var (
		errs   []error
		active []int
	)
	active, pending = refill(make([]int, 0, batchSize), pending, batchSize)
	p.Rounds = 0
	for len(active) > 0 {
		batch := make([]*ParseState, len(active))
		for j, i := range active {
			batch[j] = states[i]
		}
		predicted, err := p.Oracle.Predict(batch)
		p.Rounds++
		oracleErrs := stateErrors(err, len(batch))
		if err != nil && oracleErrs == nil {
			return nil, fmt.Errorf("oracle round %d: %w", p.Rounds, err)
		}
		if len(predicted) != len(batch) {
			return nil, fmt.Errorf("%w: round %d, %d transitions for %d states", ErrOracleBatchSize, p.Rounds, len(predicted), len(batch))
		}
		applyErrs := p.apply(batch, predicted, oracleErrs)

		// filter in place; next never overtakes the read position
		next := active[:0]
		for j, i := range active {
			switch {
			case applyErrs[j] != nil:
				errs = append(errs, &ParseError{Index: i, Err: applyErrs[j]})
			case states[i].Terminal():
				results[i] = states[i].Dependencies()
			default:
				next = append(next, i)
			}
		}
		active, pending = refill(next, pending, batchSize)
		if p.Log {
			log.Printf("Round %d: %d active, %d pending, %d errors", p.Rounds, len(active), len(pending), len(errs))
		}
	}
	return results, errors.Join(errs...)
}

// apply runs each prediction on its state. States the oracle failed keep
// the oracle's error and are not touched.
func (p *BatchParser) apply(batch []*ParseState, predicted []transition.Transition, oracleErrs StateErrors) []error {
	errs := make([]error, len(batch))
	copy(errs, oracleErrs)
	if !p.Concurrent || len(batch) < 2 {
		for j, state := range batch {
			if errs[j] == nil {
				errs[j] = state.Apply(predicted[j])
			}
		}
		return errs
	}
	var wg sync.WaitGroup
	for j, state := range batch {
		if errs[j] != nil {
			continue
		}
		wg.Add(1)
		go func(j int, state *ParseState) {
			defer wg.Done()
			errs[j] = state.Apply(predicted[j])
		}(j, state)
	}
	wg.Wait()
	return errs
}

// refill moves states from the front of pending to the back of active until
// active holds size states or pending runs out.
func refill(active, pending []int, size int) ([]int, []int) {
	take := size - len(active)
	if take > len(pending) {
		take = len(pending)
	}
	if take <= 0 {
		return active, pending
	}
	return append(active, pending[:take]...), pending[take:]
}

// ParseMany is shorthand for a sequential BatchParser run.
func ParseMany(sents []nlp.Sentence, oracle Oracle, batchSize int) ([]nlp.DepArcs, error) {
	parser := &BatchParser{Oracle: oracle, BatchSize: batchSize}
	return parser.ParseMany(sents)
}
