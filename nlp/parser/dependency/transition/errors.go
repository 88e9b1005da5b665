package transition

import (
	"errors"
	"fmt"

	"arcstd/alg/transition"
)

var (
	// ErrIllegalTransition is wrapped by every IllegalTransitionError.
	ErrIllegalTransition = errors.New("illegal transition")
	// ErrOracleBatchSize is returned when an oracle answers a batch with a
	// different number of transitions than states it was given.
	ErrOracleBatchSize = errors.New("oracle returned wrong number of transitions")
	// ErrUnknownSentence is returned by oracles asked about a sentence index
	// they hold no data for.
	ErrUnknownSentence = errors.New("oracle has no data for sentence")
	// ErrSequenceExhausted is returned by a SequenceOracle whose script for a
	// sentence ended before the sentence was fully reduced.
	ErrSequenceExhausted = errors.New("transition sequence exhausted")
	// ErrNoGoldHeads is returned by a StaticOracle for a sentence whose
	// gold tree leaves some token without a head.
	ErrNoGoldHeads = errors.New("sentence has no gold heads")
)

// IllegalTransitionError reports a transition that does not fit the
// configuration it was applied to. The configuration is left unchanged.
type IllegalTransitionError struct {
	Transition transition.Transition
	StackSize  int
	BufferSize int
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("%s %v: stack size %d, buffer size %d", ErrIllegalTransition, e.Transition, e.StackSize, e.BufferSize)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// ParseError ties a failure to the input sentence it happened on.
type ParseError struct {
	Index int
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("sentence %d: %v", e.Index, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// StateErrors lets an oracle fail some states of a batch and still answer
// the rest. It has one entry per state; the transitions returned for states
// with a non-nil entry are ignored and those sentences fail alone.
type StateErrors []error

func (e StateErrors) Error() string {
	if err := errors.Join(e...); err != nil {
		return err.Error()
	}
	return "no state errors"
}

func (e StateErrors) Unwrap() []error {
	var retval []error
	for _, err := range e {
		if err != nil {
			retval = append(retval, err)
		}
	}
	return retval
}

// stateErrors returns the per-state errors of err, or nil when err is a
// failure of the whole batch.
func stateErrors(err error, batchSize int) StateErrors {
	var errs StateErrors
	if errors.As(err, &errs) && len(errs) == batchSize {
		return errs
	}
	return nil
}
