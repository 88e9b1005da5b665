// Package eval scores parsed heads against gold heads.
package eval

// Result counts attachments of one sentence: TP tokens got their gold
// head, FP got another head and FN got none.
type Result struct {
	TP, FP, FN int
}

func (r *Result) All() int {
	return r.TP + r.FP + r.FN
}

func (r *Result) Incorrect() int {
	return r.FP + r.FN
}

// UAS is the unlabeled attachment score.
func (r *Result) UAS() float64 {
	if r.All() == 0 {
		return 1.0
	}
	return float64(r.TP) / float64(r.All())
}

// Heads compares two head vectors indexed by token position; index 0
// (ROOT) is skipped. A negative test head counts as unattached.
func Heads(test, gold []int) *Result {
	retval := &Result{}
	for i := 1; i < len(gold); i++ {
		switch {
		case i >= len(test) || test[i] < 0:
			retval.FN++
		case test[i] == gold[i]:
			retval.TP++
		default:
			retval.FP++
		}
	}
	return retval
}

type Total struct {
	Result
	Exact, Population int
}

func (t *Total) Add(r *Result) {
	t.TP += r.TP
	t.FP += r.FP
	t.FN += r.FN
	if r.Incorrect() == 0 {
		t.Exact++
	}
	t.Population++
}

func (t *Total) ExactMatch() float64 {
	if t.Population == 0 {
		return 1.0
	}
	return float64(t.Exact) / float64(t.Population)
}
