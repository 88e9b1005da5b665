package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeads(t *testing.T) {
	gold := []int{-1, 2, 0, 2}
	r := Heads([]int{-1, 2, 0, 2}, gold)
	assert.Equal(t, &Result{TP: 3}, r)
	assert.Equal(t, 1.0, r.UAS())

	r = Heads([]int{-1, 3, 0, -1}, gold)
	assert.Equal(t, &Result{TP: 1, FP: 1, FN: 1}, r)
	assert.InDelta(t, 1.0/3.0, r.UAS(), 1e-9)

	r = Heads(nil, gold)
	assert.Equal(t, 3, r.FN)
}

func TestTotal(t *testing.T) {
	total := &Total{}
	assert.Equal(t, 1.0, total.ExactMatch())
	total.Add(Heads([]int{-1, 0}, []int{-1, 0}))
	total.Add(Heads([]int{-1, 2, 0}, []int{-1, 0, 1}))
	assert.Equal(t, 2, total.Population)
	assert.Equal(t, 1, total.Exact)
	assert.Equal(t, 0.5, total.ExactMatch())
	assert.InDelta(t, 1.0/3.0, total.UAS(), 1e-9)
}
