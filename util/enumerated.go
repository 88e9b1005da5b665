package util

import (
	"fmt"
	"sync"
)

// EnumSet assigns consecutive indices to values in insertion order.
// Once Frozen, Add fails instead of growing the set.
type EnumSet struct {
	mu     sync.RWMutex
	Enum   map[any]int
	Index  []any
	Frozen bool
}

func (e *EnumSet) Add(value any) (int, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	enum, exists := e.Enum[value]
	if exists {
		return enum, false, nil
	}
	if e.Frozen {
		return -1, false, fmt.Errorf("cannot add %v to frozen enum set", value)
	}
	enum = len(e.Index)
	e.Enum[value] = enum
	e.Index = append(e.Index, value)
	return enum, true, nil
}

func (e *EnumSet) IndexOf(value any) (int, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	enum, exists := e.Enum[value]
	return enum, exists
}

func (e *EnumSet) ValueOf(index int) (any, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if index < 0 || index >= len(e.Index) {
		return nil, false
	}
	return e.Index[index], true
}

func (e *EnumSet) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.Index)
}

func NewEnumSet(capacity int) *EnumSet {
	return &EnumSet{
		Enum:  make(map[any]int, capacity),
		Index: make([]any, 0, capacity),
	}
}
