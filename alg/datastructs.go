package alg

import "slices"

type Index interface {
	Index(int) (int, bool)
}

// Stack is a LIFO of token positions; Index(0) is the top.
type Stack interface {
	Index
	Clear()
	Push(int)
	Pop() (int, bool)
	Peek() (int, bool)
	Remove(int) (int, bool)
	Size() int
	Values() []int

	Copy() Stack
	Equal(Stack) bool
}

// Queue is a FIFO of token positions; Index(0) is the front.
type Queue interface {
	Index
	Clear()
	Enqueue(int)
	Dequeue() (int, bool)
	Peek() (int, bool)
	Size() int
	Values() []int

	Copy() Queue
	Equal(Queue) bool
}

type StackArray struct {
	Array []int
}

var _ Stack = &StackArray{}

func (s *StackArray) Equal(other Stack) bool {
	return slices.Equal(s.Values(), other.Values())
}

func (s *StackArray) Clear() {
	s.Array = s.Array[0:0]
}

func (s *StackArray) Push(val int) {
	s.Array = append(s.Array, val)
}

func (s *StackArray) Pop() (int, bool) {
	if s.Size() == 0 {
		return 0, false
	}
	retval := s.Array[len(s.Array)-1]
	s.Array = s.Array[:len(s.Array)-1]
	return retval, true
}

// Remove takes out the element at depth index (0 is the top); the elements
// above it shift down by one. Removing at depth 1 moves a single element.
func (s *StackArray) Remove(index int) (int, bool) {
	if index < 0 || index >= s.Size() {
		return 0, false
	}
	pos := len(s.Array) - 1 - index
	retval := s.Array[pos]
	copy(s.Array[pos:], s.Array[pos+1:])
	s.Array = s.Array[:len(s.Array)-1]
	return retval, true
}

func (s *StackArray) Index(index int) (int, bool) {
	if index < 0 || index >= s.Size() {
		return 0, false
	}
	return s.Array[len(s.Array)-1-index], true
}

func (s *StackArray) Peek() (int, bool) {
	return s.Index(0)
}

func (s *StackArray) Size() int {
	return len(s.Array)
}

// Values returns the stack bottom to top.
func (s *StackArray) Values() []int {
	return slices.Clone(s.Array)
}

func (s *StackArray) Copy() Stack {
	newArray := make([]int, len(s.Array), cap(s.Array))
	copy(newArray, s.Array)
	return &StackArray{newArray}
}

func NewStackArray(size int) *StackArray {
	return &StackArray{make([]int, 0, size)}
}

// QueueSlice dequeues by advancing a head offset, so Dequeue never copies.
type QueueSlice struct {
	slice []int
	head  int
}

var _ Queue = &QueueSlice{}

func (q *QueueSlice) Clear() {
	q.slice = q.slice[0:0]
	q.head = 0
}

func (q *QueueSlice) Equal(other Queue) bool {
	return slices.Equal(q.Values(), other.Values())
}

func (q *QueueSlice) Enqueue(val int) {
	q.slice = append(q.slice, val)
}

func (q *QueueSlice) Dequeue() (int, bool) {
	if q.Size() == 0 {
		return 0, false
	}
	retval := q.slice[q.head]
	q.head++
	return retval, true
}

func (q *QueueSlice) Index(index int) (int, bool) {
	if index < 0 || index >= q.Size() {
		return 0, false
	}
	return q.slice[q.head+index], true
}

func (q *QueueSlice) Peek() (int, bool) {
	return q.Index(0)
}

func (q *QueueSlice) Size() int {
	return len(q.slice) - q.head
}

// Values returns the queue front to back.
func (q *QueueSlice) Values() []int {
	return slices.Clone(q.slice[q.head:])
}

func (q *QueueSlice) Copy() Queue {
	return &QueueSlice{slice: q.Values()}
}

func NewQueueSlice(size int) *QueueSlice {
	return &QueueSlice{slice: make([]int, 0, size)}
}
