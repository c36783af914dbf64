package sched

import (
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
)

// WaitQueue holds eligible processes that are not on a processor, in the
// order they were pushed. Policies decide which entry leaves next.
type WaitQueue struct {
	list *arraylist.List
}

// NewWaitQueue returns an empty queue.
func NewWaitQueue() *WaitQueue {
	return &WaitQueue{list: arraylist.New()}
}

// Push appends p at the tail.
func (q *WaitQueue) Push(p *Process) { q.list.Add(p) }

// Len reports the number of queued processes.
func (q *WaitQueue) Len() int { return q.list.Size() }

// Empty reports whether nothing is queued.
func (q *WaitQueue) Empty() bool { return q.list.Empty() }

// At returns the entry at position i, or nil when i is out of range.
func (q *WaitQueue) At(i int) *Process {
	v, ok := q.list.Get(i)
	if !ok {
		return nil
	}
	return v.(*Process)
}

// RemoveAt removes and returns the entry at position i, or nil when i is out of range.
func (q *WaitQueue) RemoveAt(i int) *Process {
	p := q.At(i)
	if p == nil {
		return nil
	}
	q.list.Remove(i)
	return p
}

// Pop removes and returns the head, or nil when the queue is empty.
func (q *WaitQueue) Pop() *Process { return q.RemoveAt(0) }

// IndexOf returns the position of p, or -1.
func (q *WaitQueue) IndexOf(p *Process) int { return q.list.IndexOf(p) }

// Contains reports whether p is queued.
func (q *WaitQueue) Contains(p *Process) bool { return q.IndexOf(p) >= 0 }

// MinIndex returns the position of the first entry no other entry is less
// than, or -1 when the queue is empty. Earlier positions win ties.
func (q *WaitQueue) MinIndex(less func(a, b *Process) bool) int {
	best := -1
	var bestProc *Process
	q.list.Each(func(i int, v interface{}) {
		p := v.(*Process)
		if best < 0 || less(p, bestProc) {
			best, bestProc = i, p
		}
	})
	return best
}

// Each calls fn for every queued process, head first.
func (q *WaitQueue) Each(fn func(p *Process)) {
	q.list.Each(func(_ int, v interface{}) {
		fn(v.(*Process))
	})
}

func (q *WaitQueue) String() string {
	var b strings.Builder
	b.WriteByte('[')
	q.list.Each(func(i int, v interface{}) {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(v.(*Process).String())
	})
	b.WriteByte(']')
	return b.String()
}
