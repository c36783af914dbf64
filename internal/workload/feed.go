package workload

import (
	"github.com/emirpasic/gods/trees/redblacktree"

	"cpusim/internal/sched"
)

// Feed releases descriptors once the clock reaches their arrival time.
type Feed struct {
	pending *redblacktree.Tree // ordered by arrival, then id
}

// NewFeed loads every descriptor of t as pending.
func NewFeed(t Template) *Feed {
	f := &Feed{pending: redblacktree.NewWith(cmp)}
	for _, d := range t.Descriptors() {
		f.pending.Put(feedKey{arrival: d.Arrival, id: d.ID}, d)
	}
	return f
}

// Due removes and returns every pending descriptor with Arrival <= now,
// earliest first.
func (f *Feed) Due(now int) []sched.Descriptor {
	var due []sched.Descriptor
	for {
		node := f.pending.Left()
		if node == nil {
			return due
		}
		key := node.Key.(feedKey)
		if key.arrival > now {
			return due
		}
		due = append(due, node.Value.(sched.Descriptor))
		f.pending.Remove(key)
	}
}

// Len returns the number of descriptors not yet released.
func (f *Feed) Len() int { return f.pending.Size() }

// feedKey is used as a key in the red-black tree.
type feedKey struct {
	arrival int
	id      sched.ProcessID
}

func cmp(a, b any) int {
	ka, kb := a.(feedKey), b.(feedKey)
	switch {
	case ka.arrival < kb.arrival:
		return -1
	case ka.arrival > kb.arrival:
		return 1
	case ka.id < kb.id:
		return -1
	case ka.id > kb.id:
		return 1
	default:
		return 0
	}
}
