package sched

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProcessAccounting(t *testing.T) {
	p := NewProcess(Descriptor{ID: 3, Burst: 4, Priority: 2, Arrival: 9})
	require.Equal(t, 4, p.Remaining())
	require.Equal(t, 0, p.Consumed())

	p.Pause()
	p.Pause()
	p.Run()
	require.Equal(t, 2, p.InitialWait())
	require.Equal(t, 1, p.Consumed())

	// later waits count toward the total only
	p.Pause()
	p.Run()
	require.Equal(t, 2, p.InitialWait())
	require.Equal(t, 3, p.TotalWait())

	p.Run()
	p.Run()
	p.Run() // no-op once nothing is left
	require.Equal(t, 0, p.Remaining())

	p.admitted = 5
	p.Complete(12)
	p.Complete(40)
	require.True(t, p.Finished())
	require.Equal(t, 7, p.Turnaround())

	snap := p.Snapshot()
	require.Equal(t, ProcessStats{ID: 3, Burst: 4, Priority: 2, Arrival: 9, Admitted: 5, Turnaround: 7, InitialWait: 2, TotalWait: 3}, snap)

	p.Reset()
	require.Equal(t, NewProcess(p.Descriptor()), p)
}

func TestWaitQueue(t *testing.T) {
	q := NewWaitQueue()
	require.Nil(t, q.Pop())
	require.Nil(t, q.RemoveAt(-1))
	require.Equal(t, -1, q.MinIndex(func(a, b *Process) bool { return true }))

	a := NewProcess(Descriptor{ID: 1, Burst: 30})
	b := NewProcess(Descriptor{ID: 2, Burst: 10})
	c := NewProcess(Descriptor{ID: 3, Burst: 10})
	q.Push(a)
	q.Push(b)
	q.Push(c)

	byBurst := func(x, y *Process) bool { return x.Burst() < y.Burst() }
	require.Equal(t, 1, q.MinIndex(byBurst), "ties go to the earlier position")
	require.True(t, q.Contains(c))
	require.Equal(t, 2, q.IndexOf(c))

	require.Same(t, b, q.RemoveAt(1))
	require.Same(t, a, q.Pop())
	require.Same(t, c, q.At(0))
	require.Nil(t, q.At(1))
	require.Equal(t, 1, q.Len())

	var seen []ProcessID
	q.Each(func(p *Process) { seen = append(seen, p.ID()) })
	require.Equal(t, []ProcessID{3}, seen)
}

func TestEventKindText(t *testing.T) {
	for _, k := range []EventKind{EventCreated, EventContextSwitch, EventCompleted} {
		text, err := k.MarshalText()
		require.NoError(t, err)
		var back EventKind
		require.NoError(t, back.UnmarshalText(text))
		require.Equal(t, k, back)
	}
	var k EventKind
	require.Error(t, k.UnmarshalText([]byte("Preempt")))
	require.Equal(t, "Unknown", EventKind(42).String())
	require.Equal(t, "B", CPULabel(1))
	require.Equal(t, "CPU30", CPULabel(30))
}
