package sched

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func queueOf(ds ...Descriptor) *WaitQueue {
	q := NewWaitQueue()
	for _, d := range ds {
		q.Push(NewProcess(d))
	}
	return q
}

func TestFCFSOrdersByArrival(t *testing.T) {
	q := queueOf(
		Descriptor{ID: 1, Burst: 10, Arrival: 30},
		Descriptor{ID: 2, Burst: 10, Arrival: 10},
		Descriptor{ID: 3, Burst: 10, Arrival: 10},
	)
	var order []ProcessID
	for !q.Empty() {
		order = append(order, FCFS{}.Next(0, nil, q).ID())
	}
	require.Equal(t, []ProcessID{2, 3, 1}, order)
}

func TestSJFOrdersByBurstThenArrival(t *testing.T) {
	q := queueOf(
		Descriptor{ID: 1, Burst: 90, Arrival: 0},
		Descriptor{ID: 2, Burst: 40, Arrival: 20},
		Descriptor{ID: 3, Burst: 40, Arrival: 5},
		Descriptor{ID: 4, Burst: 40, Arrival: 5},
	)
	var order []ProcessID
	for !q.Empty() {
		order = append(order, SJF{}.Next(0, nil, q).ID())
	}
	require.Equal(t, []ProcessID{3, 4, 2, 1}, order)
}

func TestNonPreemptiveKeepsOccupant(t *testing.T) {
	q := queueOf(Descriptor{ID: 2, Burst: 1})
	cur := NewProcess(Descriptor{ID: 1, Burst: 500})
	cur.Run()
	for _, p := range []Policy{FCFS{}, SJF{}} {
		require.Same(t, cur, p.Next(0, cur, q))
		require.Equal(t, 1, q.Len())
	}
}

func TestRoundRobinSliceBoundary(t *testing.T) {
	rr := RoundRobin{Slice: 3}
	q := queueOf(Descriptor{ID: 2, Burst: 5})
	cur := NewProcess(Descriptor{ID: 1, Burst: 10})

	cur.Run()
	require.Same(t, cur, rr.Next(0, cur, q), "mid-slice occupant keeps running")
	cur.Run()
	cur.Run()

	next := rr.Next(0, cur, q)
	require.Equal(t, ProcessID(2), next.ID())
	require.Equal(t, 1, q.Len())
	require.Same(t, cur, q.At(0), "preempted occupant goes to the tail")

	require.Nil(t, rr.Next(0, nil, NewWaitQueue()))
}

func TestPolicyByName(t *testing.T) {
	cfg := DefaultConfig()
	for name, want := range map[string]string{
		"fcfs":               "First Come First Served",
		"SJF":                "Shortest Job First",
		" rr ":               "Round Robin",
		"round-robin":        "Round Robin",
		"shortest-job-first": "Shortest Job First",
	} {
		p, err := PolicyByName(name, cfg)
		require.NoError(t, err)
		require.Equal(t, want, p.Name())
	}

	p, err := PolicyByName("rr", cfg)
	require.NoError(t, err)
	require.Equal(t, RoundRobin{Slice: 100}, p)

	_, err = PolicyByName("mlfq", cfg)
	require.ErrorIs(t, err, ErrUnknownPolicy)

	require.Len(t, Policies(cfg), len(PolicyNames()))
}
