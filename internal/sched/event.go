// internal/sched/event.go

package sched

import (
	"fmt"
	"strings"
)

// EventKind represents the type of scheduler event
type EventKind int

const (
	EventCreated EventKind = iota
	EventContextSwitch
	EventCompleted
)

// Event is emitted by Tick whenever a processor starts, swaps, or retires a process.
type Event struct {
	Time     int       `json:"time"`
	Kind     EventKind `json:"kind"`
	CPU      int       `json:"cpu"`
	Process  ProcessID `json:"process"`
	Outgoing ProcessID `json:"outgoing"` // context switch only

	Burst     int `json:"burst"`
	Remaining int `json:"remaining"`
	Priority  int `json:"priority"`

	// completion only
	Turnaround  int `json:"turnaround"`
	InitialWait int `json:"initial_wait"`
	TotalWait   int `json:"total_wait"`
}

// Observer receives events synchronously, in the order Tick emits them.
type Observer func(Event)

// CPULabel names processor i the way the reports do: A, B, C, ...
func CPULabel(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return fmt.Sprintf("CPU%d", i)
}

// CPULabel returns the label of the processor the event happened on.
func (e Event) CPULabel() string { return CPULabel(e.CPU) }

func (k EventKind) String() string {
	switch k {
	case EventCreated:
		return "Created"
	case EventContextSwitch:
		return "ContextSwitch"
	case EventCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// MarshalText lets the kind travel as its name in JSON and CSV.
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText accepts the names MarshalText produces.
func (k *EventKind) UnmarshalText(text []byte) error {
	for _, kind := range []EventKind{EventCreated, EventContextSwitch, EventCompleted} {
		if strings.EqualFold(kind.String(), string(text)) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown event kind %q", text)
}
