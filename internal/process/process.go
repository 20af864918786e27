package process

import (
	"errors"
	"fmt"
)

// ErrNotAvailable is returned when a derived time is requested before the process exited.
var ErrNotAvailable = errors.New("not available")

// State is the lifecycle state of a process inside the dispatcher.
type State int

const (
	// NotInSystem is the initial state, and the transient state of a process while it executes.
	NotInSystem State = iota
	// Ready means the process sits in the admission queue waiting for its turn.
	Ready
	// Finished is terminal: the whole burst has been consumed.
	Finished
)

func (s State) String() string {
	switch s {
	case NotInSystem:
		return "not-in-system"
	case Ready:
		return "ready"
	case Finished:
		return "finished"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Process is one schedulable unit of work.
// ID, Arrival, Burst and Priority are fixed at construction; the rest is run state.
type Process struct {
	ID       int
	Arrival  int
	Burst    int
	Priority int

	progress int
	state    State
	exitTime *int
}

// New creates a process that has not yet entered the system.
func New(id, arrival, burst, priority int) *Process {
	return &Process{
		ID:       id,
		Arrival:  arrival,
		Burst:    burst,
		Priority: priority,
		state:    NotInSystem,
	}
}

// Progress returns the ticks consumed so far.
func (p *Process) Progress() int { return p.progress }

// State returns the current lifecycle state.
func (p *Process) State() State { return p.state }

// IsFinished reports whether the burst is fully consumed.
func (p *Process) IsFinished() bool { return p.state == Finished }

// ExitTime returns the tick at which the process finished, ok is false until then.
func (p *Process) ExitTime() (tick int, ok bool) {
	if p.exitTime == nil {
		return 0, false
	}
	return *p.exitTime, true
}

// Admit moves a process that is not in the system onto the ready queue.
func (p *Process) Admit() bool {
	if p.state != NotInSystem {
		return false
	}
	p.state = Ready
	return true
}

// Dispatch takes a ready process off the queue for execution.
func (p *Process) Dispatch() bool {
	if p.state != Ready {
		return false
	}
	p.state = NotInSystem
	return true
}

// Requeue returns a process that ran without finishing to the ready state.
func (p *Process) Requeue() bool {
	if p.state == Finished {
		return false
	}
	p.state = Ready
	return true
}

// RunFor consumes up to ticks of the remaining burst and returns the new progress.
// Reaching the burst moves the process to Finished. Non-positive ticks are a no-op.
func (p *Process) RunFor(ticks int) int {
	if p.state == Finished || ticks <= 0 {
		return p.progress
	}
	if ticks >= p.Burst-p.progress {
		p.progress = p.Burst
		p.state = Finished
		return p.progress
	}
	p.progress += ticks
	return p.progress
}

// Complete records the exit tick of a finished process. The first recorded tick wins.
func (p *Process) Complete(tick int) error {
	if p.state != Finished {
		return fmt.Errorf("process %d: complete in state %v", p.ID, p.state)
	}
	if p.exitTime != nil {
		return nil
	}
	p.exitTime = &tick
	return nil
}

// TimeToComplete returns the remaining work in ticks.
func (p *Process) TimeToComplete() int {
	return p.Burst - p.progress
}

// TurnaroundTime is exit time minus arrival time.
func (p *Process) TurnaroundTime() (int, error) {
	if p.exitTime == nil {
		return 0, fmt.Errorf("%w: turnaround time of process %d", ErrNotAvailable, p.ID)
	}
	return *p.exitTime - p.Arrival, nil
}

// WaitTime is turnaround time minus burst time.
func (p *Process) WaitTime() (int, error) {
	turnaround, err := p.TurnaroundTime()
	if err != nil {
		return 0, fmt.Errorf("%w: wait time of process %d", ErrNotAvailable, p.ID)
	}
	return turnaround - p.Burst, nil
}

// Equal compares processes by ID only.
func (p *Process) Equal(other *Process) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.ID == other.ID
}

func (p *Process) String() string {
	return fmt.Sprintf("P%d(arrival=%d burst=%d progress=%d %v)", p.ID, p.Arrival, p.Burst, p.progress, p.state)
}
