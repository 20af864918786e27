// Package dispatcher simulates Round Robin CPU scheduling over a set of processes.
//
// Simulated time is an integer tick that only moves when a process runs (by the ticks it
// actually consumed) or when no process is ready and the clock skips ahead to the next arrival.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/TigerCipher/rrsched/internal/process"
	"github.com/TigerCipher/rrsched/internal/tracing"
)

// DefaultQuantum is the time slice used when none is configured.
const DefaultQuantum = 2

var (
	ErrNoProcesses      = errors.New("no processes to schedule")
	ErrInvalidQuantum   = errors.New("quantum must be a positive number of ticks")
	ErrDuplicateProcess = errors.New("duplicate process id")
	ErrAlreadyRun       = errors.New("dispatcher already run")
	ErrNotRun           = errors.New("not yet run")
	ErrTooManySlices    = errors.New("workload exceeds the slice limit")
	ErrTickOverflow     = errors.New("workload overflows the simulated clock")
	// ErrQueueStarved means the admission queue ran dry while work remained.
	// It signals a bookkeeping defect in the loop, not a bad workload.
	ErrQueueStarved = errors.New("admission queue empty with unfinished processes")
)

// Dispatcher schedules added processes to completion.
type Dispatcher interface {
	AddProcess(p *process.Process) error
	Run(ctx context.Context) error
	Result() (*Result, error)
}

// RoundRobin runs each ready process for at most one quantum before moving it to the
// back of the queue. A RoundRobin is owned by a single caller and runs once.
type RoundRobin struct {
	processes     []*process.Process
	quantum       int
	minimizeChart bool
	maxSlices     int
	result        *Result
	ran           bool
}

var _ Dispatcher = (*RoundRobin)(nil)

// Option configures a RoundRobin.
type Option func(*RoundRobin)

// WithQuantum sets the time slice; non-positive values keep the default.
func WithQuantum(ticks int) Option {
	return func(d *RoundRobin) {
		if ticks > 0 {
			d.quantum = ticks
		}
	}
}

// WithMinimizedChart coalesces consecutive slices of the same process in the result chart.
func WithMinimizedChart(minimize bool) Option {
	return func(d *RoundRobin) {
		d.minimizeChart = minimize
	}
}

// WithMaxSlices caps the number of time slices a run may produce; 0 means no cap.
func WithMaxSlices(n int) Option {
	return func(d *RoundRobin) {
		if n >= 0 {
			d.maxSlices = n
		}
	}
}

// New creates a dispatcher with the default quantum.
func New(opts ...Option) *RoundRobin {
	d := &RoundRobin{quantum: DefaultQuantum}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// AddProcess appends p; processes are reported and tie-broken in insertion order.
func (d *RoundRobin) AddProcess(p *process.Process) error {
	if d.ran {
		return ErrAlreadyRun
	}
	if p == nil {
		return errors.New("nil process")
	}
	for _, existing := range d.processes {
		if existing.Equal(p) {
			return fmt.Errorf("%w: %d", ErrDuplicateProcess, p.ID)
		}
	}
	d.processes = append(d.processes, p)
	return nil
}

// SetQuantum sets the fixed time slice per scheduling decision.
func (d *RoundRobin) SetQuantum(ticks int) error {
	if ticks <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidQuantum, ticks)
	}
	d.quantum = ticks
	return nil
}

// Quantum returns the configured time slice.
func (d *RoundRobin) Quantum() int { return d.quantum }

// Processes returns the processes in insertion order.
func (d *RoundRobin) Processes() []*process.Process {
	return d.processes
}

// Result returns the snapshot computed by the last successful Run.
func (d *RoundRobin) Result() (*Result, error) {
	if d.result == nil {
		return nil, ErrNotRun
	}
	return d.result, nil
}

// Run simulates the schedule until every process has finished or ctx is done.
func (d *RoundRobin) Run(ctx context.Context) (err error) {
	if d.ran {
		return ErrAlreadyRun
	}
	if len(d.processes) == 0 {
		return ErrNoProcesses
	}
	if err := d.check(); err != nil {
		return err
	}
	d.ran = true

	ctx, span := tracing.StartSpan(ctx, "dispatcher.RoundRobin.Run")
	span.SetInt(map[string]int{"processes": len(d.processes), "quantum": d.quantum})
	defer func() { tracing.EndSpan(span, err) }()

	s := newSimulation(d.processes, d.quantum)
	for !s.allFinished() {
		if err = ctx.Err(); err != nil {
			return err
		}
		s.fillQueue()
		if len(s.queue) == 0 {
			if !s.skipIdle() {
				return fmt.Errorf("%w: tick %d", ErrQueueStarved, s.tick)
			}
			continue
		}
		var slice TimeSlice
		if slice, err = s.dispatch(); err != nil {
			return err
		}
		span.Event("dispatch", map[string]int{"pid": slice.PID, "start": slice.Start, "stop": slice.Stop})
	}

	chart := s.gantt
	if d.minimizeChart {
		chart = Compact(chart)
	}
	d.result, err = computeResult(d.processes, chart, d.quantum, s.tick, s.idle)
	return err
}

// check rejects workloads whose clock could pass math.MaxInt or whose chart would
// exceed the slice limit. The clock never passes the latest arrival plus all bursts.
func (d *RoundRobin) check() error {
	var latest, bursts, slices int
	for _, p := range d.processes {
		if p.Arrival > latest {
			latest = p.Arrival
		}
		if p.Burst > math.MaxInt-bursts {
			return fmt.Errorf("%w: total burst of process %d", ErrTickOverflow, p.ID)
		}
		bursts += p.Burst
		n := p.Burst / d.quantum
		if p.Burst%d.quantum != 0 {
			n++
		}
		slices += n
		if d.maxSlices > 0 && slices > d.maxSlices {
			return fmt.Errorf("%w: more than %d slices", ErrTooManySlices, d.maxSlices)
		}
	}
	if bursts > math.MaxInt-latest {
		return fmt.Errorf("%w: arrival %d plus burst total %d", ErrTickOverflow, latest, bursts)
	}
	return nil
}
