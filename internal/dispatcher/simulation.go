package dispatcher

import (
	"fmt"

	"github.com/TigerCipher/rrsched/internal/process"
)

const none = -1

// simulation holds the clock and queue state of one run.
type simulation struct {
	processes []*process.Process
	quantum   int
	tick      int
	idle      int
	// queue holds indexes into processes in admission order.
	queue []int
	// lastUnfinished is the index of the process that just ran without finishing.
	lastUnfinished int
	gantt          []TimeSlice
}

func newSimulation(processes []*process.Process, quantum int) *simulation {
	return &simulation{
		processes:      processes,
		quantum:        quantum,
		queue:          make([]int, 0, len(processes)),
		lastUnfinished: none,
		gantt:          make([]TimeSlice, 0, len(processes)),
	}
}

func (s *simulation) allFinished() bool {
	for _, p := range s.processes {
		if !p.IsFinished() {
			return false
		}
	}
	return true
}

// fillQueue admits new arrivals first and only then re-queues the process that just ran,
// so it lands behind everything that arrived during its quantum.
func (s *simulation) fillQueue() {
	s.admitArrivals()
	s.requeueLastUnfinished()
}

func (s *simulation) admitArrivals() {
	for i, p := range s.processes {
		if i == s.lastUnfinished {
			continue
		}
		if p.State() == process.NotInSystem && p.Arrival <= s.tick && p.Admit() {
			s.queue = append(s.queue, i)
		}
	}
}

func (s *simulation) requeueLastUnfinished() {
	if s.lastUnfinished == none {
		return
	}
	s.queue = append(s.queue, s.lastUnfinished)
	s.lastUnfinished = none
}

// skipIdle moves the clock to the earliest pending arrival. It reports false when no
// process is left to arrive.
func (s *simulation) skipIdle() bool {
	next := none
	for _, p := range s.processes {
		if p.State() != process.NotInSystem || p.Arrival <= s.tick {
			continue
		}
		if next == none || p.Arrival < next {
			next = p.Arrival
		}
	}
	if next == none {
		return false
	}
	s.idle += next - s.tick
	s.tick = next
	return true
}

// dispatch runs the head of the queue for one quantum.
func (s *simulation) dispatch() (TimeSlice, error) {
	idx := s.queue[0]
	s.queue = s.queue[1:]
	p := s.processes[idx]
	if !p.Dispatch() {
		return TimeSlice{}, fmt.Errorf("process %d dispatched while %v", p.ID, p.State())
	}

	before := p.Progress()
	slice := TimeSlice{PID: p.ID, Start: s.tick}
	s.tick += p.RunFor(s.quantum) - before
	slice.Stop = s.tick
	if slice.Duration() > 0 {
		s.gantt = append(s.gantt, slice)
	}

	if p.IsFinished() {
		return slice, p.Complete(s.tick)
	}
	p.Requeue()
	s.lastUnfinished = idx
	return slice, nil
}
