package dispatcher

import (
	"github.com/TigerCipher/rrsched/internal/process"
)

// TimeSlice is one executed interval of the Gantt chart.
type TimeSlice struct {
	PID   int `json:"pid"`
	Start int `json:"start"`
	Stop  int `json:"stop"`
}

// Duration returns the ticks covered by the slice.
func (t TimeSlice) Duration() int { return t.Stop - t.Start }

// ProcessResult is the final timing of one process.
type ProcessResult struct {
	ID         int `json:"id"`
	Arrival    int `json:"arrival"`
	Burst      int `json:"burst"`
	Priority   int `json:"priority"`
	Exit       int `json:"exit"`
	Turnaround int `json:"turnaround"`
	Wait       int `json:"wait"`
}

// Result is the snapshot computed when a run completes.
type Result struct {
	Quantum               int             `json:"quantum"`
	TotalWaitTime         int             `json:"total_wait_time"`
	AverageWaitTime       float64         `json:"average_wait_time"`
	TotalTurnaroundTime   int             `json:"total_turnaround_time"`
	AverageTurnaroundTime float64         `json:"average_turnaround_time"`
	TotalTime             int             `json:"total_time"`
	IdleTime              int             `json:"idle_time"`
	Throughput            float64         `json:"throughput"`
	Utilization           float64         `json:"utilization"`
	Processes             []ProcessResult `json:"processes"`
	Gantt                 []TimeSlice     `json:"gantt"`
}

func computeResult(processes []*process.Process, chart []TimeSlice, quantum, totalTime, idle int) (*Result, error) {
	res := &Result{
		Quantum:   quantum,
		TotalTime: totalTime,
		IdleTime:  idle,
		Processes: make([]ProcessResult, 0, len(processes)),
		Gantt:     append([]TimeSlice(nil), chart...),
	}
	for _, p := range processes {
		turnaround, err := p.TurnaroundTime()
		if err != nil {
			return nil, err
		}
		wait, err := p.WaitTime()
		if err != nil {
			return nil, err
		}
		exit, _ := p.ExitTime()
		res.TotalTurnaroundTime += turnaround
		res.TotalWaitTime += wait
		res.Processes = append(res.Processes, ProcessResult{
			ID:         p.ID,
			Arrival:    p.Arrival,
			Burst:      p.Burst,
			Priority:   p.Priority,
			Exit:       exit,
			Turnaround: turnaround,
			Wait:       wait,
		})
	}

	count := float64(len(processes))
	res.AverageTurnaroundTime = float64(res.TotalTurnaroundTime) / count
	res.AverageWaitTime = float64(res.TotalWaitTime) / count
	if totalTime > 0 {
		res.Throughput = count / float64(totalTime)
		res.Utilization = float64(totalTime-idle) / float64(totalTime)
	}
	return res, nil
}

// Compact merges consecutive slices of the same process that touch end to start.
// The merged slice stops where the later one stops. chart is not modified.
func Compact(chart []TimeSlice) []TimeSlice {
	compacted := make([]TimeSlice, 0, len(chart))
	for _, slice := range chart {
		if n := len(compacted); n > 0 {
			last := &compacted[n-1]
			if last.PID == slice.PID && last.Stop == slice.Start {
				last.Stop = slice.Stop
				continue
			}
		}
		compacted = append(compacted, slice)
	}
	return compacted
}
