// Package report renders dispatcher results as text tables, Gantt strips and JSON.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"

	"github.com/TigerCipher/rrsched/internal/dispatcher"
)

// Format names an output rendering.
type Format string

const (
	// FormatFixed is the fixed-width results table.
	FormatFixed Format = "fixed"
	// FormatTable is the titled Gantt strip plus bordered schedule table.
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

var ErrUnknownFormat = errors.New("unknown report format")

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatFixed, FormatTable, FormatJSON:
		return f, nil
	case "":
		return FormatFixed, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// NewRunID returns a fresh identifier for a rendered run.
func NewRunID() string {
	return uuid.New().String()
}

// Write renders res in the requested format.
func Write(w io.Writer, format Format, title string, res *dispatcher.Result) error {
	switch format {
	case FormatFixed, "":
		return WriteTable(w, res)
	case FormatTable:
		return WriteSchedule(w, title, res)
	case FormatJSON:
		return WriteJSON(w, NewRunID(), res)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// DisplayID is the 1-based id shown to people.
func DisplayID(id int) int { return id + 1 }

const columnFormat = "%-20v | %-20v | %-20v | %-20v | %-20v | %-20v\n"

// WriteTable writes the fixed-width results table followed by both averages.
func WriteTable(w io.Writer, res *dispatcher.Result) error {
	if res == nil {
		return dispatcher.ErrNotRun
	}
	var b strings.Builder
	fmt.Fprintf(&b, columnFormat,
		"Process ID", "Arrival Time", "Burst Time", "Exit Time", "Turn Around Time", "Wait Time")
	for _, p := range res.Processes {
		fmt.Fprintf(&b, columnFormat, DisplayID(p.ID), p.Arrival, p.Burst, p.Exit, p.Turnaround, p.Wait)
	}
	fmt.Fprintf(&b, "\n\nAverage Turn Around Time: %s\nAverage Wait Time: %s\n",
		formatFloat(res.AverageTurnaroundTime), formatFloat(res.AverageWaitTime))
	_, err := io.WriteString(w, b.String())
	return err
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteSchedule writes a title banner, the Gantt strip and a bordered schedule table.
func WriteSchedule(w io.Writer, title string, res *dispatcher.Result) error {
	if res == nil {
		return dispatcher.ErrNotRun
	}
	outputTitle(w, title)
	outputGantt(w, res.Gantt)
	outputSchedule(w, res)
	return nil
}

type document struct {
	RunID string `json:"run_id"`
	*dispatcher.Result
}

// WriteJSON writes res as an indented JSON document tagged with runID.
func WriteJSON(w io.Writer, runID string, res *dispatcher.Result) error {
	if res == nil {
		return dispatcher.ErrNotRun
	}
	data, err := json.MarshalIndent(document{RunID: runID, Result: res}, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

var (
	titleColor = color.New(color.Bold, color.FgCyan)
	ruleColor  = color.New(color.FgCyan)
	idleColor  = color.New(color.Faint)
)

func outputTitle(w io.Writer, title string) {
	_, _ = ruleColor.Fprintln(w, strings.Repeat("-", len(title)*2))
	_, _ = titleColor.Fprintln(w, strings.Repeat(" ", len(title)/2), title)
	_, _ = ruleColor.Fprintln(w, strings.Repeat("-", len(title)*2))
}

type ganttCell struct {
	label string
	start int
	idle  bool
}

// outputGantt prints one cell per slice with its start tick below, plus the final stop
// tick. Gaps between slices get an idle cell.
func outputGantt(w io.Writer, gantt []dispatcher.TimeSlice) {
	_, _ = fmt.Fprintln(w, "Gantt schedule")
	if len(gantt) == 0 {
		_, _ = fmt.Fprintln(w)
		return
	}
	cells := make([]ganttCell, 0, len(gantt))
	prevStop := 0
	for _, slice := range gantt {
		if slice.Start > prevStop {
			cells = append(cells, ganttCell{label: "idle", start: prevStop, idle: true})
		}
		cells = append(cells, ganttCell{label: fmt.Sprint(DisplayID(slice.PID)), start: slice.Start})
		prevStop = slice.Stop
	}

	_, _ = fmt.Fprint(w, "|")
	for _, cell := range cells {
		padding := strings.Repeat(" ", (8-len(cell.label))/2)
		label := cell.label
		if cell.idle {
			label = idleColor.Sprint(label)
		}
		_, _ = fmt.Fprint(w, padding, label, padding, "|")
	}
	_, _ = fmt.Fprintln(w)
	for _, cell := range cells {
		_, _ = fmt.Fprint(w, fmt.Sprint(cell.start), "\t")
	}
	_, _ = fmt.Fprint(w, fmt.Sprint(prevStop))
	_, _ = fmt.Fprintf(w, "\n\n")
}

func outputSchedule(w io.Writer, res *dispatcher.Result) {
	_, _ = fmt.Fprintln(w, "Schedule table")
	rows := make([][]string, len(res.Processes))
	for i, p := range res.Processes {
		rows[i] = []string{
			fmt.Sprint(DisplayID(p.ID)),
			fmt.Sprint(p.Priority),
			fmt.Sprint(p.Burst),
			fmt.Sprint(p.Arrival),
			fmt.Sprint(p.Wait),
			fmt.Sprint(p.Turnaround),
			fmt.Sprint(p.Exit),
		}
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Priority", "Burst", "Arrival", "Wait", "Turnaround", "Exit"})
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "", "",
		fmt.Sprintf("Average\n%.2f", res.AverageWaitTime),
		fmt.Sprintf("Average\n%.2f", res.AverageTurnaroundTime),
		fmt.Sprintf("Throughput\n%.2f/t", res.Throughput)})
	table.Render()
}
