package workload

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/TigerCipher/rrsched/internal/process"
)

// DecodeText reads one "<id> <arrival> <burst> [priority]" record per line.
// Blank lines and lines starting with # are skipped.
func DecodeText(r io.Reader) (*Workload, error) {
	w := &Workload{}
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		p, err := process.Parse(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		w.Processes = append(w.Processes, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading text", err)
	}
	return w, nil
}

// DecodeCSV reads rows of "id,burst,arrival[,priority]". A first row whose id is not a
// number is treated as a header.
func DecodeCSV(r io.Reader) (*Workload, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: reading CSV", err)
	}

	w := &Workload{Processes: make([]*process.Process, 0, len(rows))}
	for i, row := range rows {
		if i == 0 && len(row) > 0 && !isInt(row[0]) {
			continue
		}
		if len(row) < 3 {
			return nil, fmt.Errorf("row %d: %w: want at least 3 columns, got %d", i+1, process.ErrParse, len(row))
		}
		id, err := strToInt("id", row[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		burst, err := strToInt("burst", row[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		arrival, err := strToInt("arrival", row[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		var priority int
		if len(row) > 3 && isInt(row[3]) {
			priority, _ = strconv.Atoi(strings.TrimSpace(row[3]))
		}
		w.Processes = append(w.Processes, process.New(id, arrival, burst, priority))
	}
	return w, nil
}

type yamlWorkload struct {
	Quantum   int           `yaml:"quantum"`
	Processes []yamlProcess `yaml:"processes"`
}

type yamlProcess struct {
	ID       *int `yaml:"id"`
	Arrival  int  `yaml:"arrival"`
	Burst    int  `yaml:"burst"`
	Priority int  `yaml:"priority"`
}

// DecodeYAML reads a document with an optional quantum and a processes list.
// A process without an id gets its position in the list.
func DecodeYAML(r io.Reader) (*Workload, error) {
	var doc yamlWorkload
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: reading YAML", err)
	}
	if doc.Quantum < 0 {
		return nil, fmt.Errorf("%w: quantum %d is negative", process.ErrParse, doc.Quantum)
	}
	w := &Workload{Quantum: doc.Quantum, Processes: make([]*process.Process, 0, len(doc.Processes))}
	for i, p := range doc.Processes {
		id := i
		if p.ID != nil {
			id = *p.ID
		}
		if id < 0 || p.Arrival < 0 || p.Burst < 0 {
			return nil, fmt.Errorf("process %d: %w: negative value", i, process.ErrParse)
		}
		w.Processes = append(w.Processes, process.New(id, p.Arrival, p.Burst, p.Priority))
	}
	return w, nil
}

func isInt(s string) bool {
	_, err := strconv.Atoi(strings.TrimSpace(s))
	return err == nil
}

func strToInt(name, s string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", process.ErrParse, name, s)
	}
	if i < 0 {
		return 0, fmt.Errorf("%w: %s %d is negative", process.ErrParse, name, i)
	}
	return i, nil
}
