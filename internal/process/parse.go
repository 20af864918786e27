package process

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrParse is wrapped by every process record parsing failure.
var ErrParse = errors.New("invalid process record")

// Parse reads a whitespace separated record "<id> <arrival> <burst> [priority]".
// A missing or malformed priority falls back to 0.
func Parse(s string) (*Process, error) {
	fields := strings.Fields(s)
	if len(fields) < 3 {
		return nil, fmt.Errorf("%w: %q: want at least 3 values, got %d", ErrParse, s, len(fields))
	}
	id, err := parseField("id", fields[0])
	if err != nil {
		return nil, err
	}
	arrival, err := parseField("arrival time", fields[1])
	if err != nil {
		return nil, err
	}
	burst, err := parseField("burst time", fields[2])
	if err != nil {
		return nil, err
	}
	var priority int
	if len(fields) > 3 {
		if v, err := strconv.Atoi(fields[3]); err == nil {
			priority = v
		}
	}
	return New(id, arrival, burst, priority), nil
}

func parseField(name, value string) (int, error) {
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", ErrParse, name, value)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: %s %d is negative", ErrParse, name, v)
	}
	return v, nil
}
