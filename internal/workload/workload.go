// Package workload reads process lists from text, CSV and YAML sources.
package workload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/viant/afs"

	"github.com/TigerCipher/rrsched/internal/process"
)

// Format names a workload encoding.
type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

var ErrUnknownFormat = errors.New("unknown workload format")

// Workload is a list of processes plus an optional quantum (0 when unset).
type Workload struct {
	Quantum   int
	Processes []*process.Process
}

// ParseFormat validates a format name; the empty string means detect from the URL.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "", FormatText, FormatCSV, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "txt":
		return FormatText, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFor picks the format from the URL extension, defaulting to text.
func FormatFor(URL string) Format {
	switch strings.ToLower(path.Ext(URL)) {
	case ".csv":
		return FormatCSV
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatText
}

// Decode reads a workload in the given format.
func Decode(format Format, r io.Reader) (*Workload, error) {
	switch format {
	case FormatText, "":
		return DecodeText(r)
	case FormatCSV:
		return DecodeCSV(r)
	case FormatYAML:
		return DecodeYAML(r)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Load downloads URL through fs and decodes it. An empty format is detected from the URL.
func Load(ctx context.Context, fs afs.Service, URL string, format Format) (*Workload, error) {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("download workload %v: %w", URL, err)
	}
	if format == "" {
		format = FormatFor(URL)
	}
	w, err := Decode(format, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode workload %v: %w", URL, err)
	}
	return w, nil
}

// Sample returns the built-in demonstration workload.
func Sample() *Workload {
	return &Workload{
		Quantum: 2,
		Processes: []*process.Process{
			process.New(0, 0, 10, 2),
			process.New(1, 1, 6, 5),
			process.New(2, 3, 2, 3),
			process.New(3, 5, 4, 1),
		},
	}
}
