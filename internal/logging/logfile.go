package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Output is the destination selected by --log-output.
type Output struct {
	Path   string // empty unless writing to a file
	file   *os.File
	writer io.Writer
}

// OpenOutput resolves a log destination.
//
//   - "" or "-": stderr
//   - "none": discard
//   - anything else: file path, appended to and created with parents
func OpenOutput(spec string) (*Output, error) {
	switch strings.ToLower(strings.TrimSpace(spec)) {
	case "", "-":
		return &Output{writer: os.Stderr}, nil
	case "none":
		return &Output{writer: io.Discard}, nil
	}
	dir := filepath.Dir(spec)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory %q: %w", dir, err)
	}
	f, err := os.OpenFile(spec, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %q: %w", spec, err)
	}
	return &Output{Path: spec, file: f, writer: f}, nil
}

// Writer returns the io.Writer for log output.
func (o *Output) Writer() io.Writer { return o.writer }

// Close closes the log file if one was opened. Later calls return nil.
func (o *Output) Close() error {
	if o.file == nil {
		return nil
	}
	f := o.file
	o.file = nil
	o.writer = io.Discard
	return f.Close()
}
