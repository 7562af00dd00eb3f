package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenOutput_Special(t *testing.T) {
	tests := []struct {
		spec string
		want io.Writer
	}{
		{spec: "", want: os.Stderr},
		{spec: "-", want: os.Stderr},
		{spec: "NONE", want: io.Discard},
	}
	for _, tt := range tests {
		o, err := OpenOutput(tt.spec)
		if err != nil {
			t.Fatalf("OpenOutput(%q) error = %v", tt.spec, err)
		}
		if o.Writer() != tt.want {
			t.Errorf("OpenOutput(%q).Writer() = %v, want %v", tt.spec, o.Writer(), tt.want)
		}
		if o.Path != "" {
			t.Errorf("OpenOutput(%q).Path = %q, want empty", tt.spec, o.Path)
		}
		if err := o.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	}
}

func TestOpenOutput_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "mcstack.log")
	o, err := OpenOutput(path)
	if err != nil {
		t.Fatalf("OpenOutput() error = %v", err)
	}
	l, err := NewWithWriter("json", slog.LevelInfo, o.Writer())
	if err != nil {
		t.Fatalf("NewWithWriter() error = %v", err)
	}
	l.Info(context.Background(), "written")
	if err := o.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := o.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if o.Writer() != io.Discard {
		t.Errorf("Writer() after Close = %v, want io.Discard", o.Writer())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), `"msg":"written"`) {
		t.Errorf("log file = %q, want written record", data)
	}
}
