package logger

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    log.Level
		wantErr bool
	}{
		{"", log.InfoLevel, false},
		{"debug", log.DebugLevel, false},
		{"warn", log.WarnLevel, false},
		{"error", log.ErrorLevel, false},
		{"loud", log.InfoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, log.WarnLevel, "test")

	l.Info("hidden")
	l.Warn("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "key=value") {
		t.Errorf("expected warn message with fields, got %q", out)
	}
}

func TestOpen_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "game.log")
	l, closer, err := Open("info", path, io.Discard, "game")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	l.Info("frame fault", "frame", 12)
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "frame fault") {
		t.Errorf("log file missing message: %q", data)
	}
}

func TestOpen_FallbackWriter(t *testing.T) {
	var buf bytes.Buffer
	l, closer, err := Open("", "", &buf, "")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer closer.Close()
	l.Info("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("expected message on fallback writer, got %q", buf.String())
	}
}

func TestOpen_BadLevel(t *testing.T) {
	if _, _, err := Open("shout", "", io.Discard, ""); err == nil {
		t.Error("expected error for unknown level")
	}
}
