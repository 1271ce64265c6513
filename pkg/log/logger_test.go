package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stdout)
	defer SetLevel(Notice)

	logger := New("test")

	SetLevel(Notice)
	logger.Debugf("hidden %d", 1)
	logger.Noticef("shown %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message leaked at notice level: %q", out)
	}
	if !strings.Contains(out, "shown 2") {
		t.Errorf("notice message missing: %q", out)
	}
	if !strings.Contains(out, "[test]") {
		t.Errorf("module name missing from output: %q", out)
	}

	buf.Reset()
	SetLevel(Debug)
	logger.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Errorf("debug message missing at debug level: %q", buf.String())
	}
}

func TestSetSinkKeepsLevel(t *testing.T) {
	defer SetSink(os.Stdout)
	defer SetLevel(Notice)

	SetLevel(Warning)
	var buf bytes.Buffer
	SetSink(&buf)

	if CurrentLevel() != Warning {
		t.Fatalf("expected level to survive sink change, got %v", CurrentLevel())
	}

	New("sink").Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("info message written at warning level: %q", buf.String())
	}
}
