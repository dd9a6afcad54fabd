package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewProgressBar_NonTerminal(t *testing.T) {
	var buf bytes.Buffer
	if bar := NewProgressBar(&buf); bar != nil {
		t.Error("Expected nil progress bar for a non-terminal writer")
	}
}

func TestProgressBar_NilSafe(t *testing.T) {
	var bar *ProgressBar
	bar.Start("download")
	bar.Update(50, "detail")
	bar.Done()
}

func TestProgressBar_Render(t *testing.T) {
	var buf bytes.Buffer
	bar := newProgressBar(&buf)
	bar.Start("Downloading")

	bar.Update(42, "1.0 MB / 2.0 MB")
	out := buf.String()
	if !strings.Contains(out, "Downloading") {
		t.Errorf("Expected label in output, got %q", out)
	}
	if !strings.Contains(out, " 42%") {
		t.Errorf("Expected percentage in output, got %q", out)
	}
	if !strings.Contains(out, "1.0 MB / 2.0 MB") {
		t.Errorf("Expected detail in output, got %q", out)
	}

	bar.Done()
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Error("Expected Done to terminate the line")
	}
}

func TestProgressBar_UnknownPercent(t *testing.T) {
	var buf bytes.Buffer
	bar := newProgressBar(&buf)
	bar.Start("Converting")
	bar.Update(-1, "00:12")

	if strings.Contains(buf.String(), "%") {
		t.Errorf("Expected no percentage for unknown progress, got %q", buf.String())
	}
}

func TestProgressBar_Throttle(t *testing.T) {
	var buf bytes.Buffer
	bar := newProgressBar(&buf)
	bar.Start("Downloading")

	bar.Update(10, "")
	first := buf.Len()
	bar.Update(11, "")
	if buf.Len() != first {
		t.Error("Expected second update within redraw interval to be dropped")
	}
	bar.Update(100, "")
	if buf.Len() == first {
		t.Error("Expected final update to be drawn")
	}
}
