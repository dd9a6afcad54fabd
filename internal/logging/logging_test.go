package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFileName(t *testing.T) {
	day := time.Date(2024, 3, 9, 15, 0, 0, 0, time.UTC)
	if got := FileName(day); got != "ytgrab_2024-03-09.log" {
		t.Errorf("Unexpected file name: %s", got)
	}
}

func TestNew_WritesToFile(t *testing.T) {
	dir := t.TempDir()
	var stderr bytes.Buffer

	logger, err := New(Options{Dir: dir, Stderr: &stderr})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.WithField("url", "https://example.com/v").Info("fetch started")
	logger.Debug("hidden at info level")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	content, err := os.ReadFile(logger.Path())
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "fetch started") {
		t.Errorf("Expected entry in log file, got:\n%s", content)
	}
	if strings.Contains(string(content), "hidden at info level") {
		t.Error("Debug entries must not be written at info level")
	}
	if stderr.Len() != 0 {
		t.Errorf("Expected no stderr output without verbose, got %q", stderr.String())
	}
}

func TestNew_VerboseMirrorsToStderr(t *testing.T) {
	var stderr bytes.Buffer

	logger, err := New(Options{Dir: t.TempDir(), Verbose: true, Stderr: &stderr})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer logger.Close()

	logger.Debug("debug detail")
	if !strings.Contains(stderr.String(), "debug detail") {
		t.Errorf("Expected debug entry on stderr, got %q", stderr.String())
	}
}

func TestNew_WithoutDir(t *testing.T) {
	logger, err := New(Options{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Info("goes nowhere")
	if logger.Path() != "" {
		t.Errorf("Expected no log path, got %s", logger.Path())
	}
	if err := logger.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}

func TestCleanupOldLogs(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	write := func(name, content string, modTime time.Time) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
		if err := os.Chtimes(path, modTime, modTime); err != nil {
			t.Fatalf("Failed to set times on %s: %v", name, err)
		}
		return path
	}

	current := write(FileName(now), "", now)
	recent := write("ytgrab_recent.log", "entry", now.Add(-time.Hour))
	old := write("ytgrab_old.log", "entry", now.Add(-40*24*time.Hour))
	empty := write("ytgrab_empty.log", "", now)
	unrelated := write("other.log", "", now.Add(-40*24*time.Hour))

	if err := CleanupOldLogs(dir, current, now, MaxLogAge); err != nil {
		t.Fatalf("CleanupOldLogs failed: %v", err)
	}

	for _, kept := range []string{current, recent, unrelated} {
		if _, err := os.Stat(kept); err != nil {
			t.Errorf("Expected %s to be kept: %v", kept, err)
		}
	}
	for _, removed := range []string{old, empty} {
		if _, err := os.Stat(removed); !os.IsNotExist(err) {
			t.Errorf("Expected %s to be removed", removed)
		}
	}
}

func TestCleanupOldLogs_MissingDir(t *testing.T) {
	if err := CleanupOldLogs(filepath.Join(t.TempDir(), "none"), "", time.Now(), MaxLogAge); err != nil {
		t.Errorf("Expected no error for missing dir, got %v", err)
	}
}
