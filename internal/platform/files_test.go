package platform

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}
}

func TestCreateDirectoryIfNotExists(t *testing.T) {
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir", "nested")

	// Directory should not exist initially
	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestGetDefaultDownloadPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("USERPROFILE", os.Getenv("HOME"))

	path, err := GetDefaultDownloadPath()
	if err != nil {
		t.Fatalf("Failed to get default download path: %v", err)
	}

	if filepath.Base(path) != AppDownloadsSubdir {
		t.Errorf("Expected path to end with %s, got: %s", AppDownloadsSubdir, path)
	}
	if filepath.Base(filepath.Dir(path)) != DownloadsDirName {
		t.Errorf("Expected parent to be %s, got: %s", DownloadsDirName, path)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	tests := []struct {
		in       string
		expected string
	}{
		{"~", home},
		{"~/music", filepath.Join(home, "music")},
		{"  ~/a/b  ", filepath.Join(home, "a", "b")},
		{"/abs/path", "/abs/path"},
		{"relative/~", "relative/~"},
	}

	for _, test := range tests {
		got, err := ExpandHome(test.in)
		if err != nil {
			t.Fatalf("ExpandHome(%q) failed: %v", test.in, err)
		}
		if got != test.expected {
			t.Errorf("ExpandHome(%q) = %q, expected %q", test.in, got, test.expected)
		}
	}
}

func TestCleanFileName(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"My Song", "My Song"},
		{"  padded  ", "padded"},
		{"a/b\\c", "a-b-c"},
		{"what?*", "what--"},
		{"", ""},
	}

	for _, test := range tests {
		if got := CleanFileName(test.in); got != test.expected {
			t.Errorf("CleanFileName(%q) = %q, expected %q", test.in, got, test.expected)
		}
	}
}

func TestListMedia_FiltersExtensions(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "clip.mp4"))
	touch(t, filepath.Join(dir, "CLIP2.MKV"))
	touch(t, filepath.Join(dir, "clip3.webm"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "partial.mp4.part"))
	if err := os.Mkdir(filepath.Join(dir, "folder.mp4"), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}

	files, err := ListMedia(dir, MediaExtensions)
	if err != nil {
		t.Fatalf("ListMedia failed: %v", err)
	}

	if len(files) != 3 {
		t.Fatalf("Expected 3 media files, got %d: %+v", len(files), files)
	}
	for _, f := range files {
		if f.CreatedAt.IsZero() {
			t.Errorf("Expected creation time for %s", f.Path)
		}
	}
}

func TestListMedia_MissingDirectory(t *testing.T) {
	_, err := ListMedia(filepath.Join(t.TempDir(), "missing"), MediaExtensions)
	if err == nil {
		t.Error("Expected error for missing directory, got nil")
	}
}

func TestSelectLatest(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		files    []MediaFile
		expected string
		found    bool
	}{
		{"empty", nil, "", false},
		{"single", []MediaFile{{Path: "a.mp4", CreatedAt: base}}, "a.mp4", true},
		{
			"latest wins",
			[]MediaFile{
				{Path: "old.mp4", CreatedAt: base},
				{Path: "new.webm", CreatedAt: base.Add(time.Minute)},
				{Path: "mid.mkv", CreatedAt: base.Add(time.Second)},
			},
			"new.webm",
			true,
		},
		{
			"tie broken by path",
			[]MediaFile{
				{Path: "a.mp4", CreatedAt: base},
				{Path: "b.mp4", CreatedAt: base},
			},
			"b.mp4",
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			latest, ok := SelectLatest(tt.files)
			if ok != tt.found {
				t.Fatalf("SelectLatest found = %v, expected %v", ok, tt.found)
			}
			if latest.Path != tt.expected {
				t.Errorf("SelectLatest = %q, expected %q", latest.Path, tt.expected)
			}
		})
	}
}

func TestFindLatestMedia_SingleFile(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "only.mp4")
	touch(t, video)

	found, err := FindLatestMedia(dir, MediaExtensions)
	if err != nil {
		t.Fatalf("FindLatestMedia failed: %v", err)
	}
	if found != video {
		t.Errorf("Expected %s, got %s", video, found)
	}
}

func TestFindLatestMedia_NewestCreated(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "first.mp4"))
	time.Sleep(50 * time.Millisecond)
	touch(t, filepath.Join(dir, "second.mkv"))
	time.Sleep(50 * time.Millisecond)
	newest := filepath.Join(dir, "a-third.webm")
	touch(t, newest)

	found, err := FindLatestMedia(dir, MediaExtensions)
	if err != nil {
		t.Fatalf("FindLatestMedia failed: %v", err)
	}
	if found != newest {
		t.Errorf("Expected %s, got %s", newest, found)
	}
}

func TestFindLatestMedia_NoMedia(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "readme.txt"))

	_, err := FindLatestMedia(dir, MediaExtensions)
	if !errors.Is(err, ErrNoMedia) {
		t.Errorf("Expected ErrNoMedia, got %v", err)
	}
}

func TestRenameTarget_LongNames(t *testing.T) {
	tests := []struct {
		name string
		base string
	}{
		{"ascii", strings.Repeat("x", 300)},
		{"multibyte at cut", strings.Repeat("a", 250) + "ü"},
		{"multibyte tail", strings.Repeat("a", 254) + "ü"},
		{"exact limit", strings.Repeat("b", MaxFileNameLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenameTarget(filepath.Join("dir", "clip.mp4"), tt.base)
			if err != nil {
				t.Fatalf("RenameTarget() error = %v", err)
			}
			name := filepath.Base(got)
			if len(name) > MaxFileNameLength {
				t.Errorf("Expected at most %d bytes, got %d", MaxFileNameLength, len(name))
			}
			if !utf8.ValidString(name) {
				t.Errorf("Expected valid UTF-8 name, got %q", name)
			}
			if !strings.HasSuffix(name, ".mp4") {
				t.Errorf("Expected extension to be kept, got %q", name)
			}
		})
	}
}

func TestRenameKeepingExtension_LongName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.mp4")
	touch(t, path)

	renamed, err := RenameKeepingExtension(path, strings.Repeat("c", MaxFileNameLength), false)
	if err != nil {
		t.Fatalf("RenameKeepingExtension() error = %v", err)
	}
	if !FileExists(renamed) {
		t.Errorf("Expected renamed file at %s", renamed)
	}
}

func TestRenameKeepingExtension(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "Some Video [abc].webm")
	touch(t, original)

	renamed, err := RenameKeepingExtension(original, "My Song", false)
	if err != nil {
		t.Fatalf("Rename failed: %v", err)
	}

	expected := filepath.Join(dir, "My Song.webm")
	if renamed != expected {
		t.Errorf("Expected %s, got %s", expected, renamed)
	}
	if FileExists(original) {
		t.Error("Original file should no longer exist")
	}
	if !FileExists(expected) {
		t.Error("Renamed file should exist")
	}
}

func TestRenameKeepingExtension_ExistingTargetWithoutOverwrite(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "video.mp4")
	existing := filepath.Join(dir, "taken.mp4")
	touch(t, original)
	touch(t, existing)

	got, err := RenameKeepingExtension(original, "taken", false)
	if !errors.Is(err, ErrTargetExists) {
		t.Fatalf("Expected ErrTargetExists, got %v", err)
	}
	if got != original {
		t.Errorf("Expected original path %s, got %s", original, got)
	}
	if !FileExists(original) {
		t.Error("Original file should be untouched")
	}
}

func TestRenameKeepingExtension_Overwrite(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "video.mp4")
	existing := filepath.Join(dir, "taken.mp4")
	touch(t, original)
	touch(t, existing)

	got, err := RenameKeepingExtension(original, "taken", true)
	if err != nil {
		t.Fatalf("Rename with overwrite failed: %v", err)
	}
	if got != existing {
		t.Errorf("Expected %s, got %s", existing, got)
	}
	if FileExists(original) {
		t.Error("Original file should have been moved")
	}
}

func TestRenameKeepingExtension_EmptyName(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "video.mp4")
	touch(t, original)

	got, err := RenameKeepingExtension(original, "   ", false)
	if !errors.Is(err, ErrEmptyName) {
		t.Errorf("Expected ErrEmptyName, got %v", err)
	}
	if got != original {
		t.Errorf("Expected original path, got %s", got)
	}
}

func TestRenameKeepingExtension_SameName(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "video.mp4")
	touch(t, original)

	got, err := RenameKeepingExtension(original, "video", false)
	if err != nil {
		t.Fatalf("Expected no error for same name, got %v", err)
	}
	if got != original {
		t.Errorf("Expected %s, got %s", original, got)
	}
}
