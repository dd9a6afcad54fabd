package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate points HOME at a temp dir so defaults never touch the real user profile
func isolate(t *testing.T) (home string, store *Store) {
	t.Helper()
	home = t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	for _, key := range Keys() {
		t.Setenv(EnvPrefix+"_"+strings.ToUpper(key), "")
	}
	return home, NewStore(filepath.Join(home, ".config", AppConfigDir, ConfigFileName))
}

func TestLoad_CreatesDefaultFile(t *testing.T) {
	home, store := isolate(t)

	settings, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if _, err := os.Stat(store.Path()); err != nil {
		t.Fatalf("Expected config file to be created: %v", err)
	}

	expectedDownloadPath := filepath.Join(home, "Downloads", "YTDownloader")
	if settings.DownloadPath != expectedDownloadPath {
		t.Errorf("Expected download path %s, got %s", expectedDownloadPath, settings.DownloadPath)
	}
	if settings.CookiesFile != "" {
		t.Errorf("Expected empty cookies file, got %s", settings.CookiesFile)
	}

	content, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}
	for _, key := range Keys() {
		if !strings.Contains(string(content), key+"=") {
			t.Errorf("Expected key %s in default config file:\n%s", key, content)
		}
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	_, store := isolate(t)

	settings, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	settings.CookiesFile = `/home/me/cookies "firefox".txt`
	settings.DownloadPath = "/data/videos"
	settings.Language = "de"

	if err := store.Save(settings); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded, err := store.Load()
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if *reloaded != *settings {
		t.Errorf("Round trip mismatch:\n got %+v\nwant %+v", reloaded, settings)
	}
}

func TestLoad_FillsMissingKeys(t *testing.T) {
	home, store := isolate(t)

	if err := os.MkdirAll(store.Dir(), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	content := "cookies_file=\"/tmp/cookies.txt\"\nunknown_key=\"whatever\"\n"
	if err := os.WriteFile(store.Path(), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	settings, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if settings.CookiesFile != "/tmp/cookies.txt" {
		t.Errorf("Expected cookies file from disk, got %s", settings.CookiesFile)
	}
	if settings.DownloadPath != filepath.Join(home, "Downloads", "YTDownloader") {
		t.Errorf("Expected default download path, got %s", settings.DownloadPath)
	}
	if settings.YtdlpPath != DefaultYtDlpPath {
		t.Errorf("Expected default yt-dlp path, got %s", settings.YtdlpPath)
	}
	if settings.FilenameTemplate != DefaultFilenameTemplate {
		t.Errorf("Expected default template, got %s", settings.FilenameTemplate)
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	_, store := isolate(t)

	if err := os.MkdirAll(store.Path(), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}

	// The config path is a directory, so reading it fails
	if _, err := store.Load(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestUpdate_ReadModifyWrite(t *testing.T) {
	_, store := isolate(t)

	if _, err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	updated, err := store.Update(func(s *Settings) error {
		s.DownloadPath = "/srv/media"
		return nil
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.DownloadPath != "/srv/media" {
		t.Errorf("Expected updated download path, got %s", updated.DownloadPath)
	}

	reloaded, err := store.Load()
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if reloaded.DownloadPath != "/srv/media" {
		t.Errorf("Expected persisted download path, got %s", reloaded.DownloadPath)
	}
}

func TestUpdate_PropagatesError(t *testing.T) {
	_, store := isolate(t)

	sentinel := errors.New("boom")
	if _, err := store.Update(func(s *Settings) error {
		s.Language = "en"
		return sentinel
	}); !errors.Is(err, sentinel) {
		t.Fatalf("Expected sentinel error, got %v", err)
	}

	reloaded, err := store.Load()
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if reloaded.Language != DefaultLanguage {
		t.Errorf("Failed update must not be persisted, got language %s", reloaded.Language)
	}
}

func TestApplyEnv_OverridesWithoutPersisting(t *testing.T) {
	_, store := isolate(t)
	t.Setenv("YTGRAB_COOKIES_FILE", "/env/cookies.txt")
	t.Setenv("YTGRAB_FFMPEG_PATH", "/opt/ffmpeg/bin/ffmpeg")
	t.Setenv("LANGUAGE", "fr_FR:fr")

	settings, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := ApplyEnv(settings); err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}

	if settings.CookiesFile != "/env/cookies.txt" {
		t.Errorf("Expected env cookies file, got %s", settings.CookiesFile)
	}
	if settings.FfmpegPath != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("Expected env ffmpeg path, got %s", settings.FfmpegPath)
	}
	if settings.Language != DefaultLanguage {
		t.Errorf("Unprefixed LANGUAGE must not override language, got %s", settings.Language)
	}

	// A read-modify-write starts from the file, not from the overridden values
	persisted, err := store.Update(func(s *Settings) error {
		s.Language = "de"
		return nil
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if persisted.CookiesFile != "" {
		t.Errorf("Env override leaked into the config file: %s", persisted.CookiesFile)
	}
}

func TestGetSet(t *testing.T) {
	settings := &Settings{}

	if err := settings.Set("COOKIES_FILE", "/tmp/c.txt"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	value, err := settings.Get(KeyCookiesFile)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if value != "/tmp/c.txt" {
		t.Errorf("Expected /tmp/c.txt, got %s", value)
	}

	if err := settings.Set("max_parallel", "3"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Expected ErrUnknownKey, got %v", err)
	}
	if _, err := settings.Get("nope"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Expected ErrUnknownKey, got %v", err)
	}
}

func TestDescribe(t *testing.T) {
	settings := &Settings{CookiesFile: "/c", DownloadPath: "/d"}
	lines := Describe(settings)

	if len(lines) != len(Keys()) {
		t.Fatalf("Expected %d lines, got %d", len(Keys()), len(lines))
	}
	if lines[0] != "cookies_file = /c" {
		t.Errorf("Expected sorted output starting with cookies_file, got %q", lines[0])
	}
}
