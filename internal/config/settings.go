package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/ytget/ytgrab/internal/platform"
)

// Settings keys in the config file
const (
	KeyCookiesFile      = "cookies_file"
	KeyDownloadPath     = "download_path"
	KeyLanguage         = "language"
	KeyFilenameTemplate = "filename_template"
	KeyYtDlpPath        = "ytdlp_path"
	KeyFFmpegPath       = "ffmpeg_path"
	KeyFFprobePath      = "ffprobe_path"
)

// Default values
const (
	DefaultCookiesFile      = ""
	DefaultLanguage         = "system"
	DefaultFilenameTemplate = "%(title)s [%(id)s].%(ext)s"
	DefaultYtDlpPath        = platform.YtDlpCommand
	DefaultFFmpegPath       = platform.FFmpegCommand
	DefaultFFprobePath      = platform.FFprobeCommand
)

// File locations
const (
	AppConfigDir   = "ytdownloader"
	ConfigFileName = "config.env"
	LogsDirName    = "logs"
	EnvPrefix      = "YTGRAB"
	ConfigFileMode = 0644
)

var (
	// ErrInvalidConfig is returned when the config file cannot be read or parsed
	ErrInvalidConfig = errors.New("invalid config file")

	// ErrUnknownKey is returned by Set for keys that are not part of Settings
	ErrUnknownKey = errors.New("unknown config key")
)

// Settings is the flat configuration record. Each field can be overridden for
// the running process by YTGRAB_<KEY>, e.g. YTGRAB_COOKIES_FILE.
// No explicit envconfig names are used: those fall back to the unprefixed
// variable, and LANGUAGE is usually set by the locale.
type Settings struct {
	CookiesFile      string `split_words:"true"`
	DownloadPath     string `split_words:"true"`
	Language         string `split_words:"true"`
	FilenameTemplate string `split_words:"true"`
	YtdlpPath        string `split_words:"true"`
	FfmpegPath       string `split_words:"true"`
	FfprobePath      string `split_words:"true"`
}

// Defaults returns the settings written to a fresh config file
func Defaults() (*Settings, error) {
	downloadPath, err := platform.GetDefaultDownloadPath()
	if err != nil {
		return nil, err
	}
	return &Settings{
		CookiesFile:      DefaultCookiesFile,
		DownloadPath:     downloadPath,
		Language:         DefaultLanguage,
		FilenameTemplate: DefaultFilenameTemplate,
		YtdlpPath:        DefaultYtDlpPath,
		FfmpegPath:       DefaultFFmpegPath,
		FfprobePath:      DefaultFFprobePath,
	}, nil
}

// Keys returns all settings keys in a stable order
func Keys() []string {
	return []string{
		KeyCookiesFile,
		KeyDownloadPath,
		KeyLanguage,
		KeyFilenameTemplate,
		KeyYtDlpPath,
		KeyFFmpegPath,
		KeyFFprobePath,
	}
}

// field maps a key to the Settings field that holds it
func (s *Settings) field(key string) (*string, bool) {
	switch key {
	case KeyCookiesFile:
		return &s.CookiesFile, true
	case KeyDownloadPath:
		return &s.DownloadPath, true
	case KeyLanguage:
		return &s.Language, true
	case KeyFilenameTemplate:
		return &s.FilenameTemplate, true
	case KeyYtDlpPath:
		return &s.YtdlpPath, true
	case KeyFFmpegPath:
		return &s.FfmpegPath, true
	case KeyFFprobePath:
		return &s.FfprobePath, true
	}
	return nil, false
}

// Get returns the value stored under key
func (s *Settings) Get(key string) (string, error) {
	f, ok := s.field(strings.ToLower(strings.TrimSpace(key)))
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return *f, nil
}

// Set stores value under key
func (s *Settings) Set(key, value string) error {
	f, ok := s.field(strings.ToLower(strings.TrimSpace(key)))
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	*f = value
	return nil
}

// ToMap returns the settings as key-value pairs
func (s *Settings) ToMap() map[string]string {
	m := make(map[string]string, len(Keys()))
	for _, key := range Keys() {
		f, _ := s.field(key)
		m[key] = *f
	}
	return m
}

// applyDefaults fills empty values that must never be blank.
// cookies_file stays optional and is left as is.
func (s *Settings) applyDefaults(defaults *Settings) {
	for _, key := range Keys() {
		if key == KeyCookiesFile {
			continue
		}
		f, _ := s.field(key)
		if *f == "" {
			d, _ := defaults.field(key)
			*f = *d
		}
	}
}

// ApplyEnv overlays non-empty YTGRAB_* environment variables onto s
func ApplyEnv(s *Settings) error {
	var env Settings
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("failed to read %s_* environment: %w", EnvPrefix, err)
	}
	for key, value := range env.ToMap() {
		if value != "" {
			_ = s.Set(key, value)
		}
	}
	return nil
}

// DefaultPath returns <user config dir>/ytdownloader/config.env
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(dir, AppConfigDir, ConfigFileName), nil
}

// Store persists Settings as key="value" lines
type Store struct {
	path string
}

// NewStore creates a store backed by the file at path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path
func (s *Store) Path() string {
	return s.path
}

// Dir returns the directory holding the config file
func (s *Store) Dir() string {
	return filepath.Dir(s.path)
}

// Load reads the config file, creating it with defaults when absent
func (s *Store) Load() (*Settings, error) {
	defaults, err := Defaults()
	if err != nil {
		return nil, err
	}

	if !platform.FileExists(s.path) {
		if err := s.Save(defaults); err != nil {
			return nil, err
		}
		return defaults, nil
	}

	values, err := godotenv.Read(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, s.path, err)
	}

	settings := &Settings{}
	for key, value := range values {
		// Unknown keys are ignored so older or newer files still load
		_ = settings.Set(key, value)
	}
	settings.applyDefaults(defaults)
	return settings, nil
}

// Save writes all settings to the config file
func (s *Store) Save(settings *Settings) error {
	if err := platform.CreateDirectoryIfNotExists(s.Dir()); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	content, err := godotenv.Marshal(settings.ToMap())
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(s.path, []byte(content+"\n"), ConfigFileMode); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", s.path, err)
	}
	return nil
}

// Update re-reads the file, applies fn and writes the result back.
// Values coming from the environment or flags are never persisted this way.
func (s *Store) Update(fn func(*Settings) error) (*Settings, error) {
	settings, err := s.Load()
	if err != nil {
		return nil, err
	}
	if err := fn(settings); err != nil {
		return nil, err
	}
	if err := s.Save(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// Describe renders the settings as sorted "key = value" lines
func Describe(settings *Settings) []string {
	m := settings.ToMap()
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		lines = append(lines, fmt.Sprintf("%s = %s", key, m[key]))
	}
	return lines
}
