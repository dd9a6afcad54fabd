package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Directory names
const (
	DownloadsDirName   = "Downloads"
	AppDownloadsSubdir = "YTDownloader"
)

// Maximum file name length in bytes, extension included
const (
	MaxFileNameLength = 255
)

// Media file extensions produced by the fetch tool
var (
	MediaExtensions = []string{".mp4", ".webm", ".mkv"}
)

// File extensions to skip
var (
	SkippedExtensions = []string{".part", ".ytdl"}
)

// Characters that are replaced in file names
const (
	IllegalNameRunes = "<>:\"/\\|?*\n\r\t"
	ReplacementRune  = '-'
)

var (
	// ErrTargetExists is returned when a rename target already exists and overwriting was not allowed
	ErrTargetExists = errors.New("target file already exists")

	// ErrEmptyName is returned when a rename is requested with a blank name
	ErrEmptyName = errors.New("new file name is empty")

	// ErrNoMedia is returned when no media file matches the searched extensions
	ErrNoMedia = errors.New("no media file found")
)

// MediaFile is a media candidate with its creation timestamp
type MediaFile struct {
	Path      string
	CreatedAt time.Time
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// FileExists reports whether a regular file or directory exists at path
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// GetHomeDownloadsDir returns the standard Downloads directory for the user
func GetHomeDownloadsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, DownloadsDirName), nil
}

// GetDefaultDownloadPath returns ~/Downloads/YTDownloader
func GetDefaultDownloadPath() (string, error) {
	downloadsDir, err := GetHomeDownloadsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(downloadsDir, AppDownloadsSubdir), nil
}

// ExpandHome replaces a leading "~" with the user's home directory
func ExpandHome(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	if path == "~" {
		return homeDir, nil
	}
	return filepath.Join(homeDir, path[2:]), nil
}

// CleanFileName removes characters that cannot appear in a file name
func CleanFileName(name string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(IllegalNameRunes, r) {
			return ReplacementRune
		}
		return r
	}, strings.TrimSpace(name))
}

// truncateName cuts name to at most limit bytes without splitting a rune
func truncateName(name string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if len(name) <= limit {
		return name
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(name[cut]) {
		cut--
	}
	return strings.TrimSpace(name[:cut])
}

// ListMedia returns the files in dir whose extension is one of exts.
// The search is not recursive and the extension match is case insensitive.
func ListMedia(dir string, exts []string) ([]MediaFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []MediaFile
	for _, entry := range entries {
		if entry.IsDir() || isSkipped(entry.Name()) || !hasExtension(entry.Name(), exts) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			// File vanished between ReadDir and Info
			continue
		}

		files = append(files, MediaFile{
			Path:      filepath.Join(dir, entry.Name()),
			CreatedAt: creationTime(info),
		})
	}
	return files, nil
}

// SelectLatest returns the file with the most recent creation time.
// Ties are broken by path so the choice is deterministic.
func SelectLatest(files []MediaFile) (MediaFile, bool) {
	if len(files) == 0 {
		return MediaFile{}, false
	}

	sorted := make([]MediaFile, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		}
		return sorted[i].Path > sorted[j].Path
	})
	return sorted[0], true
}

// FindLatestMedia returns the most recently created media file in dir
func FindLatestMedia(dir string, exts []string) (string, error) {
	files, err := ListMedia(dir, exts)
	if err != nil {
		return "", err
	}

	latest, ok := SelectLatest(files)
	if !ok {
		return "", fmt.Errorf("%w in %s", ErrNoMedia, dir)
	}
	return latest.Path, nil
}

// RenameTarget returns the path a file would get when renamed to newBase,
// keeping its directory and extension. The base is shortened so the whole
// name fits MaxFileNameLength.
func RenameTarget(path, newBase string) (string, error) {
	ext := filepath.Ext(path)
	newBase = truncateName(CleanFileName(newBase), MaxFileNameLength-len(ext))
	if newBase == "" {
		return "", ErrEmptyName
	}
	return filepath.Join(filepath.Dir(path), newBase+ext), nil
}

// RenameKeepingExtension renames path to newBase plus the original extension.
// When the target exists and overwrite is false, ErrTargetExists is returned
// and the file is left untouched. The returned path is the file's current path.
func RenameKeepingExtension(path, newBase string, overwrite bool) (string, error) {
	target, err := RenameTarget(path, newBase)
	if err != nil {
		return path, err
	}
	if target == path {
		return path, nil
	}

	if FileExists(target) && !overwrite {
		return path, fmt.Errorf("%w: %s", ErrTargetExists, target)
	}

	if err := os.Rename(path, target); err != nil {
		return path, fmt.Errorf("failed to rename %s: %w", path, err)
	}
	return target, nil
}

func hasExtension(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

func isSkipped(name string) bool {
	for _, ext := range SkippedExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
