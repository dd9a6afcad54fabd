package model

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FetchRequest describes a single yt-dlp invocation
type FetchRequest struct {
	URL         string
	Directory   string // destination directory for the output template
	CookiesFile string // optional, passed as --cookies
}

// DownloadTask represents a single fetch of a resource locator
type DownloadTask struct {
	ID         string
	URL        string
	Status     TaskStatus
	Progress   float64 // 0.0 to 1.0
	Percent    int     // 0 to 100
	Downloaded int64   // bytes received so far
	Total      int64   // total bytes, 0 if unknown
	Speed      string  // human readable speed (e.g., "1.2 MB/s")
	ETASec     int     // ETA in seconds, -1 if unknown
	LastError  string  // last error message if any
	StartedAt  time.Time
	FinishedAt time.Time
	Title      string // video title reported by yt-dlp
}

// ConversionTask represents a single transcoder run
type ConversionTask struct {
	ID         string
	InputPath  string
	OutputPath string
	Format     AudioFormat
	Status     TaskStatus
	Progress   float64       // 0.0 to 1.0
	Percent    int           // 0 to 100, -1 if the input duration is unknown
	Duration   time.Duration // duration of the produced sidecar
	LastError  string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Iteration is the transient state of one pass through the session loop
type Iteration struct {
	ID         string
	URL        string
	VideoPath  string
	Format     *AudioFormat
	AudioPath  string
	Status     TaskStatus
	StartedAt  time.Time
	FinishedAt time.Time
}

// NewIteration creates the state for a new loop pass
func NewIteration(url string) *Iteration {
	return &Iteration{
		ID:        NewTaskID("iter-"),
		URL:       url,
		Status:    TaskStatusPending,
		StartedAt: time.Now(),
	}
}

// Finish records the final status of the iteration
func (it *Iteration) Finish(status TaskStatus) {
	it.Status = status
	it.FinishedAt = time.Now()
}

// NewTaskID generates a unique ID using UUID v7 so IDs sort chronologically
func NewTaskID(prefix string) string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf("%s%d", prefix, time.Now().UnixNano())
	}
	return prefix + id.String()
}

// GetETAString returns ETA formatted as hh:mm:ss, or "—" if unknown
func (dt *DownloadTask) GetETAString() string {
	if dt.ETASec <= 0 {
		return "—"
	}
	return FormatClock(time.Duration(dt.ETASec) * time.Second)
}

// GetDisplayTitle returns the video title, or the URL if yt-dlp did not report one
func (dt *DownloadTask) GetDisplayTitle() string {
	if dt.Title != "" && !strings.HasPrefix(dt.Title, "http") {
		return dt.Title
	}
	return dt.URL
}

// GetDisplayName returns the sidecar file name without its directory
func (ct *ConversionTask) GetDisplayName() string {
	if ct.OutputPath == "" {
		return ""
	}
	return filepath.Base(ct.OutputPath)
}

// FormatClock formats a duration as mm:ss, or hh:mm:ss when it exceeds an hour
func FormatClock(d time.Duration) string {
	total := int(d.Round(time.Second).Seconds())
	if total < 0 {
		total = 0
	}

	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
