package download

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/lrstanley/go-ytdlp"

	"github.com/ytget/ytgrab/internal/model"
)

// BestSingleFile selects the best format that needs no merging
const BestSingleFile = "b"

// ProgressInterval is how often yt-dlp progress is forwarded
const ProgressInterval = 500 * time.Millisecond

var (
	// ErrFetchFailed is returned when yt-dlp cannot be run or exits with an error
	ErrFetchFailed = errors.New("download failed")

	// ErrEmptyURL is returned for a blank resource locator
	ErrEmptyURL = errors.New("empty url")
)

// Service handles download operations
type Service struct {
	executable string
	template   string
	logger     log.Interface

	mu       sync.Mutex
	onUpdate func(*model.DownloadTask) // callback for UI updates
}

// NewService creates a new download service. executable is the yt-dlp binary
// and template the output file name template relative to the target directory.
func NewService(executable, template string) *Service {
	return &Service{
		executable: executable,
		template:   template,
		logger:     log.Log,
	}
}

// SetLogger replaces the diagnostic logger
func (s *Service) SetLogger(logger log.Interface) {
	s.logger = logger
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.DownloadTask)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUpdate = callback
}

// Command builds the yt-dlp invocation for req without running it
func (s *Service) Command(req model.FetchRequest) *ytdlp.Command {
	dl := ytdlp.New().
		Format(BestSingleFile).
		Output(filepath.Join(req.Directory, s.template))

	if s.executable != "" {
		dl.SetExecutable(s.executable)
	}
	if req.CookiesFile != "" {
		dl.Cookies(req.CookiesFile)
	}
	return dl
}

// Fetch runs yt-dlp for req and blocks until it exits
func (s *Service) Fetch(ctx context.Context, req model.FetchRequest) (*model.DownloadTask, error) {
	url := strings.TrimSpace(req.URL)
	if url == "" {
		return nil, ErrEmptyURL
	}

	task := &model.DownloadTask{
		ID:        model.NewTaskID("download-"),
		URL:       url,
		Status:    model.TaskStatusRunning,
		ETASec:    -1,
		StartedAt: time.Now(),
	}
	logger := s.logger.WithFields(log.Fields{"task": task.ID, "url": url})
	logger.Info("starting download")
	s.notifyUpdate(task)

	dl := s.Command(req)
	dl.ProgressFunc(ProgressInterval, func(update ytdlp.ProgressUpdate) {
		s.updateTaskProgress(task, &update)
	})

	result, err := dl.Run(ctx, url)
	task.FinishedAt = time.Now()

	if err != nil {
		task.Status = model.TaskStatusError
		if ctx.Err() != nil {
			task.LastError = ctx.Err().Error()
			s.notifyUpdate(task)
			return task, ctx.Err()
		}

		reason := err.Error()
		if result != nil {
			if line := lastErrorLine(result.Stderr); line != "" {
				reason = line
			}
			logger = logger.WithField("exit_code", result.ExitCode)
		}
		task.LastError = reason
		logger.WithError(err).Error("download failed")
		s.notifyUpdate(task)
		return task, fmt.Errorf("%w: %s", ErrFetchFailed, reason)
	}

	task.Status = model.TaskStatusCompleted
	task.Progress = 1.0
	task.Percent = 100
	logger.WithField("elapsed", task.FinishedAt.Sub(task.StartedAt).String()).Info("download completed")
	s.notifyUpdate(task)
	return task, nil
}

// updateTaskProgress updates task progress from yt-dlp info
func (s *Service) updateTaskProgress(task *model.DownloadTask, update *ytdlp.ProgressUpdate) {
	if update.TotalBytes > 0 {
		percent := float64(update.DownloadedBytes) / float64(update.TotalBytes) * 100
		if percent > 100 {
			percent = 100
		}
		task.Percent = int(percent)
		task.Progress = percent / 100.0
		task.Total = int64(update.TotalBytes)
	}
	task.Downloaded = int64(update.DownloadedBytes)

	if !update.Started.IsZero() {
		elapsed := time.Since(update.Started)
		if elapsed.Seconds() > 0 && update.DownloadedBytes > 0 {
			bytesPerSecond := float64(update.DownloadedBytes) / elapsed.Seconds()
			task.Speed = humanize.Bytes(uint64(bytesPerSecond)) + "/s"
		}
	}

	if eta := update.ETA(); eta > 0 {
		task.ETASec = int(eta.Seconds())
	}

	if update.Info != nil && update.Info.Title != nil && *update.Info.Title != "" && task.Title == "" {
		task.Title = *update.Info.Title
	}

	s.notifyUpdate(task)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.DownloadTask) {
	s.mu.Lock()
	callback := s.onUpdate
	s.mu.Unlock()

	if callback != nil {
		callback(task)
	}
}

// lastErrorLine picks the most useful line of yt-dlp stderr: the last
// "ERROR:" line, or the last non-empty one.
func lastErrorLine(stderr string) string {
	lines := strings.Split(strings.ReplaceAll(stderr, "\r\n", "\n"), "\n")
	last := ""
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "ERROR:") {
			return line
		}
		if last == "" {
			last = line
		}
	}
	return last
}
