package convert

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"

	"github.com/ytget/ytgrab/internal/model"
	"github.com/ytget/ytgrab/internal/platform"
)

// FFmpeg/ffprobe invocation constants
const (
	FFprobeLogLevel     = "error"
	FFprobeShowEntries  = "format=duration"
	FFprobeOutputFormat = "csv=p=0"
	ProgressPipeTarget  = "pipe:2"
	ProgressTimePrefix  = "out_time_us="
	TaskIDPrefix        = "convert-"
)

var (
	// ErrConversionFailed is returned when ffmpeg cannot be run or exits with an error
	ErrConversionFailed = errors.New("conversion failed")

	// ErrInputNotFound is returned when the video to convert does not exist
	ErrInputNotFound = errors.New("input file does not exist")
)

// Service handles audio extraction
type Service struct {
	ffmpeg  string
	ffprobe string
	logger  log.Interface

	mu       sync.Mutex
	onUpdate func(*model.ConversionTask) // callback for UI updates
}

// NewService creates a new conversion service. Empty paths fall back to the
// executables found on PATH.
func NewService(ffmpegPath, ffprobePath string) *Service {
	if ffmpegPath == "" {
		ffmpegPath = platform.FFmpegCommand
	}
	if ffprobePath == "" {
		ffprobePath = platform.FFprobeCommand
	}
	return &Service{
		ffmpeg:  ffmpegPath,
		ffprobe: ffprobePath,
		logger:  log.Log,
	}
}

// SetLogger replaces the diagnostic logger
func (s *Service) SetLogger(logger log.Interface) {
	s.logger = logger
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.ConversionTask)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUpdate = callback
}

// OutputPath returns the sidecar path for inputPath: the same path with the
// extension replaced by the format's.
func OutputPath(inputPath string, format model.AudioFormat) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + format.Extension
}

// BuildFFmpegArgs builds the ffmpeg command arguments
func BuildFFmpegArgs(inputPath, outputPath string, format model.AudioFormat) []string {
	args := []string{
		"-y",       // Overwrite output file, existence is confirmed beforehand
		"-nostdin", // Never read the operator's terminal
		"-hide_banner",
		"-i", inputPath,
		"-vn", // Drop the video stream
		"-acodec", format.Codec,
	}
	if format.Bitrate != "" {
		args = append(args, "-ab", format.Bitrate)
	}
	args = append(args,
		"-ar", strconv.Itoa(format.SampleRate),
		"-ac", strconv.Itoa(format.Channels),
		"-progress", ProgressPipeTarget, // Progress to stderr
		"-nostats",
		outputPath,
	)
	return args
}

// Convert extracts the audio of inputPath into format and blocks until
// ffmpeg exits. A failed run leaves no partial output behind.
func (s *Service) Convert(ctx context.Context, inputPath string, format model.AudioFormat) (*model.ConversionTask, error) {
	if !platform.FileExists(inputPath) {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, inputPath)
	}

	task := &model.ConversionTask{
		ID:         model.NewTaskID(TaskIDPrefix),
		InputPath:  inputPath,
		OutputPath: OutputPath(inputPath, format),
		Format:     format,
		Status:     model.TaskStatusRunning,
		Percent:    -1,
		StartedAt:  time.Now(),
	}
	logger := s.logger.WithFields(log.Fields{"task": task.ID, "input": inputPath, "format": format.ID})

	// Get duration of input file for progress calculation
	total, err := s.probeDuration(ctx, inputPath)
	if err != nil {
		logger.WithError(err).Warn("cannot probe input duration")
	} else {
		task.Percent = 0
	}
	s.notifyUpdate(task)

	args := BuildFFmpegArgs(task.InputPath, task.OutputPath, format)
	logger.WithField("args", strings.Join(args, " ")).Debug("running ffmpeg")
	cmd := exec.CommandContext(ctx, s.ffmpeg, args...)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return s.fail(task, logger, fmt.Errorf("%w: stderr pipe: %w", ErrConversionFailed, err))
	}
	if err := cmd.Start(); err != nil {
		return s.fail(task, logger, fmt.Errorf("%w: start ffmpeg: %w", ErrConversionFailed, err))
	}

	lastLine := s.monitorProgress(stderr, task, total)
	err = cmd.Wait()

	if err != nil {
		os.Remove(task.OutputPath)
		if ctx.Err() != nil {
			task.Status = model.TaskStatusError
			task.LastError = ctx.Err().Error()
			task.FinishedAt = time.Now()
			s.notifyUpdate(task)
			return task, ctx.Err()
		}
		reason := err.Error()
		if lastLine != "" {
			reason = lastLine
		}
		return s.fail(task, logger, fmt.Errorf("%w: %s", ErrConversionFailed, reason))
	}

	task.Status = model.TaskStatusCompleted
	task.Progress = 1.0
	task.Percent = 100
	task.FinishedAt = time.Now()

	if d, err := MeasureDuration(task.OutputPath, format); err != nil {
		logger.WithError(err).Warn("cannot measure sidecar duration")
	} else {
		task.Duration = d
	}
	logger.WithFields(log.Fields{"output": task.OutputPath, "duration": task.Duration.String()}).Info("conversion completed")
	s.notifyUpdate(task)
	return task, nil
}

// probeDuration gets the duration of a media file using ffprobe
func (s *Service) probeDuration(ctx context.Context, filePath string) (time.Duration, error) {
	cmd := exec.CommandContext(ctx, s.ffprobe, "-v", FFprobeLogLevel, "-show_entries", FFprobeShowEntries, "-of", FFprobeOutputFormat, filePath)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("failed to run ffprobe: %w", err)
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}
	if seconds <= 0 {
		return 0, fmt.Errorf("invalid duration %v", seconds)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

// monitorProgress consumes ffmpeg stderr until it is closed and returns the
// last line that was not part of the -progress key=value stream.
func (s *Service) monitorProgress(stderr io.Reader, task *model.ConversionTask, total time.Duration) string {
	scanner := bufio.NewScanner(stderr)
	lastLine := ""

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		// Parse progress line: out_time_us=123456
		if strings.HasPrefix(line, ProgressTimePrefix) {
			us, err := strconv.ParseInt(strings.TrimPrefix(line, ProgressTimePrefix), 10, 64)
			if err != nil || total <= 0 {
				continue
			}
			progress := float64(time.Duration(us)*time.Microsecond) / float64(total)
			if progress > 1.0 {
				progress = 1.0
			}
			if progress < 0 {
				progress = 0
			}
			task.Progress = progress
			task.Percent = int(progress * 100)
			s.notifyUpdate(task)
			continue
		}
		if isProgressLine(line) {
			continue
		}
		lastLine = line
	}
	return lastLine
}

// isProgressLine reports whether line belongs to the -progress key=value output
func isProgressLine(line string) bool {
	key, _, ok := strings.Cut(line, "=")
	return ok && key != "" && !strings.ContainsAny(key, " :")
}

func (s *Service) fail(task *model.ConversionTask, logger log.Interface, err error) (*model.ConversionTask, error) {
	task.Status = model.TaskStatusError
	task.LastError = err.Error()
	task.FinishedAt = time.Now()
	logger.WithError(err).Error("conversion failed")
	s.notifyUpdate(task)
	return task, err
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.ConversionTask) {
	s.mu.Lock()
	callback := s.onUpdate
	s.mu.Unlock()

	if callback != nil {
		callback(task)
	}
}
