package platform

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Tool names and version probes
const (
	YtDlpCommand      = "yt-dlp"
	FFmpegCommand     = "ffmpeg"
	FFprobeCommand    = "ffprobe"
	YtDlpVersionArg   = "--version"
	FFmpegVersionArg  = "-version"
	FFmpegVersionHead = "ffmpeg version"
)

// ToolCheckTimeout bounds the version call made by ValidateTool
const ToolCheckTimeout = 3 * time.Second

var (
	// ErrToolNotFound is returned when an executable cannot be resolved
	ErrToolNotFound = errors.New("executable not found")

	// ErrUnexpectedTool is returned when the version output does not look like the expected tool
	ErrUnexpectedTool = errors.New("unexpected version output")
)

// ValidateTool checks that path resolves to an executable that answers
// versionArg. When expectPrefix is not empty the output must start with it.
// It returns the first line of the version output.
func ValidateTool(ctx context.Context, path, versionArg, expectPrefix string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: empty path", ErrToolNotFound)
	}

	resolved, err := exec.LookPath(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrToolNotFound, path, err)
	}

	cmdCtx, cancel := context.WithTimeout(ctx, ToolCheckTimeout)
	defer cancel()

	out, err := exec.CommandContext(cmdCtx, resolved, versionArg).Output()
	if err != nil {
		return "", fmt.Errorf("failed to run %s %s: %w", path, versionArg, err)
	}

	firstLine := strings.TrimSpace(strings.SplitN(string(out), "\n", 2)[0])
	if expectPrefix != "" && !strings.HasPrefix(firstLine, expectPrefix) {
		return "", fmt.Errorf("%w from %s: %q", ErrUnexpectedTool, path, firstLine)
	}
	return firstLine, nil
}

// ValidateYtDlp checks the fetch tool
func ValidateYtDlp(ctx context.Context, path string) (string, error) {
	return ValidateTool(ctx, path, YtDlpVersionArg, "")
}

// ValidateFFmpeg checks the transcoder
func ValidateFFmpeg(ctx context.Context, path string) (string, error) {
	return ValidateTool(ctx, path, FFmpegVersionArg, FFmpegVersionHead)
}
