package cli

import (
	"context"
	"fmt"

	"github.com/lrstanley/go-ytdlp"
	"github.com/spf13/cobra"

	"github.com/ytget/ytgrab/internal/config"
)

// installer downloads one tool and returns its executable path
type installer struct {
	name    string
	key     string
	install func(ctx context.Context) (string, error)
}

// defaultInstallers resolve or download the tools into go-ytdlp's cache
var defaultInstallers = []installer{
	{
		name: "yt-dlp",
		key:  config.KeyYtDlpPath,
		install: func(ctx context.Context) (string, error) {
			resolved, err := ytdlp.Install(ctx, nil)
			if err != nil {
				return "", err
			}
			return resolved.Executable, nil
		},
	},
	{
		name: "ffmpeg",
		key:  config.KeyFFmpegPath,
		install: func(ctx context.Context) (string, error) {
			resolved, err := ytdlp.InstallFFmpeg(ctx, nil)
			if err != nil {
				return "", err
			}
			return resolved.Executable, nil
		},
	},
	{
		name: "ffprobe",
		key:  config.KeyFFprobePath,
		install: func(ctx context.Context) (string, error) {
			resolved, err := ytdlp.InstallFFprobe(ctx, nil)
			if err != nil {
				return "", err
			}
			return resolved.Executable, nil
		},
	},
}

func newInstallCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Download yt-dlp, ffmpeg and ffprobe and save their paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(opts)
			if err != nil {
				return err
			}
			return runInstall(cmd, store, defaultInstallers)
		},
	}
}

// runInstall runs every installer and saves the paths that resolved. A failing
// installer is reported; the command fails only if yt-dlp could not be installed.
func runInstall(cmd *cobra.Command, store *config.Store, installers []installer) error {
	out := cmd.OutOrStdout()
	resolved := make(map[string]string)
	var fetchErr error

	for _, inst := range installers {
		fmt.Fprintf(out, "Installing %s...\n", inst.name)
		path, err := inst.install(cmd.Context())
		if err != nil {
			fmt.Fprintf(out, "  %s: %v\n", inst.name, err)
			if inst.key == config.KeyYtDlpPath {
				fetchErr = fmt.Errorf("install %s: %w", inst.name, err)
			}
			continue
		}
		fmt.Fprintf(out, "  %s\n", path)
		resolved[inst.key] = path
	}

	if len(resolved) > 0 {
		if _, err := store.Update(func(s *config.Settings) error {
			for key, path := range resolved {
				if err := s.Set(key, path); err != nil {
					return err
				}
			}
			return nil
		}); err != nil {
			return err
		}
		fmt.Fprintf(out, "Saved to %s\n", store.Path())
	}
	return fetchErr
}
