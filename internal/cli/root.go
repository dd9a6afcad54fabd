// Package cli defines the ytgrab command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/spf13/cobra"

	"github.com/ytget/ytgrab/internal/config"
	"github.com/ytget/ytgrab/internal/convert"
	"github.com/ytget/ytgrab/internal/download"
	"github.com/ytget/ytgrab/internal/logging"
	"github.com/ytget/ytgrab/internal/platform"
	"github.com/ytget/ytgrab/internal/session"
	"github.com/ytget/ytgrab/internal/ui"
)

// AppName is the binary name
const AppName = "ytgrab"

type rootOptions struct {
	configPath   string
	cookies      string
	downloadPath string
	language     string
	skipSetup    bool
	verbose      bool
}

// Execute runs the command tree with the process arguments
func Execute(version string) error {
	return NewRootCommand(version).Execute()
}

// NewRootCommand builds the root command and its subcommands
func NewRootCommand(version string) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   AppName,
		Short: "Download videos with yt-dlp and extract their audio with ffmpeg",
		Long: `ytgrab asks for a video URL, downloads it with yt-dlp into the download
directory, offers to rename the file and converts it to MP3 or CD-quality WAV
on request. It repeats until you quit with 'q'.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default <user config dir>/ytdownloader/config.env)")
	cmd.Flags().StringVar(&opts.cookies, "cookies", "", "cookies file for this run, not saved")
	cmd.Flags().StringVar(&opts.downloadPath, "download-path", "", "download directory for this run, not saved")
	cmd.Flags().StringVar(&opts.language, "lang", "", "interface language: system, en or de")
	cmd.Flags().BoolVar(&opts.skipSetup, "skip-setup", false, "do not ask for cookies and download path before starting")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "print debug log to stderr")

	cmd.AddCommand(newConfigCommand(opts), newInstallCommand(opts))
	return cmd
}

// openStore returns the store selected by --config
func openStore(opts *rootOptions) (*config.Store, error) {
	path := opts.configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return nil, err
		}
	}
	expanded, err := platform.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	return config.NewStore(expanded), nil
}

// loadSettings reads the file and applies env and flag overrides
func loadSettings(opts *rootOptions) (*config.Store, *config.Settings, error) {
	store, err := openStore(opts)
	if err != nil {
		return nil, nil, err
	}
	settings, err := store.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := config.ApplyEnv(settings); err != nil {
		return nil, nil, err
	}

	if opts.cookies != "" {
		settings.CookiesFile = opts.cookies
	}
	if opts.downloadPath != "" {
		settings.DownloadPath = opts.downloadPath
	}
	if opts.language != "" {
		settings.Language = opts.language
	}
	return store, settings, nil
}

// openLogger starts the dated log file next to the config file
func openLogger(cmd *cobra.Command, store *config.Store, verbose bool) (*logging.Logger, error) {
	dir := filepath.Join(store.Dir(), config.LogsDirName)
	logger, err := logging.New(logging.Options{
		Dir:     dir,
		Verbose: verbose,
		Stderr:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, err
	}
	if err := logging.CleanupOldLogs(dir, logger.Path(), time.Now(), logging.MaxLogAge); err != nil {
		logger.WithError(err).Warn("log cleanup failed")
	}
	return logger, nil
}

func runInteractive(cmd *cobra.Command, opts *rootOptions) error {
	store, settings, err := loadSettings(opts)
	if err != nil {
		return err
	}

	logger, err := openLogger(cmd, store, opts.verbose)
	if err != nil {
		return err
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	text := ui.NewLocalization()
	text.SetLanguage(settings.Language)
	out := cmd.OutOrStdout()
	console := ui.NewConsole(out)

	if err := checkTools(ctx, settings, console, text, logger); err != nil {
		return err
	}

	fetcher := download.NewService(settings.YtdlpPath, settings.FilenameTemplate)
	fetcher.SetLogger(logger)
	converter := convert.NewService(settings.FfmpegPath, settings.FfprobePath)
	converter.SetLogger(logger)

	s := session.New(session.Options{
		Store:     store,
		Settings:  settings,
		Fetcher:   fetcher,
		Converter: converter,
		Prompter:  ui.NewPrompter(cmd.InOrStdin(), out, text.GetText(ui.KeyConfirmSuffix)),
		Console:   console,
		Text:      text,
		Progress:  ui.NewProgressBar(out),
		Logger:    logger,
	})

	logger.WithFields(log.Fields{
		"config":   store.Path(),
		"download": settings.DownloadPath,
		"language": text.GetCurrentLanguage(),
	}).Info("session started")

	if !opts.skipSetup {
		if err := s.Setup(ctx); err != nil {
			return endOfInput(err)
		}
	}
	return endOfInput(s.Run(ctx))
}

// checkTools fails without yt-dlp and only warns without ffmpeg
func checkTools(ctx context.Context, settings *config.Settings, console *ui.Console, text *ui.Localization, logger log.Interface) error {
	version, err := platform.ValidateYtDlp(ctx, settings.YtdlpPath)
	if err != nil {
		return fmt.Errorf("%w (run `%s install` to download it)", err, AppName)
	}
	logger.WithField("version", version).Debug("yt-dlp available")

	version, err = platform.ValidateFFmpeg(ctx, settings.FfmpegPath)
	if err != nil {
		logger.WithError(err).Warn("ffmpeg unavailable")
		console.Warn(text.Textf(ui.KeyFFmpegMissing, err))
		return nil
	}
	logger.WithField("version", version).Debug("ffmpeg available")
	return nil
}

// endOfInput treats closed input and an interrupt as a normal end of the
// interactive session
func endOfInput(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
