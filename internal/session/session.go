// Package session implements the interactive loop: ask for a URL, download
// it, pick up the new video file, offer a rename and an audio conversion, and
// start over until the operator is done.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/apex/log"

	"github.com/ytget/ytgrab/internal/config"
	"github.com/ytget/ytgrab/internal/convert"
	"github.com/ytget/ytgrab/internal/download"
	"github.com/ytget/ytgrab/internal/model"
	"github.com/ytget/ytgrab/internal/platform"
	"github.com/ytget/ytgrab/internal/ui"
)

// Menu choices
const (
	ChoiceMP3  = "1"
	ChoiceWAV  = "2"
	ChoiceNext = "3"
	ChoiceQuit = "4"
)

// action tells the loop how to continue after an iteration
type action int

const (
	// ask whether to download another video
	actionAsk action = iota
	// go straight back to the URL prompt
	actionNext
	// leave the loop
	actionQuit
)

// Options wires a Session to its collaborators
type Options struct {
	Store     *config.Store    // nil disables persisting setup changes
	Settings  *config.Settings // effective settings, including env and flag overrides
	Fetcher   download.Fetcher
	Converter convert.Converter
	Prompter  *ui.Prompter
	Console   *ui.Console
	Text      *ui.Localization
	Progress  *ui.ProgressBar // nil when output is not a terminal
	Logger    log.Interface

	// MediaExtensions defaults to platform.MediaExtensions
	MediaExtensions []string
}

// Session is one interactive run
type Session struct {
	store     *config.Store
	settings  *config.Settings
	fetcher   download.Fetcher
	converter convert.Converter
	prompt    *ui.Prompter
	console   *ui.Console
	text      *ui.Localization
	progress  *ui.ProgressBar
	logger    log.Interface
	exts      []string
}

// New creates a session and registers the progress callbacks on the services
func New(opts Options) *Session {
	s := &Session{
		store:     opts.Store,
		settings:  opts.Settings,
		fetcher:   opts.Fetcher,
		converter: opts.Converter,
		prompt:    opts.Prompter,
		console:   opts.Console,
		text:      opts.Text,
		progress:  opts.Progress,
		logger:    opts.Logger,
		exts:      opts.MediaExtensions,
	}
	if s.settings == nil {
		s.settings = &config.Settings{}
	}
	if s.text == nil {
		s.text = ui.NewLocalization()
	}
	if s.logger == nil {
		s.logger = log.Log
	}
	if len(s.exts) == 0 {
		s.exts = platform.MediaExtensions
	}

	s.fetcher.SetUpdateCallback(func(task *model.DownloadTask) {
		if !task.Status.IsActive() {
			return
		}
		percent := float64(task.Percent)
		if task.Total <= 0 {
			percent = -1
		}
		s.progress.Update(percent, ui.DownloadDetail(task))
	})
	s.converter.SetUpdateCallback(func(task *model.ConversionTask) {
		if !task.Status.IsActive() {
			return
		}
		s.progress.Update(float64(task.Percent), "")
	})
	return s
}

// DownloadDir returns the effective download directory
func (s *Session) DownloadDir() (string, error) {
	if strings.TrimSpace(s.settings.DownloadPath) == "" {
		return platform.GetDefaultDownloadPath()
	}
	return platform.ExpandHome(s.settings.DownloadPath)
}

// Run executes the loop until the operator quits or input ends. Errors inside
// an iteration are reported and never end the loop; only a cancelled context
// or a broken download directory is returned.
func (s *Session) Run(ctx context.Context) error {
	dir, err := s.DownloadDir()
	if err != nil {
		return err
	}
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		s.console.Error(s.text.Textf(ui.KeyDownloadDirFailed, dir, err))
		return fmt.Errorf("failed to create download directory %s: %w", dir, err)
	}

	s.console.Title(s.text.GetText(ui.KeyAppTitle))
	for {
		next, err := s.runIteration(ctx, dir)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return s.finish(nil)
			}
			return s.finish(err)
		}

		switch next {
		case actionQuit:
			return s.finish(nil)
		case actionNext:
			continue
		}

		another, err := s.prompt.Confirm(ctx, s.text.GetText(ui.KeyAnotherQuestion))
		if err != nil {
			if errors.Is(err, io.EOF) {
				return s.finish(nil)
			}
			return s.finish(err)
		}
		if !another {
			return s.finish(nil)
		}
	}
}

func (s *Session) finish(err error) error {
	if err != nil {
		s.logger.WithError(err).Error("session ended")
		return err
	}
	s.console.Info(s.text.GetText(ui.KeyGoodbye))
	s.logger.Info("session ended")
	return nil
}

// askURL prompts until a non-empty locator is given. The bool is false when
// the operator quits.
func (s *Session) askURL(ctx context.Context) (string, bool, error) {
	for {
		s.console.Blank()
		answer, err := s.prompt.Ask(ctx, s.text.GetText(ui.KeyEnterURL))
		if err != nil {
			return "", false, err
		}
		if strings.EqualFold(answer, ui.QuitAnswer) {
			return "", false, nil
		}
		if answer != "" {
			return answer, true, nil
		}
	}
}

func (s *Session) runIteration(ctx context.Context, dir string) (action, error) {
	url, ok, err := s.askURL(ctx)
	if err != nil {
		return actionQuit, err
	}
	if !ok {
		return actionQuit, nil
	}

	it := model.NewIteration(url)
	logger := s.logger.WithField("iteration", it.ID)
	logger.WithField("url", url).Info("iteration started")
	defer func() {
		if it.Status.IsFinished() {
			logger.WithFields(log.Fields{
				"status":  it.Status.String(),
				"elapsed": it.FinishedAt.Sub(it.StartedAt).String(),
			}).Info("iteration finished")
		}
	}()

	task, err := s.fetch(ctx, it, dir)
	if err != nil {
		if ctx.Err() != nil {
			return actionQuit, ctx.Err()
		}
		it.Finish(model.TaskStatusError)
		logger.WithError(err).Warn("fetch failed")
		s.console.Error(s.text.Textf(ui.KeyDownloadFailed, err))
		return actionAsk, nil
	}
	s.console.Success(s.text.GetText(ui.KeyDownloadCompleted))
	if task != nil {
		logger.WithField("title", task.GetDisplayTitle()).Info("download finished")
	}

	video, err := platform.FindLatestMedia(dir, s.exts)
	if err != nil {
		it.Finish(model.TaskStatusSkipped)
		logger.WithError(err).Warn("no media found")
		s.console.Warn(s.text.GetText(ui.KeyNoVideoFound))
		return actionAsk, nil
	}
	it.VideoPath = video
	logger.WithField("video", video).Info("media located")
	s.console.Info(s.text.Textf(ui.KeyFoundVideo, filepath.Base(video)))

	it.VideoPath, err = s.offerRename(ctx, logger, ui.KeyRenameQuestion, it.VideoPath)
	if err != nil {
		return actionQuit, err
	}

	s.console.Menu(s.text.GetText(ui.KeyMenuTitle), []string{
		s.text.GetText(ui.KeyMenuMP3),
		s.text.GetText(ui.KeyMenuWAV),
		s.text.GetText(ui.KeyMenuSkip),
		s.text.GetText(ui.KeyMenuQuit),
	})
	choice, err := s.prompt.Ask(ctx, s.text.GetText(ui.KeyMenuChoose))
	if err != nil {
		return actionQuit, err
	}

	var format model.AudioFormat
	switch choice {
	case ChoiceMP3:
		format = model.FormatMP3
	case ChoiceWAV:
		format = model.FormatWAV
	case ChoiceNext:
		it.Finish(model.TaskStatusSkipped)
		logger.Info("conversion skipped, next video")
		return actionNext, nil
	case ChoiceQuit:
		it.Finish(model.TaskStatusSkipped)
		logger.Info("conversion skipped, quitting")
		return actionQuit, nil
	default:
		// Format IDs such as "mp3" are accepted as well
		f, ok := model.FormatByID(choice)
		if !ok {
			it.Finish(model.TaskStatusSkipped)
			logger.WithField("choice", choice).Warn("invalid menu choice")
			s.console.Error(s.text.GetText(ui.KeyInvalidChoice))
			return actionNext, nil
		}
		format = f
	}
	it.Format = &format

	return s.convert(ctx, it, logger)
}

// fetch runs the download with the progress bar attached
func (s *Session) fetch(ctx context.Context, it *model.Iteration, dir string) (*model.DownloadTask, error) {
	s.progress.Start(s.text.GetText(ui.KeyDownloading))
	defer s.progress.Done()

	return s.fetcher.Fetch(ctx, model.FetchRequest{
		URL:         it.URL,
		Directory:   dir,
		CookiesFile: s.settings.CookiesFile,
	})
}

func (s *Session) convert(ctx context.Context, it *model.Iteration, logger log.Interface) (action, error) {
	output := convert.OutputPath(it.VideoPath, *it.Format)
	if platform.FileExists(output) {
		overwrite, err := s.prompt.Confirm(ctx, s.text.Textf(ui.KeyAudioExistsOverwrite, filepath.Base(output)))
		if err != nil {
			return actionQuit, err
		}
		if !overwrite {
			it.Finish(model.TaskStatusSkipped)
			s.console.Info(s.text.GetText(ui.KeyConversionSkipped))
			return actionAsk, nil
		}
	}

	s.console.Info(s.text.Textf(ui.KeyConverting, it.Format.Label))
	s.progress.Start(it.Format.Label)
	task, err := s.converter.Convert(ctx, it.VideoPath, *it.Format)
	s.progress.Done()
	if err != nil {
		if ctx.Err() != nil {
			return actionQuit, ctx.Err()
		}
		it.Finish(model.TaskStatusError)
		logger.WithError(err).Warn("conversion failed")
		s.console.Error(s.text.Textf(ui.KeyConversionFailed, err))
		return actionAsk, nil
	}

	it.AudioPath = task.OutputPath
	duration := ui.DashPlaceholder
	if task.Duration > 0 {
		duration = model.FormatClock(task.Duration)
	}
	s.console.Success(s.text.GetText(ui.KeyConversionCompleted))
	s.console.Info(s.text.Textf(ui.KeyAudioCreated, it.AudioPath, duration))
	logger.WithFields(log.Fields{"audio": task.GetDisplayName(), "format": it.Format.ID}).Info("sidecar created")

	it.AudioPath, err = s.offerRename(ctx, logger, ui.KeyRenameAudioQuestion, it.AudioPath)
	if err != nil {
		return actionQuit, err
	}
	if it.Format.IsLossless() {
		s.console.Hint(s.text.GetText(ui.KeyBurnHint))
	}
	it.Finish(model.TaskStatusCompleted)
	return actionAsk, nil
}
