package session

import (
	"context"

	"github.com/ytget/ytgrab/internal/config"
	"github.com/ytget/ytgrab/internal/platform"
	"github.com/ytget/ytgrab/internal/ui"
)

// Setup lets the operator change the cookies file and the download path
// before the loop. Accepted changes are persisted through the store.
func (s *Session) Setup(ctx context.Context) error {
	if err := s.setupCookies(ctx); err != nil {
		return err
	}
	return s.setupDownloadPath(ctx)
}

func (s *Session) setupCookies(ctx context.Context) error {
	s.console.Title(s.text.GetText(ui.KeyCookiesHeader))

	current := s.settings.CookiesFile
	if current == "" {
		current = s.text.GetText(ui.KeyNotConfigured)
	}
	s.console.Info(s.text.Textf(ui.KeyCurrentCookies, current))

	change, err := s.prompt.Confirm(ctx, s.text.GetText(ui.KeyChangeCookies))
	if err != nil || !change {
		return err
	}

	answer, err := s.prompt.Ask(ctx, s.text.GetText(ui.KeyEnterCookiesPath))
	if err != nil {
		return err
	}
	path, err := platform.ExpandHome(answer)
	if err != nil || path == "" || !platform.FileExists(path) {
		s.console.Error(s.text.Textf(ui.KeyFileNotFound, answer))
		return nil
	}

	s.settings.CookiesFile = path
	if s.persist(func(st *config.Settings) { st.CookiesFile = path }) {
		s.console.Success(s.text.GetText(ui.KeyCookiesUpdated))
	}
	return nil
}

func (s *Session) setupDownloadPath(ctx context.Context) error {
	current := s.settings.DownloadPath
	if current == "" {
		current = s.text.GetText(ui.KeyDefaultPath)
	}
	s.console.Info(s.text.Textf(ui.KeyCurrentDownloadPath, current))

	change, err := s.prompt.Confirm(ctx, s.text.GetText(ui.KeyChangeDownloadPath))
	if err != nil || !change {
		return err
	}

	answer, err := s.prompt.Ask(ctx, s.text.GetText(ui.KeyEnterDownloadPath))
	if err != nil || answer == "" {
		return err
	}
	path, err := platform.ExpandHome(answer)
	if err == nil {
		err = platform.CreateDirectoryIfNotExists(path)
	}
	if err != nil {
		s.console.Error(s.text.Textf(ui.KeyDownloadDirFailed, answer, err))
		return nil
	}

	s.settings.DownloadPath = path
	if s.persist(func(st *config.Settings) { st.DownloadPath = path }) {
		s.console.Success(s.text.Textf(ui.KeyDownloadPathUpdated, path))
	}
	return nil
}

// persist writes a single change to the config file, reporting failures to
// the operator. The in-memory settings are already updated by the caller.
func (s *Session) persist(apply func(*config.Settings)) bool {
	if s.store == nil {
		return true
	}
	_, err := s.store.Update(func(st *config.Settings) error {
		apply(st)
		return nil
	})
	if err != nil {
		s.logger.WithError(err).Error("cannot save settings")
		s.console.Error(s.text.Textf(ui.KeySettingsSaveFailed, err))
		return false
	}
	return true
}
