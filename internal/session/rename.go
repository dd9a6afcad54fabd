package session

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/apex/log"

	"github.com/ytget/ytgrab/internal/platform"
	"github.com/ytget/ytgrab/internal/ui"
)

// offerRename asks whether to rename path and returns the file's path
// afterwards. Declined or failed renames return path unchanged; only prompt
// errors are returned.
func (s *Session) offerRename(ctx context.Context, logger log.Interface, questionKey, path string) (string, error) {
	rename, err := s.prompt.Confirm(ctx, s.text.GetText(questionKey))
	if err != nil || !rename {
		return path, err
	}

	s.console.Hint(s.text.Textf(ui.KeyCurrentFileName, filepath.Base(path)))
	name, err := s.prompt.Ask(ctx, s.text.GetText(ui.KeyEnterNewName))
	if err != nil {
		return path, err
	}
	if name == "" {
		s.console.Info(s.text.GetText(ui.KeyRenameCancelled))
		return path, nil
	}

	target, err := platform.RenameTarget(path, name)
	if err != nil {
		s.console.Error(s.text.Textf(ui.KeyRenameFailed, err))
		return path, nil
	}

	overwrite := false
	if target != path && platform.FileExists(target) {
		overwrite, err = s.prompt.Confirm(ctx, s.text.GetText(ui.KeyFileExistsOverwrite))
		if err != nil {
			return path, err
		}
		if !overwrite {
			s.console.Info(s.text.GetText(ui.KeyRenameCancelled))
			return path, nil
		}
	}

	renamed, err := platform.RenameKeepingExtension(path, name, overwrite)
	if err != nil {
		if !errors.Is(err, platform.ErrTargetExists) {
			logger.WithError(err).Warn("rename failed")
		}
		s.console.Error(s.text.Textf(ui.KeyRenameFailed, err))
		return path, nil
	}
	if renamed != path {
		logger.WithFields(log.Fields{"from": path, "to": renamed}).Info("file renamed")
		s.console.Success(s.text.Textf(ui.KeyRenamed, filepath.Base(renamed)))
	}
	return renamed, nil
}
