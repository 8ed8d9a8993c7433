package brew

import (
	"github.com/arthur-debert/dotbrew/pkg/errors"
	"github.com/arthur-debert/dotbrew/pkg/executor"
)

// bootstrapBrew installs Homebrew unless it is already on PATH.
// The install script talks to the user, so all streams are inherited.
func (h *Handler) bootstrapBrew() error {
	h.logger.Info().Msg("Installing brew")
	code, err := h.runner.Run(h.bootstrapCommand(h.settings.bootstrapBrewArgs()))
	if failed := commandFailure(code, err); failed != nil {
		h.logger.Error().Err(err).Int("exitCode", code).Msg("Failed to install brew")
		return errors.Wrap(failed, errors.ErrBootstrap, "failed to bootstrap brew")
	}
	return nil
}

// bootstrapCask taps the cask repository. Current Homebrew ships casks in
// core, so an empty CaskTap turns this into a no-op.
func (h *Handler) bootstrapCask() error {
	if h.settings.CaskTap == "" {
		h.logger.Debug().Msg("No cask tap configured, skipping cask bootstrap")
		return nil
	}

	h.logger.Info().Str("tap", h.settings.CaskTap).Msg("Installing cask")
	code, err := h.runner.Run(h.bootstrapCommand(h.settings.bootstrapCaskArgs()))
	if failed := commandFailure(code, err); failed != nil {
		h.logger.Error().Err(err).Int("exitCode", code).Str("tap", h.settings.CaskTap).Msg("Failed to install cask")
		return errors.Wrap(failed, errors.ErrBootstrap, "failed to bootstrap cask").
			WithDetail("tap", h.settings.CaskTap)
	}
	return nil
}

func (h *Handler) bootstrapCommand(args []string) executor.Command {
	return executor.Command{
		Args:   args,
		Dir:    h.ctx.BaseDirectory(),
		Stdin:  true,
		Stdout: true,
		Stderr: true,
	}
}
