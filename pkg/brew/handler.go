// Package brew implements the Homebrew directives: install-brew, brew, cask,
// tap and brewfile.
//
// The Handler is a plugin.Plugin. For each directive it resolves the option
// set (built-in defaults overlaid with the host's defaults for that
// directive), then walks the items in order, running one brew command per
// item and stopping at the first failure.
package brew

import (
	"strings"

	"github.com/arthur-debert/dotbrew/pkg/errors"
	"github.com/arthur-debert/dotbrew/pkg/executor"
	"github.com/arthur-debert/dotbrew/pkg/logging"
	"github.com/arthur-debert/dotbrew/pkg/paths"
	"github.com/arthur-debert/dotbrew/pkg/plugin"
	"github.com/rs/zerolog"
)

// Handler runs Homebrew directives through a Runner
type Handler struct {
	ctx      plugin.Context
	runner   executor.Runner
	settings Settings
	logger   zerolog.Logger
}

// NewHandler creates a handler bound to a host context
func NewHandler(ctx plugin.Context, runner executor.Runner, settings Settings) *Handler {
	return &Handler{
		ctx:      ctx,
		runner:   runner,
		settings: settings,
		logger:   logging.GetLogger("brew"),
	}
}

// CanHandle implements plugin.Plugin
func (h *Handler) CanHandle(directive string) bool {
	_, ok := ParseDirective(directive)
	return ok
}

// Handle implements plugin.Plugin. Failures are logged where they happen;
// the boolean is the only signal returned to the host.
func (h *Handler) Handle(directive string, items []string) bool {
	d, ok := ParseDirective(directive)
	if !ok {
		h.logger.Error().Str("directive", directive).Msg("Cannot handle directive")
		return false
	}

	opts, err := h.ResolveOptions(d)
	if err != nil {
		h.logger.Error().Err(err).Str("directive", directive).Msg("Invalid directive options")
		return false
	}

	if err := h.Run(d, items, opts); err != nil {
		h.logger.Debug().
			Err(err).
			Str("directive", directive).
			Str("code", string(errors.GetErrorCode(err))).
			Msg("Directive failed")
		return false
	}
	return true
}

// ResolveOptions overlays the context's defaults for d onto the built-in ones
func (h *Handler) ResolveOptions(d Directive) (Options, error) {
	raw := h.ctx.Defaults()[string(d)]
	ov, unused, err := DecodeOverrides(raw)
	if err != nil {
		return Options{}, err
	}
	for _, key := range unused {
		h.logger.Warn().Str("directive", string(d)).Str("option", key).Msg("Ignoring unknown option")
	}
	return DefaultOptions(d).With(ov), nil
}

// Run executes a directive with already resolved options.
// An empty item list is a no-op: not even the bootstrap runs.
func (h *Handler) Run(d Directive, items []string, opts Options) error {
	if _, ok := ParseDirective(string(d)); ok && len(items) == 0 {
		h.logger.Debug().Str("directive", string(d)).Msg("Nothing to do")
		return nil
	}

	switch d {
	case DirectiveInstallBrew:
		return h.installComponents(items)
	case DirectiveBrew:
		return h.installPackages(items, opts)
	case DirectiveCask:
		return h.installCasks(items, opts)
	case DirectiveTap:
		return h.addTaps(items, opts)
	case DirectiveBrewfile:
		return h.runBundleFiles(items, opts)
	}
	return errors.Newf(errors.ErrUnknownDirective, "unknown directive %q", d)
}

func (h *Handler) installComponents(components []string) error {
	for _, component := range components {
		switch component {
		case ComponentBrew:
			if err := h.bootstrapBrew(); err != nil {
				return err
			}
		case ComponentCask:
			if err := h.bootstrapCask(); err != nil {
				return err
			}
		default:
			h.logger.Error().Str("component", component).Msg("Unknown component to install")
			return errors.Newf(errors.ErrUnknownComponent, "unknown component to install %q", component).
				WithDetail("component", component)
		}
	}
	return nil
}

func (h *Handler) installPackages(packages []string, opts Options) error {
	if opts.AutoBootstrap {
		if err := h.bootstrapBrew(); err != nil {
			return err
		}
	}
	return h.processPackages(kindFormula, packages, opts)
}

func (h *Handler) installCasks(casks []string, opts Options) error {
	if opts.AutoBootstrap {
		if err := h.bootstrapBrew(); err != nil {
			return err
		}
		if err := h.bootstrapCask(); err != nil {
			return err
		}
	}
	return h.processPackages(kindCask, casks, opts)
}

func (h *Handler) processPackages(kind packageKind, packages []string, opts Options) error {
	for _, pkg := range packages {
		if err := h.install(kind, pkg, opts); err != nil {
			h.logger.Error().Str("kind", kind.String()).Msg("Some packages were not installed")
			return err
		}
	}
	if len(packages) > 0 {
		h.logger.Info().Str("kind", kind.String()).Int("count", len(packages)).Msg("All packages have been installed")
	}
	return nil
}

func (h *Handler) install(kind packageKind, raw string, opts Options) error {
	spec, err := ParsePackageSpec(raw)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrBlankPackage) {
			h.logger.Error().Msg("Cannot process blank package name")
		} else {
			h.logger.Error().Err(err).Str("package", raw).Msg("Cannot parse package spec")
		}
		return err
	}

	code, err := h.probe(h.settings.checkArgs(kind, spec.Name))
	if err == nil && code == 0 {
		h.logger.Debug().Str("package", raw).Msg("Already installed")
		return nil
	}
	if err != nil {
		h.logger.Debug().Err(err).Str("package", spec.Name).Msg("Presence check could not run")
	}

	h.logger.Info().Str("package", raw).Str("kind", kind.String()).Msg("Installing")
	code, err = h.run(h.settings.installArgs(kind, spec), opts)
	if failed := commandFailure(code, err); failed != nil {
		h.logger.Warn().Err(err).Int("exitCode", code).Str("package", raw).Msg("Failed to install")
		return failed.WithDetail("package", raw)
	}
	return nil
}

func (h *Handler) addTaps(taps []string, opts Options) error {
	if opts.AutoBootstrap {
		if err := h.bootstrapBrew(); err != nil {
			return err
		}
	}

	for _, tap := range taps {
		args, err := splitItem(tap)
		if err != nil {
			h.logger.Error().Err(err).Str("tap", tap).Msg("Cannot process tap")
			return err
		}

		h.logger.Info().Str("tap", tap).Msg("Tapping")
		code, err := h.run(h.settings.tapArgs(args), opts)
		if failed := commandFailure(code, err); failed != nil {
			h.logger.Warn().Err(err).Int("exitCode", code).Str("tap", tap).Msg("Failed to tap")
			return failed.WithDetail("tap", tap)
		}
	}
	return nil
}

func (h *Handler) runBundleFiles(files []string, opts Options) error {
	if opts.AutoBootstrap {
		if err := h.bootstrapBrew(); err != nil {
			return err
		}
		if err := h.bootstrapCask(); err != nil {
			return err
		}
	}

	for _, file := range files {
		if strings.TrimSpace(file) == "" {
			h.logger.Error().Msg("Cannot process blank Brewfile path")
			return errors.New(errors.ErrBlankPackage, "cannot process blank Brewfile path")
		}

		h.logger.Info().Str("file", file).Msg("Installing from file")
		code, err := h.run(h.settings.bundleArgs(paths.ExpandHome(file)), opts)
		if failed := commandFailure(code, err); failed != nil {
			h.logger.Warn().Err(err).Int("exitCode", code).Str("file", file).Msg("Failed to install file")
			return failed.WithDetail("file", file)
		}
	}
	return nil
}

// run executes an action with the directive's stream and architecture options
func (h *Handler) run(args []string, opts Options) (int, error) {
	return h.runner.Run(executor.Command{
		Args:   withArch(args, opts.ForceIntel),
		Dir:    h.ctx.BaseDirectory(),
		Stdin:  opts.Stdin,
		Stdout: opts.Stdout,
		Stderr: opts.Stderr,
	})
}

// probe executes a silent presence check
func (h *Handler) probe(args []string) (int, error) {
	return h.runner.Run(executor.Command{
		Args:  args,
		Dir:   h.ctx.BaseDirectory(),
		Probe: true,
	})
}

// commandFailure converts a run outcome into an error, or nil on success
func commandFailure(code int, err error) *errors.DotbrewError {
	if err != nil {
		return errors.Wrap(err, errors.ErrCommandFailed, "command could not run")
	}
	if code != 0 {
		return errors.Newf(errors.ErrCommandFailed, "command exited with status %d", code).
			WithDetail("exitCode", code)
	}
	return nil
}

var _ plugin.Plugin = (*Handler)(nil)
