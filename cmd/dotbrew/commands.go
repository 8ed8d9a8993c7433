package dotbrew

import (
	"io/fs"

	"github.com/arthur-debert/dotbrew/internal/version"
	"github.com/arthur-debert/dotbrew/pkg/brew"
	"github.com/arthur-debert/dotbrew/pkg/cobrax/topics"
	"github.com/arthur-debert/dotbrew/pkg/config"
	"github.com/arthur-debert/dotbrew/pkg/dispatcher"
	"github.com/arthur-debert/dotbrew/pkg/errors"
	"github.com/arthur-debert/dotbrew/pkg/executor"
	"github.com/arthur-debert/dotbrew/pkg/logging"
	"github.com/arthur-debert/dotbrew/pkg/plugin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Option customizes the root command
type Option func(*app)

// WithRunner sends every command through r instead of a real executor
func WithRunner(r executor.Runner) Option {
	return func(a *app) { a.runner = r }
}

// app holds the global flags and what is built from them
type app struct {
	verbosity  int
	dryRun     bool
	configPath string
	settings   []string

	runner executor.Runner
	cfg    *config.Config
}

// setup loads the configuration and starts logging. Commands that need
// neither (version, completion, help) never call it.
func (a *app) setup(cmd *cobra.Command) error {
	overrides, err := config.ParseOverrides(a.settings)
	if err != nil {
		return err
	}

	cfg, err := config.Load(config.LoadOptions{Path: a.configPath, Overrides: overrides})
	if err != nil {
		return err
	}
	a.cfg = cfg

	logging.SetupLogger(cfg.Logging.Verbosity + a.verbosity)
	log.Debug().
		Str("command", cmd.Name()).
		Bool("dryRun", a.dryRun).
		Str("brew", cfg.Brew.Binary).
		Str("checkStrategy", cfg.Brew.CheckStrategy).
		Msg("Command started")
	return nil
}

func (a *app) newRunner(cmd *cobra.Command) executor.Runner {
	if a.runner != nil {
		return a.runner
	}
	return executor.New(executor.Options{
		DryRun: a.dryRun,
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	})
}

// brewFactory binds brew handlers to the configured settings and runner
func (a *app) brewFactory(runner executor.Runner) dispatcher.Factory {
	settings := a.cfg.BrewSettings()
	return func(ctx plugin.Context) plugin.Plugin {
		return brew.NewHandler(ctx, runner, settings)
	}
}

// NewRootCmd creates and returns the root command
func NewRootCmd(opts ...Option) *cobra.Command {
	initTemplateFormatting()

	a := &app{}
	for _, opt := range opts {
		opt(a)
	}

	rootCmd := &cobra.Command{
		Use:     "dotbrew",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&a.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringArrayVar(&a.settings, "set", nil, MsgFlagSet)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newApplyCmd(a))
	rootCmd.AddCommand(newRunCmd(a))
	rootCmd.AddCommand(newDirectivesCmd())
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	topicsFS, err := fs.Sub(embeddedTopics, "topics")
	if err == nil {
		_, err = topics.Initialize(rootCmd, topicsFS, topics.Options{
			Extensions: []string{".md"},
			Renderer:   topics.NewGlamourRenderer(),
		})
	}
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}
