package dotbrew

import (
	"fmt"

	"github.com/arthur-debert/dotbrew/internal/version"
	"github.com/arthur-debert/dotbrew/pkg/brew"
	"github.com/arthur-debert/dotbrew/pkg/config"
	"github.com/arthur-debert/dotbrew/pkg/display"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newDirectivesCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "directives",
		Short:   MsgDirectivesShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := newRenderer(cmd, format)
			if err != nil {
				return err
			}

			var rows []display.DirectiveInfo
			for _, d := range brew.Directives() {
				rows = append(rows, display.DirectiveInfo{
					Name:    d.String(),
					Options: brew.DefaultOptions(d).Map(),
				})
			}
			return renderer.RenderDirectives(rows)
		},
	}

	cmd.Flags().StringVar(&format, "format", "auto", MsgFlagFormat)
	return cmd
}

func newConfigCmd(a *app) *cobra.Command {
	var template bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if template {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), config.GenerateConfigContent())
				return err
			}

			if err := a.setup(cmd); err != nil {
				return err
			}
			out, err := a.cfg.TOML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().BoolVar(&template, "template", false, MsgFlagTemplate)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgVersion, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: MsgCompletionShort,
		Long: `To load completions:

Bash:
  $ source <(dotbrew completion bash)

Zsh:
  $ dotbrew completion zsh > "${fpath[1]}/_dotbrew"

Fish:
  $ dotbrew completion fish | source

PowerShell:
  PS> dotbrew completion powershell | Out-String | Invoke-Expression
`,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			switch args[0] {
			case "bash":
				err = cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				err = cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				err = cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				err = cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			if err != nil {
				log.Error().Err(err).Str("shell", args[0]).Msg("Failed to generate completion")
			}
			return err
		},
	}
}
