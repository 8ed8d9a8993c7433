package dotbrew

import (
	"github.com/arthur-debert/dotbrew/pkg/dispatcher"
	"github.com/arthur-debert/dotbrew/pkg/display"
	"github.com/arthur-debert/dotbrew/pkg/errors"
	"github.com/arthur-debert/dotbrew/pkg/logging"
	"github.com/arthur-debert/dotbrew/pkg/paths"
	"github.com/arthur-debert/dotbrew/pkg/plugin"
	"github.com/spf13/cobra"
)

func newApplyCmd(a *app) *cobra.Command {
	var (
		baseDir       string
		only          []string
		except        []string
		exitOnFailure bool
		format        string
	)

	cmd := &cobra.Command{
		Use:     "apply [task-file]",
		Short:   MsgApplyShort,
		Long:    MsgApplyLong,
		Example: MsgApplyExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := newRenderer(cmd, format)
			if err != nil {
				return err
			}
			if err := a.setup(cmd); err != nil {
				return err
			}
			logger := logging.GetLogger("cmd.apply")

			taskFile := paths.DefaultTaskFile
			if len(args) == 1 {
				taskFile = args[0]
			}
			taskFile = paths.ExpandHome(taskFile)

			tasks, err := dispatcher.LoadTasks(taskFile)
			if err != nil {
				return err
			}

			dir, err := paths.ResolveBaseDir(baseDir, taskFile)
			if err != nil {
				return err
			}

			logger.Info().
				Str("taskFile", taskFile).
				Str("baseDir", dir).
				Int("tasks", len(tasks)).
				Bool("dryRun", a.dryRun).
				Msg("Applying task file")

			d := dispatcher.New(plugin.NewContext(dir, nil), dispatcher.Options{
				Only:          only,
				Except:        except,
				ExitOnFailure: exitOnFailure,
			}, a.brewFactory(a.newRunner(cmd)))

			result := d.Run(tasks)
			if err := renderer.RenderResult(result); err != nil {
				return err
			}
			if a.dryRun {
				if err := renderer.RenderMessage(MsgDryRunNotice); err != nil {
					return err
				}
			}

			if !result.Success {
				return errors.Newf(errors.ErrCommandFailed, MsgErrTasksFailed, len(result.Failed()), len(result.Tasks)).
					WithDetail("taskFile", taskFile)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&baseDir, "base-dir", "d", "", MsgFlagBaseDir)
	cmd.Flags().StringSliceVar(&only, "only", nil, MsgFlagOnly)
	cmd.Flags().StringSliceVar(&except, "except", nil, MsgFlagExcept)
	cmd.Flags().BoolVarP(&exitOnFailure, "exit-on-failure", "x", false, MsgFlagExitOnFailure)
	cmd.Flags().StringVar(&format, "format", "auto", MsgFlagFormat)

	return cmd
}

func newRenderer(cmd *cobra.Command, format string) (display.Renderer, error) {
	f, err := display.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return display.NewRenderer(f, cmd.OutOrStdout())
}
