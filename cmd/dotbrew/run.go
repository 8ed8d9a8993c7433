package dotbrew

import (
	"strings"
	"time"

	"github.com/arthur-debert/dotbrew/pkg/brew"
	"github.com/arthur-debert/dotbrew/pkg/dispatcher"
	"github.com/arthur-debert/dotbrew/pkg/errors"
	"github.com/arthur-debert/dotbrew/pkg/paths"
	"github.com/arthur-debert/dotbrew/pkg/plugin"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// optionFlags maps run flags to directive options
var optionFlags = []struct {
	flag  string
	usage string
	set   func(ov *brew.Overrides, v bool)
}{
	{"auto-bootstrap", MsgFlagAutoBootstrap, func(ov *brew.Overrides, v bool) { ov.AutoBootstrap = brew.Bool(v) }},
	{"force-intel", MsgFlagForceIntel, func(ov *brew.Overrides, v bool) { ov.ForceIntel = brew.Bool(v) }},
	{"stdin", MsgFlagStdin, func(ov *brew.Overrides, v bool) { ov.Stdin = brew.Bool(v) }},
	{"stdout", MsgFlagStdout, func(ov *brew.Overrides, v bool) { ov.Stdout = brew.Bool(v) }},
	{"stderr", MsgFlagStderr, func(ov *brew.Overrides, v bool) { ov.Stderr = brew.Bool(v) }},
}

func newRunCmd(a *app) *cobra.Command {
	var (
		baseDir string
		format  string
	)

	cmd := &cobra.Command{
		Use:       "run <directive> [items...]",
		Short:     MsgRunShort,
		Long:      MsgRunLong,
		Example:   MsgRunExample,
		GroupID:   "core",
		Args:      cobra.MinimumNArgs(1),
		ValidArgs: directiveNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := newRenderer(cmd, format)
			if err != nil {
				return err
			}

			d, ok := brew.ParseDirective(args[0])
			if !ok {
				return errors.Newf(errors.ErrUnknownDirective, MsgErrUnknownDirect, args[0], strings.Join(directiveNames(), ", "))
			}
			items := args[1:]

			if err := a.setup(cmd); err != nil {
				return err
			}

			dir, err := paths.ResolveBaseDir(baseDir, "")
			if err != nil {
				return err
			}

			ov, err := overridesFromFlags(cmd.Flags())
			if err != nil {
				return err
			}

			handler := brew.NewHandler(plugin.NewContext(dir, nil), a.newRunner(cmd), a.cfg.BrewSettings())
			start := time.Now()
			runErr := handler.Run(d, items, brew.DefaultOptions(d).With(ov))

			result := &dispatcher.Result{
				Success: runErr == nil,
				Tasks: []dispatcher.TaskResult{{
					Directive: d.String(),
					Items:     items,
					Handled:   true,
					Success:   runErr == nil,
					Duration:  time.Since(start),
				}},
			}
			if err := renderer.RenderResult(result); err != nil {
				return err
			}
			if a.dryRun {
				if err := renderer.RenderMessage(MsgDryRunNotice); err != nil {
					return err
				}
			}

			if runErr != nil {
				return errors.Wrapf(runErr, errors.GetErrorCode(runErr), MsgErrRunFailed, d)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&baseDir, "base-dir", "d", "", MsgFlagBaseDir)
	cmd.Flags().StringVar(&format, "format", "auto", MsgFlagFormat)
	for _, f := range optionFlags {
		cmd.Flags().Bool(f.flag, false, f.usage)
	}

	return cmd
}

// overridesFromFlags turns explicitly set option flags into overrides;
// untouched flags leave the built-in default in place
func overridesFromFlags(flags *pflag.FlagSet) (brew.Overrides, error) {
	var ov brew.Overrides
	for _, f := range optionFlags {
		if !flags.Changed(f.flag) {
			continue
		}
		v, err := flags.GetBool(f.flag)
		if err != nil {
			return brew.Overrides{}, errors.Wrapf(err, errors.ErrInvalidOption, "invalid value for --%s", f.flag)
		}
		f.set(&ov, v)
	}
	return ov, nil
}

func directiveNames() []string {
	directives := brew.Directives()
	names := make([]string, 0, len(directives))
	for _, d := range directives {
		names = append(names, d.String())
	}
	return names
}
