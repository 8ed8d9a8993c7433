// Package executor runs the external commands dotbrew issues.
//
// Commands are argument vectors, never shell strings: anything needing shell
// features must say so explicitly by running a shell binary with -c. Each of
// the three standard streams is either inherited from dotbrew or connected to
// the null device, and a run reports the process exit code.
package executor

import (
	stderrors "errors"
	"io"
	"os"
	"os/exec"

	"github.com/arthur-debert/dotbrew/pkg/errors"
	"github.com/arthur-debert/dotbrew/pkg/logging"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog"
)

// ExitStartFailure is the exit code reported when a process could not be started
const ExitStartFailure = -1

// Command is a single process invocation
type Command struct {
	// Args is the argument vector; Args[0] is the program
	Args []string

	// Dir is the working directory; empty means the current one
	Dir string

	// Stdin, Stdout and Stderr inherit the real stream when true and use
	// the null device otherwise
	Stdin  bool
	Stdout bool
	Stderr bool

	// Probe marks a side-effect free check, such as "is this installed"
	Probe bool
}

// String renders the command as a shell-quoted line, for logs and dry runs
func (c Command) String() string {
	return shellquote.Join(c.Args...)
}

// Runner executes commands and reports their exit code
type Runner interface {
	Run(cmd Command) (int, error)
}

// Options configures an Executor
type Options struct {
	DryRun bool
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Executor runs commands with os/exec
type Executor struct {
	dryRun bool
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger zerolog.Logger
}

// New creates an Executor. Unset streams default to the process streams.
func New(opts Options) *Executor {
	e := &Executor{
		dryRun: opts.DryRun,
		stdin:  opts.Stdin,
		stdout: opts.Stdout,
		stderr: opts.Stderr,
		logger: logging.GetLogger("executor"),
	}
	if e.stdin == nil {
		e.stdin = os.Stdin
	}
	if e.stdout == nil {
		e.stdout = os.Stdout
	}
	if e.stderr == nil {
		e.stderr = os.Stderr
	}
	return e
}

// DryRun reports whether the executor only logs commands
func (e *Executor) DryRun() bool {
	return e.dryRun
}

// Run executes cmd synchronously and returns its exit code.
// A non-zero exit is not an error; an error means the process never ran.
// In dry-run mode nothing is executed: probes report failure so callers
// take their "not installed" path, everything else reports success.
func (e *Executor) Run(cmd Command) (int, error) {
	if len(cmd.Args) == 0 {
		return ExitStartFailure, errors.New(errors.ErrInvalidInput, "empty command")
	}

	if e.dryRun {
		e.logger.Info().
			Str("dir", cmd.Dir).
			Bool("probe", cmd.Probe).
			Msgf("Would run: %s", cmd)
		if cmd.Probe {
			return 1, nil
		}
		return 0, nil
	}

	logging.LogCommand(e.logger, cmd.Args[0], cmd.Args[1:])

	c := exec.Command(cmd.Args[0], cmd.Args[1:]...)
	c.Dir = cmd.Dir
	// A nil stream makes os/exec use the null device
	if cmd.Stdin {
		c.Stdin = e.stdin
	}
	if cmd.Stdout {
		c.Stdout = e.stdout
	}
	if cmd.Stderr {
		c.Stderr = e.stderr
	}

	err := c.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		e.logger.Debug().
			Str("command", cmd.String()).
			Int("exitCode", exitErr.ExitCode()).
			Msg("Command exited with non-zero status")
		return exitErr.ExitCode(), nil
	}

	return ExitStartFailure, errors.Wrapf(err, errors.ErrCommandStart, "failed to start %s", cmd.Args[0]).
		WithDetail("command", cmd.String())
}

var _ Runner = (*Executor)(nil)
