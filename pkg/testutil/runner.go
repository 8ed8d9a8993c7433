// Package testutil provides fakes for testing dotbrew components without
// touching a real brew installation.
package testutil

import (
	"bytes"

	"github.com/arthur-debert/dotbrew/pkg/executor"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// FakeRunner records commands instead of executing them.
// Results are scripted per command line (executor.Command.String()).
// Unscripted actions succeed; unscripted probes return ProbeDefault.
type FakeRunner struct {
	Commands []executor.Command

	// ProbeDefault is the exit code of unscripted probes; 1 means "not installed"
	ProbeDefault int

	exitCodes map[string]int
	errs      map[string]error
}

// NewFakeRunner creates a runner where nothing is installed and every
// action succeeds
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		ProbeDefault: 1,
		exitCodes:    make(map[string]int),
		errs:         make(map[string]error),
	}
}

// SetExitCode scripts the exit code for a command line
func (f *FakeRunner) SetExitCode(line string, code int) *FakeRunner {
	f.exitCodes[line] = code
	return f
}

// SetError scripts a start failure for a command line
func (f *FakeRunner) SetError(line string, err error) *FakeRunner {
	f.errs[line] = err
	return f
}

// Run implements executor.Runner
func (f *FakeRunner) Run(cmd executor.Command) (int, error) {
	f.Commands = append(f.Commands, cmd)
	line := cmd.String()

	if err, ok := f.errs[line]; ok {
		return executor.ExitStartFailure, err
	}
	if code, ok := f.exitCodes[line]; ok {
		return code, nil
	}
	if cmd.Probe {
		return f.ProbeDefault, nil
	}
	return 0, nil
}

// Lines returns the recorded commands as command lines, in order
func (f *FakeRunner) Lines() []string {
	lines := make([]string, 0, len(f.Commands))
	for _, cmd := range f.Commands {
		lines = append(lines, cmd.String())
	}
	return lines
}

// Actions returns the recorded commands that are not probes
func (f *FakeRunner) Actions() []executor.Command {
	var actions []executor.Command
	for _, cmd := range f.Commands {
		if !cmd.Probe {
			actions = append(actions, cmd)
		}
	}
	return actions
}

// Reset forgets recorded commands, keeping scripted results
func (f *FakeRunner) Reset() {
	f.Commands = nil
}

var _ executor.Runner = (*FakeRunner)(nil)

// CaptureLogs routes the global logger into a buffer at debug level until
// the returned function is called
func CaptureLogs() (*bytes.Buffer, func()) {
	var buf bytes.Buffer
	original := log.Logger
	originalLevel := zerolog.GlobalLevel()

	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	return &buf, func() {
		log.Logger = original
		zerolog.SetGlobalLevel(originalLevel)
	}
}
