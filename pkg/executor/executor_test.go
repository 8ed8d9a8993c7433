package executor

import (
	"bytes"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/dotbrew/pkg/errors"
	"github.com/kballard/go-shellquote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestCommandString(t *testing.T) {
	cmd := Command{Args: []string{"brew", "install", "wget", "--HEAD"}}
	assert.Equal(t, "brew install wget --HEAD", cmd.String())

	quoted := Command{Args: []string{"brew", "bundle", "--file=my Brewfile"}}
	words, err := shellquote.Split(quoted.String())
	require.NoError(t, err)
	assert.Equal(t, quoted.Args, words)
}

func TestRunExitCodes(t *testing.T) {
	requireShell(t)
	e := New(Options{})

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"success", []string{"sh", "-c", "exit 0"}, 0},
		{"failure", []string{"sh", "-c", "exit 3"}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := e.Run(Command{Args: tt.args})
			require.NoError(t, err)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestRunStreams(t *testing.T) {
	requireShell(t)

	t.Run("inherited stdout is written", func(t *testing.T) {
		var out bytes.Buffer
		e := New(Options{Stdout: &out})
		code, err := e.Run(Command{Args: []string{"sh", "-c", "echo hello"}, Stdout: true})
		require.NoError(t, err)
		assert.Equal(t, 0, code)
		assert.Equal(t, "hello\n", out.String())
	})

	t.Run("redirected stdout is discarded", func(t *testing.T) {
		var out bytes.Buffer
		e := New(Options{Stdout: &out})
		code, err := e.Run(Command{Args: []string{"sh", "-c", "echo hello"}})
		require.NoError(t, err)
		assert.Equal(t, 0, code)
		assert.Empty(t, out.String())
	})

	t.Run("inherited stderr is written", func(t *testing.T) {
		var errOut bytes.Buffer
		e := New(Options{Stderr: &errOut})
		_, err := e.Run(Command{Args: []string{"sh", "-c", "echo oops >&2"}, Stderr: true})
		require.NoError(t, err)
		assert.Equal(t, "oops\n", errOut.String())
	})

	t.Run("inherited stdin is read", func(t *testing.T) {
		var out bytes.Buffer
		e := New(Options{Stdin: strings.NewReader("typed\n"), Stdout: &out})
		_, err := e.Run(Command{Args: []string{"sh", "-c", "read line; echo $line"}, Stdin: true, Stdout: true})
		require.NoError(t, err)
		assert.Equal(t, "typed\n", out.String())
	})
}

func TestRunWorkingDirectory(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()
	var out bytes.Buffer
	e := New(Options{Stdout: &out})

	_, err := e.Run(Command{Args: []string{"sh", "-c", "pwd -P"}, Dir: dir, Stdout: true})
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Equal(t, want, strings.TrimSpace(out.String()))
}

func TestRunStartFailure(t *testing.T) {
	e := New(Options{})

	code, err := e.Run(Command{Args: []string{"dotbrew-no-such-binary-xyz"}})
	require.Error(t, err)
	assert.Equal(t, ExitStartFailure, code)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandStart))
}

func TestRunEmptyCommand(t *testing.T) {
	e := New(Options{})

	code, err := e.Run(Command{})
	require.Error(t, err)
	assert.Equal(t, ExitStartFailure, code)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestDryRun(t *testing.T) {
	e := New(Options{DryRun: true})
	assert.True(t, e.DryRun())

	code, err := e.Run(Command{Args: []string{"brew", "install", "wget"}})
	require.NoError(t, err)
	assert.Equal(t, 0, code, "actions succeed in dry run")

	code, err = e.Run(Command{Args: []string{"brew", "ls", "--versions", "wget"}, Probe: true})
	require.NoError(t, err)
	assert.Equal(t, 1, code, "probes report not installed in dry run")
}
