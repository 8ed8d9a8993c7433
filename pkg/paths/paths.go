// Package paths provides centralized path handling for dotbrew.
//
// Configuration and log locations follow the XDG Base Directory
// layout, with DOTBREW_CONFIG_DIR and DOTBREW_STATE_DIR as explicit
// overrides. The base directory that brew commands run in is resolved here
// as well, so the CLI and the dispatcher agree on it.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dotbrew/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for dotbrew
	EnvConfigDir = "DOTBREW_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for dotbrew
	EnvStateDir = "DOTBREW_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// AppDirName is the directory name used under the XDG roots
	AppDirName = "dotbrew"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "dotbrew.log"

	// DefaultTaskFile is the task file `dotbrew apply` reads when none is given
	DefaultTaskFile = "install.conf.yaml"
)

// ConfigDir returns the directory holding the user configuration
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// StateDir returns the directory holding the log file
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// ConfigFilePath returns the default location of the user configuration file
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// LogFilePath returns the path to the log file
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

// ResolveBaseDir determines the directory brew commands run in.
// An explicit baseDir wins; otherwise the directory containing taskFile is
// used, and failing that the current working directory.
func ResolveBaseDir(baseDir, taskFile string) (string, error) {
	dir := baseDir
	if dir == "" && taskFile != "" {
		dir = filepath.Dir(ExpandHome(taskFile))
	}
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrInternal, "failed to get current directory")
		}
		return cwd, nil
	}

	abs, err := filepath.Abs(ExpandHome(dir))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "failed to get absolute path for %s", dir)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "base directory %s is not accessible", abs)
	}
	if !info.IsDir() {
		return "", errors.Newf(errors.ErrInvalidInput, "base directory %s is not a directory", abs)
	}

	return abs, nil
}

// ExpandHome expands ~ to the home directory
func ExpandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to HOME env var
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}
