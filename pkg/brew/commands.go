package brew

import (
	"fmt"
	"path/filepath"

	"github.com/kballard/go-shellquote"
)

// CheckStrategy selects how "is this already installed" is answered
type CheckStrategy string

const (
	// CheckQuery asks brew: brew ls [--cask] --versions <name>
	CheckQuery CheckStrategy = "query"

	// CheckPrefix tests for <prefix>/Cellar/<name> or <prefix>/Caskroom/<name>
	CheckPrefix CheckStrategy = "prefix"
)

// DefaultInstallScriptURL is Homebrew's official install script
const DefaultInstallScriptURL = "https://raw.githubusercontent.com/Homebrew/install/HEAD/install.sh"

// archWrapper forces x86_64 execution under Rosetta
var archWrapper = []string{"arch", "--x86_64"}

// Settings holds the environment-level knobs of the handler
type Settings struct {
	Binary           string
	Shell            string
	InstallScriptURL string
	// CaskTap is tapped by the cask bootstrap; empty skips it
	CaskTap       string
	Prefix        string
	CheckStrategy CheckStrategy
}

// DefaultSettings returns settings for a stock Homebrew setup
func DefaultSettings() Settings {
	return Settings{
		Binary:           "brew",
		Shell:            "/bin/bash",
		InstallScriptURL: DefaultInstallScriptURL,
		CaskTap:          "homebrew/cask",
		Prefix:           "/usr/local",
		CheckStrategy:    CheckQuery,
	}
}

type packageKind int

const (
	kindFormula packageKind = iota
	kindCask
)

func (k packageKind) String() string {
	if k == kindCask {
		return "cask"
	}
	return "formula"
}

func (s Settings) installArgs(kind packageKind, spec PackageSpec) []string {
	args := []string{s.Binary, "install"}
	if kind == kindCask {
		args = append(args, "--cask")
	}
	return append(args, spec.Args...)
}

func (s Settings) checkArgs(kind packageKind, name string) []string {
	if s.CheckStrategy == CheckPrefix {
		dir := "Cellar"
		if kind == kindCask {
			dir = "Caskroom"
		}
		return []string{"test", "-d", filepath.Join(s.Prefix, dir, name)}
	}

	args := []string{s.Binary, "ls"}
	if kind == kindCask {
		args = append(args, "--cask")
	}
	return append(args, "--versions", name)
}

func (s Settings) tapArgs(tap []string) []string {
	return append([]string{s.Binary, "tap"}, tap...)
}

func (s Settings) bundleArgs(path string) []string {
	return []string{s.Binary, "bundle", "--verbose", "--file=" + path}
}

// bootstrapBrewArgs needs a shell: the download only runs when brew is
// missing from PATH, and the script is fetched with curl.
func (s Settings) bootstrapBrewArgs() []string {
	script := fmt.Sprintf(`[[ $(command -v %s) != "" ]] || %s -c "$(curl -fsSL %s)"`,
		shellquote.Join(s.Binary), shellquote.Join(s.Shell), shellquote.Join(s.InstallScriptURL))
	return []string{s.Shell, "-c", script}
}

func (s Settings) bootstrapCaskArgs() []string {
	return []string{s.Binary, "tap", s.CaskTap}
}

func withArch(args []string, forceIntel bool) []string {
	if !forceIntel {
		return args
	}
	out := make([]string, 0, len(archWrapper)+len(args))
	out = append(out, archWrapper...)
	return append(out, args...)
}
