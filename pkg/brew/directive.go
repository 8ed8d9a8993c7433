package brew

// Directive names a configuration instruction this package handles
type Directive string

const (
	// DirectiveInstallBrew installs Homebrew itself and/or the cask tap
	DirectiveInstallBrew Directive = "install-brew"

	// DirectiveBrew installs formulae
	DirectiveBrew Directive = "brew"

	// DirectiveCask installs casks
	DirectiveCask Directive = "cask"

	// DirectiveTap adds taps
	DirectiveTap Directive = "tap"

	// DirectiveBrewfile applies Brewfiles with brew bundle
	DirectiveBrewfile Directive = "brewfile"
)

var directives = []Directive{
	DirectiveInstallBrew,
	DirectiveBrew,
	DirectiveCask,
	DirectiveTap,
	DirectiveBrewfile,
}

// Directives returns every recognized directive in a stable order
func Directives() []Directive {
	out := make([]Directive, len(directives))
	copy(out, directives)
	return out
}

// ParseDirective maps a directive name to its Directive
func ParseDirective(name string) (Directive, bool) {
	for _, d := range directives {
		if string(d) == name {
			return d, true
		}
	}
	return "", false
}

func (d Directive) String() string {
	return string(d)
}

// Components accepted by the install-brew directive
const (
	ComponentBrew = "brew"
	ComponentCask = "cask"
)
