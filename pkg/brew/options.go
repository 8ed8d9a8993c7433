package brew

import (
	"sort"

	"github.com/arthur-debert/dotbrew/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
)

// Option names as they appear in the host's defaults
const (
	OptionAutoBootstrap = "auto_bootstrap"
	OptionForceIntel    = "force_intel"
	OptionStdin         = "stdin"
	OptionStdout        = "stdout"
	OptionStderr        = "stderr"
)

// OptionNames lists the recognized options in display order
var OptionNames = []string{
	OptionAutoBootstrap,
	OptionForceIntel,
	OptionStdin,
	OptionStdout,
	OptionStderr,
}

// Options is the resolved option set for one directive invocation
type Options struct {
	AutoBootstrap bool
	ForceIntel    bool
	Stdin         bool
	Stdout        bool
	Stderr        bool
}

// Overrides is a partial Options; nil fields leave the base value alone
type Overrides struct {
	AutoBootstrap *bool `mapstructure:"auto_bootstrap"`
	ForceIntel    *bool `mapstructure:"force_intel"`
	Stdin         *bool `mapstructure:"stdin"`
	Stdout        *bool `mapstructure:"stdout"`
	Stderr        *bool `mapstructure:"stderr"`
}

// DefaultOptions returns the built-in options for a directive.
// brewfile inherits the real streams since bundles are verbose and may
// prompt; everything else runs quietly.
func DefaultOptions(d Directive) Options {
	switch d {
	case DirectiveBrewfile:
		return Options{Stdin: true, Stdout: true, Stderr: true}
	case DirectiveBrew, DirectiveCask, DirectiveTap, DirectiveInstallBrew:
		return Options{}
	}
	return Options{}
}

// With returns o with every set override applied
func (o Options) With(ov Overrides) Options {
	if ov.AutoBootstrap != nil {
		o.AutoBootstrap = *ov.AutoBootstrap
	}
	if ov.ForceIntel != nil {
		o.ForceIntel = *ov.ForceIntel
	}
	if ov.Stdin != nil {
		o.Stdin = *ov.Stdin
	}
	if ov.Stdout != nil {
		o.Stdout = *ov.Stdout
	}
	if ov.Stderr != nil {
		o.Stderr = *ov.Stderr
	}
	return o
}

// Map returns the options keyed by option name
func (o Options) Map() map[string]bool {
	return map[string]bool{
		OptionAutoBootstrap: o.AutoBootstrap,
		OptionForceIntel:    o.ForceIntel,
		OptionStdin:         o.Stdin,
		OptionStdout:        o.Stdout,
		OptionStderr:        o.Stderr,
	}
}

// DecodeOverrides converts a host option map into Overrides.
// Values are weakly typed, so "true" and 1 both decode as true. Keys that
// are not recognized options are returned, sorted, for the caller to report.
func DecodeOverrides(raw map[string]interface{}) (Overrides, []string, error) {
	var ov Overrides
	if len(raw) == 0 {
		return ov, nil, nil
	}

	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &ov,
		WeaklyTypedInput: true,
		Metadata:         &md,
	})
	if err != nil {
		return Overrides{}, nil, errors.Wrap(err, errors.ErrInternal, "failed to create option decoder")
	}

	if err := decoder.Decode(raw); err != nil {
		return Overrides{}, nil, errors.Wrap(err, errors.ErrInvalidOption, "invalid directive options")
	}

	unused := append([]string(nil), md.Unused...)
	sort.Strings(unused)
	return ov, unused, nil
}

// Bool is a helper for building Overrides literals
func Bool(v bool) *bool {
	return &v
}
