package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/arthur-debert/dotbrew/pkg/brew"
	"github.com/arthur-debert/dotbrew/pkg/errors"
	"github.com/arthur-debert/dotbrew/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
)

// EnvPrefix is stripped from environment variables before they are mapped
// onto config keys: DOTBREW_BREW_CHECK_STRATEGY -> brew.check_strategy
const EnvPrefix = "DOTBREW_"

// Config is the application configuration
type Config struct {
	Brew    Brew    `koanf:"brew" toml:"brew"`
	Logging Logging `koanf:"logging" toml:"logging"`
}

// Brew holds the settings the brew handler runs with
type Brew struct {
	Binary           string `koanf:"binary" toml:"binary"`
	Shell            string `koanf:"shell" toml:"shell"`
	InstallScriptURL string `koanf:"install_script_url" toml:"install_script_url"`
	CaskTap          string `koanf:"cask_tap" toml:"cask_tap"`
	Prefix           string `koanf:"prefix" toml:"prefix"`
	CheckStrategy    string `koanf:"check_strategy" toml:"check_strategy"`
}

// Logging holds logging settings
type Logging struct {
	Verbosity int `koanf:"verbosity" toml:"verbosity"`
}

// LoadOptions selects the sources Load reads
type LoadOptions struct {
	// Path is an explicit config file. When empty the XDG config file is
	// used if it exists.
	Path string

	// Overrides are applied last, keyed by dotted path ("brew.binary")
	Overrides map[string]interface{}
}

// Load builds the configuration from every layer, lowest precedence first:
// embedded defaults, config file, environment, overrides
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User config file
	path, err := configFilePath(opts.Path)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
				WithDetail("path", path)
		}
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Explicit overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	cfg.Brew.Prefix = resolvePrefix(cfg.Brew.Prefix, os.Getenv, runtime.GOOS, runtime.GOARCH)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// configFilePath returns the file to load, or "" when there is none.
// An explicit path must exist; the default one is optional.
func configFilePath(explicit string) (string, error) {
	if explicit != "" {
		path := paths.ExpandHome(explicit)
		if _, err := os.Stat(path); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not found", path).
				WithDetail("path", path)
		}
		return path, nil
	}

	path := paths.ConfigFilePath()
	if _, err := os.Stat(path); err != nil {
		return "", nil
	}
	return path, nil
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

// envKey maps DOTBREW_SECTION_SOME_KEY to section.some_key. Only the first
// underscore separates the section, since keys contain underscores.
func envKey(s string) string {
	return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
}

// resolvePrefix fills an empty prefix from HOMEBREW_PREFIX, then from the
// platform's standard location
func resolvePrefix(prefix string, getenv func(string) string, goos, goarch string) string {
	if prefix != "" {
		return prefix
	}
	if fromEnv := getenv("HOMEBREW_PREFIX"); fromEnv != "" {
		return fromEnv
	}
	if goos == "darwin" && goarch == "arm64" {
		return "/opt/homebrew"
	}
	return "/usr/local"
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Brew.Binary) == "" {
		return errors.New(errors.ErrConfigValid, "brew.binary must not be empty").
			WithDetail("key", "brew.binary")
	}
	if strings.TrimSpace(c.Brew.Shell) == "" {
		return errors.New(errors.ErrConfigValid, "brew.shell must not be empty").
			WithDetail("key", "brew.shell")
	}
	switch brew.CheckStrategy(c.Brew.CheckStrategy) {
	case brew.CheckQuery, brew.CheckPrefix:
	default:
		return errors.Newf(errors.ErrConfigValid, "brew.check_strategy must be %q or %q, got %q",
			brew.CheckQuery, brew.CheckPrefix, c.Brew.CheckStrategy).
			WithDetail("key", "brew.check_strategy")
	}
	if c.Logging.Verbosity < 0 {
		return errors.Newf(errors.ErrConfigValid, "logging.verbosity must not be negative, got %d", c.Logging.Verbosity).
			WithDetail("key", "logging.verbosity")
	}
	return nil
}

// BrewSettings converts the brew section into handler settings
func (c *Config) BrewSettings() brew.Settings {
	return brew.Settings{
		Binary:           c.Brew.Binary,
		Shell:            c.Brew.Shell,
		InstallScriptURL: c.Brew.InstallScriptURL,
		CaskTap:          c.Brew.CaskTap,
		Prefix:           c.Brew.Prefix,
		CheckStrategy:    brew.CheckStrategy(c.Brew.CheckStrategy),
	}
}

// TOML renders the effective configuration
func (c *Config) TOML() ([]byte, error) {
	out, err := gotoml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return out, nil
}

// ParseOverrides turns "key=value" pairs into an overrides map
func ParseOverrides(pairs []string) (map[string]interface{}, error) {
	overrides := make(map[string]interface{}, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, "invalid setting %q, expected key=value", pair)
		}
		overrides[key] = value
	}
	return overrides, nil
}
