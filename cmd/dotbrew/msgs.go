package dotbrew

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Install Homebrew packages from a task file"
	MsgApplyShort      = "Run every task in a task file"
	MsgRunShort        = "Run a single directive"
	MsgDirectivesShort = "List directives and their default options"
	MsgConfigShort     = "Show the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgDryRunNotice = "DRY RUN MODE - nothing was installed"
	MsgVersion      = "dotbrew version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrNoCommand     = "no command specified"
	MsgErrTasksFailed   = "%d of %d tasks failed"
	MsgErrRunFailed     = "directive %s failed"
	MsgErrUnknownDirect = "unknown directive %q, expected one of: %s"

	// Flag descriptions
	MsgFlagVerbose       = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun        = "Log commands instead of running them"
	MsgFlagConfig        = "Config file (default $XDG_CONFIG_HOME/dotbrew/config.toml)"
	MsgFlagSet           = "Override a config value, e.g. --set brew.binary=/opt/homebrew/bin/brew"
	MsgFlagBaseDir       = "Directory commands run in (default: the task file's directory)"
	MsgFlagOnly          = "Run only these directives"
	MsgFlagExcept        = "Skip these directives"
	MsgFlagExitOnFailure = "Stop at the first failed task"
	MsgFlagFormat        = "Output format: auto, term, text or json"
	MsgFlagTemplate      = "Print a commented starter config file"
	MsgFlagAutoBootstrap = "Install Homebrew first when it is missing"
	MsgFlagForceIntel    = "Run under arch --x86_64"
	MsgFlagStdin         = "Inherit stdin"
	MsgFlagStdout        = "Inherit stdout"
	MsgFlagStderr        = "Inherit stderr"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/apply-long.txt
	msgApplyLongRaw string
	MsgApplyLong    = strings.TrimSpace(msgApplyLongRaw)

	//go:embed msgs/apply-example.txt
	msgApplyExampleRaw string
	MsgApplyExample    = strings.TrimRight(msgApplyExampleRaw, "\n")

	//go:embed msgs/run-long.txt
	msgRunLongRaw string
	MsgRunLong    = strings.TrimSpace(msgRunLongRaw)

	//go:embed msgs/run-example.txt
	msgRunExampleRaw string
	MsgRunExample    = strings.TrimRight(msgRunExampleRaw, "\n")

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
