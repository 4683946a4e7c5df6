package main

// Command names
const (
	CmdNameRender   = "render"
	CmdNameStrip    = "strip"
	CmdNameUnwrap   = "unwrap"
	CmdNameContains = "contains"
	CmdNameFind     = "find"
	CmdNameList     = "list"
	CmdNameVersion  = "version"
	CmdNameHelp     = "help"
)

// Flag names - long form
const (
	FlagConfig   = "config"
	FlagInput    = "input"
	FlagOutput   = "output"
	FlagName     = "name"
	FlagStrategy = "strategy"
	FlagQuiet    = "quiet"
	FlagFormat   = "format"
	FlagVerbose  = "verbose"
)

// Flag names - short form
const (
	FlagConfigShort   = "c"
	FlagInputShort    = "i"
	FlagOutputShort   = "o"
	FlagNameShort     = "n"
	FlagStrategyShort = "s"
	FlagQuietShort    = "q"
	FlagFormatShort   = "F"
	FlagVerboseShort  = "v"
)

// Flag default values
const (
	FlagDefaultInput  = "-" // stdin
	FlagDefaultOutput = "-" // stdout
	FlagDefaultFormat = "text"
)

// Output formats
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)

// Exit codes
const (
	ExitCodeSuccess    = 0
	ExitCodeError      = 1
	ExitCodeUsageError = 2
	ExitCodeNotFound   = 3
	ExitCodeInputError = 4
)

// Input source indicators
const (
	InputSourceStdin = "-"
)

// Environment variables
const (
	EnvConfigPath = "SHORTCODE_CONFIG"
)

// Error messages - ALL must be constants
const (
	ErrMsgUnknownCommand    = "unknown command"
	ErrMsgInvalidFlags      = "invalid flags"
	ErrMsgMissingName       = "shortcode name required"
	ErrMsgInvalidStrategy   = "invalid error strategy"
	ErrMsgReadFileFailed    = "failed to read input"
	ErrMsgWriteOutputFailed = "failed to write output"
	ErrMsgLoadConfigFailed  = "failed to load config"
	ErrMsgCompileFailed     = "compilation failed"
	ErrMsgInvalidFormat     = "invalid output format"
	ErrMsgUnexpectedArgs    = "unexpected arguments"
)

// Help text templates
const (
	HelpMainUsage = `go-shortcode - WordPress-style shortcode CLI

Usage:
    shortcode <command> [options]

Commands:
    render      Compile shortcodes in the input
    strip       Remove shortcodes and their content
    unwrap      Remove shortcode tags and keep their content
    contains    Check whether the input uses a shortcode
    find        List the shortcodes used in the input
    list        List registered shortcodes
    version     Show version information
    help        Show help for a command

Shortcodes are defined in a YAML config file (-c or $SHORTCODE_CONFIG).

Use "shortcode help <command>" for more information about a command.`

	HelpRenderUsage = `Compile shortcodes in the input

Usage:
    shortcode render [options]

Options:
    -c, --config <file>       YAML config with definitions and storage
    -i, --input <file>        Input file (default: stdin)
    -o, --output <file>       Output file (default: stdout)
    -s, --strategy <name>     Error strategy: throw, default, remove, keepraw, log
    -v, --verbose             Log to stderr

Examples:
    shortcode render -c shortcodes.yaml -i post.txt
    cat post.txt | shortcode render -c shortcodes.yaml -s keepraw`

	HelpStripUsage = `Remove shortcodes and their content

Usage:
    shortcode strip [options]

Options:
    -c, --config <file>       YAML config with definitions and storage
    -i, --input <file>        Input file (default: stdin)
    -o, --output <file>       Output file (default: stdout)

Examples:
    shortcode strip -c shortcodes.yaml -i post.txt`

	HelpUnwrapUsage = `Remove shortcode tags and keep their content

Usage:
    shortcode unwrap [options]

Options:
    -c, --config <file>       YAML config with definitions and storage
    -i, --input <file>        Input file (default: stdin)
    -o, --output <file>       Output file (default: stdout)

Examples:
    shortcode unwrap -c shortcodes.yaml -i post.txt`

	HelpContainsUsage = `Check whether the input uses a shortcode

Exits with 0 when the shortcode is found and 3 when it is not.

Usage:
    shortcode contains -n <name> [options]

Options:
    -n, --name <name>         Shortcode name (required)
    -c, --config <file>       YAML config with definitions and storage
    -i, --input <file>        Input file (default: stdin)
    -q, --quiet               Only set the exit code

Examples:
    shortcode contains -c shortcodes.yaml -n gallery -i post.txt`

	HelpFindUsage = `List the shortcodes used in the input

Usage:
    shortcode find [options]

Options:
    -c, --config <file>       YAML config with definitions and storage
    -i, --input <file>        Input file (default: stdin)
    -F, --format <format>     Output format: text, json (default: text)

Examples:
    shortcode find -c shortcodes.yaml -i post.txt -F json`

	HelpListUsage = `List registered shortcodes

Usage:
    shortcode list [options]

Options:
    -c, --config <file>       YAML config with definitions and storage
    -F, --format <format>     Output format: text, json (default: text)`

	HelpVersionUsage = `Show version information

Usage:
    shortcode version [options]

Options:
    -F, --format <format>   Output format: text, json (default: text)`

	HelpHelpUsage = `Show help for a command

Usage:
    shortcode help [command]

Commands:
    render, strip, unwrap, contains, find, list, version`
)

// Version output format templates
const (
	VersionTextTemplate = "go-shortcode version %s\nCommit: %s\nBranch: %s\nBuilt: %s\nGo: %s"
	VersionUnknown      = "unknown"
)

// Text output format templates
const (
	FindTextFormat    = "%d:%d\t%s\t%s\n"
	ContainsTextTrue  = "true"
	ContainsTextFalse = "false"
	ListTextFormat    = "%s\t%s\n"
	FindTextNoneFound = "no shortcodes found"
	ListTextNoneFound = "no shortcodes registered"
)

// CLI metadata
const (
	CLIName        = "shortcode"
	CLIDescription = "WordPress-style shortcode CLI"
)

// File permission constant
const (
	FilePermissions = 0644
)

// Format string constants
const (
	FmtErrorWithDetail = "%s: %s\n"
	FmtErrorWithCause  = "%s: %v\n"
	FmtNewline         = "\n"
)
