package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Generate and merge JavaScript repository configuration"
	MsgGenerateShort   = "Write the generated configuration files"
	MsgShowShort       = "Print one generated file"
	MsgPlanShort       = "List the files the current topology produces"
	MsgInitShort       = "Create a starter repokit.toml"
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics, or one topic when named."
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgDryRunNotice   = "\nDRY RUN MODE - No changes were made"
	MsgGeneratedTitle = "Generated files"
	MsgPlanTitle      = "Planned files"
	MsgConfigWritten  = "Wrote %s\n"
	MsgUsingConfig    = "Using %s"
	MsgNoConfig       = "No repokit.toml found, using defaults and flags"
	MsgSkippedHint    = "Use --force to overwrite existing files."

	// Error messages
	MsgErrLoadConfig = "failed to load configuration: %w"
	MsgErrGenerate   = "failed to generate files: %w"
	MsgErrShow       = "failed to render %s: %w"
	MsgErrInit       = "failed to write configuration: %w"
	MsgErrTopic      = "unknown topic %q"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagRoot        = "Repository root (default: current directory)"
	MsgFlagDryRun      = "Preview changes without writing files"
	MsgFlagForce       = "Overwrite files that already exist"
	MsgFlagName        = "Package name, e.g. @acme/widgets"
	MsgFlagRepo        = "GitHub repository as owner/name"
	MsgFlagTopology    = "Repository topology (one-package, monorepo, sub-package, top)"
	MsgFlagVisibility  = "Package visibility (public, private)"
	MsgFlagEnvironment = "Target environment (node, library, browser)"
	MsgFlagNodeVersion = "Node.js major version"
	MsgFlagLicense     = "SPDX license identifier"
	MsgFlagDescription = "Package description"
	MsgFlagDir         = "Package directory inside the monorepo (sub-package only)"
	MsgFlagInitForce   = "Replace an existing repokit.toml"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/generate-long.txt
	msgGenerateLongRaw string
	MsgGenerateLong    = strings.TrimSpace(msgGenerateLongRaw)

	//go:embed msgs/generate-example.txt
	msgGenerateExampleRaw string
	MsgGenerateExample    = strings.TrimRight(msgGenerateExampleRaw, "\n")

	//go:embed msgs/init-long.txt
	msgInitLongRaw string
	MsgInitLong    = strings.TrimSpace(msgInitLongRaw)

	//go:embed msgs/init-example.txt
	msgInitExampleRaw string
	MsgInitExample    = strings.TrimRight(msgInitExampleRaw, "\n")

	//go:embed msgs/show-example.txt
	msgShowExampleRaw string
	MsgShowExample    = strings.TrimRight(msgShowExampleRaw, "\n")

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
