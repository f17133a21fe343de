// Package cli builds the repokit command tree.
package cli

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/arthur-debert/repokit/internal/version"
	"github.com/arthur-debert/repokit/pkg/cobrax/topics"
	"github.com/arthur-debert/repokit/pkg/config"
	"github.com/arthur-debert/repokit/pkg/logging"
	"github.com/arthur-debert/repokit/pkg/paths"
	"github.com/arthur-debert/repokit/pkg/style"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicsFS embed.FS

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	verbosity int
	root      string
	closeLog  func() error
}

// rootDir returns --root, or the root discovered from the working directory.
func (o *globalOptions) rootDir() (string, error) {
	if o.root != "" {
		return o.root, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	root, fallback, err := paths.FindRoot(cwd, config.FileNames)
	if err != nil {
		return "", err
	}
	if fallback {
		log.Debug().Str("root", root).Msg("No repository root found, using working directory")
	}
	return root, nil
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "repokit",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.closeLog = logging.Setup(logging.Options{
				Verbosity: opts.verbosity,
				Console:   cmd.ErrOrStderr(),
				NoColor:   !style.ColorEnabled(cmd.ErrOrStderr()),
			})
			style.Setup(cmd.OutOrStdout())
			logging.LogCommand(cmd.CommandPath(), args)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.closeLog != nil {
				_ = opts.closeLog()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&opts.root, "root", "", MsgFlagRoot)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	tm := newTopicManager()

	rootCmd.AddCommand(newGenerateCmd(opts))
	rootCmd.AddCommand(newShowCmd(opts))
	rootCmd.AddCommand(newPlanCmd(opts))
	rootCmd.AddCommand(newInitCmd(opts))
	rootCmd.AddCommand(newTopicsCmd(tm))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	if tm != nil {
		tm.Install(rootCmd)
		rootCmd.SetHelpCommandGroupID("misc")
	}

	return rootCmd
}

func newTopicManager() *topics.TopicManager {
	sub, err := fs.Sub(topicsFS, "topics")
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
		return nil
	}
	tm, err := topics.New(sub, topics.Options{Renderer: topics.RendererFor(os.Stdout)})
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
		return nil
	}
	return tm
}
