package cli

import (
	"fmt"
	"os"

	"github.com/arthur-debert/repokit/internal/version"
	"github.com/arthur-debert/repokit/pkg/cobrax/topics"
	"github.com/arthur-debert/repokit/pkg/config"
	"github.com/arthur-debert/repokit/pkg/filesystem"
	"github.com/arthur-debert/repokit/pkg/generate"
	"github.com/arthur-debert/repokit/pkg/logging"
	"github.com/arthur-debert/repokit/pkg/style"
	"github.com/arthur-debert/repokit/pkg/topology"
	"github.com/spf13/cobra"
)

// loadPackage reads the configuration of the repository at root.
func loadPackage(root string) (topology.Package, error) {
	logger := logging.GetLogger("cli.config")

	cfg, err := config.Load(root, nil)
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	if cfg.Source != "" {
		logger.Info().Msgf(MsgUsingConfig, cfg.Source)
	} else {
		logger.Info().Msg(MsgNoConfig)
	}

	pkg, err := cfg.ToPackage()
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	return pkg, nil
}

func toStatus(s generate.Status) style.Status {
	switch s {
	case generate.StatusWritten:
		return style.StatusWritten
	case generate.StatusSkipped:
		return style.StatusSkipped
	}
	return style.StatusPlanned
}

func newGenerateCmd(opts *globalOptions) *cobra.Command {
	var dryRun, force bool

	cmd := &cobra.Command{
		Use:     "generate [files...]",
		Short:   MsgGenerateShort,
		Long:    MsgGenerateLong,
		Example: MsgGenerateExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := opts.rootDir()
			if err != nil {
				return err
			}
			pkg, err := loadPackage(root)
			if err != nil {
				return err
			}

			logger := logging.GetLogger("cli.generate")
			logger.Info().
				Str("root", root).
				Bool("dryRun", dryRun).
				Bool("force", force).
				Strs("files", args).
				Msg("Starting generate")

			result, err := generate.Generate(generate.Options{
				Root:    root,
				Package: pkg,
				Only:    args,
				DryRun:  dryRun,
				Force:   force,
				FS:      filesystem.NewOS(),
			})
			if result != nil {
				printResult(cmd, result)
			}
			if err != nil {
				return fmt.Errorf(MsgErrGenerate, err)
			}

			if dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), MsgDryRunNotice)
			}
			if result.Count(generate.StatusSkipped) > 0 && !force {
				fmt.Fprintln(cmd.OutOrStdout(), MsgSkippedHint)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, MsgFlagDryRun)
	cmd.Flags().BoolVarP(&force, "force", "f", false, MsgFlagForce)
	return cmd
}

func printResult(cmd *cobra.Command, result *generate.Result) {
	lines := make([]style.FileLine, 0, len(result.Files))
	for _, f := range result.Files {
		lines = append(lines, style.FileLine{Path: f.Path, Status: toStatus(f.Status), Size: f.Size})
	}
	renderer := style.NewRenderer(cmd.OutOrStdout())
	fmt.Fprintln(cmd.OutOrStdout(), renderer.RenderFiles(MsgGeneratedTitle, lines))
}

func newShowCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "show <file>",
		Short:   MsgShowShort,
		Example: MsgShowExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return plannedPaths(opts), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := opts.rootDir()
			if err != nil {
				return err
			}
			pkg, err := loadPackage(root)
			if err != nil {
				return err
			}
			content, err := generate.Render(pkg, args[0])
			if err != nil {
				return fmt.Errorf(MsgErrShow, args[0], err)
			}
			_, err = cmd.OutOrStdout().Write(content)
			return err
		},
	}
}

// plannedPaths feeds shell completion; errors mean no suggestions.
func plannedPaths(opts *globalOptions) []string {
	root, err := opts.rootDir()
	if err != nil {
		return nil
	}
	pkg, err := loadPackage(root)
	if err != nil {
		return nil
	}
	files, err := topology.Plan(pkg)
	if err != nil {
		return nil
	}
	return topology.Paths(files)
}

func newPlanCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "plan",
		Short:   MsgPlanShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := opts.rootDir()
			if err != nil {
				return err
			}
			pkg, err := loadPackage(root)
			if err != nil {
				return err
			}
			files, err := topology.Plan(pkg)
			if err != nil {
				return err
			}

			lines := make([]style.FileLine, 0, len(files))
			for _, f := range files {
				content, err := f.Encode()
				if err != nil {
					return err
				}
				lines = append(lines, style.FileLine{
					Path:   f.Path,
					Format: string(f.Format),
					Status: style.StatusPlanned,
					Size:   len(content),
				})
			}
			renderer := style.NewRenderer(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), renderer.RenderFiles(MsgPlanTitle+" ("+string(pkg.Kind())+")", lines))
			return nil
		},
	}
}

func newInitCmd(opts *globalOptions) *cobra.Command {
	var (
		force bool
		flags = map[string]*string{}
	)

	cmd := &cobra.Command{
		Use:     "init",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		Example: MsgInitExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := opts.rootDir()
			if err != nil {
				return err
			}

			overrides := map[string]interface{}{}
			for key, value := range flags {
				overrides[key] = *value
			}
			cfg, err := config.Load(root, overrides)
			if err != nil {
				return fmt.Errorf(MsgErrInit, err)
			}

			target, err := config.Write(filesystem.NewOS(), root, cfg, force)
			if err != nil {
				return fmt.Errorf(MsgErrInit, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, target)
			return nil
		},
	}

	for _, f := range []struct{ key, flag, usage string }{
		{"name", "name", MsgFlagName},
		{"repo", "repo", MsgFlagRepo},
		{"description", "description", MsgFlagDescription},
		{"topology", "topology", MsgFlagTopology},
		{"visibility", "visibility", MsgFlagVisibility},
		{"environment", "environment", MsgFlagEnvironment},
		{"node_version", "node-version", MsgFlagNodeVersion},
		{"license", "license", MsgFlagLicense},
		{"dir", "dir", MsgFlagDir},
	} {
		flags[f.key] = cmd.Flags().String(f.flag, "", f.usage)
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, MsgFlagInitForce)

	_ = cmd.RegisterFlagCompletionFunc("topology", fixedCompletions("one-package", "monorepo", "sub-package", "top"))
	_ = cmd.RegisterFlagCompletionFunc("visibility", fixedCompletions("public", "private"))
	_ = cmd.RegisterFlagCompletionFunc("environment", fixedCompletions("node", "library", "browser"))
	return cmd
}

func fixedCompletions(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

func newTopicsCmd(tm *topics.TopicManager) *cobra.Command {
	return &cobra.Command{
		Use:     "topics [topic]",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		Args:    cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if tm == nil || len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return tm.ListTopics(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if tm == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No help topics available.")
				return nil
			}
			if len(args) == 0 {
				tm.PrintList(cmd.OutOrStdout(), cmd.Root().Name())
				return nil
			}
			topic, ok := tm.GetTopic(args[0])
			if !ok {
				return fmt.Errorf(MsgErrTopic, args[0])
			}
			fmt.Fprint(cmd.OutOrStdout(), tm.Render(topic))
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "repokit version %s\n", version.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", version.Commit)
			fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(cmd.OutOrStdout(), true)
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}
}

// Execute runs the root command and exits with status 1 on failure.
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		renderer := style.NewRenderer(os.Stderr)
		fmt.Fprintln(os.Stderr, renderer.RenderError(err))
		os.Exit(1)
	}
}
