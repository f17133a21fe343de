// rmpath deletes files and directories recursively. Build scripts use it
// in place of rm -rf so they run the same on every platform.
package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/repokit/internal/version"
	"github.com/arthur-debert/repokit/pkg/filesystem"
	"github.com/arthur-debert/repokit/pkg/logging"
	"github.com/arthur-debert/repokit/pkg/style"
	"github.com/spf13/cobra"
)

func newRootCmd(fsys filesystem.FS) *cobra.Command {
	var (
		verbosity int
		quiet     bool
	)

	cmd := &cobra.Command{
		Use:     "rmpath <path>...",
		Short:   "Delete paths recursively",
		Long:    "rmpath deletes every given file or directory, recursively.\nPaths that do not exist are ignored.",
		Version: version.Version,
		Args:    cobra.MinimumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(logging.Options{
				Verbosity: verbosity,
				Console:   cmd.ErrOrStderr(),
				NoColor:   !style.ColorEnabled(cmd.ErrOrStderr()),
			})
			logging.LogCommand(cmd.CommandPath(), args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := filesystem.RemovePaths(fsys, args...)
			if !quiet {
				for _, p := range removed {
					fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", p)
				}
			}
			return err
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	cmd.Flags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not list removed paths")
	return cmd
}

func main() {
	if err := newRootCmd(filesystem.NewOS()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.NewRenderer(os.Stderr).RenderError(err))
		os.Exit(1)
	}
}
