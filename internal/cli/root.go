package cli

import (
	"context"
	"errors"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/collapsr/collapsr/pkg/buildinfo"
)

// appName is the application name used for directories and display.
const appName = "collapsr"

// ErrNotMinimal is returned by --check when the input is not already the
// minimal set in canonical order. The caller maps it to a distinct exit code
// without printing anything.
var ErrNotMinimal = errors.New("input is not minimal")

// Execute runs the collapsr CLI and returns an error if the command fails.
//
// The root command performs the merge itself; subcommands cover shell
// completion. Logging defaults to info level on stderr and --verbose (-v)
// switches to debug. The logger is attached to the context and accessible to
// handlers via loggerFromContext.
func Execute(ctx context.Context) error {
	return newRootCommand().ExecuteContext(ctx)
}

// newRootCommand builds the root command with all flags and subcommands.
func newRootCommand() *cobra.Command {
	var verbose bool
	opts := defaultMergeOpts()

	root := &cobra.Command{
		Use:   appName + " [flags]",
		Short: "Collapse IPv4 CIDR lists into the minimal equivalent set",
		Long: `Collapsr aggregates IPv4 address ranges expressed as CIDR blocks: duplicates
are removed, ranges covered by larger ranges are discarded, and adjacent
ranges are merged into supernets. With a tolerance budget, nearly adjacent
ranges may merge as well, at the cost of covering a bounded number of extra
addresses.

CIDRs are read one per line from --input or stdin; the merged list is written
to stdout in ascending order.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.applyConfig(cmd); err != nil {
				return err
			}
			return runMerge(cmd.Context(), opts, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.Flags().StringVarP(&opts.input, "input", "i", "", "read CIDRs from file instead of stdin")
	root.Flags().StringVarP(&opts.tolerance, "tolerance", "t", "0", "extra addresses a merge may introduce: a count or a /N bitmask")
	root.Flags().BoolVar(&opts.check, "check", false, "verify the input is already minimal; no output, nonzero exit when it is not")
	root.Flags().BoolVar(&opts.stats, "stats", false, "print merge statistics to stderr")

	root.AddCommand(completionCommand())

	return root
}
