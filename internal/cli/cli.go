// Package cli provides command-line interface functionality for nestunit.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/nestunit/internal/config"
	"github.com/AndreyAkinshin/nestunit/internal/errors"
	"github.com/AndreyAkinshin/nestunit/internal/output"
)

// Version is set at build time.
var Version = "dev"

// out is the shared output writer for CLI commands.
var out = output.New()

// GlobalOptions holds flags shared by every command.
type GlobalOptions struct {
	ConfigPath string
	NoColor    bool
	Quiet      bool
	Verbose    bool
}

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	root := newRootCmd()
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		var ne *errors.NestunitError
		if !errors.As(err, &ne) {
			// Errors raised by cobra itself are usage errors.
			err = errors.Config(err.Error())
		}
		if !isTestFailure(err) {
			out.ErrorPrefix("%v", err)
		}
		return errors.GetExitCode(err)
	}
	return errors.ExitSuccess
}

func newRootCmd() *cobra.Command {
	opts := &GlobalOptions{}

	root := &cobra.Command{
		Use:   "nestunit",
		Short: "Run declarative unit test suites",
		Long: `nestunit runs suites of grouped assertions written in YAML or JSON and
reports a tree of results.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			applyVerbosityToOutput(opts)
		},
	}
	root.SetOut(out.Out())
	root.SetVersionTemplate("nestunit {{.Version}}\n")
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Config(err.Error())
	})

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default: ./"+config.DefaultFileName+")")
	flags.BoolVar(&opts.NoColor, "no-color", false, "disable colored output")
	flags.BoolVarP(&opts.Quiet, "quiet", "q", false, "print failures and the summary only")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "print diagnostic messages")

	root.AddCommand(
		newRunCmd(opts),
		newValidateCmd(opts),
		newSummaryCmd(),
		newVersionCmd(),
	)
	return root
}

// applyVerbosityToOutput configures the output writer based on verbosity settings.
func applyVerbosityToOutput(opts *GlobalOptions) {
	out.SetQuiet(opts.Quiet)
	out.SetVerbose(opts.Verbose && !opts.Quiet)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the nestunit version",
		Args:  noArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out.Println("nestunit %s", Version)
		},
	}
}

// noArgs rejects positional arguments with a usage error.
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return errors.Configf("%s: unexpected argument %q", cmd.Name(), args[0])
	}
	return nil
}

// requireArgs rejects an empty argument list with a usage error.
func requireArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return errors.Configf("%s: at least one suite file or directory is required", cmd.Name())
	}
	return nil
}

func isTestFailure(err error) bool {
	var ne *errors.NestunitError
	return errors.As(err, &ne) && ne.Kind == errors.KindTestFailure
}
