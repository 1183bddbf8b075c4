package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/nestunit/internal/config"
	"github.com/AndreyAkinshin/nestunit/internal/errors"
	"github.com/AndreyAkinshin/nestunit/internal/output"
	"github.com/AndreyAkinshin/nestunit/internal/report"
	"github.com/AndreyAkinshin/nestunit/internal/suite"
	"github.com/AndreyAkinshin/nestunit/pkg/unit"
)

// runOptions holds flags of the run command.
type runOptions struct {
	*GlobalOptions
	Format string
	Output string
}

func newRunCmd(global *GlobalOptions) *cobra.Command {
	opts := &runOptions{GlobalOptions: global}

	cmd := &cobra.Command{
		Use:   "run [flags] SUITE...",
		Short: "Execute suite files and report the results",
		Long: `Execute every suite file given, or found below the given directories,
each in its own engine named after the suite, and report the result tree.`,
		Example: `  nestunit run tests/
  nestunit run --format json --output report.json math.yaml`,
		Args: requireArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdRun(opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "report format: console or json (default from config)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the report to a file instead of stdout")
	return cmd
}

// cmdRun loads the configuration and every suite, executes them and
// reports. Returns a test failure error when any test failed.
func cmdRun(opts *runOptions, paths []string) error {
	cfg, err := loadConfig(opts.GlobalOptions)
	if err != nil {
		return err
	}
	if opts.Format != "" {
		if err := config.ValidateFormat(opts.Format); err != nil {
			return errors.Configf("--format: %v", err)
		}
		cfg.Report.Format = opts.Format
	}
	applyColor(cfg, opts.GlobalOptions)

	suites, err := loadSuites(paths)
	if err != nil {
		return err
	}

	dest, closeDest, err := openDestination(opts.Output)
	if err != nil {
		return err
	}
	defer closeDest()

	var sink unit.Sink
	var jsonSink *report.JSONSink
	switch cfg.Report.Format {
	case "json":
		jsonSink = report.NewJSONSink()
		sink = jsonSink
		out.Debug("run id %s", jsonSink.RunID())
	default:
		w := out
		if dest != out.Out() {
			w = output.NewWithWriters(dest, io.Discard, false)
		}
		// Passing results are hidden in quiet mode regardless of config.
		sink = report.NewConsoleSink(w, cfg.Report.ShowPassedResults() && !out.Quiet())
	}

	total := report.Counts{}
	for _, s := range suites {
		counter := &report.Counter{}
		e, err := suite.NewEngine(s, cfg.Comparison)
		if err != nil {
			return errors.Validation(s.Path, err)
		}
		suite.Execute(e, s)
		e.WriteReport(report.Tee(sink, counter))
		out.Debug("%s: %d passed, %d failed", s.Path, counter.Counts.Passed, counter.Counts.Failed)
		total.Add(&counter.Counts)
	}

	if jsonSink != nil {
		if err := jsonSink.Encode(dest); err != nil {
			return &errors.NestunitError{Kind: errors.KindEnvironment, Message: "cannot write report", Cause: err}
		}
	}
	if jsonSink == nil || dest != out.Out() {
		report.PrintSummary(out, &total, len(suites))
	}

	if total.Failed > 0 {
		return errors.TestFailures("", total.Failed, total.Total)
	}
	return nil
}

// loadConfig resolves the run configuration and prints its warnings.
func loadConfig(opts *GlobalOptions) (*config.Config, error) {
	cfg, warnings, err := config.Resolve(opts.ConfigPath)
	for _, w := range warnings {
		out.Warning("%s", w)
	}
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &errors.NestunitError{Kind: errors.KindEnvironment, Message: "cannot read config", Cause: err}
		}
		return nil, &errors.NestunitError{Kind: errors.KindConfig, Message: "invalid config", Cause: err}
	}
	return cfg, nil
}

// loadSuites discovers and loads every suite. All files are loaded before
// any is executed; every invalid file is reported. The returned error has
// the kind of the first failure.
func loadSuites(paths []string) ([]*suite.Suite, error) {
	files, err := suite.Discover(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.Config("no suite files found")
	}

	var suites []*suite.Suite
	var failed []error
	for _, f := range files {
		s, err := suite.Load(f)
		if err != nil {
			out.ErrorPrefix("%v", err)
			failed = append(failed, err)
			continue
		}
		out.Debug("loaded %s (%d cases)", f, s.CountCases())
		suites = append(suites, s)
	}
	if len(failed) > 0 {
		out.Hint("Run 'nestunit validate' on these files for details.")
		kind := errors.KindValidation
		var ne *errors.NestunitError
		if errors.As(failed[0], &ne) {
			kind = ne.Kind
		}
		return nil, &errors.NestunitError{
			Kind:    kind,
			Message: fmt.Sprintf("%d of %d suite files could not be loaded", len(failed), len(files)),
		}
	}
	return suites, nil
}

// applyColor decides whether output is colored: --no-color and NO_COLOR
// win, then the report.color setting.
func applyColor(cfg *config.Config, opts *GlobalOptions) {
	color := out.Color()
	switch {
	case opts.NoColor || os.Getenv("NO_COLOR") != "":
		color = false
	case cfg.Report.Color == "always":
		color = true
	case cfg.Report.Color == "never":
		color = false
	}
	out.SetColor(color)
}

// openDestination returns the writer receiving the report.
func openDestination(path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return out.Out(), func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, &errors.NestunitError{
			Kind:    errors.KindEnvironment,
			Message: fmt.Sprintf("cannot create %s", path),
			Cause:   err,
		}
	}
	return f, func() { _ = f.Close() }, nil
}
