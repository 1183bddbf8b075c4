package cli

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/nestunit/internal/errors"
	"github.com/AndreyAkinshin/nestunit/internal/report"
)

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary [REPORT]",
		Short: "Summarize a JSON report written by run --format json",
		Example: `  nestunit run --format json math.yaml | nestunit summary
  nestunit summary report.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return &errors.NestunitError{Kind: errors.KindEnvironment, Message: "cannot read report", Cause: err}
				}
				defer func() { _ = f.Close() }()
				input = f
			}
			return cmdSummary(input)
		},
	}
}

// cmdSummary parses a JSON report and prints its summary.
func cmdSummary(r io.Reader) error {
	var doc report.Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return errors.Configf("no report found in input: %v", err)
	}
	if doc.RunID == "" && len(doc.Suites) == 0 {
		return errors.Config("no report found in input")
	}

	out.Debug("run id %s", doc.RunID)
	report.PrintSummary(out, &doc.Summary, len(doc.Suites))

	if doc.Summary.Failed > 0 {
		return errors.TestFailures("", doc.Summary.Failed, doc.Summary.Total)
	}
	return nil
}
