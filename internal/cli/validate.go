package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/nestunit/internal/errors"
	"github.com/AndreyAkinshin/nestunit/internal/suite"
)

func newValidateCmd(global *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [flags] SUITE...",
		Short: "Check configuration and suite files without running them",
		Args:  requireArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdValidate(global, args)
		},
	}
}

// cmdValidate validates the configuration and every suite file, stopping at
// the first invalid one.
func cmdValidate(opts *GlobalOptions, paths []string) error {
	if _, err := loadConfig(opts); err != nil {
		return err
	}

	files, err := suite.Discover(paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.Config("no suite files found")
	}

	cases := 0
	rows := make([][]string, 0, len(files))
	for _, f := range files {
		s, err := suite.Load(f)
		if err != nil {
			return err
		}
		cases += s.CountCases()
		rows = append(rows, []string{f, s.Name, strconv.Itoa(s.CountCases())})
	}

	if !out.Quiet() {
		out.Section("Suites")
		out.Table([]string{"File", "Suite", "Cases"}, rows)
		out.Println("")
	}
	out.ValidationSuccess("All suites are valid.")
	out.SummaryItem("Suites", strconv.Itoa(len(files)))
	out.SummaryItem("Cases", strconv.Itoa(cases))
	return nil
}
