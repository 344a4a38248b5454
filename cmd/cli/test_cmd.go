package main

import (
	"encoding/json"
	"fmt"

	"github.com/jbclements/t-test/adapters/stats/ttest"
	"github.com/jbclements/t-test/domain/stats"
	"github.com/jbclements/t-test/internal/config"
	"github.com/jbclements/t-test/internal/report"

	"github.com/spf13/cobra"
)

type testOptions struct {
	samples     sampleOptions
	asStatistic bool
	asReport    bool
	asJSON      bool
	label       string
	alpha       float64
}

func newTestCmd(kind stats.TestKind, cfg *config.Config) *cobra.Command {
	var opts testOptions

	cmd := &cobra.Command{
		Use:   string(kind),
		Short: fmt.Sprintf("Run %s on two samples", kind.Title()),
		Long: fmt.Sprintf(`Run %s on two samples and print the two-tailed p-value.

Samples come either from comma-separated lists or from two columns of an
.xlsx or .csv file (blank cells are skipped).

Example: ttest-cli %s --a 2,1,3,4 --b 6,5,7,9
         ttest-cli %s --file data.xlsx --col-a before --col-b after --report`, kind.Title(), kind, kind),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s1, s2, err := opts.samples.load(cfg.Data)
			if err != nil {
				return err
			}
			alpha := opts.alpha
			if !cmd.Flags().Changed("alpha") {
				alpha = cfg.Analysis.Alpha
			}
			return runTest(cmd, kind, s1, s2, opts, alpha)
		},
	}

	opts.samples.bind(cmd)
	cmd.Flags().BoolVar(&opts.asStatistic, "statistic", false, "Print the t-statistic instead of the p-value")
	cmd.Flags().BoolVar(&opts.asReport, "report", false, "Print a Markdown report with every intermediate")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the full outcome as JSON")
	cmd.Flags().StringVar(&opts.label, "label", "", "Label shown in the report")
	cmd.Flags().Float64Var(&opts.alpha, "alpha", 0.05, "Significance level for the report verdict (default from TTEST_ALPHA)")

	return cmd
}

func runTest(cmd *cobra.Command, kind stats.TestKind, s1, s2 []float64, opts testOptions, alpha float64) error {
	out := cmd.OutOrStdout()

	if !opts.asReport && !opts.asJSON {
		var (
			v   float64
			err error
		)
		if kind == stats.TestStudent {
			v, err = ttest.StudentTTest(s1, s2, opts.asStatistic)
		} else {
			v, err = ttest.WelchTTest(s1, s2, opts.asStatistic)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%.17g\n", v)
		return nil
	}

	outcome, err := ttest.Run(kind, s1, s2)
	if err != nil {
		return err
	}
	run := stats.NewTestRun(opts.label, outcome, alpha)

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	}

	fmt.Fprint(out, report.RunMarkdown(run))
	return nil
}
