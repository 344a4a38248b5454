package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/jbclements/t-test/adapters/excel"
	"github.com/jbclements/t-test/adapters/stats/senses"
	"github.com/jbclements/t-test/internal/config"

	"github.com/spf13/cobra"
)

func newSensesCmd(cfg *config.Config) *cobra.Command {
	var file, sheet, colX, colY string

	cmd := &cobra.Command{
		Use:   "senses",
		Short: "Compare group means between two paired columns",
		Long: `Split one column into two groups using the other (a two-level column
is used as the grouping variable, otherwise a median split) and run both
t-test senses.

Example: ttest-cli senses --file trial.csv --x treated --y response`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				file = cfg.Data.ExcelFile
			}
			if sheet == "" {
				sheet = cfg.Data.ExcelSheet
			}
			if file == "" || colX == "" || colY == "" {
				return fmt.Errorf("--file, --x and --y are required")
			}

			x, y, err := excel.NewDataReader(file, sheet).PairedColumns(colX, colY)
			if err != nil {
				return err
			}

			results := senses.NewSenseEngine(cfg.Analysis.Alpha).AnalyzeAll(cmd.Context(), x, y, colX, colY)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SENSE\tP-VALUE\tEFFECT (d)\tSIGNAL\tDESCRIPTION")
			for _, r := range results {
				fmt.Fprintf(w, "%s\t%.4g\t%.3f\t%s\t%s\n", r.SenseName, r.PValue, r.EffectSize, r.Signal, r.Description)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Read columns from an .xlsx or .csv file (default EXCEL_FILE)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet to read (default EXCEL_SHEET)")
	cmd.Flags().StringVar(&colX, "x", "", "First column")
	cmd.Flags().StringVar(&colY, "y", "", "Second column")

	return cmd
}
