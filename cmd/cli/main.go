package main

import (
	"fmt"
	"os"

	"github.com/jbclements/t-test/domain/stats"
	"github.com/jbclements/t-test/internal"
	"github.com/jbclements/t-test/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.Default()

	rootCmd := &cobra.Command{
		Use:           "ttest-cli",
		Short:         "Two-sample Student's and Welch's t-tests from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional
			_ = godotenv.Load()
			internal.DefaultLogger = internal.NewDefaultLogger()

			loaded, err := config.Load()
			if err != nil {
				return err
			}
			*cfg = *loaded
			return nil
		},
	}

	rootCmd.AddCommand(
		newTestCmd(stats.TestStudent, cfg),
		newTestCmd(stats.TestWelch, cfg),
		newSensesCmd(cfg),
	)

	return rootCmd
}
