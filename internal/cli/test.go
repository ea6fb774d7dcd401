package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Run a dry cycle without delivering or persisting",
	Long: `Perform the full fetch-and-evaluate pass but skip alert delivery and state
persistence. Exits 0 on a clean evaluation and 2 when any departures fetch
failed, so schedulers and setup scripts can tell the two apart.`,
	RunE: runTest,
}

func init() {
	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	runner, store, err := initRunner(cfg, true)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println("Dry run - no alerts delivered, no state persisted.")
	printSummary(summary)

	if summary.FetchFailures > 0 {
		return errFetchFailed
	}
	return nil
}
