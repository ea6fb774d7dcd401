package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/railwatch/railwatch/pkg/state"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run one monitoring cycle",
	Long: `Evaluate all configured trips once, deliver alerts for meaningful status
changes, and persist the notification state. Intended to be invoked
periodically by cron or a similar scheduler.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Serialize against an overlapping cycle still in flight.
	lock, err := state.AcquireLock(cfg.Lock.Path, cfg.LockStaleAfter())
	if err != nil {
		return fmt.Errorf("acquire cycle lock: %w", err)
	}
	defer lock.Release()

	runner, store, err := initRunner(cfg, false)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}

	printSummary(summary)
	return nil
}
