package cli

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show the persisted notification records",
	RunE:  runState,
}

func init() {
	rootCmd.AddCommand(stateCmd)
}

func runState(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := initStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Load(cmd.Context())
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No notified services recorded.")
		return nil
	}

	keys := make([]string, 0, len(records))
	for key := range records {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "TRIP\tSCHEDULED\tSTATUS\tDELAY\tPLATFORM\tNOTIFIED AT\n")

	for _, key := range keys {
		rec := records[key]
		delay := "-"
		if rec.Status.Delay > 0 {
			delay = fmt.Sprintf("%dmin", int(rec.Status.Delay.Minutes()))
		}
		platform := "-"
		if rec.Status.PlatformAssigned() {
			platform = *rec.Status.Platform
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			rec.Trip,
			rec.Status.Scheduled.Format("2006-01-02 15:04"),
			rec.Status.Kind,
			delay,
			platform,
			rec.NotifiedAt.Format("2006-01-02 15:04:05"),
		)
	}
	w.Flush()

	return nil
}
