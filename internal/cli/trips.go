package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/railwatch/railwatch/pkg/monitor"
)

var tripsCmd = &cobra.Command{
	Use:   "trips",
	Short: "List configured trips and whether each is active now",
	RunE:  runTrips,
}

func init() {
	rootCmd.AddCommand(tripsCmd)
}

func runTrips(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	trips, err := cfg.TripModels()
	if err != nil {
		return err
	}
	if len(trips) == 0 {
		fmt.Println("No trips configured.")
		return nil
	}

	now := time.Now()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "NAME\tROUTE\tDAYS\tWINDOW\tACTIVE NOW\n")

	for _, trip := range trips {
		active := "no"
		if monitor.Active(trip, now) {
			active = "yes"
		}
		days := strings.Join(trip.Days, ",")
		if days == "" {
			days = "-"
		}
		fmt.Fprintf(w, "%s\t%s → %s\t%s\t%s\t%s\n",
			trip.Name, trip.From, trip.To, days, trip.Window, active)
	}
	w.Flush()

	return nil
}
