package monitor

import (
	"fmt"

	"github.com/railwatch/railwatch/pkg/notify"
	"github.com/railwatch/railwatch/pkg/rail"
)

// FormatMessage renders the outbound alert text. Station codes resolve to
// display names when the directory knows them.
func FormatMessage(alert notify.Alert, stations *rail.StationDirectory) string {
	var status string
	switch alert.Kind {
	case notify.AlertCancelled:
		status = "CANCELLED"
	case notify.AlertDelayed:
		if alert.DelayMinutes > 0 {
			status = fmt.Sprintf("DELAYED %dmin", alert.DelayMinutes)
		} else {
			status = "DELAYED"
		}
	case notify.AlertPlatform:
		status = fmt.Sprintf("Platform %s assigned", alert.Platform)
	}

	msg := fmt.Sprintf("🚨 %s\nTrain %s %s → %s\nStatus: %s",
		alert.Trip,
		alert.Scheduled.Format("15:04"),
		stations.Name(alert.Origin),
		stations.Name(alert.Destination),
		status,
	)
	if alert.Platform != "" && alert.Kind != notify.AlertPlatform {
		msg += "\nPlatform: " + alert.Platform
	}
	return msg
}
