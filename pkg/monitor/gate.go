package monitor

import (
	"time"

	"github.com/railwatch/railwatch/pkg/model"
)

// Active reports whether a trip should be evaluated at the given local time:
// the weekday must be in the trip's active days and the time of day must fall
// in [start, end). A trip with an empty days set is permanently inactive.
func Active(trip model.TripConfig, now time.Time) bool {
	if !trip.ActiveOn(now.Weekday()) {
		return false
	}
	return trip.Window.Contains(now)
}
