package monitor

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/railwatch/railwatch/pkg/model"
	"github.com/railwatch/railwatch/pkg/rail"
)

// ErrDataShape marks a malformed provider entry. The cycle runner skips the
// service and continues with the rest of the trip.
var ErrDataShape = errors.New("malformed departure entry")

const boardClock = "15:04"

// Normalize converts one raw departure entry into a ServiceStatus. The
// scheduled "HH:MM" board time is anchored to the date of now in its
// location; the result carries the full date+time identity of the service.
func Normalize(svc rail.Service, origin, destination string, now time.Time) (model.ServiceStatus, error) {
	if svc.STD == "" {
		return model.ServiceStatus{}, fmt.Errorf("%w: missing scheduled time", ErrDataShape)
	}

	scheduled, err := anchorClock(svc.STD, now)
	if err != nil {
		return model.ServiceStatus{}, fmt.Errorf("%w: scheduled time %q", ErrDataShape, svc.STD)
	}

	status := model.ServiceStatus{
		Scheduled:   scheduled,
		Kind:        model.StatusOnTime,
		Platform:    svc.Platform,
		Origin:      strings.ToUpper(origin),
		Destination: strings.ToUpper(destination),
	}

	// Cancellation wins over any delay estimate also present.
	if svc.IsCancelled || strings.EqualFold(svc.ETD, "cancelled") {
		status.Kind = model.StatusCancelled
		return status, nil
	}

	switch {
	case svc.ETD == "" || strings.EqualFold(svc.ETD, "on time") || svc.ETD == svc.STD:
		// On time.
	case strings.EqualFold(svc.ETD, "delayed"):
		// The board reports a delay with no estimate. Zero magnitude on a
		// delayed status stands for "indeterminate" and always crosses the
		// alert threshold.
		status.Kind = model.StatusDelayed
	default:
		estimated, err := anchorClock(svc.ETD, now)
		if err != nil {
			// Unrecognized estimate token; treat as on time.
			return status, nil
		}
		delay := estimated.Sub(scheduled)
		// An estimate far behind the schedule is a departure pushed past
		// midnight, not a twenty-three-hour early train.
		if delay < -12*time.Hour {
			delay += 24 * time.Hour
		}
		if delay > 0 {
			status.Kind = model.StatusDelayed
			status.Delay = delay
		}
		// Early or equal estimates normalize to on time.
	}

	return status, nil
}

// anchorClock combines an "HH:MM" board time with the date of now.
func anchorClock(clock string, now time.Time) (time.Time, error) {
	t, err := time.Parse(boardClock, clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location()), nil
}
