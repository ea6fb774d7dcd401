package monitor

import (
	"time"

	"github.com/google/uuid"
	"github.com/railwatch/railwatch/pkg/model"
	"github.com/railwatch/railwatch/pkg/notify"
)

// Decision is the outcome of evaluating one service. A nil Alert means
// suppress; when Alert is set, Record is the updated last-notified state the
// caller must commit.
type Decision struct {
	Alert  *notify.Alert
	Record *model.NotifiedRecord
}

// Evaluate classifies the transition between the last-alerted status for a
// service (prev, nil if it never alerted) and its freshly observed status.
// Pure function: persistence and delivery belong to the caller.
//
// Precedence when several conditions hold at once: cancelled > delayed >
// platform assigned. A cancelled train is reported as cancelled even if the
// board momentarily also shows it a platform.
func Evaluate(trip model.TripConfig, cur model.ServiceStatus, prev *model.NotifiedRecord, now time.Time) Decision {
	criteria := trip.Criteria

	switch cur.Kind {
	case model.StatusCancelled:
		if !criteria.NotifyCancelled {
			return Decision{}
		}
		// Cancellation is sticky: once alerted, later cancelled observations
		// stay quiet.
		if prev != nil && prev.Status.Kind == model.StatusCancelled {
			return Decision{}
		}
		return fire(notify.AlertCancelled, trip, cur, prev, now)

	case model.StatusDelayed:
		if !criteria.NotifyDelayed {
			return Decision{}
		}
		// Zero magnitude on a delayed status is an indeterminate "Delayed"
		// board token and always counts as past the threshold.
		if cur.Delay != 0 && cur.Delay < criteria.DelayThreshold {
			return Decision{}
		}
		// Only a new or worse delay alerts. Holding steady or improving while
		// still above threshold stays quiet.
		if prev != nil && prev.Status.Kind == model.StatusDelayed && cur.Delay <= prev.Status.Delay {
			return Decision{}
		}
		return fire(notify.AlertDelayed, trip, cur, prev, now)

	default: // on time
		if !criteria.NotifyPlatform || !cur.PlatformAssigned() {
			return Decision{}
		}
		// One alert per distinct platform value per service.
		if prev != nil && prev.Status.PlatformAssigned() && *prev.Status.Platform == *cur.Platform {
			return Decision{}
		}
		return fire(notify.AlertPlatform, trip, cur, prev, now)
	}
}

func fire(kind notify.AlertKind, trip model.TripConfig, cur model.ServiceStatus, prev *model.NotifiedRecord, now time.Time) Decision {
	alert := &notify.Alert{
		Kind:        kind,
		Trip:        trip.Name,
		Scheduled:   cur.Scheduled,
		Origin:      cur.Origin,
		Destination: cur.Destination,
	}
	if kind == notify.AlertDelayed {
		alert.DelayMinutes = int(cur.Delay.Minutes())
	}
	if cur.PlatformAssigned() {
		alert.Platform = *cur.Platform
	}

	record := &model.NotifiedRecord{
		ID:         uuid.New().String(),
		Trip:       trip.Name,
		Status:     cur,
		NotifiedAt: now,
	}
	// Upgrades overwrite the existing record in place.
	if prev != nil {
		record.ID = prev.ID
	}

	return Decision{Alert: alert, Record: record}
}
