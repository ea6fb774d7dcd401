package notify

import (
	"context"
	"time"
)

// AlertKind identifies the status change an alert reports.
type AlertKind string

const (
	AlertCancelled AlertKind = "cancelled" // service withdrawn
	AlertDelayed   AlertKind = "delayed"   // delay crossed threshold or worsened
	AlertPlatform  AlertKind = "platform"  // platform assigned or changed
)

// Alert describes one meaningful status change for a monitored service.
type Alert struct {
	Kind         AlertKind `json:"kind"`
	Trip         string    `json:"trip"`
	Scheduled    time.Time `json:"scheduled"`
	Origin       string    `json:"origin"`
	Destination  string    `json:"destination"`
	DelayMinutes int       `json:"delay_minutes,omitempty"`
	Platform     string    `json:"platform,omitempty"`
	Message      string    `json:"message"`
}

// Notifier delivers alerts to an external channel.
type Notifier interface {
	// Name returns the notifier identifier.
	Name() string

	// Send delivers one alert. Implementations must be safe for concurrent use.
	Send(ctx context.Context, alert Alert) error
}
