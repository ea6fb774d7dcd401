package model

import (
	"fmt"
	"strings"
	"time"
)

// StatusKind classifies the observed condition of a scheduled departure.
type StatusKind string

const (
	StatusOnTime    StatusKind = "on_time"
	StatusDelayed   StatusKind = "delayed"
	StatusCancelled StatusKind = "cancelled"
)

// NotificationCriteria controls which status changes fire alerts for a trip.
type NotificationCriteria struct {
	NotifyCancelled bool          `json:"notify_cancelled"`
	NotifyDelayed   bool          `json:"notify_delayed"`
	NotifyPlatform  bool          `json:"notify_platform"`
	DelayThreshold  time.Duration `json:"delay_threshold"`
}

// ClockMinute is a minute-of-day offset in local time (0 = midnight).
// "24:00" is allowed as an exclusive end-of-day bound.
type ClockMinute int

// ParseClockMinute parses an "HH:MM" string. The whole input must be a
// valid clock time; trailing text is rejected.
func ParseClockMinute(s string) (ClockMinute, error) {
	if s == "24:00" {
		return ClockMinute(24 * 60), nil
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("parse clock time %q: %w", s, err)
	}
	return ClockMinute(t.Hour()*60 + t.Minute()), nil
}

func (c ClockMinute) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Window is a half-open [Start, End) time-of-day range within a single day.
type Window struct {
	Start ClockMinute `json:"start"`
	End   ClockMinute `json:"end"`
}

// Contains reports whether the time-of-day component of t falls in the window.
func (w Window) Contains(t time.Time) bool {
	m := ClockMinute(t.Hour()*60 + t.Minute())
	return w.Start <= m && m < w.End
}

func (w Window) String() string {
	return w.Start.String() + "-" + w.End.String()
}

// TripConfig is one monitored origin/destination pair. Immutable during a
// cycle; reloaded from configuration on every run.
type TripConfig struct {
	Name     string
	From     string // CRS code of the origin station
	To       string // CRS code of the destination station
	Days     []string
	Window   Window
	Criteria NotificationCriteria
}

// ActiveOn reports whether the trip is monitored on the given weekday.
// An empty days set means the trip is never active.
func (t TripConfig) ActiveOn(day time.Weekday) bool {
	for _, d := range t.Days {
		if strings.EqualFold(d, day.String()) {
			return true
		}
	}
	return false
}

// ServiceStatus is the observed condition of one scheduled departure at
// evaluation time. Never mutated, only compared.
type ServiceStatus struct {
	Scheduled   time.Time     `json:"scheduled"`
	Kind        StatusKind    `json:"kind"`
	Delay       time.Duration `json:"delay,omitempty"`
	Platform    *string       `json:"platform,omitempty"` // nil until assigned
	Origin      string        `json:"origin"`
	Destination string        `json:"destination"`
}

// PlatformAssigned reports whether the board has published a platform.
func (s ServiceStatus) PlatformAssigned() bool {
	return s.Platform != nil
}

// SamePlatform reports whether both statuses carry the same platform
// assignment, treating "not yet assigned" as distinct from any value.
func (s ServiceStatus) SamePlatform(o ServiceStatus) bool {
	if s.Platform == nil || o.Platform == nil {
		return s.Platform == nil && o.Platform == nil
	}
	return *s.Platform == *o.Platform
}

// ServiceKey is the stable identity of one scheduled departure across
// polling cycles: the same trip evaluated against the same timetabled train.
type ServiceKey struct {
	Trip      string
	Scheduled time.Time
}

// String renders the key in its persisted form.
func (k ServiceKey) String() string {
	return k.Trip + "|" + k.Scheduled.UTC().Format(time.RFC3339)
}

// NotifiedRecord is the last status for a service that actually produced an
// alert. Absence of a record means the service has never alerted.
type NotifiedRecord struct {
	ID         string        `json:"id"`
	Trip       string        `json:"trip"`
	Status     ServiceStatus `json:"status"`
	NotifiedAt time.Time     `json:"notified_at"`
}

// Key returns the service identity this record belongs to.
func (r NotifiedRecord) Key() ServiceKey {
	return ServiceKey{Trip: r.Trip, Scheduled: r.Status.Scheduled}
}

// NotifiedSet is the full persisted mapping of alerted services, keyed by
// ServiceKey.String().
type NotifiedSet map[string]NotifiedRecord
