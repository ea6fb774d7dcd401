package rail

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// StationDirectory maps CRS codes to human-readable station names for alert
// message formatting. Lookups fall back to the code itself, so the directory
// is optional.
type StationDirectory struct {
	names map[string]string
}

// NewStationDirectory builds a directory from an in-memory mapping.
func NewStationDirectory(names map[string]string) *StationDirectory {
	d := &StationDirectory{names: make(map[string]string, len(names))}
	for crs, name := range names {
		d.names[strings.ToUpper(crs)] = name
	}
	return d
}

// LoadStations reads a YAML file of CRS code to station name mappings.
func LoadStations(path string) (*StationDirectory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stations file: %w", err)
	}

	var names map[string]string
	if err := yaml.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("parse stations file: %w", err)
	}
	return NewStationDirectory(names), nil
}

// Name returns the display name for a CRS code, or the upper-cased code when
// unknown. Safe to call on a nil directory.
func (d *StationDirectory) Name(crs string) string {
	crs = strings.ToUpper(crs)
	if d == nil {
		return crs
	}
	if name, ok := d.names[crs]; ok {
		return name
	}
	return crs
}
