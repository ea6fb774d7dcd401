package rail

// Location is a station reference as returned by the departures API.
type Location struct {
	Name string `json:"locationName"`
	CRS  string `json:"crs"`
}

// Service is one raw departure entry from a station board. Times are
// board-local "HH:MM" strings; ETD may also be one of the literal tokens
// "On time", "Delayed" or "Cancelled".
type Service struct {
	STD          string     `json:"std"`
	ETD          string     `json:"etd"`
	Platform     *string    `json:"platform"`
	Operator     string     `json:"operator"`
	IsCancelled  bool       `json:"isCancelled"`
	CancelReason string     `json:"cancelReason,omitempty"`
	DelayReason  string     `json:"delayReason,omitempty"`
	Destination  []Location `json:"destination"`
}

// DepartureBoard is one fetched snapshot of upcoming departures for an
// origin/destination pair.
type DepartureBoard struct {
	LocationName string    `json:"locationName"`
	CRS          string    `json:"crs"`
	Services     []Service `json:"trainServices"`
}
