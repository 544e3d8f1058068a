package domain

import (
	"time"
)

// Observation is one displayed value, recorded for later inspection.
// Light mode stores lux, color mode the raw channel total, temperature mode
// the averaged degrees Celsius. Color is the pre-contrast color shown for it.
type Observation struct {
	ID        int64
	Session   string
	Mode      Mode
	Value     float64
	Color     RGB
	Timestamp time.Time
}

// NewObservation creates an observation stamped with the current time
func NewObservation(session string, mode Mode, value float64, c RGB) *Observation {
	return &Observation{
		Session:   session,
		Mode:      mode,
		Value:     value,
		Color:     c,
		Timestamp: time.Now(),
	}
}
