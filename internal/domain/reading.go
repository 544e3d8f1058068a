package domain

import "fmt"

// ReadingKind identifies which sensor produced a Reading
type ReadingKind int

const (
	KindLux ReadingKind = iota
	KindRawColor
	KindTemperature
)

func (k ReadingKind) String() string {
	switch k {
	case KindLux:
		return "lux"
	case KindRawColor:
		return "raw_color"
	case KindTemperature:
		return "temperature"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// RawColor holds uncalibrated channel counts from the color sensor
type RawColor struct {
	R, G, B, C uint16
}

// Reading is a single sensor sample. Only the field matching Kind is meaningful.
type Reading struct {
	Kind    ReadingKind
	Lux     float64
	Raw     RawColor
	Celsius float64
}

// NewLuxReading creates a light reading with validation
func NewLuxReading(lux float64) (Reading, error) {
	// Business rule: Lux cannot be negative
	if lux < 0 {
		return Reading{}, ErrInvalidLux
	}
	return Reading{Kind: KindLux, Lux: lux}, nil
}

// NewRawColorReading creates a color reading
func NewRawColorReading(r, g, b, c uint16) Reading {
	return Reading{Kind: KindRawColor, Raw: RawColor{R: r, G: g, B: b, C: c}}
}

// NewTemperatureReading creates a temperature reading in degrees Celsius
func NewTemperatureReading(celsius float64) Reading {
	return Reading{Kind: KindTemperature, Celsius: celsius}
}

// Expect returns ErrUnexpectedReading when r is not of kind k
func (r Reading) Expect(k ReadingKind) error {
	if r.Kind != k {
		return fmt.Errorf("%w: got %s, want %s", ErrUnexpectedReading, r.Kind, k)
	}
	return nil
}

// LightCategory returns a human-readable bucket for lux readings.
// < 200 lux is low light, 200-2500 is medium, >= 2500 is high.
func (r Reading) LightCategory() string {
	switch {
	case r.Lux < 200:
		return "Low Light"
	case r.Lux < 2500:
		return "Medium Light"
	}
	return "High Light"
}
