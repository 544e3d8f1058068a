package ports

import (
	"context"
	"time"

	"github.com/jhogsett/LightBench/internal/display"
	"github.com/jhogsett/LightBench/internal/domain"
)

// Sensor defines how to sample one of the bench sensors
// This is a PORT - adapters (I2C, Mock) will implement it
type Sensor interface {
	// Read returns the current reading
	Read(ctx context.Context) (domain.Reading, error)

	// Close releases any resources
	Close() error
}

// Prober is implemented by sensors that can check they are present at start-up
type Prober interface {
	Probe(ctx context.Context) error
}

// Strip is an addressable LED strip. Show commits buffered pixels to hardware.
type Strip interface {
	display.Strip
}

// Illuminator drives the color sensor's white LED
type Illuminator interface {
	SetIllumination(on bool) error
}

// Clock is a monotonic millisecond-resolution time source
type Clock interface {
	// Now returns time elapsed since an arbitrary fixed origin
	Now() time.Duration
}

// CommandSource delivers console bytes without blocking the loop
type CommandSource interface {
	Commands() <-chan byte
}

// MonotonicClock measures elapsed time from its creation
type MonotonicClock struct {
	start time.Time
}

// NewMonotonicClock creates a clock whose origin is now
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{start: time.Now()}
}

// Now returns the elapsed time; time.Since uses the monotonic reading
func (c *MonotonicClock) Now() time.Duration {
	return time.Since(c.start)
}
