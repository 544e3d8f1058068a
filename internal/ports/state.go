package ports

import (
	"time"

	"github.com/jhogsett/LightBench/internal/display"
	"github.com/jhogsett/LightBench/internal/domain"
)

// DeviceState is everything the loop mutates between iterations.
// It is owned by a single Controller and never shared across goroutines.
type DeviceState struct {
	Mode     domain.Mode
	Contrast display.Contrast

	// Cadence timestamps on the controller's clock
	LastFast    time.Duration
	LastSlow    time.Duration
	LastDisplay time.Duration

	// Aggregators are reset when their mode is entered
	ColorSamples       *display.ColorSamples
	TemperatureSamples *display.TemperatureSamples

	// Histories survive mode switches
	ColorHistory       *display.HistoryBuffer[domain.RGB]
	TemperatureHistory *display.HistoryBuffer[float64]

	lastRecord    time.Duration
	lastRetention time.Duration
}

// NewDeviceState returns the power-on state: light mode, default contrast,
// zeroed buffers.
func NewDeviceState() *DeviceState {
	return &DeviceState{
		Mode:               domain.ModeLightLevel,
		Contrast:           display.DefaultContrast,
		ColorSamples:       display.NewColorSamples(),
		TemperatureSamples: display.NewTemperatureSamples(),
		ColorHistory:       display.NewHistoryBuffer[domain.RGB](display.LEDCount),
		TemperatureHistory: display.NewHistoryBuffer[float64](display.LEDCount),
	}
}
