package mock

import (
	"context"
	"math/rand"
	"sync"

	"github.com/jhogsett/LightBench/internal/domain"
)

// fault holds injectable read and probe errors shared by the fake sensors
type fault struct {
	mu       sync.Mutex
	readErr  error
	probeErr error
	reads    int
}

// SetError makes every following Read fail with err; nil clears it
func (f *fault) SetError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readErr = err
}

// SetProbeError makes Probe fail with err; nil clears it
func (f *fault) SetProbeError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.probeErr = err
}

// Probe reports the configured probe error
func (f *fault) Probe(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.probeErr
}

// Reads returns how many times Read was called
func (f *fault) Reads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads
}

// Close is a no-op for fake sensors
func (f *fault) Close() error {
	return nil
}

// begin counts a read and returns the injected error, if any. Caller holds mu.
func (f *fault) begin() error {
	f.reads++
	return f.readErr
}

// jitter returns base +/- variation
func jitter(base, variation float64) float64 {
	if variation == 0 {
		return base
	}
	return base + (rand.Float64()-0.5)*2*variation
}

// FakeLightSensor simulates a BH1750 light sensor for development
type FakeLightSensor struct {
	fault
	baseValue float64
	variation float64
}

// NewFakeLightSensor creates a sensor that returns realistic values
// baseValue: average lux (e.g., 500 for indoor lighting)
// variation: +/- range (e.g., 100 means 400-600)
func NewFakeLightSensor(baseValue, variation float64) *FakeLightSensor {
	return &FakeLightSensor{baseValue: baseValue, variation: variation}
}

// SetLux changes the base value. A negative value is returned as-is so
// callers can exercise invalid readings.
func (s *FakeLightSensor) SetLux(lux float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.baseValue = lux
}

// Read returns a simulated light reading
func (s *FakeLightSensor) Read(ctx context.Context) (domain.Reading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return domain.Reading{}, err
	}

	lux := jitter(s.baseValue, s.variation)
	// Variance alone never makes a reading negative
	if s.variation > 0 && lux < 0 {
		lux = 0
	}
	return domain.Reading{Kind: domain.KindLux, Lux: lux}, nil
}

// FakeColorSensor simulates a TCS34725 color sensor
type FakeColorSensor struct {
	fault
	base      domain.RawColor
	variation float64
}

// NewFakeColorSensor creates a sensor returning base +/- variation counts per channel
func NewFakeColorSensor(base domain.RawColor, variation float64) *FakeColorSensor {
	return &FakeColorSensor{base: base, variation: variation}
}

// SetRaw changes the base channel counts
func (s *FakeColorSensor) SetRaw(raw domain.RawColor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.base = raw
}

// Read returns simulated raw channel counts
func (s *FakeColorSensor) Read(ctx context.Context) (domain.Reading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return domain.Reading{}, err
	}

	ch := func(v uint16) uint16 {
		return uint16(clampCount(jitter(float64(v), s.variation)))
	}
	return domain.NewRawColorReading(ch(s.base.R), ch(s.base.G), ch(s.base.B), ch(s.base.C)), nil
}

func clampCount(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 65535 {
		return 65535
	}
	return v
}

// FakeTemperatureSensor simulates an MLX90614 IR thermometer
type FakeTemperatureSensor struct {
	fault
	baseValue float64
	variation float64
}

// NewFakeTemperatureSensor creates a sensor returning baseValue +/- variation degrees Celsius
func NewFakeTemperatureSensor(baseValue, variation float64) *FakeTemperatureSensor {
	return &FakeTemperatureSensor{baseValue: baseValue, variation: variation}
}

// SetCelsius changes the base value
func (s *FakeTemperatureSensor) SetCelsius(c float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.baseValue = c
}

// Read returns a simulated object temperature
func (s *FakeTemperatureSensor) Read(ctx context.Context) (domain.Reading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return domain.Reading{}, err
	}
	return domain.NewTemperatureReading(jitter(s.baseValue, s.variation)), nil
}
