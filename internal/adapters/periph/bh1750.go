// Package periph drives the bench hardware through periph.io: the three I2C
// sensors, the color sensor's white LED on a GPIO pin and the NRZ LED strip
// on an SPI port.
package periph

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"

	"periph.io/x/periph/conn/i2c"

	"github.com/jhogsett/LightBench/internal/domain"
)

const (
	bh1750Addr = 0x23

	bh1750PowerOn        = 0x01
	bh1750ContinuousHigh = 0x10
)

// LightSensor reads ambient lux from a BH1750
type LightSensor struct {
	mu      sync.Mutex
	dev     *i2c.Dev
	started bool
}

// NewLightSensor creates a BH1750 sensor on bus
func NewLightSensor(bus i2c.Bus) *LightSensor {
	return &LightSensor{dev: &i2c.Dev{Bus: bus, Addr: bh1750Addr}}
}

// Probe powers the sensor up in continuous high resolution mode
func (s *LightSensor) Probe(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.start()
}

func (s *LightSensor) start() error {
	if err := s.dev.Tx([]byte{bh1750PowerOn}, nil); err != nil {
		return fmt.Errorf("bh1750 power on: %w", err)
	}
	if err := s.dev.Tx([]byte{bh1750ContinuousHigh}, nil); err != nil {
		return fmt.Errorf("bh1750 set mode: %w", err)
	}
	s.started = true
	return nil
}

// Read returns the latest lux measurement
func (s *LightSensor) Read(ctx context.Context) (domain.Reading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		if err := s.start(); err != nil {
			return domain.Reading{}, err
		}
	}

	var buf [2]byte
	if err := s.dev.Tx(nil, buf[:]); err != nil {
		return domain.Reading{}, fmt.Errorf("bh1750 read: %w", err)
	}
	return domain.NewLuxReading(decodeLux(buf))
}

// Close is a no-op; the bus is owned by the caller
func (s *LightSensor) Close() error {
	return nil
}

// decodeLux converts a big-endian measurement count to lux
func decodeLux(buf [2]byte) float64 {
	return float64(binary.BigEndian.Uint16(buf[:])) / 1.2
}
