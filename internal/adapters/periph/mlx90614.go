package periph

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"periph.io/x/periph/conn/i2c"
	"periph.io/x/periph/conn/physic"

	"github.com/jhogsett/LightBench/internal/domain"
)

const (
	mlx90614Addr = 0x5A

	mlxRegObject1 = 0x07
	mlxErrorFlag  = 0x8000
)

var errMLXFlag = errors.New("mlx90614 error flag set")

// TemperatureSensor reads object temperature from an MLX90614
type TemperatureSensor struct {
	mu  sync.Mutex
	dev *i2c.Dev
}

// NewTemperatureSensor creates an MLX90614 sensor on bus
func NewTemperatureSensor(bus i2c.Bus) *TemperatureSensor {
	return &TemperatureSensor{dev: &i2c.Dev{Bus: bus, Addr: mlx90614Addr}}
}

// Probe performs one read to confirm the device answers
func (s *TemperatureSensor) Probe(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.read()
	return err
}

// Read returns the object temperature in Celsius
func (s *TemperatureSensor) Read(ctx context.Context) (domain.Reading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.read()
	if err != nil {
		return domain.Reading{}, err
	}
	return domain.NewTemperatureReading(celsius(t)), nil
}

func (s *TemperatureSensor) read() (physic.Temperature, error) {
	var buf [3]byte
	if err := s.dev.Tx([]byte{mlxRegObject1}, buf[:]); err != nil {
		return 0, fmt.Errorf("mlx90614 read: %w", err)
	}
	return decodeTemperature(buf)
}

// Close is a no-op; the bus is owned by the caller
func (s *TemperatureSensor) Close() error {
	return nil
}

// decodeTemperature converts the little-endian word to a temperature.
// The third byte is the packet error code and is ignored.
func decodeTemperature(buf [3]byte) (physic.Temperature, error) {
	raw := binary.LittleEndian.Uint16(buf[0:2])
	if raw&mlxErrorFlag != 0 {
		return 0, errMLXFlag
	}
	// 0.02 K per count
	return physic.Temperature(raw) * 20 * physic.MilliKelvin, nil
}

func celsius(t physic.Temperature) float64 {
	return float64(t-physic.ZeroCelsius) / float64(physic.Kelvin)
}
