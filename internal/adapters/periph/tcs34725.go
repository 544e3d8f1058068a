package periph

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"periph.io/x/periph/conn/i2c"

	"github.com/jhogsett/LightBench/internal/domain"
)

const (
	tcs34725Addr = 0x29

	tcsCommand       = 0x80
	tcsAutoIncrement = 0x20

	tcsRegEnable  = 0x00
	tcsRegATime   = 0x01
	tcsRegControl = 0x0F
	tcsRegID      = 0x12
	tcsRegCData   = 0x14

	tcsEnablePON = 0x01
	tcsEnableAEN = 0x02

	// 614 ms integration at 1x gain
	tcsIntegration614ms = 0x00
	tcsGain1x           = 0x00

	tcsPowerOnDelay = 3 * time.Millisecond
)

// ColorSensor reads raw clear/red/green/blue counts from a TCS34725
type ColorSensor struct {
	mu      sync.Mutex
	dev     *i2c.Dev
	started bool
}

// NewColorSensor creates a TCS34725 sensor on bus
func NewColorSensor(bus i2c.Bus) *ColorSensor {
	return &ColorSensor{dev: &i2c.Dev{Bus: bus, Addr: tcs34725Addr}}
}

// Probe checks the device ID then configures and enables the ADC
func (s *ColorSensor) Probe(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.start()
}

func (s *ColorSensor) start() error {
	var id [1]byte
	if err := s.dev.Tx([]byte{tcsCommand | tcsRegID}, id[:]); err != nil {
		return fmt.Errorf("tcs34725 read id: %w", err)
	}
	if id[0] != 0x44 && id[0] != 0x4D {
		return fmt.Errorf("tcs34725 unexpected id %#02x", id[0])
	}

	if err := s.write(tcsRegATime, tcsIntegration614ms); err != nil {
		return err
	}
	if err := s.write(tcsRegControl, tcsGain1x); err != nil {
		return err
	}
	if err := s.write(tcsRegEnable, tcsEnablePON); err != nil {
		return err
	}
	time.Sleep(tcsPowerOnDelay)
	if err := s.write(tcsRegEnable, tcsEnablePON|tcsEnableAEN); err != nil {
		return err
	}

	s.started = true
	return nil
}

func (s *ColorSensor) write(reg, value byte) error {
	if err := s.dev.Tx([]byte{tcsCommand | reg, value}, nil); err != nil {
		return fmt.Errorf("tcs34725 write %#02x: %w", reg, err)
	}
	return nil
}

// Read returns the latest raw channel counts
func (s *ColorSensor) Read(ctx context.Context) (domain.Reading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		if err := s.start(); err != nil {
			return domain.Reading{}, err
		}
	}

	var buf [8]byte
	if err := s.dev.Tx([]byte{tcsCommand | tcsAutoIncrement | tcsRegCData}, buf[:]); err != nil {
		return domain.Reading{}, fmt.Errorf("tcs34725 read: %w", err)
	}
	raw := decodeColor(buf)
	return domain.NewRawColorReading(raw.R, raw.G, raw.B, raw.C), nil
}

// Close is a no-op; the bus is owned by the caller
func (s *ColorSensor) Close() error {
	return nil
}

// decodeColor splits the C, R, G, B little-endian words
func decodeColor(buf [8]byte) domain.RawColor {
	return domain.RawColor{
		C: binary.LittleEndian.Uint16(buf[0:2]),
		R: binary.LittleEndian.Uint16(buf[2:4]),
		G: binary.LittleEndian.Uint16(buf[4:6]),
		B: binary.LittleEndian.Uint16(buf[6:8]),
	}
}
