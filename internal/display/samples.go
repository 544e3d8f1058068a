package display

import (
	"gonum.org/v1/gonum/stat"

	"github.com/jhogsett/LightBench/internal/domain"
)

// SampleCount is the number of slots averaged per display tick
const SampleCount = 10

// ColorSamples aggregates raw R, G, B triplets
type ColorSamples struct {
	buf *SampleBuffer[[3]uint16]
}

func NewColorSamples() *ColorSamples {
	return &ColorSamples{buf: NewSampleBuffer[[3]uint16](SampleCount)}
}

// Record stores the R, G, B channels of raw; the clear channel is dropped
func (s *ColorSamples) Record(raw domain.RawColor) {
	s.buf.Record([3]uint16{raw.R, raw.G, raw.B})
}

// Mean averages every slot per channel, always dividing by SampleCount
func (s *ColorSamples) Mean() (r, g, b uint32) {
	for _, v := range s.buf.Values() {
		r += uint32(v[0])
		g += uint32(v[1])
		b += uint32(v[2])
	}
	n := uint32(s.buf.Cap())
	return r / n, g / n, b / n
}

func (s *ColorSamples) Reset()      { s.buf.Reset() }
func (s *ColorSamples) Cursor() int { return s.buf.Cursor() }

// TemperatureSamples aggregates degrees Celsius
type TemperatureSamples struct {
	buf *SampleBuffer[float64]
}

func NewTemperatureSamples() *TemperatureSamples {
	return &TemperatureSamples{buf: NewSampleBuffer[float64](SampleCount)}
}

func (s *TemperatureSamples) Record(celsius float64) { s.buf.Record(celsius) }

// Mean is the arithmetic mean over all slots, unwritten ones included
func (s *TemperatureSamples) Mean() float64 {
	return stat.Mean(s.buf.Values(), nil)
}

func (s *TemperatureSamples) Reset()      { s.buf.Reset() }
func (s *TemperatureSamples) Cursor() int { return s.buf.Cursor() }
