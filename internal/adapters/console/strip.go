// Package console provides a strip that logs frames instead of lighting LEDs,
// for running the bench without hardware.
package console

import (
	"slices"
	"sync"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog"

	"github.com/jhogsett/LightBench/internal/domain"
)

// Strip logs each changed frame as hex colors
type Strip struct {
	mu     sync.Mutex
	logger zerolog.Logger
	pixels []domain.RGB
	last   []string
}

// NewStrip creates a logging strip with n pixels
func NewStrip(logger zerolog.Logger, n int) *Strip {
	return &Strip{
		logger: logger,
		pixels: make([]domain.RGB, n),
	}
}

// Clear turns every pixel off
func (s *Strip) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.pixels)
}

// SetPixel sets pixel i; out-of-range indices are ignored
func (s *Strip) SetPixel(i int, c domain.RGB) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.pixels) {
		return
	}
	s.pixels[i] = c
}

// Show logs the frame when it differs from the last one shown
func (s *Strip) Show() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	frame := make([]string, len(s.pixels))
	lit := 0
	for i, p := range s.pixels {
		frame[i] = hex(p)
		if !p.IsOff() {
			lit++
		}
	}
	if slices.Equal(frame, s.last) {
		return nil
	}
	s.last = frame

	s.logger.Info().Int("lit", lit).Strs("pixels", frame).Msg("frame")
	return nil
}

func hex(c domain.RGB) string {
	col, _ := colorful.MakeColor(c.NRGBA())
	return col.Hex()
}
