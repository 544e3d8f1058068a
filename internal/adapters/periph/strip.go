package periph

import (
	"fmt"
	"io"
	"sync"

	"periph.io/x/periph/conn/physic"
	"periph.io/x/periph/conn/spi"
	"periph.io/x/periph/experimental/devices/nrzled"

	"github.com/jhogsett/LightBench/internal/domain"
)

// Strip buffers pixels and writes them to an NRZ LED strip (WS2812 family)
type Strip struct {
	mu     sync.Mutex
	w      io.Writer
	pixels []domain.RGB
	buf    []byte
}

// OpenStrip drives n RGB pixels through an SPI port
func OpenStrip(port spi.Port, n int) (*Strip, error) {
	opts := nrzled.DefaultOpts
	opts.NumPixels = n
	opts.Channels = 3
	// NewSPI only accepts the 2.5 MHz bit clock: three SPI bits per NRZ bit
	opts.Freq = 2500 * physic.KiloHertz

	dev, err := nrzled.NewSPI(port, &opts)
	if err != nil {
		return nil, fmt.Errorf("open nrzled: %w", err)
	}
	return newStrip(dev, n), nil
}

func newStrip(w io.Writer, n int) *Strip {
	return &Strip{
		w:      w,
		pixels: make([]domain.RGB, n),
		buf:    make([]byte, 3*n),
	}
}

// Clear sets every buffered pixel to black
func (s *Strip) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.pixels)
}

// SetPixel buffers a color; out of range indexes are ignored
func (s *Strip) SetPixel(i int, c domain.RGB) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.pixels) {
		return
	}
	s.pixels[i] = c
}

// Show writes the buffered pixels as one RGB byte stream
func (s *Strip) Show() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.pixels {
		s.buf[3*i] = p.R
		s.buf[3*i+1] = p.G
		s.buf[3*i+2] = p.B
	}
	if _, err := s.w.Write(s.buf); err != nil {
		return fmt.Errorf("write pixels: %w", err)
	}
	return nil
}
