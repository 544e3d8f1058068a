package mock

import (
	"sync"

	"github.com/jhogsett/LightBench/internal/domain"
)

// Strip records every committed frame instead of driving hardware
type Strip struct {
	mu      sync.Mutex
	pending []domain.RGB
	frames  [][]domain.RGB
	clears  int

	// ShowErr is returned by Show if set; the frame is still recorded
	ShowErr error
}

// NewStrip creates a recording strip with n pixels, all off
func NewStrip(n int) *Strip {
	return &Strip{pending: make([]domain.RGB, n)}
}

// Clear turns every pending pixel off
func (s *Strip) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.pending)
	s.clears++
}

// SetPixel sets pixel i; out-of-range indices are ignored
func (s *Strip) SetPixel(i int, c domain.RGB) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.pending) {
		return
	}
	s.pending[i] = c
}

// Show commits the pending pixels as a frame
func (s *Strip) Show() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	frame := make([]domain.RGB, len(s.pending))
	copy(frame, s.pending)
	s.frames = append(s.frames, frame)
	return s.ShowErr
}

// Shows returns how many frames were committed
func (s *Strip) Shows() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}

// Clears returns how many times Clear was called
func (s *Strip) Clears() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clears
}

// LastFrame returns the most recently committed frame, or nil
func (s *Strip) LastFrame() []domain.RGB {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

// Lamp records the auxiliary illumination state
type Lamp struct {
	mu       sync.Mutex
	on       bool
	switches int

	// Err is returned by SetIllumination if set; the state is left unchanged
	Err error
}

// SetIllumination turns the lamp on or off
func (l *Lamp) SetIllumination(on bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Err != nil {
		return l.Err
	}
	l.on = on
	l.switches++
	return nil
}

// On reports the current state
func (l *Lamp) On() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.on
}

// Switches returns how many successful SetIllumination calls were made
func (l *Lamp) Switches() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.switches
}
