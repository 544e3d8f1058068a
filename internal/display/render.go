package display

import (
	"fmt"

	"github.com/jhogsett/LightBench/internal/domain"
)

// Strip is the pixel sink renderers draw into. Show commits the frame.
type Strip interface {
	Clear()
	SetPixel(i int, c domain.RGB)
	Show() error
}

// Frame is the post-contrast color of every LED after a render
type Frame [LEDCount]domain.RGB

const segmentSize = MeterRange / LEDCount

// subSteps is the number of intensity steps within one meter segment
const subSteps = 16

// MeterLayout describes the bar for a meter value: how many LEDs are on and
// the pre-contrast color of the last (partial) one.
func MeterLayout(value int) (on int, head domain.RGB) {
	if value < 0 {
		value = 0
	}
	if value > MeterRange-1 {
		value = MeterRange - 1
	}

	on = value/segmentSize + 1
	if on > LEDCount {
		on = LEDCount
	}

	// The partial LED never drops below one step so the bar always shows.
	remain := (value % segmentSize) * subSteps / segmentSize
	if remain < 1 {
		remain = 1
	}
	head = scale(MeterPalette[on-1], uint(remain), subSteps)
	return on, head
}

// MeterFrame computes the bar graph for value without touching a strip
func MeterFrame(value int, level Contrast) Frame {
	var f Frame
	on, head := MeterLayout(value)
	for i := 0; i < on-1; i++ {
		f[i] = Apply(MeterPalette[i], level)
	}
	f[on-1] = Apply(head, level)
	return f
}

// RenderMeter clears the strip and draws the bar for value
func RenderMeter(s Strip, value int, level Contrast) (Frame, error) {
	f := MeterFrame(value, level)
	on, _ := MeterLayout(value)

	s.Clear()
	for i := 0; i < on; i++ {
		s.SetPixel(i, f[i])
	}
	return f, show(s)
}

// RenderColorHistory draws history slot i on LED i
func RenderColorHistory(s Strip, h *HistoryBuffer[domain.RGB], level Contrast) (Frame, error) {
	var f Frame
	for i := range f {
		f[i] = Apply(h.At(i), level)
		s.SetPixel(i, f[i])
	}
	return f, show(s)
}

// RenderTemperatureHistory maps each stored temperature through IronColor at
// render time, so contrast changes apply to the whole history at once.
func RenderTemperatureHistory(s Strip, h *HistoryBuffer[float64], level Contrast) (Frame, error) {
	var f Frame
	for i := range f {
		f[i] = Apply(IronColor(h.At(i)), level)
		s.SetPixel(i, f[i])
	}
	return f, show(s)
}

func show(s Strip) error {
	if err := s.Show(); err != nil {
		return fmt.Errorf("show frame: %w", err)
	}
	return nil
}
