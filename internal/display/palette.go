package display

import (
	"math"

	"github.com/jhogsett/LightBench/internal/domain"
)

const (
	// LEDCount is the number of pixels on the strip
	LEDCount = 8

	// MeterRange is the number of meter positions, 0..MeterRange-1
	MeterRange = 512

	LuxMin = 1.0
	LuxMax = 65536.0

	TempMinC = 0.0
	TempMaxC = 100.0

	// brightnessFullScale is the raw R+G+B total treated as full brightness
	brightnessFullScale = 30000.0
	brightnessFloor     = 0.1
)

var (
	green = domain.RGB{G: 255}
	amber = domain.RGB{R: 255, G: 191}
	red   = domain.RGB{R: 255}
)

// MeterPalette colors the bar graph: 4 green, 3 amber, 1 red
var MeterPalette = [LEDCount]domain.RGB{green, green, green, green, amber, amber, amber, red}

// MeterValue maps lux onto the 0..511 meter on a log10 scale between
// LuxMin and LuxMax.
func MeterValue(lux float64) int {
	if math.IsNaN(lux) {
		return 0
	}
	l := clamp(lux, LuxMin, LuxMax)
	logMin := math.Log10(LuxMin)
	logMax := math.Log10(LuxMax)

	v := int((math.Log10(l) - logMin) / (logMax - logMin) * MeterRange)
	if v < 0 {
		return 0
	}
	if v > MeterRange-1 {
		return MeterRange - 1
	}
	return v
}

// ColorFromRaw turns mean raw channel counts into a displayable color.
// Channels are normalized by their total to keep hue, then dimmed by a
// brightness factor of total/30000 bounded to [0.1, 1].
func ColorFromRaw(r, g, b uint32) domain.RGB {
	total := float64(r) + float64(g) + float64(b)
	if total == 0 {
		return domain.Black
	}

	brightness := clamp(total/brightnessFullScale, brightnessFloor, 1.0)
	ratio := func(ch uint32) uint8 {
		n := uint8(clamp(float64(ch)*255.0/total, 0, 255))
		return uint8(float64(n) * brightness)
	}

	return domain.RGB{R: ratio(r), G: ratio(g), B: ratio(b)}
}

// IronColor maps degrees Celsius onto the black, purple, red, yellow, white
// thermal palette. Input is clamped to [TempMinC, TempMaxC].
func IronColor(celsius float64) domain.RGB {
	if math.IsNaN(celsius) {
		celsius = TempMinC
	}
	n := clamp(celsius, TempMinC, TempMaxC) / (TempMaxC - TempMinC)

	switch {
	case n < 0.25:
		return domain.RGB{
			R: uint8(n * 4 * 128),
			B: uint8(n * 4 * 255),
		}
	case n < 0.5:
		t := (n - 0.25) * 4
		return domain.RGB{
			R: uint8(128 + t*127),
			B: uint8(255 * (1 - t)),
		}
	case n < 0.75:
		t := (n - 0.5) * 4
		return domain.RGB{
			R: 255,
			G: uint8(t * 255),
		}
	default:
		t := (n - 0.75) * 4
		return domain.RGB{
			R: 255,
			G: 255,
			B: uint8(t * 255),
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
