package display

import "github.com/jhogsett/LightBench/internal/domain"

// Contrast is the global 0-15 attenuation applied to every rendered pixel
type Contrast uint8

const (
	ContrastMin     Contrast = 0
	ContrastMax     Contrast = 15
	DefaultContrast Contrast = 8
)

// Increase returns the next level up and whether it changed
func (c Contrast) Increase() (Contrast, bool) {
	if c >= ContrastMax {
		return ContrastMax, c != ContrastMax
	}
	return c + 1, true
}

// Decrease returns the next level down and whether it changed.
// Levels above ContrastMax are clamped before stepping.
func (c Contrast) Decrease() (Contrast, bool) {
	if c > ContrastMax {
		c = ContrastMax
	}
	if c == ContrastMin {
		return ContrastMin, false
	}
	return c - 1, true
}

// Apply scales each channel by level/15 with integer division.
// Levels above ContrastMax are treated as ContrastMax.
func Apply(c domain.RGB, level Contrast) domain.RGB {
	if level > ContrastMax {
		level = ContrastMax
	}
	return scale(c, uint(level), uint(ContrastMax))
}

func scale(c domain.RGB, num, den uint) domain.RGB {
	return domain.RGB{
		R: uint8(uint(c.R) * num / den),
		G: uint8(uint(c.G) * num / den),
		B: uint8(uint(c.B) * num / den),
	}
}
