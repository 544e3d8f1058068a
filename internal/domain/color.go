package domain

import (
	"fmt"
	"image/color"
)

// RGB is a color with three 8-bit channels, independent of any strip encoding
type RGB struct {
	R, G, B uint8
}

// Black is the off color
var Black = RGB{}

// Packed returns the 0x00RRGGBB form most strip drivers accept
func (c RGB) Packed() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Unpack is the inverse of Packed. The top byte is ignored.
func Unpack(v uint32) RGB {
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// NRGBA converts to an opaque image/color value
func (c RGB) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// IsOff reports whether all channels are zero
func (c RGB) IsOff() bool {
	return c == Black
}

func (c RGB) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.R, c.G, c.B)
}
