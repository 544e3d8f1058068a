package periph

import (
	"fmt"

	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
)

// Lamp switches the color sensor's white LED through a GPIO pin
type Lamp struct {
	pin gpio.PinOut
}

// NewLamp wraps an output pin
func NewLamp(pin gpio.PinOut) *Lamp {
	return &Lamp{pin: pin}
}

// OpenLamp looks up the named pin, e.g. "GPIO9"
func OpenLamp(name string) (*Lamp, error) {
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("gpio pin %q not found", name)
	}
	return NewLamp(pin), nil
}

// SetIllumination drives the pin high for on, low for off
func (l *Lamp) SetIllumination(on bool) error {
	level := gpio.Low
	if on {
		level = gpio.High
	}
	if err := l.pin.Out(level); err != nil {
		return fmt.Errorf("set lamp %v: %w", level, err)
	}
	return nil
}
