package domain

import "fmt"

// Mode selects which sensor, aggregator and renderer run each loop iteration
type Mode int

const (
	ModeLightLevel Mode = iota
	ModeRGBColor
	ModeTemperature
)

func (m Mode) String() string {
	switch m {
	case ModeLightLevel:
		return "Light Level"
	case ModeRGBColor:
		return "RGB Color"
	case ModeTemperature:
		return "Temperature"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Command is a decoded console instruction
type Command int

const (
	CmdNone Command = iota
	CmdLightMode
	CmdColorMode
	CmdTemperatureMode
	CmdContrastUp
	CmdContrastDown
	CmdMenu
)

// ParseCommand decodes a single console byte. Unrecognized bytes return false.
func ParseCommand(b byte) (Command, bool) {
	switch b {
	case 'L', 'l':
		return CmdLightMode, true
	case 'C', 'c':
		return CmdColorMode, true
	case 'T', 't':
		return CmdTemperatureMode, true
	case '+':
		return CmdContrastUp, true
	case '-':
		return CmdContrastDown, true
	case '?', 'h', 'H':
		return CmdMenu, true
	}
	return CmdNone, false
}

// Mode returns the mode a mode-switch command selects
func (c Command) Mode() (Mode, bool) {
	switch c {
	case CmdLightMode:
		return ModeLightLevel, true
	case CmdColorMode:
		return ModeRGBColor, true
	case CmdTemperatureMode:
		return ModeTemperature, true
	}
	return 0, false
}
