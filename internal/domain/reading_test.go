package domain

import (
	"errors"
	"testing"
)

func TestNewLuxReading(t *testing.T) {
	tests := []struct {
		name    string
		lux     float64
		wantErr bool
	}{
		{
			name:    "valid reading",
			lux:     500.0,
			wantErr: false,
		},
		{
			name:    "zero lux is valid",
			lux:     0.0,
			wantErr: false,
		},
		{
			name:    "negative lux is invalid",
			lux:     -10.0,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reading, err := NewLuxReading(tt.lux)

			if tt.wantErr {
				if !errors.Is(err, ErrInvalidLux) {
					t.Errorf("expected ErrInvalidLux, got %v", err)
				}
				return
			}

			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}

			if reading.Kind != KindLux {
				t.Errorf("expected kind %v, got %v", KindLux, reading.Kind)
			}
			if reading.Lux != tt.lux {
				t.Errorf("expected lux %v, got %v", tt.lux, reading.Lux)
			}
		})
	}
}

func TestReading_Expect(t *testing.T) {
	r := NewTemperatureReading(21.5)
	if err := r.Expect(KindTemperature); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := r.Expect(KindLux); !errors.Is(err, ErrUnexpectedReading) {
		t.Errorf("expected ErrUnexpectedReading, got %v", err)
	}
}

func TestReading_LightCategory(t *testing.T) {
	tests := []struct {
		lux  float64
		want string
	}{
		{lux: 100, want: "Low Light"},
		{lux: 199, want: "Low Light"},
		{lux: 200, want: "Medium Light"},
		{lux: 500, want: "Medium Light"},
		{lux: 3000, want: "High Light"},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			reading, _ := NewLuxReading(tt.lux)
			if got := reading.LightCategory(); got != tt.want {
				t.Errorf("LightCategory() = %v, want %v for lux %v", got, tt.want, tt.lux)
			}
		})
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		in     byte
		want   Command
		wantOK bool
	}{
		{'L', CmdLightMode, true},
		{'l', CmdLightMode, true},
		{'C', CmdColorMode, true},
		{'c', CmdColorMode, true},
		{'T', CmdTemperatureMode, true},
		{'t', CmdTemperatureMode, true},
		{'+', CmdContrastUp, true},
		{'-', CmdContrastDown, true},
		{'?', CmdMenu, true},
		{'h', CmdMenu, true},
		{'H', CmdMenu, true},
		{'x', CmdNone, false},
		{'\n', CmdNone, false},
	}

	for _, tt := range tests {
		got, ok := ParseCommand(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseCommand(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestRGB_PackedRoundTrip(t *testing.T) {
	c := RGB{R: 255, G: 191, B: 0}
	if got := c.Packed(); got != 0xffbf00 {
		t.Errorf("Packed() = %#06x, want 0xffbf00", got)
	}
	if got := Unpack(0x12ffbf00); got != c {
		t.Errorf("Unpack() = %v, want %v", got, c)
	}
}
