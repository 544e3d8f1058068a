package mock

import (
	"context"
	"errors"
	"testing"

	"github.com/jhogsett/LightBench/internal/domain"
)

func TestFakeLightSensor_StaysInRange(t *testing.T) {
	s := NewFakeLightSensor(500, 100)

	for i := 0; i < 100; i++ {
		r, err := s.Read(context.Background())
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if r.Lux < 400 || r.Lux > 600 {
			t.Errorf("lux %v outside 400-600", r.Lux)
		}
	}
	if s.Reads() != 100 {
		t.Errorf("expected 100 reads, got %d", s.Reads())
	}
}

func TestFakeLightSensor_NegativeBase(t *testing.T) {
	s := NewFakeLightSensor(0, 0)
	s.SetLux(-1)

	r, err := s.Read(context.Background())
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if r.Lux != -1 {
		t.Errorf("expected -1 lux to pass through, got %v", r.Lux)
	}
}

func TestFakeSensor_InjectedErrors(t *testing.T) {
	s := NewFakeTemperatureSensor(25, 0)
	boom := errors.New("bus fault")

	s.SetError(boom)
	if _, err := s.Read(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected injected error, got %v", err)
	}

	s.SetError(nil)
	r, err := s.Read(context.Background())
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if r.Celsius != 25 {
		t.Errorf("expected 25°C, got %v", r.Celsius)
	}

	s.SetProbeError(boom)
	if err := s.Probe(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected probe error, got %v", err)
	}
}

func TestFakeColorSensor_ClampsCounts(t *testing.T) {
	s := NewFakeColorSensor(domain.RawColor{R: 65535, C: 0}, 1000)

	for i := 0; i < 50; i++ {
		r, err := s.Read(context.Background())
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if r.Kind != domain.KindRawColor {
			t.Fatalf("expected raw color reading, got %v", r.Kind)
		}
		if r.Raw.R < 64535 {
			t.Errorf("red %d below base minus variation", r.Raw.R)
		}
		if r.Raw.C > 1000 {
			t.Errorf("clear %d above variation", r.Raw.C)
		}
	}
}
