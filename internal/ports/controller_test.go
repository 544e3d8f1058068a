package ports_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhogsett/LightBench/internal/adapters/memory"
	"github.com/jhogsett/LightBench/internal/adapters/mock"
	"github.com/jhogsett/LightBench/internal/display"
	"github.com/jhogsett/LightBench/internal/domain"
	"github.com/jhogsett/LightBench/internal/ports"
)

type bench struct {
	ctrl    *ports.Controller
	state   *ports.DeviceState
	light   *mock.FakeLightSensor
	color   *mock.FakeColorSensor
	temp    *mock.FakeTemperatureSensor
	strip   *mock.Strip
	lamp    *mock.Lamp
	console *bytes.Buffer
	cmds    chan byte
}

type chanSource chan byte

func (c chanSource) Commands() <-chan byte { return c }

// newBench creates a controller over deterministic fakes
func newBench(t *testing.T, mutate func(*ports.ControllerConfig)) *bench {
	t.Helper()

	b := &bench{
		state:   ports.NewDeviceState(),
		light:   mock.NewFakeLightSensor(500, 0),
		color:   mock.NewFakeColorSensor(domain.RawColor{R: 100, G: 100, B: 100, C: 300}, 0),
		temp:    mock.NewFakeTemperatureSensor(50, 0),
		strip:   mock.NewStrip(display.LEDCount),
		lamp:    &mock.Lamp{},
		console: &bytes.Buffer{},
		cmds:    make(chan byte, 16),
	}
	cfg := ports.ControllerConfig{
		Light:       b.light,
		Color:       b.color,
		Temperature: b.temp,
		Strip:       b.strip,
		Lamp:        b.lamp,
		Console:     b.console,
		Commands:    chanSource(b.cmds),
	}
	if mutate != nil {
		mutate(&cfg)
	}
	b.ctrl = ports.NewController(b.state, cfg)
	return b
}

// stepUntil steps every 100ms from just after start up to and including end
func (b *bench) stepUntil(start, end time.Duration) {
	for now := start + 100*time.Millisecond; now <= end; now += 100 * time.Millisecond {
		b.ctrl.Step(context.Background(), now)
	}
}

func (b *bench) do(cmd domain.Command) {
	b.ctrl.HandleCommand(context.Background(), cmd)
}

func TestLightLevel_MinimumLux(t *testing.T) {
	b := newBench(t, nil)
	b.light.SetLux(1)

	b.ctrl.Step(context.Background(), 50*time.Millisecond)
	assert.Equal(t, 0, b.strip.Shows(), "fast cadence not yet due")

	b.ctrl.Step(context.Background(), 100*time.Millisecond)
	require.Equal(t, 1, b.strip.Shows())

	off := domain.RGB{}
	want := []domain.RGB{{G: 8}, off, off, off, off, off, off, off}
	if diff := cmp.Diff(want, b.strip.LastFrame()); diff != "" {
		t.Errorf("frame mismatch (-want +got):\n%s", diff)
	}
}

func TestLightLevel_LogsCategory(t *testing.T) {
	out := &bytes.Buffer{}
	saved := log.Logger
	log.Logger = zerolog.New(out).Level(zerolog.DebugLevel)
	t.Cleanup(func() { log.Logger = saved })

	b := newBench(t, nil)
	b.light.SetLux(3000)
	b.ctrl.Step(context.Background(), 100*time.Millisecond)

	assert.Contains(t, out.String(), `"category":"High Light"`)
	assert.Contains(t, out.String(), `"message":"light reading"`)
}

func TestLightLevel_MaximumLux(t *testing.T) {
	b := newBench(t, nil)
	b.light.SetLux(65536)

	b.ctrl.Step(context.Background(), 100*time.Millisecond)
	frame := b.strip.LastFrame()
	require.Len(t, frame, display.LEDCount)

	for i, c := range frame {
		assert.False(t, c.IsOff(), "LED %d should be lit", i)
	}
	assert.Equal(t, domain.RGB{R: 127}, frame[display.LEDCount-1])
}

func TestLightLevel_SamplesEveryFastTick(t *testing.T) {
	b := newBench(t, nil)
	b.stepUntil(0, time.Second)

	assert.Equal(t, 10, b.light.Reads())
	assert.Equal(t, 10, b.strip.Shows())
}

func TestLightLevel_InvalidReadingSkipsRender(t *testing.T) {
	b := newBench(t, nil)

	b.light.SetLux(-1)
	b.ctrl.Step(context.Background(), 100*time.Millisecond)
	assert.Equal(t, 0, b.strip.Shows())

	b.light.SetLux(100)
	b.light.SetError(domain.ErrSensorUnavailable)
	b.ctrl.Step(context.Background(), 200*time.Millisecond)
	assert.Equal(t, 0, b.strip.Shows())

	b.light.SetError(nil)
	b.ctrl.Step(context.Background(), 300*time.Millisecond)
	assert.Equal(t, 1, b.strip.Shows())
}

func TestRGBColor_AveragesAndScrolls(t *testing.T) {
	b := newBench(t, nil)
	b.do(domain.CmdColorMode)

	assert.True(t, b.lamp.On())
	assert.Contains(t, b.console.String(), "Switched to RGB Color Mode")

	b.stepUntil(0, 900*time.Millisecond)
	assert.Equal(t, 0, b.strip.Shows(), "display cadence not yet due")
	assert.Equal(t, 9, b.color.Reads())

	b.ctrl.Step(context.Background(), time.Second)
	require.Equal(t, 1, b.strip.Shows())

	// mean (100,100,100) -> ratio 85 -> brightness floor 0.1 -> 8
	assert.Equal(t, domain.RGB{R: 8, G: 8, B: 8}, b.state.ColorHistory.At(0))
	assert.Equal(t, domain.RGB{R: 4, G: 4, B: 4}, b.strip.LastFrame()[0])
	assert.True(t, b.strip.LastFrame()[1].IsOff())

	b.color.SetRaw(domain.RawColor{R: 30000})
	b.stepUntil(time.Second, 2*time.Second)
	require.Equal(t, 2, b.strip.Shows())
	assert.Equal(t, domain.RGB{R: 4, G: 4, B: 4}, b.strip.LastFrame()[1], "previous color scrolls to LED 1")
}

func TestTemperature_ReportsAndRenders(t *testing.T) {
	b := newBench(t, nil)
	b.do(domain.CmdColorMode)
	b.do(domain.CmdTemperatureMode)
	assert.False(t, b.lamp.On())

	b.stepUntil(0, time.Second)

	assert.Contains(t, b.console.String(), "Temperature: 50.0°C\n")
	assert.Equal(t, 50.0, b.state.TemperatureHistory.At(0))
	// (255,0,0) at contrast 8
	assert.Equal(t, domain.RGB{R: 136}, b.strip.LastFrame()[0])

	// Contrast changes recolor the existing history on the next render
	for i := 0; i < 7; i++ {
		b.do(domain.CmdContrastUp)
	}
	b.stepUntil(time.Second, 2*time.Second)
	assert.Equal(t, domain.RGB{R: 255}, b.strip.LastFrame()[0])
	assert.Equal(t, domain.RGB{R: 255}, b.strip.LastFrame()[1])
}

func TestTemperature_StartupAverageIsLow(t *testing.T) {
	b := newBench(t, nil)
	b.do(domain.CmdTemperatureMode)

	b.stepUntil(0, 500*time.Millisecond)
	b.ctrl.Step(context.Background(), time.Second)

	// six of ten slots filled
	assert.InDelta(t, 30.0, b.state.TemperatureHistory.At(0), 1e-9)
}

func TestSetMode_ResetsOnlyEnteredAggregator(t *testing.T) {
	b := newBench(t, nil)

	b.do(domain.CmdColorMode)
	b.stepUntil(0, 300*time.Millisecond)
	require.Equal(t, 3, b.state.ColorSamples.Cursor())

	b.do(domain.CmdTemperatureMode)
	b.stepUntil(300*time.Millisecond, 500*time.Millisecond)
	require.Equal(t, 2, b.state.TemperatureSamples.Cursor())
	assert.Equal(t, 3, b.state.ColorSamples.Cursor(), "leaving color mode keeps its samples")

	b.do(domain.CmdLightMode)
	assert.Equal(t, 2, b.state.TemperatureSamples.Cursor(), "light mode resets nothing")

	b.do(domain.CmdColorMode)
	assert.Equal(t, 0, b.state.ColorSamples.Cursor())
	assert.Equal(t, 2, b.state.TemperatureSamples.Cursor())
}

func TestSetMode_HistoriesPersist(t *testing.T) {
	b := newBench(t, nil)

	b.do(domain.CmdColorMode)
	b.stepUntil(0, time.Second)
	require.False(t, b.state.ColorHistory.At(0).IsOff())

	b.do(domain.CmdTemperatureMode)
	b.do(domain.CmdColorMode)
	assert.Equal(t, domain.RGB{R: 8, G: 8, B: 8}, b.state.ColorHistory.At(0))
}

func TestSetMode_LightLeavesLampAlone(t *testing.T) {
	b := newBench(t, nil)

	b.do(domain.CmdColorMode)
	b.do(domain.CmdLightMode)
	assert.True(t, b.lamp.On(), "lamp stays on coming from color mode")

	b.do(domain.CmdTemperatureMode)
	b.do(domain.CmdLightMode)
	assert.False(t, b.lamp.On(), "lamp stays off coming from temperature mode")
	assert.Equal(t, 2, b.lamp.Switches())
}

func TestContrast_Clamped(t *testing.T) {
	b := newBench(t, nil)

	for i := 0; i < 20; i++ {
		b.do(domain.CmdContrastUp)
	}
	assert.Equal(t, display.ContrastMax, b.state.Contrast)
	assert.Equal(t, 7, strings.Count(b.console.String(), "Contrast: "))
	assert.Contains(t, b.console.String(), "Contrast: 15\n")

	b.console.Reset()
	for i := 0; i < 20; i++ {
		b.do(domain.CmdContrastDown)
	}
	assert.Equal(t, display.ContrastMin, b.state.Contrast)
	assert.Equal(t, 15, strings.Count(b.console.String(), "Contrast: "))
}

func TestCommands_OneBytePerStep(t *testing.T) {
	b := newBench(t, nil)
	for _, c := range []byte("xc?T") {
		b.cmds <- c
	}

	b.ctrl.Step(context.Background(), 0)
	assert.Equal(t, domain.ModeLightLevel, b.state.Mode, "unknown byte ignored")

	b.ctrl.Step(context.Background(), 0)
	assert.Equal(t, domain.ModeRGBColor, b.state.Mode)

	b.ctrl.Step(context.Background(), 0)
	assert.Contains(t, b.console.String(), "Current contrast: 8")

	b.ctrl.Step(context.Background(), 0)
	assert.Equal(t, domain.ModeTemperature, b.state.Mode)
}

func TestCommands_ClosedSource(t *testing.T) {
	b := newBench(t, nil)
	b.cmds <- 'c'
	close(b.cmds)

	b.ctrl.Step(context.Background(), 0)
	b.ctrl.Step(context.Background(), 0)
	assert.Equal(t, domain.ModeRGBColor, b.state.Mode)
}

func TestBoot_ReportsMissingSensors(t *testing.T) {
	b := newBench(t, nil)
	b.color.SetProbeError(errors.New("no ack"))
	require.NoError(t, b.lamp.SetIllumination(true))

	b.ctrl.Boot(context.Background())

	out := b.console.String()
	assert.Contains(t, out, "Error: TCS34725 sensor not found")
	assert.NotContains(t, out, "BH1750 sensor not found")
	assert.Contains(t, out, "=== Light Sensors Test Bench ===")
	assert.False(t, b.lamp.On())
	assert.Equal(t, 1, b.strip.Shows())
}

func TestRecord_ThrottledObservations(t *testing.T) {
	repo := memory.NewObservationRepository()
	b := newBench(t, func(cfg *ports.ControllerConfig) {
		cfg.Repo = repo
		cfg.Session = "test-session"
	})
	b.light.SetLux(1000)

	b.stepUntil(0, 2*time.Second)

	latest, err := repo.GetLatestObservation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.ModeLightLevel, latest.Mode)
	assert.Equal(t, 1000.0, latest.Value)
	assert.Equal(t, "test-session", latest.Session)
	assert.EqualValues(t, 2, latest.ID, "one observation per second")

	n, err := repo.CountSessionObservations(context.Background(), "test-session")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRun_StopsOnCancel(t *testing.T) {
	b := newBench(t, func(cfg *ports.ControllerConfig) {
		cfg.PollInterval = time.Millisecond
	})

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	require.NoError(t, b.ctrl.Run(ctx))
	assert.GreaterOrEqual(t, b.light.Reads(), 1)
	assert.True(t, b.strip.LastFrame()[0].IsOff(), "strip blanked on exit")
}
