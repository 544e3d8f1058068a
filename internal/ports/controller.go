package ports

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhogsett/LightBench/internal/display"
	"github.com/jhogsett/LightBench/internal/domain"
)

// Cadences. Light mode samples and renders on the fast tick; color and
// temperature modes sample on the slow tick and render on the display tick.
const (
	FastSampleInterval = 100 * time.Millisecond
	SlowSampleInterval = 100 * time.Millisecond
	DisplayInterval    = 1000 * time.Millisecond

	// RetentionCheckInterval is how often old observations are pruned
	RetentionCheckInterval = 24 * time.Hour

	DefaultPollInterval   = 5 * time.Millisecond
	DefaultRecordInterval = time.Second
)

// ControllerConfig wires the controller to its collaborators.
// Console, Commands and Repo are optional.
type ControllerConfig struct {
	Light       Sensor
	Color       Sensor
	Temperature Sensor

	Strip Strip
	Lamp  Illuminator
	Clock Clock

	Console  io.Writer
	Commands CommandSource

	Repo           domain.ObservationRepository
	Session        string
	RecordInterval time.Duration
	Retention      time.Duration

	PollInterval time.Duration
}

// Controller runs the single-threaded sample/render loop
type Controller struct {
	state *DeviceState
	cfg   ControllerConfig
	cmds  <-chan byte
}

// NewController creates a controller driving state
func NewController(state *DeviceState, cfg ControllerConfig) *Controller {
	if cfg.Console == nil {
		cfg.Console = io.Discard
	}
	if cfg.Clock == nil {
		cfg.Clock = NewMonotonicClock()
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.RecordInterval <= 0 {
		cfg.RecordInterval = DefaultRecordInterval
	}

	c := &Controller{state: state, cfg: cfg}
	if cfg.Commands != nil {
		c.cmds = cfg.Commands.Commands()
	}
	return c
}

// State exposes the controller's state for inspection
func (c *Controller) State() *DeviceState {
	return c.state
}

// Boot blanks the strip, turns the lamp off, reports missing sensors and
// prints the menu. Missing sensors are not fatal.
func (c *Controller) Boot(ctx context.Context) {
	c.cfg.Strip.Clear()
	if err := c.cfg.Strip.Show(); err != nil {
		log.Error().Err(err).Msg("failed to blank strip")
	}
	c.setLamp(false)

	probes := []struct {
		name   string
		sensor Sensor
	}{
		{"BH1750", c.cfg.Light},
		{"TCS34725", c.cfg.Color},
		{"MLX90614", c.cfg.Temperature},
	}
	for _, p := range probes {
		prober, ok := p.sensor.(Prober)
		if !ok {
			continue
		}
		if err := prober.Probe(ctx); err != nil {
			log.Warn().Err(err).Str("sensor", p.name).Msg("sensor not found")
			c.printf("Error: %s sensor not found\n", p.name)
		}
	}

	c.ShowMenu()
}

// Run calls Step every poll interval until ctx is cancelled, then blanks the
// strip and turns the lamp off.
func (c *Controller) Run(ctx context.Context) error {
	log.Info().
		Dur("poll_interval", c.cfg.PollInterval).
		Str("mode", c.state.Mode.String()).
		Msg("starting display loop")

	ticker := time.NewTicker(c.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.Step(ctx, c.cfg.Clock.Now())

		case <-ctx.Done():
			log.Info().Msg("stopping display loop")
			c.cfg.Strip.Clear()
			if err := c.cfg.Strip.Show(); err != nil {
				log.Error().Err(err).Msg("failed to blank strip")
			}
			c.setLamp(false)
			return nil
		}
	}
}

// Step runs one loop iteration at time now: at most one pending console
// byte is handled, then the active mode's cadences are checked.
func (c *Controller) Step(ctx context.Context, now time.Duration) {
	c.pollCommand(ctx)

	switch c.state.Mode {
	case domain.ModeLightLevel:
		c.runLightLevel(ctx, now)
	case domain.ModeRGBColor:
		c.runRGBColor(ctx, now)
	case domain.ModeTemperature:
		c.runTemperature(ctx, now)
	}

	c.pruneObservations(ctx, now)
}

func (c *Controller) pollCommand(ctx context.Context) {
	if c.cmds == nil {
		return
	}
	select {
	case b, ok := <-c.cmds:
		if !ok {
			c.cmds = nil
			return
		}
		if cmd, ok := domain.ParseCommand(b); ok {
			c.HandleCommand(ctx, cmd)
		}
	default:
	}
}

// HandleCommand applies a decoded console command
func (c *Controller) HandleCommand(ctx context.Context, cmd domain.Command) {
	switch cmd {
	case domain.CmdLightMode, domain.CmdColorMode, domain.CmdTemperatureMode:
		mode, _ := cmd.Mode()
		c.SetMode(mode)

	case domain.CmdContrastUp:
		if next, changed := c.state.Contrast.Increase(); changed {
			c.setContrast(next)
		}

	case domain.CmdContrastDown:
		if next, changed := c.state.Contrast.Decrease(); changed {
			c.setContrast(next)
		}

	case domain.CmdMenu:
		c.ShowMenu()
	}
}

// SetMode switches the active mode. Entering color mode turns the lamp on and
// resets the color samples; entering temperature mode turns it off and resets
// the temperature samples. Light mode leaves the lamp as it was.
func (c *Controller) SetMode(mode domain.Mode) {
	c.state.Mode = mode
	c.printf("Switched to %s Mode\n", mode)

	switch mode {
	case domain.ModeRGBColor:
		c.setLamp(true)
		c.state.ColorSamples.Reset()
	case domain.ModeTemperature:
		c.setLamp(false)
		c.state.TemperatureSamples.Reset()
	}

	log.Info().Str("mode", mode.String()).Msg("mode changed")
}

func (c *Controller) setContrast(level display.Contrast) {
	c.state.Contrast = level
	c.printf("Contrast: %d\n", level)
	log.Debug().Uint8("contrast", uint8(level)).Msg("contrast changed")
}

// ShowMenu prints the command summary and current contrast
func (c *Controller) ShowMenu() {
	c.printf("\n=== Light Sensors Test Bench ===\n")
	c.printf("Select operation mode:\n")
	c.printf("L - Light Level Mode\n")
	c.printf("C - RGB Color Mode\n")
	c.printf("T - Temperature Mode\n")
	c.printf("+ - Increase Contrast\n")
	c.printf("- - Decrease Contrast\n")
	c.printf("Current contrast: %d\n\n", c.state.Contrast)
}

func (c *Controller) runLightLevel(ctx context.Context, now time.Duration) {
	if now-c.state.LastFast < FastSampleInterval {
		return
	}
	c.state.LastFast = now

	reading, err := c.read(ctx, c.cfg.Light, domain.KindLux)
	if err != nil {
		log.Debug().Err(err).Msg("skipping light tick")
		return
	}
	if reading.Lux < 0 {
		log.Debug().Float64("lux", reading.Lux).Msg("skipping negative light reading")
		return
	}

	value := display.MeterValue(reading.Lux)
	log.Debug().
		Float64("lux", reading.Lux).
		Str("category", reading.LightCategory()).
		Int("meter", value).
		Msg("light reading")

	if _, err := display.RenderMeter(c.cfg.Strip, value, c.state.Contrast); err != nil {
		log.Error().Err(err).Msg("failed to render meter")
	}

	_, head := display.MeterLayout(value)
	c.record(ctx, now, reading.Lux, head)
}

func (c *Controller) runRGBColor(ctx context.Context, now time.Duration) {
	if now-c.state.LastSlow >= SlowSampleInterval {
		c.state.LastSlow = now

		reading, err := c.read(ctx, c.cfg.Color, domain.KindRawColor)
		if err != nil {
			log.Debug().Err(err).Msg("skipping color sample")
		} else {
			c.state.ColorSamples.Record(reading.Raw)
		}
	}

	if now-c.state.LastDisplay >= DisplayInterval {
		c.state.LastDisplay = now

		r, g, b := c.state.ColorSamples.Mean()
		current := display.ColorFromRaw(r, g, b)
		c.state.ColorHistory.Push(current)

		if _, err := display.RenderColorHistory(c.cfg.Strip, c.state.ColorHistory, c.state.Contrast); err != nil {
			log.Error().Err(err).Msg("failed to render color history")
		}
		c.record(ctx, now, float64(r+g+b), current)
	}
}

func (c *Controller) runTemperature(ctx context.Context, now time.Duration) {
	if now-c.state.LastSlow >= SlowSampleInterval {
		c.state.LastSlow = now

		reading, err := c.read(ctx, c.cfg.Temperature, domain.KindTemperature)
		if err != nil {
			log.Debug().Err(err).Msg("skipping temperature sample")
		} else {
			c.state.TemperatureSamples.Record(reading.Celsius)
		}
	}

	if now-c.state.LastDisplay >= DisplayInterval {
		c.state.LastDisplay = now

		avg := c.state.TemperatureSamples.Mean()
		c.printf("Temperature: %.1f°C\n", avg)
		c.state.TemperatureHistory.Push(avg)

		if _, err := display.RenderTemperatureHistory(c.cfg.Strip, c.state.TemperatureHistory, c.state.Contrast); err != nil {
			log.Error().Err(err).Msg("failed to render temperature history")
		}
		c.record(ctx, now, avg, display.IronColor(avg))
	}
}

// read samples s and checks the reading is of kind k
func (c *Controller) read(ctx context.Context, s Sensor, k domain.ReadingKind) (domain.Reading, error) {
	if s == nil {
		return domain.Reading{}, fmt.Errorf("%w: no %s sensor configured", domain.ErrSensorUnavailable, k)
	}
	reading, err := s.Read(ctx)
	if err != nil {
		return domain.Reading{}, err
	}
	if err := reading.Expect(k); err != nil {
		return domain.Reading{}, err
	}
	return reading, nil
}

// record saves an observation at most once per record interval
func (c *Controller) record(ctx context.Context, now time.Duration, value float64, shown domain.RGB) {
	if c.cfg.Repo == nil || now-c.state.lastRecord < c.cfg.RecordInterval {
		return
	}
	c.state.lastRecord = now

	obs := domain.NewObservation(c.cfg.Session, c.state.Mode, value, shown)
	if err := c.cfg.Repo.SaveObservation(ctx, obs); err != nil {
		log.Error().Err(err).Msg("failed to save observation")
		return
	}

	log.Debug().
		Str("mode", obs.Mode.String()).
		Float64("value", value).
		Str("color", shown.String()).
		Msg("recorded observation")
}

func (c *Controller) pruneObservations(ctx context.Context, now time.Duration) {
	if c.cfg.Repo == nil || c.cfg.Retention <= 0 || now-c.state.lastRetention < RetentionCheckInterval {
		return
	}
	c.state.lastRetention = now

	if err := c.cfg.Repo.DeleteOldObservations(ctx, c.cfg.Retention); err != nil {
		log.Error().Err(err).Msg("failed to delete old observations")
		return
	}
	log.Info().Dur("retention", c.cfg.Retention).Msg("deleted old observations")
}

func (c *Controller) setLamp(on bool) {
	if c.cfg.Lamp == nil {
		return
	}
	if err := c.cfg.Lamp.SetIllumination(on); err != nil {
		log.Error().Err(err).Bool("on", on).Msg("failed to set lamp")
	}
}

func (c *Controller) printf(format string, args ...any) {
	fmt.Fprintf(c.cfg.Console, format, args...)
}
