package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/periph/conn/i2c/i2creg"
	"periph.io/x/periph/conn/spi/spireg"
	"periph.io/x/periph/host"

	"github.com/jhogsett/LightBench/internal/adapters/console"
	"github.com/jhogsett/LightBench/internal/adapters/memory"
	"github.com/jhogsett/LightBench/internal/adapters/mock"
	"github.com/jhogsett/LightBench/internal/adapters/periph"
	"github.com/jhogsett/LightBench/internal/adapters/serial"
	"github.com/jhogsett/LightBench/internal/adapters/sqlite"
	"github.com/jhogsett/LightBench/internal/display"
	"github.com/jhogsett/LightBench/internal/domain"
	"github.com/jhogsett/LightBench/internal/ports"
)

func main() {
	// Initialize logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Read configuration from environment
	config := loadConfig()
	zerolog.SetGlobalLevel(config.LogLevel)

	session := uuid.NewString()
	log.Info().Str("session", session).Msg("starting light bench")

	// Initialize repository
	var repo domain.ObservationRepository
	switch config.RepoType {
	case "sqlite":
		r, err := sqlite.NewObservationRepository(config.DBPath)
		if err != nil {
			log.Fatal().Err(err).Str("db_path", config.DBPath).Msg("failed to open SQLite database")
		}
		defer r.Close()
		repo = r
		log.Info().Str("db_path", config.DBPath).Msg("initialized SQLite repository")
	default:
		repo = memory.NewObservationRepository()
		log.Info().Msg("initialized in-memory repository")
	}

	if config.SensorType == "i2c" || config.StripType == "spi" {
		if _, err := host.Init(); err != nil {
			log.Fatal().Err(err).Msg("failed to initialize periph host drivers")
		}
	}

	// Initialize sensors and lamp
	var light, color, temperature ports.Sensor
	var lamp ports.Illuminator
	switch config.SensorType {
	case "i2c":
		bus, err := i2creg.Open(config.I2CBus)
		if err != nil {
			log.Fatal().Err(err).Str("bus", config.I2CBus).Msg("failed to open I2C bus")
		}
		defer bus.Close()

		light = periph.NewLightSensor(bus)
		color = periph.NewColorSensor(bus)
		temperature = periph.NewTemperatureSensor(bus)

		l, err := periph.OpenLamp(config.LampPin)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open lamp pin")
		}
		lamp = l
		log.Info().Str("bus", bus.String()).Str("lamp_pin", config.LampPin).Msg("initialized I2C sensors")
	default:
		light = mock.NewFakeLightSensor(500.0, 100.0) // 500±100 lux (indoor lighting)
		color = mock.NewFakeColorSensor(domain.RawColor{R: 1200, G: 900, B: 600, C: 2800}, 50.0)
		temperature = mock.NewFakeTemperatureSensor(25.0, 0.5)
		lamp = &mock.Lamp{}
		log.Info().Msg("initialized mock sensors")
	}

	// Initialize LED strip
	var strip ports.Strip
	switch config.StripType {
	case "spi":
		port, err := spireg.Open(config.SPIPort)
		if err != nil {
			log.Fatal().Err(err).Str("port", config.SPIPort).Msg("failed to open SPI port")
		}
		defer port.Close()

		s, err := periph.OpenStrip(port, display.LEDCount)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open LED strip")
		}
		strip = s
		log.Info().Str("port", port.String()).Msg("initialized SPI LED strip")
	default:
		strip = console.NewStrip(log.Logger, display.LEDCount)
		log.Info().Msg("initialized console LED strip")
	}

	// Initialize command console
	var term *serial.Console
	if config.SerialPort != "" {
		c, err := serial.Open(config.SerialPort, serial.PortOptions{BaudRate: config.SerialBaud})
		if err != nil {
			log.Fatal().Err(err).Str("port", config.SerialPort).Msg("failed to open serial console")
		}
		term = c
		log.Info().Str("port", config.SerialPort).Int("baud", config.SerialBaud).Msg("initialized serial console")
	} else {
		term = serial.NewStreamConsole(os.Stdin, os.Stdout)
		log.Info().Msg("initialized stdio console")
	}
	defer term.Close()

	controller := ports.NewController(ports.NewDeviceState(), ports.ControllerConfig{
		Light:          light,
		Color:          color,
		Temperature:    temperature,
		Strip:          strip,
		Lamp:           lamp,
		Console:        term,
		Commands:       term,
		Repo:           repo,
		Session:        session,
		RecordInterval: config.RecordInterval,
		Retention:      config.Retention,
		PollInterval:   config.PollInterval,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Info().Msg("shutting down light bench...")
		cancel()
	}()

	controller.Boot(ctx)
	if err := controller.Run(ctx); err != nil {
		log.Error().Err(err).Msg("display loop failed")
	}

	if n, err := repo.CountSessionObservations(context.Background(), session); err != nil {
		log.Warn().Err(err).Msg("failed to count session observations")
	} else {
		log.Info().Str("session", session).Int("observations", n).Msg("session recorded")
	}

	closeSensors(light, color, temperature)
	log.Info().Msg("light bench stopped")
}

func closeSensors(sensors ...io.Closer) {
	for _, s := range sensors {
		if err := s.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close sensor")
		}
	}
}

// Config holds application configuration
type Config struct {
	SensorType     string // "mock" | "i2c"
	StripType      string // "console" | "spi"
	I2CBus         string // periph bus name, empty for the first bus
	SPIPort        string // periph port name, empty for the first port
	LampPin        string // GPIO driving the color sensor's white LED
	SerialPort     string // empty uses stdin/stdout
	SerialBaud     int
	RepoType       string // "memory" | "sqlite"
	DBPath         string // SQLite database file path (used when RepoType=sqlite)
	RecordInterval time.Duration
	Retention      time.Duration
	PollInterval   time.Duration
	LogLevel       zerolog.Level
}

// loadConfig reads configuration from environment variables
func loadConfig() Config {
	sensorType := os.Getenv("SENSOR_TYPE")
	if sensorType == "" {
		sensorType = "mock"
	}

	stripType := os.Getenv("STRIP_TYPE")
	if stripType == "" {
		stripType = "console"
	}

	lampPin := os.Getenv("LAMP_PIN")
	if lampPin == "" {
		lampPin = "GPIO9"
	}

	serialBaud := serial.DefaultBaudRate
	if baudStr := os.Getenv("SERIAL_BAUD"); baudStr != "" {
		if b, err := strconv.Atoi(baudStr); err == nil {
			serialBaud = b
		}
	}

	repoType := os.Getenv("REPO_TYPE")
	if repoType == "" {
		repoType = "memory"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./lightbench.db"
	}

	logLevel := zerolog.InfoLevel
	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		if l, err := zerolog.ParseLevel(levelStr); err == nil {
			logLevel = l
		}
	}

	return Config{
		SensorType:     sensorType,
		StripType:      stripType,
		I2CBus:         os.Getenv("I2C_BUS"),
		SPIPort:        os.Getenv("SPI_PORT"),
		LampPin:        lampPin,
		SerialPort:     os.Getenv("SERIAL_PORT"),
		SerialBaud:     serialBaud,
		RepoType:       repoType,
		DBPath:         dbPath,
		RecordInterval: durationEnv("RECORD_INTERVAL", ports.DefaultRecordInterval),
		Retention:      durationEnv("RETENTION", 30*24*time.Hour),
		PollInterval:   durationEnv("POLL_INTERVAL", ports.DefaultPollInterval),
		LogLevel:       logLevel,
	}
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if s := os.Getenv(key); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			return d
		}
	}
	return fallback
}
