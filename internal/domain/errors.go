package domain

import "errors"

var (
	// ErrInvalidLux indicates lux value is invalid
	ErrInvalidLux = errors.New("lux value cannot be negative")

	// ErrObservationNotFound indicates requested observation doesn't exist
	ErrObservationNotFound = errors.New("observation not found")

	// ErrSensorUnavailable indicates sensor cannot be read
	ErrSensorUnavailable = errors.New("sensor unavailable")

	// ErrUnexpectedReading indicates a sensor returned a reading of the wrong kind
	ErrUnexpectedReading = errors.New("unexpected reading kind")
)
