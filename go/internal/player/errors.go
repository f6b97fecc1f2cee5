package player

import "errors"

var (
	// ErrUnsupportedFormat is returned for pool files with an unknown extension
	ErrUnsupportedFormat = errors.New("unsupported player pool format")
	// ErrEmptyPool is returned when a pool file holds no players
	ErrEmptyPool = errors.New("player pool is empty")
)
