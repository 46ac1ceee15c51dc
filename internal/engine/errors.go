package engine

import "errors"

// Errors returned by the engine. All of them are invariant violations that
// abort the run; losing a run is reported as OutcomeLost, never as an error.
var (
	// ErrConfiguration is returned by Reset for grid sizes or lengths the
	// engine cannot host.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrCapacityExhausted is returned when growth would overflow the body
	// ring buffer.
	ErrCapacityExhausted = errors.New("snake buffer capacity exhausted")

	// ErrSpawnExhausted is returned when no empty cell is left for an item.
	ErrSpawnExhausted = errors.New("no empty cell left for an item")
)
