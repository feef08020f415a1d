package config

import "time"

// Size units.
const (
	KiB = 1024
	MiB = KiB * 1024
)

// Server configuration constants.
const (
	// DefaultPort is the port the list server listens on.
	DefaultPort = "2242"
	// MinPort is the lowest accepted port number.
	MinPort = 1024
	// MaxPort is the highest accepted port number.
	MaxPort = 65535

	// ServerReadTimeout bounds reading an entire request.
	ServerReadTimeout = 30 * time.Second
	// ServerReadHeaderTimeout bounds reading the request headers.
	ServerReadHeaderTimeout = 3 * time.Second
	// ServerResponseTimeout bounds handling a single request.
	ServerResponseTimeout = 5 * time.Second
	// ServerShutdownTimeout bounds the graceful shutdown.
	ServerShutdownTimeout = 10 * time.Second

	// MaxRequestSize is the largest accepted request body.
	MaxRequestSize = MiB
)

// DefaultBenchCount is the number of values the bench command pushes
// and pops when no count is given.
const DefaultBenchCount = 1_000_000
