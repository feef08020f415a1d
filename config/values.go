package config

import (
	"os"
	"strconv"
)

// Port returns the server port. The DLIST_PORT environment variable
// overrides [DefaultPort].
func Port() string {
	if p := os.Getenv("DLIST_PORT"); p != "" {
		return p
	}

	return DefaultPort
}

// BenchCount returns the bench workload size. The DLIST_BENCH_COUNT
// environment variable overrides [DefaultBenchCount].
func BenchCount() int {
	v, err := strconv.Atoi(os.Getenv("DLIST_BENCH_COUNT"))
	if err != nil || v <= 0 {
		return DefaultBenchCount
	}

	return v
}
