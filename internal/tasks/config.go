package tasks

import "time"

// Config holds the worker pool settings for the task queue. Attempts,
// timeouts and retention are fixed per queue by each task's Config method.
type Config struct {
	// Workers is the number of concurrent task workers. Default: 2
	Workers int

	// ReleaseAfter returns a claimed task to the queue when its worker has
	// gone silent for this long. Default: 15m
	ReleaseAfter time.Duration

	// CleanupInterval is how often expired task records are purged. Default: 1h
	CleanupInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		Workers:         2,
		ReleaseAfter:    15 * time.Minute,
		CleanupInterval: time.Hour,
	}
}
