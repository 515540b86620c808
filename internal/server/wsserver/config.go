package wsserver

import (
	"time"
)

// Config holds transport settings.
type Config struct {
	// Addr is the listen address.
	Addr string

	// MessagesPerSecond is the sustained per-connection inbound rate.
	// Zero or negative disables rate limiting.
	MessagesPerSecond float64

	// Burst is the number of messages accepted above the sustained rate.
	Burst int

	// MaxMessageBytes caps the size of one inbound frame.
	MaxMessageBytes int64

	// WriteTimeout bounds one outbound frame write.
	WriteTimeout time.Duration

	// SendQueueSize caps pending outbound frames per connection.
	SendQueueSize int

	// AllowedOrigins restricts the Origin header of upgrade requests.
	// Empty allows all origins.
	AllowedOrigins []string

	// MetricsEnabled exposes /metrics.
	MetricsEnabled bool
}

// DefaultConfig returns default transport settings.
func DefaultConfig() Config {
	return Config{
		Addr:              ":8080",
		MessagesPerSecond: 50,
		Burst:             100,
		MaxMessageBytes:   64 << 10,
		WriteTimeout:      10 * time.Second,
		SendQueueSize:     256,
		MetricsEnabled:    true,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxMessageBytes <= 0 {
		c.MaxMessageBytes = d.MaxMessageBytes
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.SendQueueSize <= 0 {
		c.SendQueueSize = d.SendQueueSize
	}
	if c.Burst <= 0 {
		c.Burst = 1
	}
	return c
}
