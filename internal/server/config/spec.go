package config

import "time"

// ServerConfig is the root configuration for restoremesh-server.
type ServerConfig struct {
	Server  ServerSection  `koanf:"server"`
	Restore RestoreSection `koanf:"restore"`
	Limits  LimitsSection  `koanf:"limits"`
	Metrics MetricsSection `koanf:"metrics"`
	Log     LogSection     `koanf:"log"`
}

// ServerSection configures the listener.
type ServerSection struct {
	Addr string `koanf:"addr"`

	// AllowedOrigins restricts WebSocket upgrade origins (empty = allow all).
	AllowedOrigins []string `koanf:"allowed_origins"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// RestoreSection configures connection restoration.
type RestoreSection struct {
	// Lifetime is how long an issued token stays restorable.
	Lifetime time.Duration `koanf:"lifetime"`

	// CleanupInterval is the evictor period.
	CleanupInterval time.Duration `koanf:"cleanup_interval"`

	// OmitKeys are session fields never carried over by a restore.
	OmitKeys []string `koanf:"omit_keys"`
}

// LimitsSection configures per-connection limits.
type LimitsSection struct {
	MessagesPerSecond float64       `koanf:"messages_per_second"`
	Burst             int           `koanf:"burst"`
	MaxMessageBytes   int64         `koanf:"max_message_bytes"`
	WriteTimeout      time.Duration `koanf:"write_timeout"`
	SendQueueSize     int           `koanf:"send_queue_size"`
}

// MetricsSection configures the Prometheus endpoint.
type MetricsSection struct {
	Enabled bool `koanf:"enabled"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
