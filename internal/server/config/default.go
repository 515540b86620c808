package config

import "time"

// Default configuration values.
const (
	DefaultAddr            = "127.0.0.1:8080"
	DefaultShutdownTimeout = 15 * time.Second

	DefaultLifetime        = time.Hour
	DefaultCleanupInterval = time.Hour

	DefaultMessagesPerSecond = 50
	DefaultBurst             = 100
	DefaultMaxMessageBytes   = 64 << 10
	DefaultWriteTimeout      = 10 * time.Second
	DefaultSendQueueSize     = 256

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			Addr:            DefaultAddr,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Restore: RestoreSection{
			Lifetime:        DefaultLifetime,
			CleanupInterval: DefaultCleanupInterval,
		},
		Limits: LimitsSection{
			MessagesPerSecond: DefaultMessagesPerSecond,
			Burst:             DefaultBurst,
			MaxMessageBytes:   DefaultMaxMessageBytes,
			WriteTimeout:      DefaultWriteTimeout,
			SendQueueSize:     DefaultSendQueueSize,
		},
		Metrics: MetricsSection{
			Enabled: true,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// DefaultMap returns Default as a nested map keyed like the koanf tags. It
// seeds the loader, so environment variables can address every known key.
func DefaultMap() map[string]any {
	d := Default()
	return map[string]any{
		"server": map[string]any{
			"addr":             d.Server.Addr,
			"allowed_origins":  []string{},
			"shutdown_timeout": d.Server.ShutdownTimeout.String(),
		},
		"restore": map[string]any{
			"lifetime":         d.Restore.Lifetime.String(),
			"cleanup_interval": d.Restore.CleanupInterval.String(),
			"omit_keys":        []string{},
		},
		"limits": map[string]any{
			"messages_per_second": d.Limits.MessagesPerSecond,
			"burst":               d.Limits.Burst,
			"max_message_bytes":   d.Limits.MaxMessageBytes,
			"write_timeout":       d.Limits.WriteTimeout.String(),
			"send_queue_size":     d.Limits.SendQueueSize,
		},
		"metrics": map[string]any{
			"enabled": d.Metrics.Enabled,
		},
		"log": map[string]any{
			"level":  d.Log.Level,
			"format": d.Log.Format,
		},
	}
}
