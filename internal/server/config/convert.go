package config

import (
	"github.com/yndnr/restoremesh-go/internal/core/service"
	"github.com/yndnr/restoremesh-go/internal/server/wsserver"
	"github.com/yndnr/restoremesh-go/internal/telemetry/logger"
)

// ToRestoreConfig returns the restoration service configuration.
func (c *ServerConfig) ToRestoreConfig() *service.RestoreServiceConfig {
	return &service.RestoreServiceConfig{
		Lifetime:        c.Restore.Lifetime,
		CleanupInterval: c.Restore.CleanupInterval,
		OmitKeys:        append([]string(nil), c.Restore.OmitKeys...),
	}
}

// ToTransportConfig returns the WebSocket server configuration.
func (c *ServerConfig) ToTransportConfig() wsserver.Config {
	return wsserver.Config{
		Addr:              c.Server.Addr,
		MessagesPerSecond: c.Limits.MessagesPerSecond,
		Burst:             c.Limits.Burst,
		MaxMessageBytes:   c.Limits.MaxMessageBytes,
		WriteTimeout:      c.Limits.WriteTimeout,
		SendQueueSize:     c.Limits.SendQueueSize,
		AllowedOrigins:    append([]string(nil), c.Server.AllowedOrigins...),
		MetricsEnabled:    c.Metrics.Enabled,
	}
}

// ToLoggerConfig returns the logger configuration.
func (c *ServerConfig) ToLoggerConfig() logger.Config {
	lc := logger.DefaultConfig()
	lc.Level = c.Log.Level
	lc.Format = c.Log.Format
	return lc
}
