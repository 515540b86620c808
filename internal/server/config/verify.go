package config

import (
	"fmt"
	"net"
	"strings"

	"go.uber.org/multierr"

	"github.com/yndnr/restoremesh-go/internal/core/domain"
	"github.com/yndnr/restoremesh-go/internal/telemetry/logger"
)

// Verify validates the configuration. All problems are reported together,
// wrapped in domain.ErrInvalidConfig.
func Verify(cfg *ServerConfig) error {
	err := multierr.Combine(
		verifyServer(&cfg.Server),
		verifyRestore(&cfg.Restore),
		verifyLimits(&cfg.Limits),
		verifyLog(&cfg.Log),
	)
	if err != nil {
		return domain.ErrInvalidConfig.WithCause(err)
	}
	return nil
}

func verifyServer(cfg *ServerSection) error {
	var err error
	if cfg.Addr == "" {
		err = multierr.Append(err, fmt.Errorf("server.addr is required"))
	} else if _, _, splitErr := net.SplitHostPort(cfg.Addr); splitErr != nil {
		err = multierr.Append(err, fmt.Errorf("server.addr %q: %w", cfg.Addr, splitErr))
	}
	if cfg.ShutdownTimeout < 0 {
		err = multierr.Append(err, fmt.Errorf("server.shutdown_timeout must not be negative"))
	}
	return err
}

func verifyRestore(cfg *RestoreSection) error {
	var err error
	if cfg.Lifetime < 0 {
		err = multierr.Append(err, fmt.Errorf("restore.lifetime must not be negative"))
	}
	if cfg.CleanupInterval < 0 {
		err = multierr.Append(err, fmt.Errorf("restore.cleanup_interval must not be negative"))
	}
	for i, k := range cfg.OmitKeys {
		if k == "" {
			err = multierr.Append(err, fmt.Errorf("restore.omit_keys[%d] is empty", i))
		}
	}
	return err
}

func verifyLimits(cfg *LimitsSection) error {
	var err error
	if cfg.MessagesPerSecond < 0 {
		err = multierr.Append(err, fmt.Errorf("limits.messages_per_second must not be negative"))
	}
	if cfg.Burst < 0 {
		err = multierr.Append(err, fmt.Errorf("limits.burst must not be negative"))
	}
	if cfg.MaxMessageBytes < 0 {
		err = multierr.Append(err, fmt.Errorf("limits.max_message_bytes must not be negative"))
	}
	if cfg.WriteTimeout < 0 {
		err = multierr.Append(err, fmt.Errorf("limits.write_timeout must not be negative"))
	}
	if cfg.SendQueueSize < 0 {
		err = multierr.Append(err, fmt.Errorf("limits.send_queue_size must not be negative"))
	}
	return err
}

func verifyLog(cfg *LogSection) error {
	var err error
	if _, perr := logger.ParseLevel(cfg.Level); perr != nil {
		err = multierr.Append(err, fmt.Errorf("log.level %q is not one of debug, info, warn, error", cfg.Level))
	}
	switch strings.ToLower(cfg.Format) {
	case "json", "text", "console":
	default:
		err = multierr.Append(err, fmt.Errorf("log.format %q is not one of json, text, console", cfg.Format))
	}
	return err
}
