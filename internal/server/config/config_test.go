package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yndnr/restoremesh-go/internal/core/domain"
	"github.com/yndnr/restoremesh-go/internal/telemetry/logger"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultAddr)
	}
	if cfg.Restore.Lifetime != time.Hour {
		t.Errorf("Restore.Lifetime = %v, want 1h", cfg.Restore.Lifetime)
	}
	if cfg.Restore.CleanupInterval != time.Hour {
		t.Errorf("Restore.CleanupInterval = %v, want 1h", cfg.Restore.CleanupInterval)
	}
	if len(cfg.Restore.OmitKeys) != 0 {
		t.Errorf("Restore.OmitKeys = %v, want empty", cfg.Restore.OmitKeys)
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics should be enabled by default")
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, DefaultLogLevel)
	}
	if cfg.Log.Format != DefaultLogFormat {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, DefaultLogFormat)
	}

	if err := Verify(cfg); err != nil {
		t.Errorf("Verify(Default()) error = %v", err)
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ServerConfig)
		wantErr string
	}{
		{"empty addr", func(c *ServerConfig) { c.Server.Addr = "" }, "server.addr is required"},
		{"bad addr", func(c *ServerConfig) { c.Server.Addr = "no-port" }, "server.addr"},
		{"negative lifetime", func(c *ServerConfig) { c.Restore.Lifetime = -time.Second }, "restore.lifetime"},
		{"negative interval", func(c *ServerConfig) { c.Restore.CleanupInterval = -time.Second }, "restore.cleanup_interval"},
		{"empty omit key", func(c *ServerConfig) { c.Restore.OmitKeys = []string{"a", ""} }, "restore.omit_keys[1]"},
		{"negative rate", func(c *ServerConfig) { c.Limits.MessagesPerSecond = -1 }, "limits.messages_per_second"},
		{"negative burst", func(c *ServerConfig) { c.Limits.Burst = -1 }, "limits.burst"},
		{"bad level", func(c *ServerConfig) { c.Log.Level = "loud" }, "log.level"},
		{"bad format", func(c *ServerConfig) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := Verify(cfg)
			if err == nil {
				t.Fatal("Verify() should fail")
			}
			if !errors.Is(err, domain.ErrInvalidConfig) {
				t.Errorf("Verify() error = %v, want ErrInvalidConfig", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Verify() error = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestVerify_ReportsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Restore.Lifetime = -time.Second
	cfg.Log.Level = "loud"

	err := Verify(cfg)
	if err == nil {
		t.Fatal("Verify() should fail")
	}
	for _, want := range []string{"restore.lifetime", "log.level"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Verify() error = %q, missing %q", err, want)
		}
	}
}

func TestVerify_LogFormats(t *testing.T) {
	bad := Default()
	bad.Log.Format = "xml"
	err := Verify(bad)
	if err == nil {
		t.Fatal("Verify() should reject log.format xml")
	}

	const prefix = "is not one of "
	msg := err.Error()
	i := strings.Index(msg, prefix)
	if i < 0 {
		t.Fatalf("Verify() error = %q, want the accepted formats listed", msg)
	}
	listed := strings.Split(msg[i+len(prefix):], ", ")
	if len(listed) != 3 {
		t.Fatalf("listed formats = %v, want 3", listed)
	}

	for _, format := range listed {
		cfg := Default()
		cfg.Log.Format = format
		if err := Verify(cfg); err != nil {
			t.Errorf("Verify(format=%q) error = %v", format, err)
		}
		lc := cfg.ToLoggerConfig()
		lc.Output = io.Discard
		if _, err := logger.New(lc); err != nil {
			t.Errorf("logger.New(format=%q) error = %v", format, err)
		}
	}
}

func TestVerify_ZeroDurationsAllowed(t *testing.T) {
	cfg := Default()
	cfg.Restore.Lifetime = 0
	cfg.Restore.CleanupInterval = 0

	if err := Verify(cfg); err != nil {
		t.Errorf("Verify() error = %v, zero selects the service default", err)
	}
}

func TestConversions(t *testing.T) {
	cfg := Default()
	cfg.Restore.Lifetime = 30 * time.Minute
	cfg.Restore.OmitKeys = []string{"password"}
	cfg.Server.AllowedOrigins = []string{"https://app.example"}
	cfg.Limits.Burst = 7
	cfg.Log.Level = "debug"

	rc := cfg.ToRestoreConfig()
	if rc.Lifetime != 30*time.Minute {
		t.Errorf("Lifetime = %v, want 30m", rc.Lifetime)
	}
	rc.OmitKeys[0] = "changed"
	if cfg.Restore.OmitKeys[0] != "password" {
		t.Error("ToRestoreConfig() should copy OmitKeys")
	}

	tc := cfg.ToTransportConfig()
	if tc.Addr != cfg.Server.Addr || tc.Burst != 7 || !tc.MetricsEnabled {
		t.Errorf("ToTransportConfig() = %+v", tc)
	}
	if len(tc.AllowedOrigins) != 1 || tc.AllowedOrigins[0] != "https://app.example" {
		t.Errorf("AllowedOrigins = %v", tc.AllowedOrigins)
	}

	lc := cfg.ToLoggerConfig()
	if lc.Level != "debug" || lc.Format != DefaultLogFormat {
		t.Errorf("ToLoggerConfig() = %+v", lc)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Restore.Lifetime != DefaultLifetime {
		t.Errorf("Lifetime = %v, want %v", cfg.Restore.Lifetime, DefaultLifetime)
	}
	if cfg.Limits.MaxMessageBytes != DefaultMaxMessageBytes {
		t.Errorf("MaxMessageBytes = %d, want %d", cfg.Limits.MaxMessageBytes, DefaultMaxMessageBytes)
	}
}

func TestLoad_FileEnvAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "restoremesh.yaml")
	content := `
server:
  addr: "0.0.0.0:9000"
restore:
  lifetime: "10m"
  omit_keys: ["password", "cart"]
limits:
  burst: 5
log:
  level: "debug"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv("RESTOREMESH_RESTORE_CLEANUP_INTERVAL", "2m")
	t.Setenv("RESTOREMESH_LIMITS_MESSAGES_PER_SECOND", "3.5")

	cfg, err := Load(path, map[string]any{
		"log": map[string]any{"level": "warn"},
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != "0.0.0.0:9000" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if cfg.Restore.Lifetime != 10*time.Minute {
		t.Errorf("Lifetime = %v, want 10m", cfg.Restore.Lifetime)
	}
	if cfg.Restore.CleanupInterval != 2*time.Minute {
		t.Errorf("CleanupInterval = %v, want 2m", cfg.Restore.CleanupInterval)
	}
	if len(cfg.Restore.OmitKeys) != 2 {
		t.Errorf("OmitKeys = %v", cfg.Restore.OmitKeys)
	}
	if cfg.Limits.Burst != 5 {
		t.Errorf("Burst = %d, want 5", cfg.Limits.Burst)
	}
	if cfg.Limits.MessagesPerSecond != 3.5 {
		t.Errorf("MessagesPerSecond = %v, want 3.5", cfg.Limits.MessagesPerSecond)
	}
	if cfg.Limits.WriteTimeout != DefaultWriteTimeout {
		t.Errorf("WriteTimeout = %v, want default", cfg.Limits.WriteTimeout)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want override %q", cfg.Log.Level, "warn")
	}
}

func TestLoad_InvalidSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "restoremesh.yaml")
	if err := os.WriteFile(path, []byte("restore: 5\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	_, err := Load(path, nil)
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
	}
}

func TestLoad_NegativeLifetime(t *testing.T) {
	_, err := Load("", map[string]any{
		"restore": map[string]any{"lifetime": "-1s"},
	})
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
	}
}
