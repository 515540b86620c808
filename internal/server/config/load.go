package config

import (
	"github.com/yndnr/restoremesh-go/internal/core/domain"
	"github.com/yndnr/restoremesh-go/internal/infra/confloader"
)

// Load reads the configuration from defaults, the optional file at path,
// RESTOREMESH_ environment variables and overrides, in increasing priority,
// then verifies it. A section that does not decode into its struct is
// reported as domain.ErrInvalidConfig.
func Load(path string, overrides map[string]any) (*ServerConfig, error) {
	opts := []confloader.Option{
		confloader.WithDefaults(DefaultMap()),
		confloader.WithConfigFile(path),
	}
	if len(overrides) > 0 {
		opts = append(opts, confloader.WithOverrides(overrides))
	}

	cfg := &ServerConfig{}
	if err := confloader.NewLoader(opts...).Load(cfg); err != nil {
		return nil, domain.ErrInvalidConfig.WithCause(err)
	}
	if err := Verify(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
