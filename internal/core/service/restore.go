package service

import (
	"context"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/yndnr/restoremesh-go/internal/core/domain"
	"github.com/yndnr/restoremesh-go/internal/telemetry/logger"
	"github.com/yndnr/restoremesh-go/internal/telemetry/metric"
	"github.com/yndnr/restoremesh-go/pkg/token"
)

// Default restoration settings.
const (
	DefaultLifetime        = time.Hour
	DefaultCleanupInterval = time.Hour
)

// RestoreServiceConfig holds configuration for RestoreService.
type RestoreServiceConfig struct {
	// Lifetime is the maximum age of a restorable token (default: 1h).
	Lifetime time.Duration

	// CleanupInterval is the evictor sweep period (default: 1h).
	CleanupInterval time.Duration

	// OmitKeys are field names never copied by a restore, in addition to
	// the reserved connection fields.
	OmitKeys []string
}

// DefaultRestoreServiceConfig returns default configuration.
func DefaultRestoreServiceConfig() *RestoreServiceConfig {
	return &RestoreServiceConfig{
		Lifetime:        DefaultLifetime,
		CleanupInterval: DefaultCleanupInterval,
	}
}

// Validate fills zero durations with defaults and rejects negative ones.
func (c *RestoreServiceConfig) Validate() error {
	if c.Lifetime < 0 {
		return domain.ErrInvalidConfig.WithDetails(fmt.Sprintf("lifetime must not be negative, got %s", c.Lifetime))
	}
	if c.CleanupInterval < 0 {
		return domain.ErrInvalidConfig.WithDetails(fmt.Sprintf("cleanup interval must not be negative, got %s", c.CleanupInterval))
	}
	for _, k := range c.OmitKeys {
		if k == "" {
			return domain.ErrInvalidConfig.WithDetails("omit keys must not contain an empty name")
		}
	}
	if c.Lifetime == 0 {
		c.Lifetime = DefaultLifetime
	}
	if c.CleanupInterval == 0 {
		c.CleanupInterval = DefaultCleanupInterval
	}
	return nil
}

// Option configures a RestoreService.
type Option func(*options)

type options struct {
	clock    clock.Clock
	logger   logger.Logger
	metrics  *metric.Registry
	generate func() (string, error)
}

// WithClock sets the time source shared by the handler and the evictor.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithLogger sets the logger used by the evictor and by Handle when the
// event context carries none.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMetrics sets the metrics registry.
func WithMetrics(m *metric.Registry) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithTokenGenerator replaces the token source.
func WithTokenGenerator(fn func() (string, error)) Option {
	return func(o *options) {
		o.generate = fn
	}
}

// RestoreService implements the restoration protocol for one server instance.
type RestoreService struct {
	registry RestoreRegistry
	evictor  *Evictor
	cfg      RestoreServiceConfig
	skip     domain.KeySet

	clock    clock.Clock
	logger   logger.Logger
	metrics  *metric.Registry
	generate func() (string, error)
}

// NewRestoreService creates a RestoreService over registry. A nil config
// selects the defaults. Invalid configuration is rejected here, never while
// handling events.
func NewRestoreService(registry RestoreRegistry, config *RestoreServiceConfig, opts ...Option) (*RestoreService, error) {
	if registry == nil {
		return nil, domain.ErrInvalidConfig.WithDetails("registry is required")
	}

	cfg := DefaultRestoreServiceConfig()
	if config != nil {
		c := *config
		c.OmitKeys = append([]string(nil), config.OmitKeys...)
		cfg = &c
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{
		clock:    clock.New(),
		logger:   logger.Default(),
		generate: token.Generate,
	}
	for _, opt := range opts {
		opt(&o)
	}

	s := &RestoreService{
		registry: registry,
		cfg:      *cfg,
		skip:     domain.ReservedFields().Union(domain.NewKeySet(cfg.OmitKeys...)),
		clock:    o.clock,
		logger:   o.logger,
		metrics:  o.metrics,
		generate: o.generate,
	}
	s.evictor = NewEvictor(registry, cfg.Lifetime, cfg.CleanupInterval,
		WithClock(o.clock),
		WithLogger(o.logger),
		WithMetrics(o.metrics),
	)
	return s, nil
}

// Start launches the evictor. It is safe to call more than once.
func (s *RestoreService) Start() {
	s.evictor.Start()
}

// Close stops the evictor and waits for it to exit.
func (s *RestoreService) Close() error {
	s.evictor.Stop()
	return nil
}

// Config returns a copy of the effective configuration.
func (s *RestoreService) Config() RestoreServiceConfig {
	cfg := s.cfg
	cfg.OmitKeys = append([]string(nil), s.cfg.OmitKeys...)
	return cfg
}

// Registry returns the registry the service operates on.
func (s *RestoreService) Registry() RestoreRegistry {
	return s.registry
}

// Handle processes one inbound event. It calls next unless the event was a
// restore request for a registered token, in which case the status has been
// sent to the client and the pipeline stops here.
func (s *RestoreService) Handle(ctx context.Context, ev Event, next Next) error {
	session := ev.Session()
	if session == nil {
		return domain.ErrSessionMissing
	}
	now := s.clock.Now()

	if ev.IsConnection() {
		if err := s.issue(ctx, ev, session, now); err != nil {
			return err
		}
		return callNext(ctx, next)
	}

	handled, err := s.restore(ctx, ev, session, now)
	if err != nil || handled {
		return err
	}
	return callNext(ctx, next)
}

func (s *RestoreService) issue(ctx context.Context, ev Event, session *domain.Session, now time.Time) error {
	tok, err := s.generate()
	if err != nil {
		return domain.ErrTokenGeneration.WithCause(err)
	}

	session.SetRestoreMetadata(domain.RestoreMetadata{Token: tok, IssuedAt: now})
	if err := s.registry.Put(tok, session, now); err != nil {
		s.log(ctx).Error("restoration token registration failed", "token", tok, "error", err)
		return err
	}
	s.metrics.IncTokensIssued()

	if err := ev.Send(domain.RestoreIDNotification(tok)); err != nil {
		// The client never learned the token, so nobody can claim it.
		s.registry.Remove(tok)
		return domain.ErrInternal.WithDetails("send restore id").WithCause(err)
	}

	s.log(ctx).Debug("restoration token issued", "token", tok)
	return nil
}

func (s *RestoreService) restore(ctx context.Context, ev Event, session *domain.Session, now time.Time) (bool, error) {
	text, ok := ev.Message().(string)
	if !ok {
		return false, nil
	}
	tok, ok := ParseRestoreRequest(text)
	if !ok {
		return false, nil
	}

	entry, outcome := s.registry.Claim(tok, now, s.cfg.Lifetime)
	log := s.log(ctx).With("token", tok)

	switch outcome {
	case domain.ClaimRestored:
		copied := session.CopyFrom(entry.Session, s.skip)
		if md, ok := session.RestoreMetadata(); ok {
			s.registry.Remove(md.Token)
		}
		s.metrics.ObserveRestore(outcome.String())
		log.Info("session restored", "fields", copied, "age", now.Sub(entry.IssuedAt))
		return true, s.sendStatus(ev, domain.StatusRestored)

	case domain.ClaimExpired:
		s.metrics.ObserveRestore(outcome.String())
		log.Info("restore request timed out", "age", now.Sub(entry.IssuedAt))
		return true, s.sendStatus(ev, domain.StatusTimedOut)

	default:
		log.Debug("restore request for unknown token")
		return false, nil
	}
}

// log returns the context logger, or the service logger, bound to ctx.
func (s *RestoreService) log(ctx context.Context) logger.Logger {
	return logger.FromContextOr(ctx, s.logger).WithContext(ctx)
}

func (s *RestoreService) sendStatus(ev Event, status string) error {
	if err := ev.Send(domain.RestoreStatusNotification(status)); err != nil {
		return domain.ErrInternal.WithDetails("send restore status").WithCause(err)
	}
	return nil
}

func callNext(ctx context.Context, next Next) error {
	if next == nil {
		return nil
	}
	return next(ctx)
}
