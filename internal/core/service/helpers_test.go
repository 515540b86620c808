package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"

	"github.com/yndnr/restoremesh-go/internal/core/domain"
	"github.com/yndnr/restoremesh-go/internal/storage/memory"
	"github.com/yndnr/restoremesh-go/internal/telemetry/logger"
)

// fakeEvent is an in-memory Event recording everything sent to the client.
type fakeEvent struct {
	conn    bool
	msg     any
	session *domain.Session
	sendErr error

	mu   sync.Mutex
	sent []domain.Notification
}

func connectEvent(s *domain.Session) *fakeEvent {
	return &fakeEvent{conn: true, session: s}
}

func messageEvent(s *domain.Session, msg any) *fakeEvent {
	return &fakeEvent{msg: msg, session: s}
}

func (e *fakeEvent) IsConnection() bool       { return e.conn }
func (e *fakeEvent) Message() any             { return e.msg }
func (e *fakeEvent) Session() *domain.Session { return e.session }

func (e *fakeEvent) Send(n domain.Notification) error {
	if e.sendErr != nil {
		return e.sendErr
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sent = append(e.sent, n)
	return nil
}

func (e *fakeEvent) Sent() []domain.Notification {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]domain.Notification(nil), e.sent...)
}

// nextSpy is a Next continuation that counts invocations.
type nextSpy struct {
	mu    sync.Mutex
	calls int
}

func (n *nextSpy) Next(context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
	return nil
}

func (n *nextSpy) Calls() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls
}

type fixture struct {
	svc      *RestoreService
	registry *memory.Registry
	clock    *clock.Mock
}

func newFixture(t *testing.T, cfg *RestoreServiceConfig, opts ...Option) *fixture {
	t.Helper()

	mock := clock.NewMock()
	mock.Set(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	reg := memory.NewRegistry()

	opts = append([]Option{WithClock(mock), WithLogger(logger.Discard())}, opts...)
	svc, err := NewRestoreService(reg, cfg, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	return &fixture{svc: svc, registry: reg, clock: mock}
}

// connect opens a new session through the handler and returns it with its token.
func (f *fixture) connect(t *testing.T) (*domain.Session, string) {
	t.Helper()

	s := domain.NewSession()
	ev := connectEvent(s)
	require.NoError(t, f.svc.Handle(context.Background(), ev, nil))

	md, ok := s.RestoreMetadata()
	require.True(t, ok, "session should carry restoration metadata")
	return s, md.Token
}

var errSend = errors.New("connection reset")

// recordLogger is a logger.Logger that keeps every message it receives.
type recordLogger struct {
	mu   *sync.Mutex
	msgs *[]string
}

func newRecordLogger() recordLogger {
	return recordLogger{mu: &sync.Mutex{}, msgs: &[]string{}}
}

func (l recordLogger) record(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.msgs = append(*l.msgs, msg)
}

func (l recordLogger) Messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), *l.msgs...)
}

func (l recordLogger) Debug(msg string, _ ...any)                { l.record(msg) }
func (l recordLogger) Info(msg string, _ ...any)                 { l.record(msg) }
func (l recordLogger) Warn(msg string, _ ...any)                 { l.record(msg) }
func (l recordLogger) Error(msg string, _ ...any)                { l.record(msg) }
func (l recordLogger) With(...any) logger.Logger                 { return l }
func (l recordLogger) WithContext(context.Context) logger.Logger { return l }
