package wsserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/multierr"

	"github.com/yndnr/restoremesh-go/internal/core/domain"
	"github.com/yndnr/restoremesh-go/internal/core/service"
	"github.com/yndnr/restoremesh-go/internal/telemetry/logger"
	"github.com/yndnr/restoremesh-go/internal/telemetry/metric"
	"github.com/yndnr/restoremesh-go/pkg/cmap"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithMetrics sets the metrics registry.
func WithMetrics(m *metric.Registry) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithStage replaces the application stage that runs after the restoration
// middleware. The default is FieldStage.
func WithStage(h HandlerFunc) Option {
	return func(s *Server) {
		s.stage = h
	}
}

// Server is the WebSocket server.
type Server struct {
	cfg      Config
	restore  *service.RestoreService
	logger   logger.Logger
	metrics  *metric.Registry
	stage    HandlerFunc
	pipeline HandlerFunc

	upgrader   websocket.Upgrader
	httpServer *http.Server
	conns      *cmap.Map[string, *Conn]

	mu      sync.Mutex
	closing bool
	wg      sync.WaitGroup
}

// New creates a server dispatching to restore.
func New(cfg Config, restore *service.RestoreService, opts ...Option) (*Server, error) {
	if restore == nil {
		return nil, domain.ErrInvalidConfig.WithDetails("restore service is required")
	}

	s := &Server{
		cfg:     cfg.withDefaults(),
		restore: restore,
		logger:  logger.Default(),
		stage:   FieldStage,
		conns:   cmap.New[string, *Conn](),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "wsserver")

	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     originChecker(s.cfg.AllowedOrigins),
	}
	s.pipeline = Chain(s.stage,
		Recover(),
		Logging(),
		RateLimit(),
		Restore(restore),
	)
	s.httpServer = &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.Handler(),
	}
	return s, nil
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.newRouter()
}

// ListenAndServe starts the server on the configured address.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Serve accepts connections on l.
func (s *Server) Serve(l net.Listener) error {
	return s.httpServer.Serve(l)
}

// Shutdown stops accepting connections, closes every live connection with a
// going-away frame and waits for their goroutines to exit or ctx to end.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closing = true
	s.mu.Unlock()

	err := s.httpServer.Shutdown(ctx)

	s.conns.Range(func(_ string, c *Conn) bool {
		c.CloseWith(websocket.CloseGoingAway, "server shutting down")
		return true
	})

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		err = multierr.Append(err, ctx.Err())
	}
	return err
}

// ConnCount returns the number of live connections.
func (s *Server) ConnCount() int {
	return s.conns.Count()
}

func (s *Server) isClosing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closing
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	if s.closing {
		s.mu.Unlock()
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "shutting down"})
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()
	defer s.wg.Done()

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		s.logger.Debug("websocket upgrade failed", "remote", clientIP(r), "error", err)
		return
	}
	ws.SetReadLimit(s.cfg.MaxMessageBytes)

	s.serveConn(newConn(ws, r, s.cfg))
}

func (s *Server) serveConn(c *Conn) {
	s.conns.Set(c.id, c)
	s.metrics.IncConnections()
	go c.writeLoop()

	defer func() {
		c.Close()
		<-c.writerDone
		s.conns.Delete(c.id)
		s.metrics.DecConnections()
	}()

	if s.isClosing() {
		c.CloseWith(websocket.CloseGoingAway, "server shutting down")
		return
	}

	ctx := logger.WithConnID(logger.WithLogger(context.Background(), s.logger), c.id)
	log := logger.L(ctx)
	log.Info("connection opened", "remote", c.remote)

	if err := s.pipeline(ctx, newConnectEvent(c)); err != nil {
		c.CloseWith(websocket.CloseInternalServerErr, "")
		return
	}

	for {
		frame, data, err := c.ws.ReadMessage()
		if err != nil {
			if errors.Is(err, websocket.ErrReadLimit) {
				c.CloseWith(websocket.CloseMessageTooBig, "")
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("connection read failed", "error", err)
			}
			log.Info("connection closed")
			return
		}

		ev := newMessageEvent(c, frame, data)
		s.metrics.IncMessages(ev.Kind())
		c.session.Set(domain.FieldMessage, ev.Message())

		if err := s.pipeline(ctx, ev); err != nil && !domain.IsClientError(err) {
			c.CloseWith(websocket.CloseInternalServerErr, "")
			return
		}
	}
}
