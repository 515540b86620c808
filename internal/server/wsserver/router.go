package wsserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/restoremesh-go/internal/core/domain"
	"github.com/yndnr/restoremesh-go/internal/infra/buildinfo"
	"github.com/yndnr/restoremesh-go/internal/telemetry/logger"
)

type contextKey string

// ContextKeyRequestID is the context key for the HTTP request ID.
const ContextKeyRequestID contextKey = "request_id"

type httpMiddleware func(http.Handler) http.Handler

func chainHTTP(h http.Handler, middlewares ...httpMiddleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

func (s *Server) newRouter() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /ws", s.handleWS)
	mux.HandleFunc("GET /health", handleHealth)
	mux.HandleFunc("GET /version", handleVersion)
	mux.HandleFunc("GET /debug/registry", s.handleDebugRegistry)
	if s.cfg.MetricsEnabled && s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}

	// Order: Recover -> RequestID -> mux
	return chainHTTP(mux, recoverHTTP(s.logger), requestID())
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

// registryStatus is the /debug/registry payload.
type registryStatus struct {
	Entries         int      `json:"entries"`
	Connections     int      `json:"connections"`
	Lifetime        string   `json:"lifetime"`
	CleanupInterval string   `json:"cleanup_interval"`
	OmitKeys        []string `json:"omit_keys"`
}

func (s *Server) handleDebugRegistry(w http.ResponseWriter, _ *http.Request) {
	cfg := s.restore.Config()
	omit := cfg.OmitKeys
	if omit == nil {
		omit = []string{}
	}
	writeJSON(w, http.StatusOK, registryStatus{
		Entries:         s.restore.Registry().Len(),
		Connections:     s.ConnCount(),
		Lifetime:        cfg.Lifetime.String(),
		CleanupInterval: cfg.CleanupInterval.String(),
		OmitKeys:        omit,
	})
}

// requestID tags each HTTP request with an ID, reusing X-Request-ID when the
// caller sent one.
func requestID() httpMiddleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-ID")
			if id == "" {
				id = "req-" + ulid.Make().String()
			}
			w.Header().Set("X-Request-ID", id)

			ctx := context.WithValue(r.Context(), ContextKeyRequestID, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// recoverHTTP recovers from panics and returns a 500.
func recoverHTTP(log logger.Logger) httpMiddleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					id, _ := r.Context().Value(ContextKeyRequestID).(string)
					log.Error("panic recovered",
						"request_id", id,
						"error", err,
						"path", r.URL.Path,
					)
					w.Header().Set("X-Error-Code", domain.ErrInternal.Code)
					writeJSON(w, http.StatusInternalServerError, map[string]string{
						"code":    domain.ErrInternal.Code,
						"message": "internal server error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// originChecker builds the upgrader's origin check. An empty list allows
// every origin.
func originChecker(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		if len(allowed) == 0 {
			return true
		}
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
