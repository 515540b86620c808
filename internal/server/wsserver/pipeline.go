package wsserver

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/yndnr/restoremesh-go/internal/core/domain"
	"github.com/yndnr/restoremesh-go/internal/core/service"
	"github.com/yndnr/restoremesh-go/internal/telemetry/logger"
)

// HandlerFunc processes one event.
type HandlerFunc func(ctx context.Context, ev *Event) error

// Middleware wraps a HandlerFunc with additional functionality.
type Middleware func(HandlerFunc) HandlerFunc

// Chain chains multiple middlewares together. The first middleware is the
// outermost.
func Chain(h HandlerFunc, middlewares ...Middleware) HandlerFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// Recover turns a panic in a later stage into ErrInternal.
func Recover() Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, ev *Event) (err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.L(ctx).Error("panic recovered",
						"kind", ev.Kind(),
						"panic", r,
						"stack", string(debug.Stack()),
					)
					err = domain.ErrInternal.WithDetails(fmt.Sprint(r))
				}
			}()
			return next(ctx, ev)
		}
	}
}

// Logging logs every event with its outcome and duration.
func Logging() Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, ev *Event) error {
			start := time.Now()
			err := next(ctx, ev)

			attrs := []any{
				"kind", ev.Kind(),
				"duration_ms", time.Since(start).Milliseconds(),
			}
			log := logger.L(ctx)
			switch {
			case err == nil:
				log.Debug("event handled", attrs...)
			case domain.IsClientError(err):
				log.Warn("event rejected", append(attrs, "error", err)...)
			default:
				log.Error("event failed", append(attrs, "error", err)...)
			}
			return err
		}
	}
}

// RateLimit drops messages over the connection's rate limit and tells the
// client. The connection event is never limited.
func RateLimit() Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, ev *Event) error {
			if ev.IsConnection() || ev.Conn().Allow() {
				return next(ctx, ev)
			}
			_ = ev.Send(ErrorNotification(domain.ErrRateLimited))
			return domain.ErrRateLimited
		}
	}
}

// Restore runs the restoration protocol ahead of the rest of the pipeline.
func Restore(svc *service.RestoreService) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, ev *Event) error {
			return svc.Handle(ctx, ev, func(ctx context.Context) error {
				return next(ctx, ev)
			})
		}
	}
}
