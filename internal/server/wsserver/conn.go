package wsserver

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/eapache/queue"
	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/yndnr/restoremesh-go/internal/core/domain"
)

// Send errors.
var (
	ErrConnClosed      = errors.New("wsserver: connection closed")
	ErrSendQueueFull   = errors.New("wsserver: send queue full")
	errNotSerializable = errors.New("wsserver: notification not serializable")
)

type frame struct {
	kind int
	data []byte
}

// Conn is one client connection.
type Conn struct {
	id      string
	ws      *websocket.Conn
	session *domain.Session
	limiter *rate.Limiter
	remote  string

	writeTimeout time.Duration
	maxQueue     int

	mu        sync.Mutex
	queue     *queue.Queue
	closed    bool
	closeCode int
	closeText string

	notify     chan struct{}
	done       chan struct{}
	writerDone chan struct{}
}

func newConn(ws *websocket.Conn, r *http.Request, cfg Config) *Conn {
	limit := rate.Inf
	if cfg.MessagesPerSecond > 0 {
		limit = rate.Limit(cfg.MessagesPerSecond)
	}

	c := &Conn{
		id:           ulid.Make().String(),
		ws:           ws,
		session:      domain.NewSession(),
		limiter:      rate.NewLimiter(limit, cfg.Burst),
		remote:       clientIP(r),
		writeTimeout: cfg.WriteTimeout,
		maxQueue:     cfg.SendQueueSize,
		queue:        queue.New(),
		closeCode:    websocket.CloseNormalClosure,
		notify:       make(chan struct{}, 1),
		done:         make(chan struct{}),
		writerDone:   make(chan struct{}),
	}
	c.session.Set(domain.FieldConnection, c)
	c.session.Set(domain.FieldRequest, r)
	return c
}

// ID returns the connection's ULID.
func (c *Conn) ID() string { return c.id }

// Session returns the connection's session.
func (c *Conn) Session() *domain.Session { return c.session }

// RemoteAddr returns the client IP.
func (c *Conn) RemoteAddr() string { return c.remote }

// Allow reports whether one more inbound message fits the rate limit.
func (c *Conn) Allow() bool { return c.limiter.Allow() }

// Send queues n as a JSON text frame.
func (c *Conn) Send(n domain.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return errors.Join(errNotSerializable, err)
	}
	return c.enqueue(frame{kind: websocket.TextMessage, data: data})
}

// SendText queues a raw text frame.
func (c *Conn) SendText(text string) error {
	return c.enqueue(frame{kind: websocket.TextMessage, data: []byte(text)})
}

func (c *Conn) enqueue(f frame) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrConnClosed
	}
	if c.queue.Length() >= c.maxQueue {
		c.mu.Unlock()
		return ErrSendQueueFull
	}
	c.queue.Add(f)
	c.mu.Unlock()

	select {
	case c.notify <- struct{}{}:
	default:
	}
	return nil
}

func (c *Conn) dequeue() (frame, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.queue.Length() == 0 {
		return frame{}, false
	}
	return c.queue.Remove().(frame), true
}

// Close closes the connection with a normal closure.
func (c *Conn) Close() {
	c.CloseWith(websocket.CloseNormalClosure, "")
}

// CloseWith stops accepting outbound frames, lets the writer flush what is
// already queued and then closes the socket with code. Only the first call
// has an effect.
func (c *Conn) CloseWith(code int, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.closeCode = code
	c.closeText = text
	close(c.done)
}

// writeLoop owns all writes to the socket.
func (c *Conn) writeLoop() {
	defer close(c.writerDone)
	defer c.ws.Close()

	for {
		select {
		case <-c.notify:
			if !c.flush() {
				return
			}
		case <-c.done:
			if c.flush() {
				c.mu.Lock()
				msg := websocket.FormatCloseMessage(c.closeCode, c.closeText)
				c.mu.Unlock()
				_ = c.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(c.writeTimeout))
			}
			return
		}
	}
}

func (c *Conn) flush() bool {
	for {
		f, ok := c.dequeue()
		if !ok {
			return true
		}
		_ = c.ws.SetWriteDeadline(time.Now().Add(c.writeTimeout))
		if err := c.ws.WriteMessage(f.kind, f.data); err != nil {
			c.CloseWith(websocket.CloseAbnormalClosure, "")
			return false
		}
	}
}

// clientIP extracts the client IP from the request.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	// net.SplitHostPort handles IPv6 addresses like [::1]:8080
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
