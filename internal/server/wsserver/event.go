package wsserver

import (
	"github.com/gorilla/websocket"

	"github.com/yndnr/restoremesh-go/internal/core/domain"
	"github.com/yndnr/restoremesh-go/internal/core/service"
)

// Event kinds, also used as metric labels.
const (
	KindConnect = "connect"
	KindText    = "text"
	KindBinary  = "binary"
)

// Event is one inbound occurrence on a connection: the connection itself
// opening, or a frame received on it.
type Event struct {
	conn    *Conn
	connect bool
	frame   int
	data    []byte
}

var _ service.Event = (*Event)(nil)

func newConnectEvent(c *Conn) *Event {
	return &Event{conn: c, connect: true}
}

func newMessageEvent(c *Conn, frame int, data []byte) *Event {
	return &Event{conn: c, frame: frame, data: data}
}

// IsConnection reports whether the event is the connection opening.
func (e *Event) IsConnection() bool {
	return e.connect
}

// Message returns the payload: a string for text frames, a []byte for binary
// frames and nil for the connection event.
func (e *Event) Message() any {
	switch {
	case e.connect:
		return nil
	case e.frame == websocket.TextMessage:
		return string(e.data)
	default:
		return e.data
	}
}

// Kind returns KindConnect, KindText or KindBinary.
func (e *Event) Kind() string {
	switch {
	case e.connect:
		return KindConnect
	case e.frame == websocket.TextMessage:
		return KindText
	default:
		return KindBinary
	}
}

// Session returns the connection's session.
func (e *Event) Session() *domain.Session {
	return e.conn.session
}

// Send queues a notification for the client.
func (e *Event) Send(n domain.Notification) error {
	return e.conn.Send(n)
}

// Conn returns the connection the event arrived on.
func (e *Event) Conn() *Conn {
	return e.conn
}
