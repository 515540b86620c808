package connection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/yndnr/restoremesh-go/internal/core/domain"
	"github.com/yndnr/restoremesh-go/internal/core/service"
	"github.com/yndnr/restoremesh-go/internal/server/wsserver"
)

// ErrServer is returned when the server answers a command with an error
// notification.
var ErrServer = errors.New("server error")

// Client is a WebSocket session with the server.
type Client struct {
	ws      *websocket.Conn
	token   string
	timeout time.Duration
}

// Dial connects to server and waits for the restoration token.
func Dial(ctx context.Context, server string, timeout time.Duration) (*Client, error) {
	dialer := websocket.Dialer{HandshakeTimeout: timeout}
	ws, _, err := dialer.DialContext(ctx, wsURL(server), nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", server, err)
	}

	c := &Client{ws: ws, timeout: timeout}
	n, err := c.read()
	if err != nil {
		ws.Close()
		return nil, fmt.Errorf("read restore id: %w", err)
	}
	if n.Type != domain.NotifyRestoreID {
		ws.Close()
		return nil, fmt.Errorf("expected %s, got %s", domain.NotifyRestoreID, n.Type)
	}
	c.token, _ = n.Value.(string)
	return c, nil
}

// Token returns the restoration token issued to this connection.
func (c *Client) Token() string {
	return c.token
}

// SetField stores a session field on the server.
func (c *Client) SetField(key string, value any) error {
	n, err := c.roundTrip(wsserver.Command{Type: wsserver.CommandSetField, Key: key, Value: value})
	if err != nil {
		return err
	}
	if n.Type != wsserver.NotifyFieldSet {
		return fmt.Errorf("set %s: unexpected reply %s", key, n.Type)
	}
	return nil
}

// Fields returns the session fields visible to the client.
func (c *Client) Fields() (map[string]any, error) {
	n, err := c.roundTrip(wsserver.Command{Type: wsserver.CommandGetFields})
	if err != nil {
		return nil, err
	}
	fields, ok := n.Value.(map[string]any)
	if n.Type != wsserver.NotifyFields || !ok {
		return nil, fmt.Errorf("get fields: unexpected reply %s", n.Type)
	}
	return fields, nil
}

// Restore asks the server to restore the session registered under token.
// It returns the status ("restored" or "timed out"). An unknown token gets
// no status from the server; Restore reports it as an error.
func (c *Client) Restore(token string) (string, error) {
	if err := c.write(websocket.TextMessage, []byte(service.FormatRestoreRequest(token))); err != nil {
		return "", err
	}
	n, err := c.read()
	if err != nil {
		return "", err
	}
	switch n.Type {
	case domain.NotifyRestoreStatus:
		status, _ := n.Value.(string)
		return status, nil
	case wsserver.NotifyEcho:
		return "", fmt.Errorf("token %s is not registered", token)
	case wsserver.NotifyError:
		return "", fmt.Errorf("%w: %v", ErrServer, n.Value)
	default:
		return "", fmt.Errorf("restore: unexpected reply %s", n.Type)
	}
}

// Close closes the connection with a normal closure.
func (c *Client) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = c.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(c.timeout))
	return c.ws.Close()
}

func (c *Client) roundTrip(cmd wsserver.Command) (domain.Notification, error) {
	data, err := json.Marshal(cmd)
	if err != nil {
		return domain.Notification{}, err
	}
	if err := c.write(websocket.TextMessage, data); err != nil {
		return domain.Notification{}, err
	}
	n, err := c.read()
	if err != nil {
		return domain.Notification{}, err
	}
	if n.Type == wsserver.NotifyError {
		return n, fmt.Errorf("%w: %v", ErrServer, n.Value)
	}
	return n, nil
}

func (c *Client) write(kind int, data []byte) error {
	_ = c.ws.SetWriteDeadline(time.Now().Add(c.timeout))
	return c.ws.WriteMessage(kind, data)
}

func (c *Client) read() (domain.Notification, error) {
	_ = c.ws.SetReadDeadline(time.Now().Add(c.timeout))
	_, data, err := c.ws.ReadMessage()
	if err != nil {
		return domain.Notification{}, err
	}
	var n domain.Notification
	if err := json.Unmarshal(data, &n); err != nil {
		return domain.Notification{}, fmt.Errorf("decode notification: %w", err)
	}
	return n, nil
}
