package command

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yndnr/restoremesh-go/internal/core/domain"
	"github.com/yndnr/restoremesh-go/internal/core/service"
	"github.com/yndnr/restoremesh-go/internal/server/wsserver"
	"github.com/yndnr/restoremesh-go/internal/storage/memory"
	"github.com/yndnr/restoremesh-go/internal/telemetry/logger"
	"github.com/yndnr/restoremesh-go/pkg/token"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	svc, err := service.NewRestoreService(memory.NewRegistry(), nil, service.WithLogger(logger.Discard()))
	require.NoError(t, err)
	srv, err := wsserver.New(wsserver.DefaultConfig(), svc, wsserver.WithLogger(logger.Discard()))
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
		ts.Close()
		_ = svc.Close()
	})
	return ts
}

// run executes the CLI against server with JSON output and decodes the result.
func run(t *testing.T, server string, args ...string) (map[string]any, error) {
	t.Helper()

	var buf bytes.Buffer
	app := App()
	app.Writer = &buf
	app.ErrWriter = &buf

	full := append([]string{"restoremesh-cli", "--server", server, "--timeout", "2s", "-o", "json"}, args...)
	if err := app.Run(full); err != nil {
		return nil, err
	}
	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out), buf.String())
	return out, nil
}

func TestParseFields(t *testing.T) {
	fields, err := parseFields([]string{"a=1", "b=x=y", "c="})
	require.NoError(t, err)
	assert.Equal(t, [][2]string{{"a", "1"}, {"b", "x=y"}, {"c", ""}}, fields)

	for _, bad := range []string{"novalue", "=v"} {
		_, err := parseFields([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestConnectThenRestore(t *testing.T) {
	ts := newTestServer(t)

	out, err := run(t, ts.URL, "connect", "--set", "user=alice", "--set", "role=admin")
	require.NoError(t, err)
	tok, _ := out["token"].(string)
	require.True(t, token.IsCanonical(tok))
	assert.Equal(t, 2.0, out["fields"])

	out, err = run(t, ts.URL, "restore", "--token", tok)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRestored, out["status"])
	assert.Equal(t, "alice", out["field.user"])
	assert.Equal(t, "admin", out["field.role"])
	assert.NotEqual(t, tok, out["token"])

	_, err = run(t, ts.URL, "restore", "--token", tok)
	assert.Error(t, err, "a consumed token must not restore twice")
}

func TestConnect_InvalidField(t *testing.T) {
	ts := newTestServer(t)

	_, err := run(t, ts.URL, "connect", "--set", "broken")
	assert.Error(t, err)
}

func TestConnect_ReservedField(t *testing.T) {
	ts := newTestServer(t)

	_, err := run(t, ts.URL, "connect", "--set", domain.FieldRequest+"=x")
	assert.Error(t, err)
}

func TestRestore_RequiresToken(t *testing.T) {
	ts := newTestServer(t)

	_, err := run(t, ts.URL, "restore")
	assert.Error(t, err)
}

func TestStatus(t *testing.T) {
	ts := newTestServer(t)

	_, err := run(t, ts.URL, "connect")
	require.NoError(t, err)

	out, err := run(t, ts.URL, "status")
	require.NoError(t, err)
	assert.Equal(t, "healthy", out["status"])
	assert.Equal(t, 1.0, out["entries"])
	assert.Equal(t, "1h0m0s", out["lifetime"])
	assert.NotEmpty(t, out["version"])
}

func TestStatus_Unreachable(t *testing.T) {
	_, err := run(t, "127.0.0.1:1", "status")
	assert.Error(t, err)
}
