package wsserver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yndnr/restoremesh-go/internal/core/domain"
	"github.com/yndnr/restoremesh-go/internal/telemetry/logger"
)

func TestChain_Order(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next HandlerFunc) HandlerFunc {
			return func(ctx context.Context, ev *Event) error {
				order = append(order, name)
				return next(ctx, ev)
			}
		}
	}

	h := Chain(func(context.Context, *Event) error {
		order = append(order, "stage")
		return nil
	}, mw("a"), mw("b"), mw("c"))

	require.NoError(t, h(context.Background(), &Event{connect: true}))
	assert.Equal(t, []string{"a", "b", "c", "stage"}, order)
}

func TestRecover(t *testing.T) {
	ctx := logger.WithLogger(context.Background(), logger.Discard())
	h := Chain(func(context.Context, *Event) error {
		panic("boom")
	}, Recover())

	err := h(ctx, &Event{connect: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInternal)
	assert.Contains(t, err.Error(), "boom")
}

func TestLogging_PassesErrorThrough(t *testing.T) {
	ctx := logger.WithLogger(context.Background(), logger.Discard())
	want := errors.New("stage failed")
	h := Chain(func(context.Context, *Event) error { return want }, Logging())

	assert.ErrorIs(t, h(ctx, &Event{connect: true}), want)
}

func TestEvent_Kinds(t *testing.T) {
	assert.Equal(t, KindConnect, (&Event{connect: true}).Kind())
	assert.Nil(t, (&Event{connect: true}).Message())

	text := &Event{frame: 1, data: []byte("hi")}
	assert.Equal(t, KindText, text.Kind())
	assert.Equal(t, "hi", text.Message())

	bin := &Event{frame: 2, data: []byte{0x01}}
	assert.Equal(t, KindBinary, bin.Kind())
	assert.Equal(t, []byte{0x01}, bin.Message())
}

func TestErrorNotification(t *testing.T) {
	assert.Equal(t, domain.Notification{Type: NotifyError, Value: "RM-SYS-4290"}, ErrorNotification(domain.ErrRateLimited))
	assert.Equal(t, domain.Notification{Type: NotifyError, Value: domain.ErrInternal.Code}, ErrorNotification(errors.New("plain")))
}
