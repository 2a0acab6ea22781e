package admin

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

type testMessage struct{}

func (t *testMessage) Type() string {
	return "test"
}

func newTestLogger() *Logger {
	logger := NewLogger("test")
	logger.SetOutput(io.Discard)
	return logger
}

func TestNewServiceBus(t *testing.T) {
	bus := NewServiceBus()
	assert.NotNil(t, bus)
	assert.Empty(t, bus.Handlers())
}

func TestServiceBus_Register(t *testing.T) {
	bus := NewServiceBus()
	handler := func(context.Context, Payload) (interface{}, error) { return nil, nil }
	assert.NoError(t, bus.Register("test1", handler))
	assert.NoError(t, bus.Register("test2", handler))
	assert.Len(t, bus.Handlers(), 2)

	err := bus.Register("test1", handler)
	assert.ErrorIs(t, err, ErrHandlerExists)
}

func TestServiceBus_DispatchWithMiddleware(t *testing.T) {
	bus := NewServiceBus()

	calls := make([]string, 0)

	middleware1 := func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, msg Payload) (interface{}, error) {
			calls = append(calls, "middleware1")
			return next(ctx, msg)
		}
	}
	middleware2 := func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, msg Payload) (interface{}, error) {
			calls = append(calls, "middleware2")
			return next(ctx, msg)
		}
	}
	bus.Use(LoggerMiddleware(newTestLogger()), middleware1, middleware2)

	handler := func(context.Context, Payload) (interface{}, error) {
		calls = append(calls, "handler")
		return "result", nil
	}
	assert.NoError(t, bus.Register("test", handler))

	res, err := bus.Dispatch(context.Background(), &testMessage{})
	assert.NoError(t, err)
	assert.Equal(t, "result", res)
	assert.Equal(t, []string{"middleware1", "middleware2", "handler"}, calls)
}

func TestServiceBus_DispatchErrors(t *testing.T) {
	bus := NewServiceBus()

	_, err := bus.Dispatch(context.Background(), &testMessage{})
	assert.ErrorIs(t, err, ErrHandlerNotFound)

	_, err = bus.Dispatch(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNilMessage)

	handler := func(context.Context, Payload) (interface{}, error) { return nil, errors.New("executor error") }
	assert.NoError(t, bus.Register("test", handler))

	res, err := bus.Dispatch(context.Background(), &testMessage{})
	assert.Empty(t, res)
	assert.EqualError(t, err, "executor error")
}
