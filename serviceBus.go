package admin

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type Payload interface {
	Type() string
}

// HandlerFunc handles one message dispatched through a ServiceBus.
type HandlerFunc func(context.Context, Payload) (interface{}, error)

// MiddlewareFunc wraps the next handler and returns another one.
type MiddlewareFunc func(h HandlerFunc) HandlerFunc

// ServiceBus routes messages to the single handler registered for their type.
type ServiceBus interface {
	// Register assigns a handler to a message type.
	Register(to string, handler HandlerFunc) error

	// Handlers returns all registered handlers.
	Handlers() map[string]HandlerFunc

	// Use adds middleware to the chain.
	Use(...MiddlewareFunc)

	// Dispatch sends a message to its handler through the middleware chain.
	Dispatch(context.Context, Payload) (interface{}, error)
}

type serviceBus struct {
	mu         sync.RWMutex
	handlers   map[string]HandlerFunc
	middleware []MiddlewareFunc
}

func NewServiceBus() ServiceBus {
	return &serviceBus{
		handlers:   make(map[string]HandlerFunc),
		middleware: make([]MiddlewareFunc, 0),
	}
}

func (b *serviceBus) Register(to string, handler HandlerFunc) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.handlers[to]; ok {
		return fmt.Errorf("%w: %s", ErrHandlerExists, to)
	}
	b.handlers[to] = handler
	return nil
}

func (b *serviceBus) Handlers() map[string]HandlerFunc {
	b.mu.RLock()
	defer b.mu.RUnlock()

	handlers := make(map[string]HandlerFunc, len(b.handlers))
	for k, v := range b.handlers {
		handlers[k] = v
	}
	return handlers
}

func (b *serviceBus) Use(middleware ...MiddlewareFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.middleware = append(b.middleware, middleware...)
}

func (b *serviceBus) Dispatch(ctx context.Context, msg Payload) (interface{}, error) {
	if msg == nil {
		return nil, ErrNilMessage
	}

	b.mu.RLock()
	h, ok := b.handlers[msg.Type()]
	middleware := b.middleware
	b.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrHandlerNotFound, msg.Type())
	}
	return applyMiddleware(h, middleware...)(ctx, msg)
}

func applyMiddleware(h HandlerFunc, middleware ...MiddlewareFunc) HandlerFunc {
	for i := len(middleware) - 1; i >= 0; i-- {
		h = middleware[i](h)
	}
	return h
}

// LoggerMiddleware logs every dispatch with its duration and outcome.
func LoggerMiddleware(logger *Logger) MiddlewareFunc {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, msg Payload) (interface{}, error) {
			start := time.Now()
			res, err := next(ctx, msg)
			if err != nil {
				logger.Warn("%s failed after %s: %v", msg.Type(), time.Since(start), err)
			} else {
				logger.Debug("%s handled in %s", msg.Type(), time.Since(start))
			}
			return res, err
		}
	}
}
