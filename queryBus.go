package admin

import (
	"context"
	"errors"
	"fmt"
)

// HandleQuery answers one query type.
type HandleQuery func(context.Context, Query) (QueryResponse, error)

type QueryHandler interface {
	SubscribedTo() map[string]HandleQuery
}

type QueryBus interface {
	Subscribe(handlers ...QueryHandler) error
	Dispatch(ctx context.Context, query Query) (QueryResponse, error)
	Use(middleware ...MiddlewareFunc)
}

type queryBus struct {
	serviceBus ServiceBus
	logger     *Logger
}

func NewQueryBus(logger *Logger) QueryBus {
	return &queryBus{
		serviceBus: NewServiceBus(),
		logger:     logger.Named("QueryBus"),
	}
}

func (c *queryBus) Subscribe(handlers ...QueryHandler) error {
	var errs []error
	for _, handler := range handlers {
		for queryType, handle := range handler.SubscribedTo() {
			handle := handle
			err := c.serviceBus.Register(queryType, func(ctx context.Context, msg Payload) (interface{}, error) {
				return handle(ctx, msg.(Query))
			})
			if err != nil {
				errs = append(errs, err)
				continue
			}
			c.logger.Info("Subscribed to %s query", queryType)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors registering query handlers: %w", errors.Join(errs...))
	}
	return nil
}

func (c *queryBus) Dispatch(ctx context.Context, query Query) (QueryResponse, error) {
	if query == nil {
		return nil, ErrNilMessage
	}
	res, err := c.serviceBus.Dispatch(ctx, query)
	if err != nil {
		return nil, err
	}

	if qr, ok := res.(QueryResponse); ok {
		return qr, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotAQuery, query.Type())
}

func (c *queryBus) Use(middleware ...MiddlewareFunc) {
	c.serviceBus.Use(middleware...)
}
