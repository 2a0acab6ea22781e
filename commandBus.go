package admin

import (
	"context"
	"errors"
	"fmt"
	"reflect"
)

// CommandBus is responsible for routing commands to their appropriate handlers
type CommandBus interface {
	// Subscribe registers command handlers with the bus
	Subscribe(handlers ...CommandHandler) error
	// Dispatch sends a command to its registered handler
	Dispatch(ctx context.Context, command Command) error
	// Use adds middleware to every dispatch
	Use(middleware ...MiddlewareFunc)
}

type commandBus struct {
	serviceBus ServiceBus
	logger     *Logger
}

func NewCommandBus(logger *Logger) CommandBus {
	return &commandBus{
		serviceBus: NewServiceBus(),
		logger:     logger.Named("CommandBus"),
	}
}

func (c *commandBus) Subscribe(handlers ...CommandHandler) error {
	var errs []error

	for _, handler := range handlers {
		for cmdType, handle := range handler.SubscribedTo() {
			handle := handle
			err := c.serviceBus.Register(cmdType, func(ctx context.Context, msg Payload) (interface{}, error) {
				return nil, handle(ctx, msg.(Command))
			})
			if err != nil {
				c.logger.Warn("%v", err)
				errs = append(errs, err)
				continue
			}
			c.logger.Info("Subscribed %s to %s command", reflect.TypeOf(handler).String(), cmdType)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors registering command handlers: %w", errors.Join(errs...))
	}
	return nil
}

func (c *commandBus) Dispatch(ctx context.Context, command Command) error {
	if command == nil {
		return ErrNilMessage
	}
	c.logger.Debug("Dispatching %s: %+v", command.Type(), command.Body())
	_, err := c.serviceBus.Dispatch(ctx, command)
	return err
}

func (c *commandBus) Use(middleware ...MiddlewareFunc) {
	c.serviceBus.Use(middleware...)
}
