package admin

import (
	"context"
	"errors"
)

// EventPublisher delivers domain events to whoever listens outside the process
// (or outside the table controller).
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type publisherGroup []EventPublisher

// NewPublisherGroup publishes every event to all publishers, in order.
func NewPublisherGroup(publishers ...EventPublisher) EventPublisher {
	return publisherGroup(publishers)
}

func (g publisherGroup) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, p := range g {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (g publisherGroup) Close() error {
	var errs []error
	for _, p := range g {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
