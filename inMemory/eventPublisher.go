package inMemory

import (
	"context"
	"errors"
	"sync"

	admin "github.com/paulvitic/members-admin"
)

var ErrPublisherClosed = errors.New("publisher is closed")

// EventPublisher queues events as JSON strings on a buffered channel.
type EventPublisher struct {
	mu     sync.RWMutex
	queue  chan string
	closed bool
}

func NewEventPublisher(bufferSize int) *EventPublisher {
	if bufferSize < 0 {
		bufferSize = 0
	}
	return &EventPublisher{queue: make(chan string, bufferSize)}
}

// Publish waits for room in the queue unless ctx is done first.
func (p *EventPublisher) Publish(ctx context.Context, event admin.Event) error {
	jsonString, err := event.ToJsonString()
	if err != nil {
		return err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}
	select {
	case p.queue <- jsonString:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *EventPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	return nil
}

func (p *EventPublisher) Queue() <-chan string {
	return p.queue
}
