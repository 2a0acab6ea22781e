package inMemory

import (
	"context"

	admin "github.com/paulvitic/members-admin"
)

// ProcessMessage handles one message taken off a queue.
type ProcessMessage func([]byte) error

type MessageConsumer struct {
	queue   <-chan string
	process ProcessMessage
	logger  *admin.Logger
}

func NewMessageConsumer(queue <-chan string, process ProcessMessage, logger *admin.Logger) *MessageConsumer {
	return &MessageConsumer{
		queue:   queue,
		process: process,
		logger:  logger.Named("MessageConsumer"),
	}
}

// Run consumes until the queue is closed or ctx is done. Processing errors are
// logged and do not stop the consumer.
func (c *MessageConsumer) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-c.queue:
			if !ok {
				return nil
			}
			if err := c.process([]byte(msg)); err != nil {
				c.logger.Warn("could not process message: %v", err)
			}
		}
	}
}
