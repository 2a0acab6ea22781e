package inMemory

import (
	"context"
	"sync"

	admin "github.com/paulvitic/members-admin"
)

const DefaultEventLogCapacity = 1000

// EventLog keeps the most recent events, oldest first.
type EventLog struct {
	mu       sync.RWMutex
	events   []admin.Event
	capacity int
}

func NewEventLog(capacity int) *EventLog {
	if capacity < 1 {
		capacity = DefaultEventLogCapacity
	}
	return &EventLog{capacity: capacity}
}

func (l *EventLog) Append(event admin.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.events = append(l.events, event)
	if over := len(l.events) - l.capacity; over > 0 {
		l.events = append([]admin.Event(nil), l.events[over:]...)
	}
}

// ProcessMessage appends an event received as JSON.
func (l *EventLog) ProcessMessage(msg []byte) error {
	event, err := admin.EventFromJsonString(string(msg))
	if err != nil {
		return err
	}
	l.Append(event)
	return nil
}

func (l *EventLog) Publish(_ context.Context, event admin.Event) error {
	l.Append(event)
	return nil
}

func (l *EventLog) Close() error {
	return nil
}

// Recent returns up to limit of the newest events, oldest first; all of them when limit < 1.
func (l *EventLog) Recent(limit int) []admin.Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	start := 0
	if limit > 0 && limit < len(l.events) {
		start = len(l.events) - limit
	}
	return append([]admin.Event(nil), l.events[start:]...)
}

// EventsOf returns the events raised for one aggregate.
func (l *EventLog) EventsOf(aggregateType, aggregateID string) []admin.Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var events []admin.Event
	for _, e := range l.events {
		if e.AggregateType() == aggregateType && e.AggregateID().String() == aggregateID {
			events = append(events, e)
		}
	}
	return events
}
