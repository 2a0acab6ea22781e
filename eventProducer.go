package admin

import (
	"sync"
	"time"
)

type EventProducer interface {
	RegisterEvent(aggregateType string, aggregateID ID, payload any) EventProducer
	// Events returns all the events that have been registered and clears them.
	Events() []Event
}

type eventProducer struct {
	mu     sync.Mutex
	events []Event
	now    func() time.Time
}

func NewEventProducer() EventProducer {
	return &eventProducer{
		events: make([]Event, 0),
		now:    time.Now,
	}
}

func (ep *eventProducer) Events() []Event {
	ep.mu.Lock()
	defer ep.mu.Unlock()

	e := ep.events
	ep.events = make([]Event, 0)
	return e
}

func (ep *eventProducer) RegisterEvent(aggregateType string, aggregateID ID, payload any) EventProducer {
	ep.mu.Lock()
	defer ep.mu.Unlock()

	ep.events = append(ep.events, &event{
		eventID:       GenerateUUID(),
		aggregateType: aggregateType,
		aggregateID:   aggregateID,
		eventType:     EventType(payload),
		timeStamp:     ep.now(),
		payload:       payload,
	})
	return ep
}
