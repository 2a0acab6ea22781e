package admin

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"
)

type Event interface {
	ID() ID
	AggregateType() string
	AggregateID() ID
	Type() string
	TimeStamp() time.Time
	Payload() any
	ToJsonString() (string, error)
}

type event struct {
	eventID       ID
	aggregateType string
	aggregateID   ID
	eventType     string
	timeStamp     time.Time
	payload       any
}

func (e *event) ID() ID {
	return e.eventID
}

func (e *event) AggregateType() string {
	return e.aggregateType
}

func (e *event) AggregateID() ID {
	return e.aggregateID
}

func (e *event) Type() string {
	return e.eventType
}

func (e *event) TimeStamp() time.Time {
	return e.timeStamp
}

func (e *event) Payload() any {
	return e.payload
}

func (e *event) ToJsonString() (string, error) {
	data, err := json.Marshal(map[string]any{
		"event_id":       e.eventID.String(),
		"aggregate_type": e.aggregateType,
		"aggregate_id":   e.aggregateID.String(),
		"event_type":     e.eventType,
		"time_stamp":     e.timeStamp,
		"payload":        e.payload,
	})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func EventType(eventPayload any) string {
	return reflect.TypeOf(eventPayload).PkgPath() + "." + reflect.TypeOf(eventPayload).Name()
}

func EventFromJsonString(jsonString string) (Event, error) {
	var data struct {
		EventID       string    `json:"event_id"`
		AggregateType string    `json:"aggregate_type"`
		AggregateID   string    `json:"aggregate_id"`
		EventType     string    `json:"event_type"`
		TimeStamp     time.Time `json:"time_stamp"`
		Payload       any       `json:"payload"`
	}
	if err := json.Unmarshal([]byte(jsonString), &data); err != nil {
		return nil, err
	}
	if data.EventType == "" {
		return nil, errors.New("event_type is missing")
	}

	eventID := GenerateUUID()
	if data.EventID != "" {
		eventID = NewID(data.EventID)
	}

	return &event{
		eventID:       eventID,
		aggregateType: data.AggregateType,
		aggregateID:   NewID(data.AggregateID),
		eventType:     data.EventType,
		timeStamp:     data.TimeStamp,
		payload:       data.Payload,
	}, nil
}

// MapEventPayload converts a decoded event payload back into its typed form.
func MapEventPayload[T any](event Event, payload T) (T, error) {
	if typed, ok := event.Payload().(T); ok {
		return typed, nil
	}
	jsonStr, err := json.Marshal(event.Payload())
	if err != nil {
		return payload, fmt.Errorf("failed to marshal %s payload: %w", event.Type(), err)
	}
	if err := json.Unmarshal(jsonStr, &payload); err != nil {
		return payload, fmt.Errorf("failed to map %s payload: %w", event.Type(), err)
	}
	return payload, nil
}
