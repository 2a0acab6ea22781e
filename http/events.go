package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	admin "github.com/paulvitic/members-admin"
	"github.com/paulvitic/members-admin/table"
)

// EventJournal lists the latest domain events.
type EventJournal interface {
	Recent(limit int) []admin.Event
	EventsOf(aggregateType, aggregateID string) []admin.Event
}

// EventsEndpoint lists recent table events, newest last. ?limit= caps the count,
// ?aggregateId= keeps the events of one record (aggregateType defaults to members).
type EventsEndpoint struct {
	journal EventJournal
	logger  *admin.Logger
}

func NewEventsEndpoint(journal EventJournal, logger *admin.Logger) *EventsEndpoint {
	return &EventsEndpoint{journal: journal, logger: logger.Named("Endpoint /events")}
}

func (e *EventsEndpoint) Path() string {
	return "/events"
}

func (e *EventsEndpoint) Get(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, e.logger, fmt.Errorf("%w: limit %q", errBadRequest, raw))
			return
		}
		limit = n
	}

	var events []admin.Event
	if id := r.URL.Query().Get("aggregateId"); id != "" {
		aggregateType := r.URL.Query().Get("aggregateType")
		if aggregateType == "" {
			aggregateType = table.AggregateType
		}
		events = e.journal.EventsOf(aggregateType, id)
		if limit > 0 && limit < len(events) {
			events = events[len(events)-limit:]
		}
	} else {
		events = e.journal.Recent(limit)
	}
	items := make([]json.RawMessage, 0, len(events))
	for _, event := range events {
		s, err := event.ToJsonString()
		if err != nil {
			writeError(w, e.logger, err)
			return
		}
		items = append(items, json.RawMessage(s))
	}
	writeJSON(w, e.logger, http.StatusOK, items)
}
