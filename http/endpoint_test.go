package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	admin "github.com/paulvitic/members-admin"
	"github.com/paulvitic/members-admin/inMemory"
	"github.com/paulvitic/members-admin/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	mu      sync.Mutex
	records []table.Record
	err     error
}

func (s *stubSource) Fetch(context.Context) ([]table.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records, s.err
}

func (s *stubSource) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

type pageView struct {
	Rows []struct {
		ID       any    `json:"id"`
		Name     string `json:"name"`
		Email    string `json:"email"`
		Role     string `json:"role"`
		Selected bool   `json:"selected"`
	} `json:"rows"`
	Page              int    `json:"page"`
	TotalPages        int    `json:"totalPages"`
	Pages             []int  `json:"pages"`
	Matching          int    `json:"matching"`
	Total             int    `json:"total"`
	Search            string `json:"search"`
	Sort              string `json:"sort"`
	Selected          []any  `json:"selected"`
	AllOnPageSelected bool   `json:"allOnPageSelected"`
	Editing           *struct {
		ID    any    `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"editing"`
	Status table.Status `json:"status"`
}

type fixture struct {
	handler http.Handler
	source  *stubSource
	journal *inMemory.EventLog
}

func newFixture(t *testing.T, n int) *fixture {
	t.Helper()
	logger := admin.NewLogger("test")
	logger.SetOutput(io.Discard)

	records := make([]table.Record, n)
	for i := range records {
		role := table.RoleAdmin
		if (i+1)%2 == 0 {
			role = table.RoleMember
		}
		records[i] = table.Record{
			ID:    admin.NewID(i + 1),
			Name:  fmt.Sprintf("Member %d", i+1),
			Email: fmt.Sprintf("member%d@example.com", i+1),
			Role:  role,
		}
	}
	source := &stubSource{records: records}
	journal := inMemory.NewEventLog(100)

	controller := table.NewController(source, logger, table.WithPublisher(journal))
	commands := admin.NewCommandBus(logger)
	queries := admin.NewQueryBus(logger)
	require.NoError(t, commands.Subscribe(controller.Commands()))
	require.NoError(t, queries.Subscribe(controller.Queries()))

	endpoints := MembersEndpoints(Buses{Commands: commands, Queries: queries, Logger: logger})
	endpoints = append(endpoints, NewEventsEndpoint(journal, logger))
	server := admin.NewServer(admin.NewServerConfig(), logger).WithEndpoints(endpoints...)

	return &fixture{handler: server.Handler(), source: source, journal: journal}
}

func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	}
	req := httptest.NewRequest(method, path, reader)
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)
	return rr
}

func (f *fixture) page(t *testing.T, method, path string, body any) pageView {
	t.Helper()
	rr := f.do(t, method, path, body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var view pageView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	return view
}

func errorOf(t *testing.T, rr *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var res errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	return res
}

func TestMembers_BeforeLoad(t *testing.T) {
	f := newFixture(t, 12)

	view := f.page(t, http.MethodGet, "/members", nil)
	assert.Empty(t, view.Rows)
	assert.Equal(t, 0, view.TotalPages)
	assert.Equal(t, table.PhaseIdle, view.Status.Phase)
}

func TestMembers_ReloadSearchSortPage(t *testing.T) {
	f := newFixture(t, 25)

	view := f.page(t, http.MethodPost, "/members/reload", nil)
	assert.Len(t, view.Rows, 10)
	assert.Equal(t, []int{1, 2, 3}, view.Pages)
	assert.Equal(t, table.PhaseReady, view.Status.Phase)

	view = f.page(t, http.MethodPut, "/members/page", map[string]int{"page": 3})
	assert.Equal(t, 3, view.Page)
	assert.Len(t, view.Rows, 5)

	view = f.page(t, http.MethodPut, "/members/page?page=9", nil)
	assert.Equal(t, 3, view.Page, "out of range pages are ignored")

	view = f.page(t, http.MethodPost, "/members/page/prev", nil)
	assert.Equal(t, 2, view.Page)
	view = f.page(t, http.MethodPost, "/members/page/next", nil)
	assert.Equal(t, 3, view.Page)

	view = f.page(t, http.MethodPut, "/members/search", map[string]string{"text": "MEMBER 1"})
	assert.Equal(t, 1, view.Page)
	assert.Equal(t, 11, view.Matching)
	assert.Equal(t, 25, view.Total)

	view = f.page(t, http.MethodPut, "/members/sort", map[string]string{"key": "members"})
	assert.Equal(t, "members", view.Sort)
	assert.Equal(t, "MEMBER 1", view.Search)
	assert.Equal(t, "member", view.Rows[0].Role)

	rr := f.do(t, http.MethodPut, "/members/sort", map[string]string{"key": "email"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, errorOf(t, rr).Error, "unknown sort key")
}

func TestMembers_SelectionAndDelete(t *testing.T) {
	f := newFixture(t, 12)
	f.page(t, http.MethodPost, "/members/reload", nil)

	view := f.page(t, http.MethodPost, "/members/rows/3/selection", nil)
	assert.True(t, view.Rows[2].Selected)

	view = f.page(t, http.MethodDelete, "/members/rows/4", nil)
	assert.Equal(t, 11, view.Total)
	assert.Len(t, view.Selected, 1, "deleting a row keeps the selection")

	view = f.page(t, http.MethodPost, "/members/selection", nil)
	assert.True(t, view.AllOnPageSelected)
	assert.Len(t, view.Selected, 10)

	view = f.page(t, http.MethodDelete, "/members/selection", nil)
	assert.Equal(t, 1, view.Total)
	assert.Empty(t, view.Selected)
	assert.Equal(t, 1, view.Page)

	rr := f.do(t, http.MethodPost, "/members/rows/99/selection", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = f.do(t, http.MethodGet, "/members/selection", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestMembers_Edit(t *testing.T) {
	f := newFixture(t, 12)
	f.page(t, http.MethodPost, "/members/reload", nil)

	view := f.page(t, http.MethodPost, "/members/rows/3/edit", nil)
	require.NotNil(t, view.Editing)
	assert.Equal(t, "Member 3", view.Editing.Name)

	view = f.page(t, http.MethodPatch, "/members/edit", map[string]string{"field": "email", "value": "broken"})
	assert.Equal(t, "broken", view.Editing.Email)
	assert.Equal(t, "member3@example.com", view.Rows[2].Email)

	rr := f.do(t, http.MethodPut, "/members/edit", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, errorOf(t, rr).Problems, table.FieldEmail)

	rr = f.do(t, http.MethodPatch, "/members/edit", map[string]string{"field": "id", "value": "5"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	f.page(t, http.MethodPatch, "/members/edit", map[string]string{"field": "email", "value": "x@example.com"})
	f.page(t, http.MethodPatch, "/members/edit", map[string]string{"field": "name", "value": "X"})
	view = f.page(t, http.MethodPut, "/members/edit", nil)
	assert.Nil(t, view.Editing)
	assert.Equal(t, "X", view.Rows[2].Name)
	assert.Equal(t, "x@example.com", view.Rows[2].Email)

	rr = f.do(t, http.MethodPut, "/members/edit", nil)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = f.do(t, http.MethodPost, "/members/rows/99/edit", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	f.page(t, http.MethodPost, "/members/rows/5/edit", nil)
	view = f.page(t, http.MethodDelete, "/members/edit", nil)
	assert.Nil(t, view.Editing)
}

func TestMembers_BadBody(t *testing.T) {
	f := newFixture(t, 3)

	rr := f.do(t, http.MethodPut, "/members/search", `{"text":`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = f.do(t, http.MethodPut, "/members/search", `{"query":"a"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = f.do(t, http.MethodPut, "/members/page?page=two", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMembers_ReloadFailure(t *testing.T) {
	f := newFixture(t, 3)
	f.page(t, http.MethodPost, "/members/reload", nil)

	f.source.fail(errors.New("source unavailable"))
	rr := f.do(t, http.MethodPost, "/members/reload", nil)
	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, errorOf(t, rr).Error, "source unavailable")

	rr = f.do(t, http.MethodGet, "/status", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var status table.Status
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
	assert.Equal(t, table.PhaseFailed, status.Phase)
	assert.Equal(t, 3, status.Records)

	view := f.page(t, http.MethodGet, "/members", nil)
	assert.Len(t, view.Rows, 3, "the previous load is still shown")
}

func TestEvents(t *testing.T) {
	f := newFixture(t, 3)
	f.page(t, http.MethodPost, "/members/reload", nil)
	f.page(t, http.MethodDelete, "/members/rows/2", nil)

	rr := f.do(t, http.MethodGet, "/events", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var events []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &events))
	require.Len(t, events, 2)
	assert.Equal(t, admin.EventType(table.RecordsDeleted{}), events[1]["event_type"])
	assert.Equal(t, map[string]any{"ids": []any{"2"}}, events[1]["payload"])

	rr = f.do(t, http.MethodGet, "/events?limit=1", nil)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &events))
	assert.Len(t, events, 1)

	rr = f.do(t, http.MethodGet, "/events?limit=-1", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestEvents_OfOneRecord(t *testing.T) {
	f := newFixture(t, 3)
	f.page(t, http.MethodPost, "/members/reload", nil)
	f.page(t, http.MethodPost, "/members/rows/3/edit", nil)
	f.page(t, http.MethodPatch, "/members/edit", map[string]string{"field": "name", "value": "Renamed"})
	f.page(t, http.MethodPut, "/members/edit", nil)
	f.page(t, http.MethodDelete, "/members/rows/2", nil)

	rr := f.do(t, http.MethodGet, "/events?aggregateId=3", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var events []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &events))
	require.Len(t, events, 1)
	assert.Equal(t, admin.EventType(table.RecordUpdated{}), events[0]["event_type"])
	assert.Equal(t, "3", events[0]["aggregate_id"])

	rr = f.do(t, http.MethodGet, "/events?aggregateId=3&aggregateType=rooms", nil)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &events))
	assert.Empty(t, events)
}
