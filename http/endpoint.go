package http

import (
	"fmt"
	"net/http"

	admin "github.com/paulvitic/members-admin"
	"github.com/paulvitic/members-admin/table"
)

// base is shared by the member endpoints: it runs a command and answers with
// the page the operator sees afterwards.
type base struct {
	path     string
	commands admin.CommandBus
	queries  admin.QueryBus
	logger   *admin.Logger
}

func (e *base) Path() string {
	return e.path
}

func (e *base) execute(w http.ResponseWriter, r *http.Request, translate CommandTranslator) {
	command, err := translate(r)
	if err != nil {
		writeError(w, e.logger, err)
		return
	}
	if err = e.commands.Dispatch(r.Context(), command); err != nil {
		writeError(w, e.logger, err)
		return
	}
	e.view(w, r)
}

func (e *base) view(w http.ResponseWriter, r *http.Request) {
	res, err := e.queries.Dispatch(r.Context(), admin.NewQuery(table.CurrentPage{}))
	if err != nil {
		writeError(w, e.logger, err)
		return
	}
	view, ok := res.Items().(table.View)
	if !ok {
		writeError(w, e.logger, fmt.Errorf("unexpected %T page", res.Items()))
		return
	}
	writeJSON(w, e.logger, http.StatusOK, view)
}

// Buses carries what every endpoint needs.
type Buses struct {
	Commands admin.CommandBus
	Queries  admin.QueryBus
	Logger   *admin.Logger
}

func (b Buses) base(path string) base {
	return base{path: path, commands: b.Commands, queries: b.Queries, logger: b.Logger.Named("Endpoint " + path)}
}

// MembersEndpoints returns every endpoint of the members table, ready to bind.
func MembersEndpoints(buses Buses) []admin.Endpoint {
	return []admin.Endpoint{
		&MembersEndpoint{buses.base("/members")},
		&ReloadEndpoint{buses.base("/members/reload")},
		&SearchEndpoint{buses.base("/members/search")},
		&SortEndpoint{buses.base("/members/sort")},
		&PageEndpoint{buses.base("/members/page")},
		&NextPageEndpoint{buses.base("/members/page/next")},
		&PrevPageEndpoint{buses.base("/members/page/prev")},
		&SelectionEndpoint{buses.base("/members/selection")},
		&RowSelectionEndpoint{buses.base("/members/rows/{id}/selection")},
		&RowEditEndpoint{buses.base("/members/rows/{id}/edit")},
		&RowEndpoint{buses.base("/members/rows/{id}")},
		&EditEndpoint{buses.base("/members/edit")},
		&StatusEndpoint{buses.base("/status")},
	}
}

type MembersEndpoint struct{ base }

func (e *MembersEndpoint) Get(w http.ResponseWriter, r *http.Request) {
	e.view(w, r)
}

type ReloadEndpoint struct{ base }

func (e *ReloadEndpoint) Post(w http.ResponseWriter, r *http.Request) {
	e.execute(w, r, fixed(table.Reload{}))
}

type SearchEndpoint struct{ base }

func (e *SearchEndpoint) Put(w http.ResponseWriter, r *http.Request) {
	e.execute(w, r, searchCommand)
}

type SortEndpoint struct{ base }

func (e *SortEndpoint) Put(w http.ResponseWriter, r *http.Request) {
	e.execute(w, r, sortCommand)
}

// PageEndpoint moves to a page. Pages out of range leave the view where it was.
type PageEndpoint struct{ base }

func (e *PageEndpoint) Put(w http.ResponseWriter, r *http.Request) {
	e.execute(w, r, pageCommand)
}

type NextPageEndpoint struct{ base }

func (e *NextPageEndpoint) Post(w http.ResponseWriter, r *http.Request) {
	e.execute(w, r, fixed(table.NextPage{}))
}

type PrevPageEndpoint struct{ base }

func (e *PrevPageEndpoint) Post(w http.ResponseWriter, r *http.Request) {
	e.execute(w, r, fixed(table.PrevPage{}))
}

// SelectionEndpoint toggles the whole visible page, or deletes every selected row.
type SelectionEndpoint struct{ base }

func (e *SelectionEndpoint) Post(w http.ResponseWriter, r *http.Request) {
	e.execute(w, r, fixed(table.ToggleAllOnPage{}))
}

func (e *SelectionEndpoint) Delete(w http.ResponseWriter, r *http.Request) {
	e.execute(w, r, fixed(table.DeleteSelected{}))
}

type RowSelectionEndpoint struct{ base }

func (e *RowSelectionEndpoint) Post(w http.ResponseWriter, r *http.Request) {
	e.execute(w, r, toggleRowCommand)
}

// RowEndpoint deletes a single row, leaving the rest of the selection alone.
type RowEndpoint struct{ base }

func (e *RowEndpoint) Delete(w http.ResponseWriter, r *http.Request) {
	e.execute(w, r, deleteRowCommand)
}

type RowEditEndpoint struct{ base }

func (e *RowEditEndpoint) Post(w http.ResponseWriter, r *http.Request) {
	e.execute(w, r, beginEditCommand)
}

// EditEndpoint works on the open edit session: PATCH changes a field, PUT
// saves, DELETE throws the changes away.
type EditEndpoint struct{ base }

func (e *EditEndpoint) Patch(w http.ResponseWriter, r *http.Request) {
	e.execute(w, r, updateFieldCommand)
}

func (e *EditEndpoint) Put(w http.ResponseWriter, r *http.Request) {
	e.execute(w, r, fixed(table.CommitEdit{}))
}

func (e *EditEndpoint) Delete(w http.ResponseWriter, r *http.Request) {
	e.execute(w, r, fixed(table.CancelEdit{}))
}

type StatusEndpoint struct{ base }

func (e *StatusEndpoint) Get(w http.ResponseWriter, r *http.Request) {
	res, err := e.queries.Dispatch(r.Context(), admin.NewQuery(table.LoadStatus{}))
	if err != nil {
		writeError(w, e.logger, err)
		return
	}
	writeJSON(w, e.logger, http.StatusOK, res.Items())
}
