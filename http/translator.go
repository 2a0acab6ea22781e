package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	admin "github.com/paulvitic/members-admin"
	"github.com/paulvitic/members-admin/table"
)

const maxRequestBody = 1 << 20

// CommandTranslator turns a request into the command it asks for.
type CommandTranslator func(from *http.Request) (admin.Command, error)

func decodeBody(r *http.Request, into any) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(into); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func pathID(r *http.Request) (admin.ID, error) {
	id, ok := mux.Vars(r)["id"]
	if !ok || id == "" {
		return nil, fmt.Errorf("%w: missing id", errBadRequest)
	}
	return admin.NewID(id), nil
}

func fixed(body any) CommandTranslator {
	return func(*http.Request) (admin.Command, error) {
		return admin.NewCommand(body), nil
	}
}

func searchCommand(r *http.Request) (admin.Command, error) {
	var body struct {
		Text string `json:"text"`
	}
	if err := decodeBody(r, &body); err != nil {
		return nil, err
	}
	return admin.NewCommand(table.Search{Text: body.Text}), nil
}

func sortCommand(r *http.Request) (admin.Command, error) {
	var body struct {
		Key string `json:"key"`
	}
	if err := decodeBody(r, &body); err != nil {
		return nil, err
	}
	key, err := table.ParseSortKey(body.Key)
	if err != nil {
		return nil, err
	}
	return admin.NewCommand(table.Sort{Key: key}), nil
}

// pageCommand reads the page from the body, or from ?page= when there is no body.
func pageCommand(r *http.Request) (admin.Command, error) {
	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: page %q is not a number", errBadRequest, raw)
		}
		return admin.NewCommand(table.GoToPage{Page: page}), nil
	}
	var body struct {
		Page int `json:"page"`
	}
	if err := decodeBody(r, &body); err != nil {
		return nil, err
	}
	return admin.NewCommand(table.GoToPage{Page: body.Page}), nil
}

func toggleRowCommand(r *http.Request) (admin.Command, error) {
	id, err := pathID(r)
	if err != nil {
		return nil, err
	}
	return admin.NewCommand(table.ToggleRow{ID: id}), nil
}

func deleteRowCommand(r *http.Request) (admin.Command, error) {
	id, err := pathID(r)
	if err != nil {
		return nil, err
	}
	return admin.NewCommand(table.DeleteRows{IDs: []admin.ID{id}}), nil
}

func beginEditCommand(r *http.Request) (admin.Command, error) {
	id, err := pathID(r)
	if err != nil {
		return nil, err
	}
	return admin.NewCommand(table.BeginEditing{ID: id}), nil
}

func updateFieldCommand(r *http.Request) (admin.Command, error) {
	var body struct {
		Field string `json:"field"`
		Value string `json:"value"`
	}
	if err := decodeBody(r, &body); err != nil {
		return nil, err
	}
	return admin.NewCommand(table.UpdateField{Field: table.Field(body.Field), Value: body.Value}), nil
}
