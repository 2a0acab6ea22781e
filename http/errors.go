package http

import (
	"encoding/json"
	"errors"
	"net/http"

	admin "github.com/paulvitic/members-admin"
	"github.com/paulvitic/members-admin/table"
)

var errBadRequest = errors.New("bad request")

type errorResponse struct {
	Error    string                 `json:"error"`
	Problems map[table.Field]string `json:"problems,omitempty"`
}

func statusFor(err error) int {
	var invalid *table.ValidationError
	switch {
	case errors.As(err, &invalid):
		return http.StatusUnprocessableEntity
	case errors.Is(err, table.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, table.ErrNoEditSession):
		return http.StatusConflict
	case errors.Is(err, table.ErrUnknownField),
		errors.Is(err, table.ErrUnknownSortKey),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, table.ErrLoadFailed):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, logger *admin.Logger, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Warn("%v", err)
	} else {
		logger.Debug("%v", err)
	}

	res := errorResponse{Error: err.Error()}
	var invalid *table.ValidationError
	if errors.As(err, &invalid) {
		res.Problems = invalid.Problems
	}
	writeJSON(w, logger, status, res)
}

func writeJSON(w http.ResponseWriter, logger *admin.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Error encoding response: %v", err)
	}
}
