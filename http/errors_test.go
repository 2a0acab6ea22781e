package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/paulvitic/members-admin/table"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&table.ValidationError{Problems: map[table.Field]string{table.FieldName: "empty"}}, http.StatusUnprocessableEntity},
		{fmt.Errorf("%w: 7", table.ErrRecordNotFound), http.StatusNotFound},
		{table.ErrNoEditSession, http.StatusConflict},
		{table.ErrUnknownField, http.StatusBadRequest},
		{table.ErrUnknownSortKey, http.StatusBadRequest},
		{fmt.Errorf("%w: eof", errBadRequest), http.StatusBadRequest},
		{fmt.Errorf("%w: timeout", table.ErrLoadFailed), http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}
