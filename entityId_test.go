package admin

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	stringID := NewID("test-string")
	assert.IsType(t, &entityId[string]{}, stringID, "NewID with string value did not create an entityId[string]")

	intID := NewID(123)
	assert.IsType(t, &entityId[int]{}, intID, "NewID with int value did not create an entityId[int]")
	assert.Equal(t, "123", intID.String())

	assert.Equal(t, "12", NewID(float64(12)).String())
	assert.Equal(t, "1.5", NewID(1.5).String())

	func() {
		defer func() {
			if r := recover(); r == nil {
				assert.Fail(t, "NewID with invalid value did not panic")
			}
		}()
		NewID(struct{}{})
	}()
}

func TestIDEquals(t *testing.T) {
	id1 := NewID("test-string")
	id2 := NewID("test-string")
	assert.True(t, id1.Equals(id2), "Equal string IDs did not return true for Equals")

	id3 := NewID(123)
	assert.True(t, id3.Equals(NewID(123)))
	assert.True(t, id3.Equals(NewID("123")), "numeric and string forms of the same id should be equal")

	assert.False(t, id1.Equals(NewID("different-string")))
	assert.False(t, id3.Equals(NewID(456)))
	assert.False(t, id1.Equals(nil), "Equals returned true for nil value")
	assert.False(t, id1.Equals(struct{}{}), "Equals returned true for non-ID type")
}

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantRaw any
		wantErr bool
	}{
		{name: "string", raw: `"42"`, want: "42", wantRaw: "42"},
		{name: "integer", raw: `42`, want: "42", wantRaw: int64(42)},
		{name: "fraction", raw: `4.25`, want: "4.25", wantRaw: 4.25},
		{name: "null", raw: `null`, wantErr: true},
		{name: "object", raw: `{"a":1}`, wantErr: true},
		{name: "beyond int64", raw: `1e19`, want: "10000000000000000000", wantRaw: 1e19},
		{name: "beyond float64", raw: `1e400`, wantErr: true},
		{name: "negative beyond float64", raw: `-1e400`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			id, err := ParseID(json.RawMessage(tc.raw))
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, id.String())
			assert.Equal(t, tc.wantRaw, id.Raw())
		})
	}
}

func TestIDMarshalJSON(t *testing.T) {
	data, err := json.Marshal([]ID{NewID(7), NewID("x")})
	require.NoError(t, err)
	assert.JSONEq(t, `[7,"x"]`, string(data))
}
