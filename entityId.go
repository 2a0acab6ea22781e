package admin

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// ID identifies a record. Two ids are equal when their text forms are equal,
// so the number 7 and the string "7" name the same record.
type ID interface {
	Equals(other any) bool
	String() string
	// Raw returns the underlying string or number, as it should be encoded.
	Raw() any
}

type entityId[T string | int | int64 | float64] struct {
	value T
}

// NewID creates a new ID instance with the provided value.
// It panics on types an identifier can not be made of.
func NewID(value any) ID {
	switch v := value.(type) {
	case string:
		return &entityId[string]{v}
	case int:
		return &entityId[int]{v}
	case int64:
		return &entityId[int64]{v}
	case float64:
		if v == float64(int64(v)) {
			return &entityId[int64]{int64(v)}
		}
		return &entityId[float64]{v}
	}
	panic(fmt.Sprintf("invalid ID type %T", value))
}

// ParseID decodes an identifier from a JSON string or number. Numbers that
// do not fit a float64 are rejected.
func ParseID(raw json.RawMessage) (ID, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, errors.New("id is missing")
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return NewID(s), nil
	}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var n json.Number
	if err := decoder.Decode(&n); err != nil {
		return nil, fmt.Errorf("id must be a string or a number: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		return NewID(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return nil, fmt.Errorf("id %s is out of range: %w", n, err)
	}
	return NewID(f), nil
}

func (e *entityId[T]) Equals(other any) bool {
	if other == nil {
		return false
	}
	if o, ok := other.(ID); ok {
		return e.String() == o.String()
	}
	return false
}

func (e *entityId[T]) String() string {
	switch v := any(e.value).(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return fmt.Sprint(e.value)
}

func (e *entityId[T]) Raw() any {
	return e.value
}

func (e *entityId[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Raw())
}

func GenerateUUID() ID {
	return NewID(uuid.New().String())
}
