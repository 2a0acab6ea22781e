package table

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrNoEditSession  = errors.New("no edit session in progress")
	ErrUnknownField   = errors.New("unknown or read-only field")
	ErrUnknownSortKey = errors.New("unknown sort key")
	ErrDuplicateID    = errors.New("duplicate record id")
	ErrNoSource       = errors.New("no record source configured")
	ErrLoadFailed     = errors.New("load failed")
)

// ValidationError lists the problems found in a record, by field.
type ValidationError struct {
	Problems map[Field]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Problems))
	for field := range e.Problems {
		fields = append(fields, string(field))
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = field + ": " + e.Problems[Field(field)]
	}
	return "invalid record: " + strings.Join(parts, "; ")
}
