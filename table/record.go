package table

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"strings"

	admin "github.com/paulvitic/members-admin"
)

const AggregateType = "members"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

func (r Role) Known() bool {
	return r == RoleAdmin || r == RoleMember
}

// Field names an editable record field.
type Field string

const (
	FieldID    Field = "id"
	FieldName  Field = "name"
	FieldEmail Field = "email"
	FieldRole  Field = "role"
)

// Record is one member row. Records are values: changing one means replacing it.
type Record struct {
	ID    admin.ID
	Name  string
	Email string
	Role  Role
}

// Key is the identity of the record inside a table.
func (r Record) Key() string {
	if r.ID == nil {
		return ""
	}
	return r.ID.String()
}

// Texts returns every field value as text, in column order.
func (r Record) Texts() []string {
	return []string{r.Key(), r.Name, r.Email, string(r.Role)}
}

// Matches reports whether any field contains the already lower-cased needle.
func (r Record) Matches(needle string) bool {
	if needle == "" {
		return true
	}
	for _, text := range r.Texts() {
		if strings.Contains(strings.ToLower(text), needle) {
			return true
		}
	}
	return false
}

// With returns a copy of the record with one field replaced.
func (r Record) With(field Field, value string) (Record, error) {
	switch field {
	case FieldName:
		r.Name = value
	case FieldEmail:
		r.Email = value
	case FieldRole:
		r.Role = Role(value)
	default:
		return r, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return r, nil
}

func (r Record) Validate() error {
	problems := make(map[Field]string)
	if strings.TrimSpace(r.Name) == "" {
		problems[FieldName] = "must not be empty"
	}
	if addr, err := mail.ParseAddress(r.Email); err != nil || addr.Address != r.Email {
		problems[FieldEmail] = fmt.Sprintf("%q is not a valid email address", r.Email)
	}
	if !r.Role.Known() {
		problems[FieldRole] = fmt.Sprintf("must be %q or %q", RoleAdmin, RoleMember)
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

type recordJSON struct {
	ID    json.RawMessage `json:"id"`
	Name  string          `json:"name"`
	Email string          `json:"email"`
	Role  Role            `json:"role"`
}

func (r Record) MarshalJSON() ([]byte, error) {
	var id any
	if r.ID != nil {
		id = r.ID.Raw()
	}
	return json.Marshal(struct {
		ID    any    `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  Role   `json:"role"`
	}{id, r.Name, r.Email, r.Role})
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var raw recordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	id, err := admin.ParseID(raw.ID)
	if err != nil {
		return fmt.Errorf("record %s: %w", strings.TrimSpace(string(data)), err)
	}
	*r = Record{ID: id, Name: raw.Name, Email: raw.Email, Role: raw.Role}
	return nil
}

// DecodeRecords parses a JSON array of records.
func DecodeRecords(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("malformed records: %w", err)
	}
	return records, nil
}
