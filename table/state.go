package table

import (
	"fmt"

	admin "github.com/paulvitic/members-admin"
	"golang.org/x/text/language"
)

// State is everything the table shows. It is a value: operations return the
// next State and never change the receiver, so a State can be shared freely.
type State struct {
	records    *FullSet
	criteria   Criteria
	projection []Record
	pagination Pagination
	selection  Selection
	edit       *EditSession
	locale     language.Tag
}

func NewState(pageSize int, locale language.Tag) State {
	return State{
		records:    EmptyFullSet(),
		projection: []Record{},
		pagination: NewPagination(pageSize),
		locale:     locale,
	}
}

// Load replaces the full set and resets criteria, selection, page and edit session.
func (s State) Load(records []Record) (State, error) {
	set, err := NewFullSet(records)
	if err != nil {
		return s, err
	}
	s.records = set
	s.criteria = Criteria{}
	s.selection = s.selection.Clear()
	s.edit = nil
	s.pagination = s.pagination.Reset()
	return s.recompute(), nil
}

// DeleteByIDs removes the records with the given ids and returns the ids removed.
// Unknown ids are ignored; an empty list changes nothing.
func (s State) DeleteByIDs(ids []admin.ID) (State, []admin.ID) {
	if len(ids) == 0 {
		return s, nil
	}
	set, removed := s.records.Without(ids)
	if len(removed) == 0 {
		return s, nil
	}
	s.records = set
	s.selection = s.selection.Purge(removed)
	return s.recompute(), removed
}

func (s State) UpdateRecord(updated Record) (State, error) {
	set, err := s.records.Replace(updated)
	if err != nil {
		return s, err
	}
	s.records = set
	return s.recompute(), nil
}

// Search filters by text and goes back to the first page.
func (s State) Search(text string) State {
	s.criteria.Search = text
	s.pagination = s.pagination.Reset()
	return s.recompute()
}

func (s State) SortBy(key SortKey) (State, error) {
	switch key {
	case SortNone, SortAdmin, SortMembers:
	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownSortKey, key)
	}
	s.criteria.Sort = key
	return s.recompute(), nil
}

func (s State) SetPage(n int) (State, bool) {
	p, ok := s.pagination.SetPage(n, len(s.projection))
	s.pagination = p
	return s, ok
}

func (s State) NextPage() (State, bool) {
	p, ok := s.pagination.Next(len(s.projection))
	s.pagination = p
	return s, ok
}

func (s State) PrevPage() (State, bool) {
	p, ok := s.pagination.Prev(len(s.projection))
	s.pagination = p
	return s, ok
}

func (s State) Toggle(id admin.ID) (State, error) {
	if !s.records.Has(id) {
		return s, fmt.Errorf("%w: %v", ErrRecordNotFound, id)
	}
	s.selection = s.selection.Toggle(id)
	return s, nil
}

// ToggleAllOnPage selects the visible rows, or deselects them when all are selected.
func (s State) ToggleAllOnPage() State {
	s.selection = s.selection.ToggleAllOnPage(s.PageIDs())
	return s
}

func (s State) BeginEdit(id admin.ID) (State, error) {
	record, ok := s.records.Get(id)
	if !ok {
		return s, fmt.Errorf("%w: %v", ErrRecordNotFound, id)
	}
	s.edit = BeginEdit(record)
	return s, nil
}

func (s State) UpdateField(field Field, value string) (State, error) {
	if s.edit == nil {
		return s, ErrNoEditSession
	}
	edit, err := s.edit.WithField(field, value)
	if err != nil {
		return s, err
	}
	s.edit = edit
	return s, nil
}

// CommitEdit validates the draft and writes it to the full set. An invalid
// draft keeps the session open; a draft whose record is gone closes it.
func (s State) CommitEdit() (State, Record, error) {
	if s.edit == nil {
		return s, Record{}, ErrNoEditSession
	}
	draft := s.edit.Draft()
	if err := draft.Validate(); err != nil {
		return s, draft, err
	}
	next, err := s.UpdateRecord(draft)
	if err != nil {
		s.edit = nil
		return s, draft, err
	}
	next.edit = nil
	return next, draft, nil
}

func (s State) CancelEdit() State {
	s.edit = nil
	return s
}

func (s State) recompute() State {
	s.projection = Apply(s.records.Records(), s.criteria, s.locale)
	s.pagination = s.pagination.Clamp(len(s.projection))
	return s
}

func (s State) Len() int {
	return s.records.Len()
}

func (s State) Records() []Record {
	return s.records.Records()
}

func (s State) Get(id admin.ID) (Record, bool) {
	return s.records.Get(id)
}

func (s State) Criteria() Criteria {
	return s.criteria
}

func (s State) Projection() []Record {
	return append([]Record(nil), s.projection...)
}

func (s State) Pagination() Pagination {
	return s.pagination
}

func (s State) PageCount() int {
	return s.pagination.PageCount(len(s.projection))
}

func (s State) VisibleSlice() []Record {
	return append([]Record(nil), s.pagination.Slice(s.projection)...)
}

func (s State) PageIDs() []admin.ID {
	page := s.pagination.Slice(s.projection)
	ids := make([]admin.ID, len(page))
	for i, r := range page {
		ids[i] = r.ID
	}
	return ids
}

func (s State) IsSelected(id admin.ID) bool {
	return s.selection.IsSelected(id)
}

func (s State) SelectedIDs() []admin.ID {
	return s.selection.IDs(s.records)
}

func (s State) AllOnPageSelected() bool {
	return s.selection.AllSelected(s.PageIDs())
}

// Editing returns the draft of the open edit session.
func (s State) Editing() (Record, bool) {
	if s.edit == nil {
		return Record{}, false
	}
	return s.edit.Draft(), true
}
