package table

import (
	"encoding/json"

	admin "github.com/paulvitic/members-admin"
)

type Row struct {
	Record
	Selected bool
}

func (r Row) MarshalJSON() ([]byte, error) {
	var id any
	if r.ID != nil {
		id = r.ID.Raw()
	}
	return json.Marshal(map[string]any{
		"id":       id,
		"name":     r.Name,
		"email":    r.Email,
		"role":     r.Role,
		"selected": r.Selected,
	})
}

// View is what an operator sees: one page of rows and the controls around it.
type View struct {
	Rows              []Row      `json:"rows"`
	Page              int        `json:"page"`
	PageSize          int        `json:"pageSize"`
	TotalPages        int        `json:"totalPages"`
	Pages             []int      `json:"pages"`
	HasPrev           bool       `json:"hasPrev"`
	HasNext           bool       `json:"hasNext"`
	Matching          int        `json:"matching"`
	Total             int        `json:"total"`
	Search            string     `json:"search"`
	Sort              SortKey    `json:"sort"`
	Selected          []admin.ID `json:"selected"`
	AllOnPageSelected bool       `json:"allOnPageSelected"`
	Editing           *Record    `json:"editing"`
	Status            Status     `json:"status"`
}

// NewView derives the page view of a state.
func NewView(state State, status Status) View {
	page := state.VisibleSlice()
	rows := make([]Row, len(page))
	for i, record := range page {
		rows[i] = Row{Record: record, Selected: state.IsSelected(record.ID)}
	}

	count := state.PageCount()
	pages := make([]int, count)
	for i := range pages {
		pages[i] = i + 1
	}

	p := state.Pagination()
	criteria := state.Criteria()
	view := View{
		Rows:              rows,
		Page:              p.CurrentPage,
		PageSize:          p.PageSize,
		TotalPages:        count,
		Pages:             pages,
		HasPrev:           p.CurrentPage > 1,
		HasNext:           p.CurrentPage < count,
		Matching:          len(state.projection),
		Total:             state.Len(),
		Search:            criteria.Search,
		Sort:              criteria.Sort,
		Selected:          state.SelectedIDs(),
		AllOnPageSelected: state.AllOnPageSelected(),
		Status:            status,
	}
	if draft, ok := state.Editing(); ok {
		view.Editing = &draft
	}
	return view
}
