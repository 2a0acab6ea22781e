package admin

import "encoding/json"

type Query interface {
	Type() string
	Filter() interface{}
}

type query struct {
	filter interface{}
}

func NewQuery(filter interface{}) Query {
	return &query{filter}
}

func (c *query) Type() string {
	return QueryType(c.filter)
}

func (c *query) Filter() interface{} {
	return c.filter
}

type QueryResponse interface {
	Items() interface{}
	Count() int
	TotalPages() int
	PageNumber() int
	HasPrev() bool
	Prev() int
	HasNext() bool
	Next() int
}

type queryResponse struct {
	items     interface{}
	count     int
	pageIndex int
	pageSize  int
}

func NewQueryResponse(items interface{}) QueryResponse {
	return &queryResponse{items, 1, 0, 1}
}

// NewPagedQueryResponse describes one page of count matching items; pageIndex is zero based.
func NewPagedQueryResponse(items interface{}, count int, pageIndex int, pageSize int) QueryResponse {
	if pageSize < 1 {
		pageSize = 1
	}
	return &queryResponse{items, count, pageIndex, pageSize}
}

func (qr *queryResponse) Items() interface{} {
	return qr.items
}

func (qr *queryResponse) Count() int {
	return qr.count
}

func (qr *queryResponse) TotalPages() int {
	return (qr.count + qr.pageSize - 1) / qr.pageSize
}

func (qr *queryResponse) PageNumber() int {
	return qr.pageIndex + 1
}

func (qr *queryResponse) HasPrev() bool {
	return qr.pageIndex > 0
}

func (qr *queryResponse) Prev() int {
	if qr.HasPrev() {
		return qr.PageNumber() - 1
	}
	return 0
}

func (qr *queryResponse) HasNext() bool {
	return (qr.PageNumber() * qr.pageSize) < qr.count
}

func (qr *queryResponse) Next() int {
	if qr.HasNext() {
		return qr.PageNumber() + 1
	}
	return 0
}

func (qr *queryResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"items":      qr.items,
		"count":      qr.count,
		"totalPages": qr.TotalPages(),
		"page":       qr.PageNumber(),
		"hasPrev":    qr.HasPrev(),
		"hasNext":    qr.HasNext(),
	})
}

func QueryType(filter interface{}) string {
	return messageType(filter)
}
