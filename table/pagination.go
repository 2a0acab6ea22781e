package table

const DefaultPageSize = 10

// Pagination is a 1-based page cursor over a projection.
type Pagination struct {
	PageSize    int
	CurrentPage int
}

func NewPagination(pageSize int) Pagination {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return Pagination{PageSize: pageSize, CurrentPage: 1}
}

// PageCount is zero for an empty projection.
func (p Pagination) PageCount(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + p.PageSize - 1) / p.PageSize
}

// Bounds returns the slice bounds of the current page.
func (p Pagination) Bounds(total int) (int, int) {
	start := (p.CurrentPage - 1) * p.PageSize
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	end := start + p.PageSize
	if end > total {
		end = total
	}
	return start, end
}

func (p Pagination) Slice(projection []Record) []Record {
	start, end := p.Bounds(len(projection))
	return projection[start:end]
}

// SetPage moves to page n. Out of range pages leave the cursor unchanged.
func (p Pagination) SetPage(n, total int) (Pagination, bool) {
	if n < 1 || n > p.PageCount(total) {
		return p, false
	}
	p.CurrentPage = n
	return p, true
}

func (p Pagination) Next(total int) (Pagination, bool) {
	return p.SetPage(p.CurrentPage+1, total)
}

func (p Pagination) Prev(total int) (Pagination, bool) {
	return p.SetPage(p.CurrentPage-1, total)
}

// Clamp pulls the cursor back inside [1, PageCount], page 1 when there is nothing to show.
func (p Pagination) Clamp(total int) Pagination {
	count := p.PageCount(total)
	if p.CurrentPage > count {
		p.CurrentPage = count
	}
	if p.CurrentPage < 1 {
		p.CurrentPage = 1
	}
	return p
}

func (p Pagination) Reset() Pagination {
	p.CurrentPage = 1
	return p
}
