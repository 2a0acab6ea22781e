package table

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortKey string

const (
	SortNone    SortKey = ""
	SortAdmin   SortKey = "admin"
	SortMembers SortKey = "members"
)

func ParseSortKey(key string) (SortKey, error) {
	switch SortKey(strings.ToLower(strings.TrimSpace(key))) {
	case SortNone:
		return SortNone, nil
	case SortAdmin:
		return SortAdmin, nil
	case SortMembers:
		return SortMembers, nil
	}
	return SortNone, fmt.Errorf("%w: %q", ErrUnknownSortKey, key)
}

// Criteria decide which records are shown and in which order.
type Criteria struct {
	Search string
	Sort   SortKey
}

// Apply filters records by case-insensitive substring over every field, then
// sorts the survivors by role. Admin ordering is ascending by locale collation,
// members ordering its exact reverse. Equal roles keep their load order.
func Apply(records []Record, criteria Criteria, locale language.Tag) []Record {
	needle := strings.ToLower(criteria.Search)
	projection := make([]Record, 0, len(records))
	for _, record := range records {
		if record.Matches(needle) {
			projection = append(projection, record)
		}
	}

	if criteria.Sort == SortNone || len(projection) < 2 {
		return projection
	}

	collator := collate.New(locale)
	compare := func(i, j int) int {
		return collator.CompareString(string(projection[i].Role), string(projection[j].Role))
	}
	switch criteria.Sort {
	case SortAdmin:
		sort.SliceStable(projection, func(i, j int) bool { return compare(i, j) < 0 })
	case SortMembers:
		sort.SliceStable(projection, func(i, j int) bool { return compare(i, j) > 0 })
	}
	return projection
}
