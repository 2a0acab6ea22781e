package table

import admin "github.com/paulvitic/members-admin"

// Selection is an immutable set of record ids; every change returns a new set.
type Selection struct {
	ids map[string]admin.ID
}

func (s Selection) Len() int {
	return len(s.ids)
}

func (s Selection) IsSelected(id admin.ID) bool {
	if id == nil {
		return false
	}
	_, ok := s.ids[id.String()]
	return ok
}

func (s Selection) Toggle(id admin.ID) Selection {
	next := s.copy()
	key := id.String()
	if _, ok := next.ids[key]; ok {
		delete(next.ids, key)
	} else {
		next.ids[key] = id
	}
	return next
}

// AllSelected reports whether the page is non-empty and all of it is selected.
func (s Selection) AllSelected(pageIDs []admin.ID) bool {
	if len(pageIDs) == 0 {
		return false
	}
	for _, id := range pageIDs {
		if !s.IsSelected(id) {
			return false
		}
	}
	return true
}

// ToggleAllOnPage subtracts the page ids when all of them are selected and
// merges them in otherwise. Ids outside the page are left alone.
func (s Selection) ToggleAllOnPage(pageIDs []admin.ID) Selection {
	if len(pageIDs) == 0 {
		return s
	}
	if s.AllSelected(pageIDs) {
		return s.Purge(pageIDs)
	}
	next := s.copy()
	for _, id := range pageIDs {
		next.ids[id.String()] = id
	}
	return next
}

func (s Selection) Purge(ids []admin.ID) Selection {
	next := s.copy()
	for _, id := range ids {
		if id != nil {
			delete(next.ids, id.String())
		}
	}
	return next
}

func (s Selection) Clear() Selection {
	return Selection{}
}

// IDs lists the selected ids in full set order.
func (s Selection) IDs(records *FullSet) []admin.ID {
	ids := make([]admin.ID, 0, len(s.ids))
	if len(s.ids) == 0 {
		return ids
	}
	records.Ascend(func(r Record) bool {
		if id, ok := s.ids[r.Key()]; ok {
			ids = append(ids, id)
		}
		return len(ids) < len(s.ids)
	})
	return ids
}

func (s Selection) copy() Selection {
	ids := make(map[string]admin.ID, len(s.ids)+1)
	for k, v := range s.ids {
		ids[k] = v
	}
	return Selection{ids: ids}
}
