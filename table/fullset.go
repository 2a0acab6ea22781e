package table

import (
	"fmt"

	"github.com/google/btree"
	admin "github.com/paulvitic/members-admin"
)

const treeDegree = 16

type entry struct {
	seq    uint64
	record Record
}

func entryLess(a, b entry) bool {
	return a.seq < b.seq
}

// FullSet holds every loaded record in load order, keyed by id.
// A FullSet is never changed in place; Without and Replace return new sets
// sharing structure with the receiver.
type FullSet struct {
	tree  *btree.BTreeG[entry]
	index map[string]uint64
}

func EmptyFullSet() *FullSet {
	return &FullSet{
		tree:  btree.NewG[entry](treeDegree, entryLess),
		index: make(map[string]uint64),
	}
}

// NewFullSet keeps the order of records and rejects repeated ids.
func NewFullSet(records []Record) (*FullSet, error) {
	set := EmptyFullSet()
	for i, record := range records {
		key := record.Key()
		if _, exists := set.index[key]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, key)
		}
		seq := uint64(i)
		set.index[key] = seq
		set.tree.ReplaceOrInsert(entry{seq: seq, record: record})
	}
	return set, nil
}

func (s *FullSet) Len() int {
	return s.tree.Len()
}

func (s *FullSet) Has(id admin.ID) bool {
	if id == nil {
		return false
	}
	_, ok := s.index[id.String()]
	return ok
}

func (s *FullSet) Get(id admin.ID) (Record, bool) {
	if id == nil {
		return Record{}, false
	}
	seq, ok := s.index[id.String()]
	if !ok {
		return Record{}, false
	}
	found, ok := s.tree.Get(entry{seq: seq})
	return found.record, ok
}

// Ascend visits records in load order until fn returns false.
func (s *FullSet) Ascend(fn func(Record) bool) {
	s.tree.Ascend(func(e entry) bool {
		return fn(e.record)
	})
}

func (s *FullSet) Records() []Record {
	records := make([]Record, 0, s.Len())
	s.Ascend(func(r Record) bool {
		records = append(records, r)
		return true
	})
	return records
}

// Without returns a set lacking the given ids, and the ids actually removed.
func (s *FullSet) Without(ids []admin.ID) (*FullSet, []admin.ID) {
	var next *FullSet
	var removed []admin.ID
	for _, id := range ids {
		if id == nil {
			continue
		}
		key := id.String()
		current := s
		if next != nil {
			current = next
		}
		seq, ok := current.index[key]
		if !ok {
			continue
		}
		if next == nil {
			next = s.clone()
		}
		next.tree.Delete(entry{seq: seq})
		delete(next.index, key)
		removed = append(removed, id)
	}
	if next == nil {
		return s, nil
	}
	return next, removed
}

// Replace returns a set where the record with the same id is swapped for record.
func (s *FullSet) Replace(record Record) (*FullSet, error) {
	seq, ok := s.index[record.Key()]
	if !ok {
		return s, fmt.Errorf("%w: %s", ErrRecordNotFound, record.Key())
	}
	next := &FullSet{tree: s.tree.Clone(), index: s.index}
	next.tree.ReplaceOrInsert(entry{seq: seq, record: record})
	return next, nil
}

func (s *FullSet) clone() *FullSet {
	index := make(map[string]uint64, len(s.index))
	for k, v := range s.index {
		index[k] = v
	}
	return &FullSet{tree: s.tree.Clone(), index: index}
}
