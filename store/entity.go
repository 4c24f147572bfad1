package store

import "slices"

// EntityState is a normalized collection: each entity is stored once,
// keyed by id, and the id list is kept in comparator order.
// It is not safe for concurrent use; owners guard it.
type EntityState[K comparable, T any] struct {
	ids      []K
	entities map[K]T
	selectID func(T) K
	compare  func(a, b T) int
}

// NewEntityState creates an empty collection. compare may be nil, in which
// case ids keep insertion order.
func NewEntityState[K comparable, T any](selectID func(T) K, compare func(a, b T) int) *EntityState[K, T] {
	return &EntityState[K, T]{
		entities: make(map[K]T),
		selectID: selectID,
		compare:  compare,
	}
}

// AddOne inserts e unless its id is already present. It reports whether
// the entity was added.
func (s *EntityState[K, T]) AddOne(e T) bool {
	id := s.selectID(e)
	if _, ok := s.entities[id]; ok {
		return false
	}
	s.ids = append(s.ids, id)
	s.entities[id] = e
	s.sort()
	return true
}

// UpsertOne inserts e or overwrites the entity with the same id.
func (s *EntityState[K, T]) UpsertOne(e T) {
	s.put(e)
	s.sort()
}

// UpsertMany upserts every entity, then sorts once.
func (s *EntityState[K, T]) UpsertMany(es []T) {
	for _, e := range es {
		s.put(e)
	}
	s.sort()
}

// UpdateOne applies fn to the stored entity with the given id.
// It reports false, without calling fn, if the id is absent.
func (s *EntityState[K, T]) UpdateOne(id K, fn func(*T)) bool {
	e, ok := s.entities[id]
	if !ok {
		return false
	}
	fn(&e)
	s.entities[id] = e
	s.sort()
	return true
}

// RemoveOne deletes the entity with the given id. No tombstone is kept.
func (s *EntityState[K, T]) RemoveOne(id K) bool {
	if _, ok := s.entities[id]; !ok {
		return false
	}
	delete(s.entities, id)
	s.ids = slices.DeleteFunc(s.ids, func(k K) bool { return k == id })
	return true
}

// SelectAll returns the entities in id order.
func (s *EntityState[K, T]) SelectAll() []T {
	out := make([]T, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, s.entities[id])
	}
	return out
}

// SelectByID looks up one entity.
func (s *EntityState[K, T]) SelectByID(id K) (T, bool) {
	e, ok := s.entities[id]
	return e, ok
}

// SelectIDs returns a copy of the ordered id list.
func (s *EntityState[K, T]) SelectIDs() []K {
	return slices.Clone(s.ids)
}

// Len returns the number of entities.
func (s *EntityState[K, T]) Len() int {
	return len(s.ids)
}

func (s *EntityState[K, T]) put(e T) {
	id := s.selectID(e)
	if _, ok := s.entities[id]; !ok {
		s.ids = append(s.ids, id)
	}
	s.entities[id] = e
}

func (s *EntityState[K, T]) sort() {
	if s.compare == nil {
		return
	}
	slices.SortStableFunc(s.ids, func(a, b K) int {
		return s.compare(s.entities[a], s.entities[b])
	})
}
