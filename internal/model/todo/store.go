package todo

// Store exposes todo retrieval for HTTP handlers.
type Store interface {
	Count() int
	List() []Todo
	FindByID(id string) (Todo, bool)
}

// MemoryStore implements Store over a slice loaded once at startup.
// It is never written after construction, so concurrent reads need no locking.
type MemoryStore struct {
	items []Todo
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied todos.
func NewMemoryStore(items []Todo) *MemoryStore {
	return &MemoryStore{items: append([]Todo(nil), items...)}
}

// Count reports how many todos were loaded.
func (s *MemoryStore) Count() int {
	return len(s.items)
}

// List returns every todo in dataset order. The slice is a copy.
func (s *MemoryStore) List() []Todo {
	return append([]Todo(nil), s.items...)
}

// FindByID looks up a todo by identifier.
func (s *MemoryStore) FindByID(id string) (Todo, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Todo{}, false
}
