package persona

// Store exposes persona retrieval for HTTP handlers.
type Store interface {
	List() []Persona
	FindByMode(mode Mode) (Persona, bool)
}

// MemoryStore implements Store with an in-memory slice.
type MemoryStore struct {
	items []Persona
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied personas.
func NewMemoryStore(items []Persona) *MemoryStore {
	return &MemoryStore{items: append([]Persona(nil), items...)}
}

// List returns the predefined persona list.
func (s *MemoryStore) List() []Persona {
	return append([]Persona(nil), s.items...)
}

// FindByMode looks up the persona bound to a mode.
func (s *MemoryStore) FindByMode(mode Mode) (Persona, bool) {
	for _, item := range s.items {
		if item.Mode == mode {
			return item, true
		}
	}
	return Persona{}, false
}
