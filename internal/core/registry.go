package core

import "sync"

// Registry owns every live ClassroomSession, keyed by classroom id. It is
// process-wide for the lifetime of the server; classrooms are never removed.
type Registry struct {
	catalog *SignalCatalog
	buffer  int

	mu         sync.RWMutex
	classrooms map[string]*ClassroomSession
}

// NewRegistry builds an empty registry. A nil catalog falls back to the
// default one; buffer sizes the per-subscription delivery queue, with <= 0
// meaning DefaultSubscriberBuffer.
func NewRegistry(catalog *SignalCatalog, buffer int) *Registry {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Registry{
		catalog:    catalog,
		buffer:     buffer,
		classrooms: make(map[string]*ClassroomSession),
	}
}

// Create inserts a new empty classroom. Under concurrent calls with the same
// id, at most one caller succeeds; the rest get ErrClassroomExists.
func (r *Registry) Create(id, name string) (*ClassroomSession, error) {
	if id == "" || name == "" {
		return nil, ErrNameRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.classrooms[id]; exists {
		return nil, ErrClassroomExists
	}
	session := newClassroomSession(id, name, r.catalog, r.buffer)
	r.classrooms[id] = session
	return session, nil
}

// Get returns the classroom with the given id.
func (r *Registry) Get(id string) (*ClassroomSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.classrooms[id]
	if !ok {
		return nil, ErrClassroomNotFound
	}
	return session, nil
}

// Exists reports whether a classroom with the given id is registered.
func (r *Registry) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.classrooms[id]
	return ok
}

// Len returns the number of registered classrooms.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.classrooms)
}

// Catalog returns the shared signal catalog.
func (r *Registry) Catalog() *SignalCatalog {
	return r.catalog
}
