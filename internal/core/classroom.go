package core

import (
	"fmt"
	"slices"
	"sync"
)

// ClassroomSession holds one classroom's live state: the roster of joined
// students, the log of pending signals, and the set of observer
// subscriptions. All mutation goes through its methods; a single mutex
// serializes them, so operations on different classrooms never contend.
type ClassroomSession struct {
	id   string
	name string

	catalog *SignalCatalog
	buffer  int

	mu      sync.Mutex
	roster  []string
	pending []string
	subs    map[*Subscription]struct{}
}

func newClassroomSession(id, name string, catalog *SignalCatalog, buffer int) *ClassroomSession {
	return &ClassroomSession{
		id:      id,
		name:    name,
		catalog: catalog,
		buffer:  buffer,
		subs:    make(map[*Subscription]struct{}),
	}
}

// ID returns the classroom identifier, immutable after creation.
func (s *ClassroomSession) ID() string {
	return s.id
}

// Name returns the classroom display label.
func (s *ClassroomSession) Name() string {
	return s.name
}

// Join appends a student to the roster and returns the updated roster.
// The roster preserves join order and forbids duplicates.
func (s *ClassroomSession) Join(name string) ([]string, error) {
	if name == "" {
		return nil, ErrNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Contains(s.roster, name) {
		return nil, ErrAlreadyJoined
	}
	s.roster = append(s.roster, name)
	return slices.Clone(s.roster), nil
}

// Leave removes a student from the roster.
func (s *ClassroomSession) Leave(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.Index(s.roster, name)
	if i < 0 {
		return ErrStudentNotFound
	}
	s.roster = slices.Delete(s.roster, i, i+1)
	return nil
}

// EmitSignal renders "<name>: <text>", appends it to the pending log exactly
// once, and fans it out to every subscriber present at the moment of the
// call. Subscribers added afterwards do not receive it. The rendered message
// is returned so callers can echo it.
func (s *ClassroomSession) EmitSignal(name, signalType string) (string, error) {
	text, ok := s.catalog.Lookup(signalType)
	if !ok {
		return "", ErrUnknownSignalType
	}
	msg := fmt.Sprintf("%s: %s", name, text)

	s.mu.Lock()
	s.pending = append(s.pending, msg)
	s.fanOutLocked(msg)
	s.mu.Unlock()

	return msg, nil
}

// AcknowledgeSignal removes the first pending entry equal to message.
// An absent message is a no-op, not an error. Returns the updated pending
// list. Acknowledgement is not broadcast; the fan-out channel carries
// emissions only.
func (s *ClassroomSession) AcknowledgeSignal(message string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := slices.Index(s.pending, message); i >= 0 {
		s.pending = slices.Delete(s.pending, i, i+1)
	}
	return slices.Clone(s.pending)
}

// Subscribe registers a new observer subscription. The caller owns it and
// must eventually call Unsubscribe.
func (s *ClassroomSession) Subscribe() *Subscription {
	sub := newSubscription(s.id, s.buffer)

	s.mu.Lock()
	s.subs[sub] = struct{}{}
	s.mu.Unlock()

	return sub
}

// Unsubscribe removes a subscription and closes its queue. Removing an
// already-absent subscription is a no-op.
func (s *ClassroomSession) Unsubscribe(sub *Subscription) {
	s.mu.Lock()
	delete(s.subs, sub)
	s.mu.Unlock()

	sub.Close()
}

// SubscriberCount returns the number of active subscriptions.
func (s *ClassroomSession) SubscriberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Snapshot is a consistent read-only view of a classroom, without
// subscriber internals.
type Snapshot struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Roster  []string `json:"students"`
	Pending []string `json:"signals"`
}

// Snapshot copies the classroom state under the lock, so the view is never
// torn by a concurrent mutation.
func (s *ClassroomSession) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		ID:      s.id,
		Name:    s.name,
		Roster:  slices.Clone(s.roster),
		Pending: slices.Clone(s.pending),
	}
}
