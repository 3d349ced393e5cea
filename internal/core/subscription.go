package core

import (
	"sync"

	"github.com/google/uuid"
)

// DefaultSubscriberBuffer is the delivery queue size used when the registry
// is built without an explicit buffer.
const DefaultSubscriberBuffer = 64

// Subscription is one observer's live connection to a classroom. The
// transport connection that created it owns it and drains C; the classroom
// keeps only a non-owning reference for fan-out.
type Subscription struct {
	ID        string
	Classroom string

	mu     sync.Mutex
	queue  chan string
	closed bool
}

func newSubscription(classroomID string, buffer int) *Subscription {
	if buffer <= 0 {
		buffer = DefaultSubscriberBuffer
	}
	return &Subscription{
		ID:        uuid.NewString(),
		Classroom: classroomID,
		queue:     make(chan string, buffer),
	}
}

// C returns the delivery queue. It is closed when the subscription closes,
// so a range over it terminates on unsubscribe.
func (s *Subscription) C() <-chan string {
	return s.queue
}

// push enqueues a message without blocking. False means the subscription is
// closed or its queue is full; the broadcaster treats either as a dead
// observer.
func (s *Subscription) push(msg string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	select {
	case s.queue <- msg:
		return true
	default:
		return false
	}
}

// Close shuts the delivery queue. Safe to call more than once.
func (s *Subscription) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.queue)
}
