package core

// fanOutLocked delivers msg to every current subscriber. The caller holds
// s.mu, which keeps pending-log order and delivery order identical for every
// subscriber even under concurrent emits; pushes never block, so holding the
// lock here is cheap. A push that fails marks that subscription dead, and
// dead subscriptions are swept out of the set rather than surfaced to the
// emitting caller. One stuck observer therefore cannot stall signal
// submission or delivery to the others.
func (s *ClassroomSession) fanOutLocked(msg string) {
	var dead []*Subscription
	for sub := range s.subs {
		if !sub.push(msg) {
			dead = append(dead, sub)
		}
	}
	for _, sub := range dead {
		delete(s.subs, sub)
	}
	// Lock order is always classroom then subscription, so closing under
	// s.mu cannot deadlock.
	for _, sub := range dead {
		sub.Close()
	}
}
