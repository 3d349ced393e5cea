package core

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"
)

func TestJoinPreservesOrderAndRejectsDuplicates(t *testing.T) {
	session := newTestClassroom(t, "A1", "Algebra")

	for _, name := range []string{"Bob", "Alice", "Carol"} {
		if _, err := session.Join(name); err != nil {
			t.Fatalf("join %s: %v", name, err)
		}
	}

	_, err := session.Join("Alice")
	if !errors.Is(err, ErrAlreadyJoined) {
		t.Fatalf("expected ErrAlreadyJoined, got %v", err)
	}

	snap := session.Snapshot()
	want := []string{"Bob", "Alice", "Carol"}
	if !slices.Equal(snap.Roster, want) {
		t.Fatalf("roster = %v, want %v", snap.Roster, want)
	}
}

func TestJoinEmptyName(t *testing.T) {
	session := newTestClassroom(t, "A1", "Algebra")

	if _, err := session.Join(""); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
}

func TestLeaveUnknownStudent(t *testing.T) {
	session := newTestClassroom(t, "A1", "Algebra")

	if _, err := session.Join("Bob"); err != nil {
		t.Fatalf("join: %v", err)
	}

	if err := session.Leave("Ghost"); !errors.Is(err, ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
	if got := session.Snapshot().Roster; !slices.Equal(got, []string{"Bob"}) {
		t.Fatalf("roster mutated by failed leave: %v", got)
	}

	if err := session.Leave("Bob"); err != nil {
		t.Fatalf("leave: %v", err)
	}
	if got := session.Snapshot().Roster; len(got) != 0 {
		t.Fatalf("expected empty roster, got %v", got)
	}
}

func TestEmitSignalRendersAndAppends(t *testing.T) {
	session := newTestClassroom(t, "A1", "Algebra")

	msg, err := session.EmitSignal("Alice", "pencil")
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if msg != "Alice: I need a sharpened pencil" {
		t.Fatalf("unexpected rendered message %q", msg)
	}

	if _, err := session.EmitSignal("Alice", "nap"); !errors.Is(err, ErrUnknownSignalType) {
		t.Fatalf("expected ErrUnknownSignalType, got %v", err)
	}

	snap := session.Snapshot()
	if !slices.Equal(snap.Pending, []string{"Alice: I need a sharpened pencil"}) {
		t.Fatalf("pending = %v", snap.Pending)
	}
}

func TestAcknowledgeRemovesFirstMatchOnly(t *testing.T) {
	session := newTestClassroom(t, "A1", "Algebra")

	// Two identical emissions produce duplicate pending entries.
	for i := 0; i < 2; i++ {
		if _, err := session.EmitSignal("Bob", "water"); err != nil {
			t.Fatalf("emit: %v", err)
		}
	}

	pending := session.AcknowledgeSignal("Bob: I need to get water")
	if len(pending) != 1 {
		t.Fatalf("expected one duplicate left, got %v", pending)
	}

	// Acknowledging an absent message is a no-op, not an error.
	pending = session.AcknowledgeSignal("Bob: I need to get water")
	if len(pending) != 0 {
		t.Fatalf("expected empty pending, got %v", pending)
	}
	pending = session.AcknowledgeSignal("never emitted")
	if len(pending) != 0 {
		t.Fatalf("expected empty pending, got %v", pending)
	}
}

func TestFanOutReachesAllSubscribersInOrder(t *testing.T) {
	session := newTestClassroom(t, "A1", "Algebra")
	other := newTestClassroom(t, "B2", "Biology")

	subs := make([]*Subscription, 3)
	for i := range subs {
		subs[i] = session.Subscribe()
	}
	bystander := other.Subscribe()

	if _, err := session.EmitSignal("Alice", "pencil"); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if _, err := session.EmitSignal("Alice", "question"); err != nil {
		t.Fatalf("emit: %v", err)
	}

	for i, sub := range subs {
		if got := mustReceive(t, sub.C()); got != "Alice: I need a sharpened pencil" {
			t.Fatalf("subscriber %d: first message %q", i, got)
		}
		if got := mustReceive(t, sub.C()); got != "Alice: I have a question" {
			t.Fatalf("subscriber %d: second message %q", i, got)
		}
	}

	// The other classroom's subscriber sees nothing.
	select {
	case msg := <-bystander.C():
		t.Fatalf("bystander received %q", msg)
	default:
	}
}

func TestLateSubscriberGetsNoReplay(t *testing.T) {
	session := newTestClassroom(t, "A1", "Algebra")

	if _, err := session.EmitSignal("Bob", "restroom"); err != nil {
		t.Fatalf("emit: %v", err)
	}

	late := session.Subscribe()
	defer session.Unsubscribe(late)

	select {
	case msg := <-late.C():
		t.Fatalf("late subscriber received replayed %q", msg)
	default:
	}

	if _, err := session.EmitSignal("Bob", "sick"); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if got := mustReceive(t, late.C()); got != "Bob: I am not feeling well." {
		t.Fatalf("late subscriber got %q", got)
	}
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	session := newTestClassroom(t, "A1", "Algebra")

	sub := session.Subscribe()
	session.Unsubscribe(sub)
	session.Unsubscribe(sub) // second call must be a no-op

	if n := session.SubscriberCount(); n != 0 {
		t.Fatalf("expected 0 subscribers, got %d", n)
	}
	mustNotReceive(t, sub.C())
}

func TestDeadSubscriberIsPruned(t *testing.T) {
	session := newTestClassroom(t, "A1", "Algebra")

	dead := session.Subscribe()
	live := session.Subscribe()
	dead.Close() // connection gone, classroom not yet told

	if _, err := session.EmitSignal("Alice", "tissue"); err != nil {
		t.Fatalf("emit must not surface delivery failure: %v", err)
	}

	if got := mustReceive(t, live.C()); got != "Alice: I need a tissue" {
		t.Fatalf("live subscriber got %q", got)
	}
	if n := session.SubscriberCount(); n != 1 {
		t.Fatalf("expected dead subscriber pruned, count = %d", n)
	}
}

func TestFullQueueSubscriberIsPruned(t *testing.T) {
	session, err := NewRegistry(nil, 1).Create("A1", "Algebra")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	stuck := session.Subscribe()
	if _, err := session.EmitSignal("Alice", "pencil"); err != nil {
		t.Fatalf("emit: %v", err)
	}
	// Queue of one is now full; the next emission kills the subscription.
	if _, err := session.EmitSignal("Alice", "water"); err != nil {
		t.Fatalf("emit: %v", err)
	}

	if n := session.SubscriberCount(); n != 0 {
		t.Fatalf("expected stuck subscriber pruned, count = %d", n)
	}
	if got := mustReceive(t, stuck.C()); got != "Alice: I need a sharpened pencil" {
		t.Fatalf("buffered message lost: %q", got)
	}
	// Queue was closed by the sweep, so the drain loop terminates.
	if _, ok := <-stuck.C(); ok {
		t.Fatal("expected closed queue after prune")
	}
}

func TestConcurrentUnsubscribeDuringEmit(t *testing.T) {
	session := newTestClassroom(t, "A1", "Algebra")

	const churners = 8
	keeper := session.Subscribe()

	var wg sync.WaitGroup
	stop := make(chan struct{})

	// Churn subscriptions while signals are being emitted.
	for i := 0; i < churners; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				sub := session.Subscribe()
				go func() {
					for range sub.C() {
					}
				}()
				session.Unsubscribe(sub)
			}
		}()
	}

	// Stays below the keeper's queue capacity so it can never overflow and
	// be pruned before the loop below drains it.
	const emissions = 50
	go func() {
		for i := 0; i < emissions; i++ {
			if _, err := session.EmitSignal(fmt.Sprintf("s%d", i), "question"); err != nil {
				t.Errorf("emit: %v", err)
				return
			}
		}
	}()

	// The stable subscriber receives every emission, in order.
	for i := 0; i < emissions; i++ {
		want := fmt.Sprintf("s%d: I have a question", i)
		if got := mustReceive(t, keeper.C()); got != want {
			t.Fatalf("message %d: got %q, want %q", i, got, want)
		}
	}

	close(stop)
	wg.Wait()
}
