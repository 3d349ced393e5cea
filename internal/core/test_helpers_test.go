package core

import (
	"testing"
	"time"
)

func mustReceive(t *testing.T, ch <-chan string) string {
	t.Helper()

	select {
	case msg, ok := <-ch:
		if !ok {
			t.Fatal("subscription queue closed unexpectedly")
		}
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
	}
	return ""
}

func mustNotReceive(t *testing.T, ch <-chan string) {
	t.Helper()

	select {
	case msg, ok := <-ch:
		if ok {
			t.Fatalf("unexpected message %q", msg)
		}
	case <-time.After(50 * time.Millisecond):
	}
}

func newTestClassroom(t *testing.T, id, name string) *ClassroomSession {
	t.Helper()

	session, err := NewRegistry(nil, 0).Create(id, name)
	if err != nil {
		t.Fatalf("create classroom: %v", err)
	}
	return session
}
