package presence

import (
	"sync"
	"testing"
)

type fakeSession struct {
	id string

	mu     sync.Mutex
	events []string
}

func (s *fakeSession) ID() string {
	return s.id
}

func (s *fakeSession) Emit(event string, data any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *fakeSession) eventCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func TestJoinIdempotent(t *testing.T) {
	r := NewRegistry()
	sess := &fakeSession{id: "s1"}

	r.Join("U1", sess)
	r.Join("U1", sess)

	if got := len(r.SessionsFor("U1")); got != 1 {
		t.Fatalf("expected 1 session, got %d", got)
	}
}

func TestMultiDeviceSessions(t *testing.T) {
	r := NewRegistry()
	r.Join("U1", &fakeSession{id: "s1"})
	r.Join("U1", &fakeSession{id: "s2"})

	if got := len(r.SessionsFor("U1")); got != 2 {
		t.Fatalf("expected 2 sessions, got %d", got)
	}
	if !r.IsOnline("U1") {
		t.Fatal("expected U1 online")
	}
}

func TestLeaveCleansUserAndRooms(t *testing.T) {
	r := NewRegistry()
	sess := &fakeSession{id: "s1"}
	r.Join("U1", sess)
	r.JoinRoom("G1", sess)

	r.Leave("s1")

	if got := len(r.SessionsFor("U1")); got != 0 {
		t.Fatalf("expected 0 sessions after leave, got %d", got)
	}
	if got := len(r.RoomSessions("G1")); got != 0 {
		t.Fatalf("expected empty room after leave, got %d", got)
	}
	if r.IsOnline("U1") {
		t.Fatal("expected U1 offline")
	}
}

func TestLeaveUnknownSessionIsSafe(t *testing.T) {
	r := NewRegistry()
	r.Leave("never-joined")
}

func TestRejoinUnderDifferentUser(t *testing.T) {
	r := NewRegistry()
	sess := &fakeSession{id: "s1"}

	r.Join("U1", sess)
	r.Join("U2", sess)

	if got := len(r.SessionsFor("U1")); got != 0 {
		t.Fatalf("expected session removed from U1, got %d", got)
	}
	if got := len(r.SessionsFor("U2")); got != 1 {
		t.Fatalf("expected session under U2, got %d", got)
	}
}

func TestLeaveKeepsOtherDevices(t *testing.T) {
	r := NewRegistry()
	r.Join("U1", &fakeSession{id: "s1"})
	r.Join("U1", &fakeSession{id: "s2"})

	r.Leave("s1")

	sessions := r.SessionsFor("U1")
	if len(sessions) != 1 {
		t.Fatalf("expected 1 remaining session, got %d", len(sessions))
	}
	if sessions[0].ID() != "s2" {
		t.Fatalf("expected s2 to remain, got %s", sessions[0].ID())
	}
}

func TestEmitToUser(t *testing.T) {
	r := NewRegistry()
	s1 := &fakeSession{id: "s1"}
	s2 := &fakeSession{id: "s2"}
	r.Join("U1", s1)
	r.Join("U1", s2)

	if n := r.EmitToUser("U1", "ping", nil); n != 2 {
		t.Fatalf("expected 2 sessions reached, got %d", n)
	}
	if s1.eventCount() != 1 || s2.eventCount() != 1 {
		t.Fatal("expected both sessions to receive the event")
	}

	if n := r.EmitToUser("offline", "ping", nil); n != 0 {
		t.Fatalf("expected 0 for offline user, got %d", n)
	}
}

func TestEmitToRoomExcept(t *testing.T) {
	r := NewRegistry()
	s1 := &fakeSession{id: "s1"}
	s2 := &fakeSession{id: "s2"}
	r.JoinRoom("G1", s1)
	r.JoinRoom("G1", s2)

	if n := r.EmitToRoom("G1", "s1", "ping", nil); n != 1 {
		t.Fatalf("expected 1 session reached, got %d", n)
	}
	if s1.eventCount() != 0 {
		t.Fatal("excluded session should not receive the event")
	}
	if s2.eventCount() != 1 {
		t.Fatal("expected s2 to receive the event")
	}
}
