package realtime

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestNewRoomStore(t *testing.T) {
	s := NewRoomStore[string]()
	if s == nil {
		t.Fatal("NewRoomStore returned nil")
	}
}

func TestRoomStore_Create_Get(t *testing.T) {
	s := NewRoomStore[string]()
	s.Create("room1", "state1")
	room, ok := s.Get("room1")
	if !ok {
		t.Fatal("Get returned false for existing room")
	}
	if room.ID != "room1" {
		t.Errorf("room ID %q, want room1", room.ID)
	}
	if room.State != "state1" {
		t.Errorf("room State %q, want state1", room.State)
	}

	_, ok = s.Get("nonexistent")
	if ok {
		t.Error("Get should return false for missing ID")
	}
}

func TestRoomStore_BroadcasterUnknownRoom(t *testing.T) {
	s := NewRoomStore[string]()
	if _, ok := s.Broadcaster("r1"); ok {
		t.Error("Broadcaster should return false for missing ID")
	}
	s.Publish("r1", "event1")
	if s.Len() != 0 {
		t.Errorf("Len %d, want 0", s.Len())
	}

	s.Create("r1", "x")
	hub, ok := s.Broadcaster("r1")
	if !ok || hub == nil {
		t.Fatal("Broadcaster returned false for existing room")
	}
	if s.Len() != 1 {
		t.Errorf("Len %d, want 1", s.Len())
	}
}

func TestRoomStore_Publish(t *testing.T) {
	s := NewRoomStore[string]()
	s.Create("r1", "x")
	hub, _ := s.Broadcaster("r1")
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	s.Publish("r1", "event1")
	got := <-ch
	if got != "event1" {
		t.Errorf("got %q, want event1", got)
	}
}

func TestRoomStore_Wake_NoPanicWhenNoLoop(t *testing.T) {
	s := NewRoomStore[string]()
	s.Wake("nonexistent")
	s.Stop("nonexistent")
}

func TestRoomStore_WakeRecomputesImmediately(t *testing.T) {
	s := NewRoomStore[string]()
	s.Create("r1", "x")

	var calls atomic.Int32
	tick := func(state string, now time.Time) (time.Time, []string, bool) {
		calls.Add(1)
		return now.Add(time.Hour), nil, false
	}
	s.RunLoop("r1", func() string { return "x" }, tick)
	defer s.Stop("r1")

	deadline := time.Now().Add(time.Second)
	for calls.Load() < 1 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	s.Wake("r1")
	for calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if got := calls.Load(); got < 2 {
		t.Errorf("tick called %d times, want at least 2 after Wake", got)
	}
}

func TestRoomStore_RunLoopPublishesAndStops(t *testing.T) {
	s := NewRoomStore[string]()
	s.Create("r1", "x")
	hub, _ := s.Broadcaster("r1")
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	var calls atomic.Int32
	getState := func() string { return "x" }
	tick := func(state string, now time.Time) (time.Time, []string, bool) {
		calls.Add(1)
		return now.Add(10 * time.Millisecond), []string{"frame"}, false
	}
	s.RunLoop("r1", getState, tick)
	s.RunLoop("r1", getState, tick)

	select {
	case got := <-ch:
		if got != "frame" {
			t.Errorf("got %q, want frame", got)
		}
	case <-time.After(time.Second):
		t.Fatal("loop did not publish")
	}
	if !s.Running("r1") {
		t.Error("Running should be true while the loop is active")
	}

	s.Stop("r1")
	deadline := time.Now().Add(time.Second)
	for s.Running("r1") && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if s.Running("r1") {
		t.Error("loop should exit after Stop")
	}
	if calls.Load() == 0 {
		t.Error("tick was never called")
	}
}

func TestRoomStore_Delete(t *testing.T) {
	s := NewRoomStore[string]()
	s.Create("r1", "x")
	hub, _ := s.Broadcaster("r1")
	ch := hub.Subscribe()

	s.Delete("r1")

	if _, ok := s.Get("r1"); ok {
		t.Error("Get should return false after Delete")
	}
	if _, open := <-ch; open {
		t.Error("subscribers should be closed after Delete")
	}
}
