package realtime

import (
	"testing"
	"time"
)

func TestTicker_NextWake_NotStarted(t *testing.T) {
	tk := Ticker{Interval: 200 * time.Millisecond}
	next, ok := tk.NextWake(time.Now().UTC())
	if ok {
		t.Error("NextWake should return false when not started")
	}
	if !next.IsZero() {
		t.Error("next should be zero")
	}
	if due := tk.Due(time.Now().UTC()); due != 0 {
		t.Errorf("Due %d, want 0 when not started", due)
	}
}

func TestTicker_NextWake_Running(t *testing.T) {
	now := time.Now().UTC()
	tk := Ticker{Interval: 200 * time.Millisecond}
	tk.Start(now)

	next, ok := tk.NextWake(now)
	if !ok {
		t.Fatal("NextWake should return true when running")
	}
	if want := now.Add(200 * time.Millisecond); !next.Equal(want) {
		t.Errorf("next %v, want %v", next, want)
	}

	// a late caller is woken immediately
	late := now.Add(time.Second)
	next, _ = tk.NextWake(late)
	if !next.Equal(late) {
		t.Errorf("next %v, want %v", next, late)
	}
}

func TestTicker_Due(t *testing.T) {
	now := time.Now().UTC()
	tk := Ticker{Interval: 200 * time.Millisecond}
	tk.Start(now)

	if due := tk.Due(now.Add(100 * time.Millisecond)); due != 0 {
		t.Errorf("Due %d, want 0 before first interval", due)
	}
	if due := tk.Due(now.Add(210 * time.Millisecond)); due != 1 {
		t.Errorf("Due %d, want 1", due)
	}
	if due := tk.Due(now.Add(250 * time.Millisecond)); due != 0 {
		t.Errorf("Due %d, want 0 for a step already handed out", due)
	}
	if due := tk.Due(now.Add(650 * time.Millisecond)); due != 2 {
		t.Errorf("Due %d, want 2", due)
	}
	if tk.Steps != 3 {
		t.Errorf("Steps %d, want 3", tk.Steps)
	}
}

func TestTicker_DueCapsCatchUp(t *testing.T) {
	now := time.Now().UTC()
	tk := Ticker{Interval: 100 * time.Millisecond}
	tk.Start(now)

	if due := tk.Due(now.Add(10 * time.Second)); due != MaxCatchUp {
		t.Errorf("Due %d, want %d", due, MaxCatchUp)
	}
	if due := tk.Due(now.Add(10*time.Second + 50*time.Millisecond)); due != 0 {
		t.Errorf("Due %d, want 0 after resync", due)
	}
}

func TestTicker_Stop(t *testing.T) {
	tk := Ticker{Interval: time.Second}
	tk.Start(time.Now().UTC())
	tk.Stop()
	if tk.Running() {
		t.Error("Running should be false after Stop")
	}
}
