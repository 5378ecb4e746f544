package game

import (
	"testing"
	"time"
)

func TestSchedulerFiresPerInterval(t *testing.T) {
	clk := &testClock{t: time.Unix(0, 0)}
	s := NewScheduler()
	s.now = clk.now
	s.Interval = 100 * time.Millisecond
	drops := 0
	s.OnDrop = func() { drops++ }

	s.Tick() // arms
	clk.advance(99 * time.Millisecond)
	s.Tick()
	if drops != 0 {
		t.Fatalf("dropped before the interval elapsed")
	}
	clk.advance(1 * time.Millisecond)
	s.Tick()
	if drops != 1 {
		t.Fatalf("drops = %d, want 1", drops)
	}
}

func TestSchedulerCatchesUp(t *testing.T) {
	clk := &testClock{t: time.Unix(0, 0)}
	s := NewScheduler()
	s.now = clk.now
	s.Interval = 50 * time.Millisecond
	drops := 0
	s.OnDrop = func() { drops++ }

	s.Tick()
	clk.advance(260 * time.Millisecond) // one long frame
	s.Tick()
	if drops != 5 {
		t.Fatalf("drops = %d after 260ms, want 5", drops)
	}
}

func TestSchedulerResetRearms(t *testing.T) {
	clk := &testClock{t: time.Unix(0, 0)}
	s := NewScheduler()
	s.now = clk.now
	s.Interval = 100 * time.Millisecond
	drops := 0
	s.OnDrop = func() { drops++ }

	s.Tick()
	clk.advance(90 * time.Millisecond)
	s.Reset()
	s.Tick() // re-arms at the new origin
	clk.advance(90 * time.Millisecond)
	s.Tick()
	if drops != 0 {
		t.Fatalf("drops = %d after reset, want 0", drops)
	}
	if s.Interval <= 0 {
		t.Fatalf("interval clobbered by reset")
	}
}
