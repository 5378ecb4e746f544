package game

import "time"

// Scheduler turns wall-clock time into gravity drops. It catches up on
// missed intervals so a long frame still drops the right number of cells.
type Scheduler struct {
	Interval time.Duration
	OnDrop   func()

	now  func() time.Time
	last time.Time
}

func NewScheduler() *Scheduler {
	return &Scheduler{now: time.Now}
}

// Tick fires OnDrop once per elapsed Interval since the previous call.
func (s *Scheduler) Tick() {
	if s.Interval <= 0 {
		return
	}
	if s.last.IsZero() {
		s.last = s.now()
		return
	}
	for s.now().Sub(s.last) >= s.Interval {
		s.last = s.last.Add(s.Interval)
		if s.OnDrop != nil {
			s.OnDrop()
		}
	}
}

// Reset restarts the interval from the next Tick, used when the drop speed
// changes or the game unpauses.
func (s *Scheduler) Reset() {
	s.last = time.Time{}
}
