package touch

import "math"

// classifyMove evaluates the session against the thresholds after a move
// sample has been folded in. Decisions run against accumulated displacement
// rather than the per-frame delta; per-frame noise is unreliable for
// direction and velocity.
//
// Order: instantaneous swipes, then horizontal movement, then soft drop.
func (c *Controller) classifyMove(dx, dy float64) {
	s := &c.s
	totDX := s.cur.x - s.origin.x
	totDY := s.cur.y - s.origin.y
	dist := math.Hypot(totDX, totDY)

	elapsed := s.cur.at.Sub(s.origin.at)
	if elapsed < minElapsed {
		elapsed = minElapsed
	}
	frameDT := s.cur.at.Sub(s.prev.at)
	if frameDT < minElapsed {
		frameDT = minElapsed
	}
	avgVY := totDY / elapsed.Seconds()
	frameVY := dy / frameDT.Seconds()

	vy := avgVY
	if c.cfg.VelocityMode == VelocityPerFrame {
		vy = frameVY
	}

	// The accumulator feeds on every frame, before any gating, so
	// fractional travel is never dropped. Emission is collision-checked by
	// the actor; a blocked move still consumes its quantum.
	if c.cfg.Strategy == StrategyAccumulator && !s.fired {
		s.accum += dx
		c.drainAccumulator()
	}

	if s.fired {
		return
	}

	primarilyVertical := math.Abs(totDY) > math.Abs(totDX)*c.cfg.VerticalityRatio

	if dist > c.cfg.SwipeMinDistance && primarilyVertical {
		if vy >= c.cfg.HardDropMinVelocity && totDY >= c.cfg.HardDropMinDistance {
			c.fireInstant("hardDrop", c.actor.HardDrop)
			return
		}
		if vy <= -c.cfg.HoldMinVelocity && -totDY >= c.cfg.HoldMinDistance {
			c.fireInstant("hold", c.actor.Hold)
			return
		}
	}

	if dist > c.cfg.TapMaxDistance {
		c.classifyHorizontal(totDX, totDY)
	}

	softVY := vy
	if c.cfg.SoftDropHysteresis {
		softVY = frameVY
	}
	dropping := primarilyVertical && totDY > 0 && softVY >= c.cfg.SoftDropMinVelocity
	if dropping {
		if c.cfg.ExclusiveAxis {
			c.disp.release(KeyMoveLeft)
			c.disp.release(KeyMoveRight)
		}
		c.disp.press(KeySoftDrop)
	} else if c.cfg.SoftDropHysteresis {
		c.disp.release(KeySoftDrop)
	}
}

// classifyHorizontal handles the holdkey and step strategies. The
// accumulator strategy runs unconditionally in classifyMove.
func (c *Controller) classifyHorizontal(totDX, totDY float64) {
	if c.cfg.ExclusiveAxis && math.Abs(totDY) >= math.Abs(totDX) {
		return
	}
	switch c.cfg.Strategy {
	case StrategyHoldKey:
		// Once committed, the key stays pressed for the rest of the
		// gesture; crossing to the other side swaps keys.
		if totDX >= c.cfg.MoveStartDistance {
			c.disp.press(KeyMoveRight)
		} else if totDX <= -c.cfg.MoveStartDistance {
			c.disp.press(KeyMoveLeft)
		}
	case StrategyStep:
		if math.Abs(totDX) < c.cfg.MoveStartDistance {
			return
		}
		step := c.s.cur.x - c.s.stepRef.x
		if math.Abs(step) >= c.cfg.StepMinDelta {
			dir := 1
			if step < 0 {
				dir = -1
			}
			c.actor.MoveOneCell(dir)
			c.s.stepRef = c.s.cur
		}
	}
}

// drainAccumulator consumes whole pixels-per-cell quanta, one cell per
// quantum, keeping the remainder. The quantum is re-derived from the live
// sensitivity setting on every drain.
func (c *Controller) drainAccumulator() {
	ppc := c.cfg.pixelsPerCell()
	for math.Abs(c.s.accum) >= ppc {
		dir := 1
		if c.s.accum < 0 {
			dir = -1
		}
		c.actor.MoveOneCell(dir)
		c.s.accum -= float64(dir) * ppc
	}
}

// fireInstant emits a hard-drop or hold exactly once per gesture: latch
// first, then release every held key, then the action itself. Everything
// after this in the same gesture, the trailing tap included, is inert.
func (c *Controller) fireInstant(name string, fn func()) {
	c.s.fired = true
	c.disp.releaseAll()
	c.logger.Infof("[TOUCH] %s: id=%d", name, c.s.id)
	fn()
}
