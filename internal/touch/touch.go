package touch

import (
	"math"
	"time"

	game_log "github.com/ingyamilmolinar/blockfall/internal/log"
)

// TouchID is the opaque per-finger identifier handed in by the platform.
type TouchID int64

// MouseTouchID is reserved for the desktop mouse-as-touch mapping so it can
// never collide with a real finger id.
const MouseTouchID TouchID = -1

// Key identifies a continuous action with press/release semantics.
type Key int

const (
	KeyMoveLeft Key = iota
	KeyMoveRight
	KeySoftDrop
	keyCount
)

func (k Key) String() string {
	switch k {
	case KeyMoveLeft:
		return "moveLeft"
	case KeyMoveRight:
		return "moveRight"
	case KeySoftDrop:
		return "softDrop"
	default:
		return "unknown"
	}
}

// Actor is the game-side surface the controller commands. It is the only
// thing the gesture logic knows about the game: continuous actions are
// key presses, instantaneous actions are direct calls, and one-cell moves
// are collision-checked by the implementation (a blocked move is a no-op).
type Actor interface {
	PressKey(k Key)
	ReleaseKey(k Key)
	HardDrop()
	Hold()
	RotateRight()
	// MoveOneCell shifts the falling piece by one column; dir is -1 or +1.
	MoveOneCell(dir int)
}

/* ───────────────────────── session state ───────────────────────── */

type sample struct {
	x, y float64
	at   time.Time
}

// session tracks the single live finger. There is at most one; a second
// concurrent finger is ignored until the first lifts.
type session struct {
	active bool
	id     TouchID
	origin sample
	prev   sample
	cur    sample
	// stepRef is the reference point for the discrete-step strategy. It is
	// reset on every step emission, not on every move.
	stepRef sample
	// accum is the signed horizontal pixel buffer of the accumulator
	// strategy. Whole pixels-per-cell quanta are consumed, remainders kept.
	accum float64
	// fired latches once a hard-drop or hold has been emitted; no further
	// classification (and no trailing tap) happens for this gesture.
	fired bool
}

/* ───────────────────────── controller ───────────────────────── */

// Controller classifies one finger's down/move/up stream into gameplay
// actions. Instantiate one per player; there is no shared state between
// controllers.
type Controller struct {
	cfg    Config
	actor  Actor
	disp   *dispatcher
	logger *game_log.Logger
	s      session

	// now is swapped in tests to drive deterministic timing.
	now func() time.Time
}

func NewController(actor Actor, cfg Config, logger *game_log.Logger) *Controller {
	return &Controller{
		cfg:    cfg,
		actor:  actor,
		disp:   newDispatcher(actor, logger),
		logger: logger,
		now:    time.Now,
	}
}

// IsActive reports whether a touch session is currently tracked.
func (c *Controller) IsActive() bool { return c.s.active }

// Reset forcibly releases all continuous actions and clears the session.
// Safe to call with no active session (e.g. on pause or game over).
func (c *Controller) Reset() {
	c.disp.releaseAll()
	if c.s.active {
		c.logger.Debugf("[TOUCH] Reset: clearing session id=%d", c.s.id)
	}
	c.s = session{}
}

// TouchDown starts tracking a finger. A down for a second finger while one
// is live is ignored; a repeated down for the live finger re-initializes it.
func (c *Controller) TouchDown(id TouchID, x, y float64) {
	if c.s.active && c.s.id != id {
		c.logger.Debugf("[TOUCH] Down ignored: id=%d active=%d", id, c.s.id)
		return
	}
	at := c.now()
	s0 := sample{x: x, y: y, at: at}
	c.s = session{active: true, id: id, origin: s0, prev: s0, cur: s0, stepRef: s0}
	c.logger.Debugf("[TOUCH] Down: id=%d pos=(%.1f,%.1f)", id, x, y)
}

// TouchMove feeds one move sample for the live finger. dx/dy are the
// per-event deltas reported by the platform. Moves for any other id are
// silent no-ops.
func (c *Controller) TouchMove(id TouchID, x, y, dx, dy float64) {
	if !c.s.active || c.s.id != id {
		return
	}
	c.s.prev = c.s.cur
	c.s.cur = sample{x: x, y: y, at: c.now()}
	c.classifyMove(dx, dy)
}

// TouchUp finalizes the gesture: releases every continuous action and, if
// no instantaneous action fired during the gesture, evaluates the tap test
// (short time, small distance) which maps to rotate.
func (c *Controller) TouchUp(id TouchID, x, y float64) {
	if !c.s.active || c.s.id != id {
		return
	}
	c.disp.releaseAll()

	elapsed := c.now().Sub(c.s.origin.at)
	dist := math.Hypot(x-c.s.origin.x, y-c.s.origin.y)
	if !c.s.fired && elapsed <= c.cfg.TapMaxDuration && dist < c.cfg.TapMaxDistance {
		c.logger.Debugf("[TOUCH] Tap: id=%d elapsed=%v dist=%.1f", id, elapsed, dist)
		c.actor.RotateRight()
	} else {
		c.logger.Debugf("[TOUCH] Up: id=%d elapsed=%v dist=%.1f fired=%t", id, elapsed, dist, c.s.fired)
	}
	c.s = session{}
}
