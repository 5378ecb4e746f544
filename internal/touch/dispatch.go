package touch

import (
	game_log "github.com/ingyamilmolinar/blockfall/internal/log"
)

// dispatcher keeps press/release bookkeeping for the continuous actions so
// the actor never sees a double press or an unmatched release, and so
// moveLeft/moveRight are never pressed at the same time.
type dispatcher struct {
	actor   Actor
	logger  *game_log.Logger
	pressed [keyCount]bool
}

func newDispatcher(actor Actor, logger *game_log.Logger) *dispatcher {
	return &dispatcher{actor: actor, logger: logger}
}

// press marks k pressed and forwards the call once. Pressing a move key
// releases the opposite move key first; pressing an already-pressed key is
// a no-op.
func (d *dispatcher) press(k Key) {
	switch k {
	case KeyMoveLeft:
		d.release(KeyMoveRight)
	case KeyMoveRight:
		d.release(KeyMoveLeft)
	}
	if d.pressed[k] {
		return
	}
	d.pressed[k] = true
	d.logger.Debugf("[TOUCH] Press: %s", k)
	d.actor.PressKey(k)
}

func (d *dispatcher) release(k Key) {
	if !d.pressed[k] {
		return
	}
	d.pressed[k] = false
	d.logger.Debugf("[TOUCH] Release: %s", k)
	d.actor.ReleaseKey(k)
}

func (d *dispatcher) releaseAll() {
	for k := Key(0); k < keyCount; k++ {
		d.release(k)
	}
}

func (d *dispatcher) isPressed(k Key) bool { return d.pressed[k] }
