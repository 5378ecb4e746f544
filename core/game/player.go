package game

import (
	"math/rand"
	"time"

	game_log "github.com/ingyamilmolinar/blockfall/internal/log"
	"github.com/ingyamilmolinar/blockfall/internal/touch"
)

const (
	// Auto-shift timing in 60 TPS ticks for held move keys.
	dasDelayTicks  = 10
	arrPeriodTicks = 3

	baseGravity         = 800 * time.Millisecond
	gravityStepPerLevel = 70 * time.Millisecond
	minGravity          = 80 * time.Millisecond
	softDropGravity     = 40 * time.Millisecond
)

// lineScores is the per-clear base score by cleared-row count, multiplied
// by the current level.
var lineScores = [5]int{0, 100, 300, 500, 800}

// Player owns one board and one falling piece and exposes the action
// surface the touch controller commands. All methods are synchronous and
// single-threaded, driven by the host's per-frame Update.
type Player struct {
	Board    *Board
	Cur      Piece
	Next     PieceKind
	HoldKind PieceKind
	HasHold  bool
	Score    int
	Lines    int
	Level    int
	Placed   int // pieces locked since the last reset
	Over     bool

	logger   *game_log.Logger
	grav     *Scheduler
	rng      *rand.Rand
	bag      []PieceKind
	holdUsed bool

	// keys is indexed by touch.Key (moveLeft, moveRight, softDrop).
	keys       [3]bool
	shiftDir   int
	shiftTicks int
}

func NewPlayer(logger *game_log.Logger) *Player {
	p := &Player{
		Board:  NewBoard(),
		Level:  1,
		logger: logger,
		grav:   NewScheduler(),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	p.grav.OnDrop = p.gravityDrop
	p.Next = p.draw()
	p.spawn()
	return p
}

// Reset starts a fresh game on the same board allocation.
func (p *Player) Reset() {
	p.Board.Reset()
	p.Score, p.Lines, p.Level = 0, 0, 1
	p.Placed = 0
	p.Over = false
	p.HasHold = false
	p.holdUsed = false
	p.keys = [3]bool{}
	p.shiftDir, p.shiftTicks = 0, 0
	p.grav.Reset()
	p.bag = p.bag[:0]
	p.Next = p.draw()
	p.spawn()
	p.logger.Infof("[PLAYER] Reset")
}

/* ───────────────────────── piece supply ───────────────────────── */

// draw pulls from a shuffled 7-bag so droughts are bounded.
func (p *Player) draw() PieceKind {
	if len(p.bag) == 0 {
		for k := PieceKind(0); k < pieceKindCount; k++ {
			p.bag = append(p.bag, k)
		}
		p.rng.Shuffle(len(p.bag), func(i, j int) {
			p.bag[i], p.bag[j] = p.bag[j], p.bag[i]
		})
	}
	k := p.bag[0]
	p.bag = p.bag[1:]
	return k
}

func (p *Player) spawn() {
	p.Cur = SpawnPiece(p.Next)
	p.Next = p.draw()
	p.holdUsed = false
	if !p.Board.Fits(p.Cur) {
		p.Over = true
		p.logger.Infof("[PLAYER] Game over: score=%d lines=%d level=%d", p.Score, p.Lines, p.Level)
	}
}

/* ───────────────────────── action surface ───────────────────────── */

// PressKey starts a continuous action. Held move keys shift immediately and
// then auto-repeat; soft-drop swaps the gravity interval.
func (p *Player) PressKey(k touch.Key) {
	if p.Over {
		return
	}
	p.keys[k] = true
	switch k {
	case touch.KeyMoveLeft:
		p.shiftDir, p.shiftTicks = -1, 0
		p.MoveOneCell(-1)
	case touch.KeyMoveRight:
		p.shiftDir, p.shiftTicks = 1, 0
		p.MoveOneCell(1)
	case touch.KeySoftDrop:
		p.grav.Reset()
	}
}

func (p *Player) ReleaseKey(k touch.Key) {
	p.keys[k] = false
	switch k {
	case touch.KeyMoveLeft, touch.KeyMoveRight:
		if (k == touch.KeyMoveLeft && p.shiftDir == -1) ||
			(k == touch.KeyMoveRight && p.shiftDir == 1) {
			p.shiftDir, p.shiftTicks = 0, 0
		}
	case touch.KeySoftDrop:
		p.grav.Reset()
	}
}

// MoveOneCell shifts the piece one column; a collision-blocked move is a
// silent no-op.
func (p *Player) MoveOneCell(dir int) {
	if p.Over {
		return
	}
	moved := p.Cur.Shifted(dir, 0)
	if !p.Board.Fits(moved) {
		p.logger.Debugf("[PLAYER] Move blocked: dir=%d pos=(%d,%d)", dir, p.Cur.X, p.Cur.Y)
		return
	}
	p.Cur = moved
}

// RotateRight turns the piece clockwise, nudging off walls when the pure
// rotation collides.
func (p *Player) RotateRight() {
	if p.Over {
		return
	}
	r := p.Cur.Rotated()
	for _, dx := range [...]int{0, -1, 1, -2, 2} {
		if p.Board.Fits(r.Shifted(dx, 0)) {
			p.Cur = r.Shifted(dx, 0)
			return
		}
	}
	p.logger.Debugf("[PLAYER] Rotate blocked: pos=(%d,%d) rot=%d", p.Cur.X, p.Cur.Y, p.Cur.Rot)
}

// HardDrop sends the piece straight to the floor and locks it immediately.
func (p *Player) HardDrop() {
	if p.Over {
		return
	}
	dropped := 0
	for p.Board.Fits(p.Cur.Shifted(0, 1)) {
		p.Cur = p.Cur.Shifted(0, 1)
		dropped++
	}
	p.Score += 2 * dropped
	p.logger.Debugf("[PLAYER] Hard drop: %d cells", dropped)
	p.lock()
}

// HoldPiece stashes the current piece, swapping with the stash when there
// is one. At most one hold per spawned piece.
func (p *Player) HoldPiece() {
	if p.Over || p.holdUsed {
		return
	}
	prev, had := p.HoldKind, p.HasHold
	p.HoldKind = p.Cur.Kind
	p.HasHold = true
	if had {
		p.Cur = SpawnPiece(prev)
	} else {
		p.Cur = SpawnPiece(p.Next)
		p.Next = p.draw()
	}
	p.holdUsed = true
	if !p.Board.Fits(p.Cur) {
		p.Over = true
	}
	p.logger.Debugf("[PLAYER] Hold: stashed=%s", p.HoldKind)
}

// Hold satisfies the touch action surface.
func (p *Player) Hold() { p.HoldPiece() }

/* ───────────────────────── per-frame update ───────────────────────── */

// Update advances auto-shift and gravity. Call once per 60 TPS tick.
func (p *Player) Update() {
	if p.Over {
		return
	}
	if p.shiftDir != 0 && p.keys[keyForDir(p.shiftDir)] {
		p.shiftTicks++
		if p.shiftTicks >= dasDelayTicks && (p.shiftTicks-dasDelayTicks)%arrPeriodTicks == 0 {
			p.MoveOneCell(p.shiftDir)
		}
	}
	p.grav.Interval = p.gravityInterval()
	p.grav.Tick()
}

func keyForDir(dir int) touch.Key {
	if dir < 0 {
		return touch.KeyMoveLeft
	}
	return touch.KeyMoveRight
}

func (p *Player) gravityInterval() time.Duration {
	iv := baseGravity - time.Duration(p.Level-1)*gravityStepPerLevel
	if iv < minGravity {
		iv = minGravity
	}
	if p.keys[touch.KeySoftDrop] && softDropGravity < iv {
		iv = softDropGravity
	}
	return iv
}

func (p *Player) gravityDrop() {
	below := p.Cur.Shifted(0, 1)
	if p.Board.Fits(below) {
		p.Cur = below
		if p.keys[touch.KeySoftDrop] {
			p.Score++
		}
		return
	}
	p.lock()
}

func (p *Player) lock() {
	p.Placed++
	p.Board.Merge(p.Cur)
	if n := p.Board.ClearFullRows(); n > 0 {
		p.Lines += n
		p.Score += lineScores[n] * p.Level
		p.Level = p.Lines/10 + 1
		p.logger.Infof("[PLAYER] Cleared %d rows: score=%d lines=%d level=%d", n, p.Score, p.Lines, p.Level)
	}
	p.grav.Reset()
	p.spawn()
}

// ResetGravity restarts the gravity interval, used when the host unpauses
// so time spent paused doesn't replay as a burst of drops.
func (p *Player) ResetGravity() {
	p.grav.Reset()
}

// GhostY is the row the current piece would land on, for the drop preview.
func (p *Player) GhostY() int {
	q := p.Cur
	for p.Board.Fits(q.Shifted(0, 1)) {
		q = q.Shifted(0, 1)
	}
	return q.Y
}
