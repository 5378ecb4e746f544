package ui

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ingyamilmolinar/blockfall/core/game"
	"github.com/ingyamilmolinar/blockfall/internal/audio"
	"github.com/ingyamilmolinar/blockfall/internal/config"
	game_log "github.com/ingyamilmolinar/blockfall/internal/log"
	"github.com/ingyamilmolinar/blockfall/internal/touch"
)

// playSound is a variable so tests can capture effect triggers.
var playSound = audio.Play

const (
	topOffset = 40 // HUD-bar height in px

	cellSize = 54.0
	sidebarW = 180

	screenW = game.BoardWidth*cellSize + sidebarW
	screenH = game.BoardHeight*cellSize + topOffset
)

/* ───────────────────────── game shell ───────────────────────── */

// Game is the ebiten shell: it feeds platform touch state to the gesture
// controller, ticks the player, and renders the board.
type Game struct {
	player *game.Player
	ctrl   *touch.Controller
	cam    *Camera
	logger *game_log.Logger

	// live settings, adjustable mid-session
	sensitivity int
	strategy    touch.Strategy

	paused   bool
	wasOver  bool
	frame    int64
	winW     int
	winH     int

	// per-tick touch bookkeeping for move deltas and release positions
	prevTouch map[ebiten.TouchID]image.Point
	touchBuf  []ebiten.TouchID

	// desktop mouse mapped onto one synthetic touch
	mouseDown bool
	mousePrev image.Point

	prevLines  int
	prevPlaced int
}

func New(cfg config.Config, logger *game_log.Logger) *Game {
	g := &Game{
		player:      game.NewPlayer(logger),
		cam:         NewCamera(),
		logger:      logger,
		sensitivity: cfg.Sensitivity,
		strategy:    touch.StrategyFromString(cfg.Strategy),
		prevTouch:   map[ebiten.TouchID]image.Point{},
	}
	g.cam.OffsetY = topOffset
	g.ctrl = touch.NewController(g.player, g.touchConfig(), logger)
	audio.SetMuted(cfg.Mute)
	logger.Infof("[UI] New game: strategy=%s sensitivity=%d", g.strategy, g.sensitivity)
	return g
}

// touchConfig derives the classifier tuning from the selected strategy,
// wiring in the live sensitivity setting and the rendered cell size.
func (g *Game) touchConfig() touch.Config {
	var cfg touch.Config
	switch g.strategy {
	case touch.StrategyHoldKey:
		cfg = touch.HoldKeyConfig()
	case touch.StrategyStep:
		cfg = touch.StepConfig()
	default:
		cfg = touch.AccumulatorConfig()
	}
	cfg.CellSize = cellSize
	cfg.Sensitivity = func() int { return g.sensitivity }
	return cfg
}

func (g *Game) Layout(w, h int) (int, int) {
	g.winW, g.winH = w, h
	return screenW, screenH
}

/* ───────────────────────── update ───────────────────────── */

func (g *Game) Update() error {
	g.frame++
	g.handleKeyboard()

	if g.player.Over && !g.wasOver {
		g.ctrl.Reset()
		playSound("over")
	}
	g.wasOver = g.player.Over

	if g.paused {
		return nil
	}

	if g.player.Over {
		// Any fresh touch restarts.
		if len(appendJustPressedTouchIDs(g.touchBuf[:0])) > 0 {
			g.restart()
		}
		return nil
	}

	g.feedTouches()
	g.feedMouse()
	g.player.Update()

	if g.player.Lines > g.prevLines {
		playSound("clear")
	} else if g.player.Placed > g.prevPlaced {
		playSound("drop")
	}
	g.prevLines = g.player.Lines
	g.prevPlaced = g.player.Placed
	return nil
}

func (g *Game) restart() {
	g.player.Reset()
	g.ctrl.Reset()
	g.prevLines, g.prevPlaced = 0, 0
	g.logger.Infof("[UI] Restart")
}

func (g *Game) setPaused(paused bool) {
	if g.paused == paused {
		return
	}
	g.paused = paused
	g.ctrl.Reset()
	if !paused {
		g.player.ResetGravity()
	}
	g.logger.Infof("[UI] Paused=%t", paused)
}

func (g *Game) setStrategy(s touch.Strategy) {
	g.strategy = s
	g.ctrl.Reset()
	g.ctrl = touch.NewController(g.player, g.touchConfig(), g.logger)
	g.logger.Infof("[UI] Strategy=%s", s)
}

func (g *Game) handleKeyboard() {
	if isKeyJustPressed(ebiten.KeyP) {
		g.setPaused(!g.paused)
	}
	if isKeyJustPressed(ebiten.KeyR) {
		g.restart()
	}
	if isKeyJustPressed(ebiten.KeyM) {
		audio.Toggle()
	}
	if isKeyJustPressed(ebiten.KeyT) {
		g.setStrategy((g.strategy + 1) % 3)
	}
	if isKeyJustPressed(ebiten.KeyEqual) && g.sensitivity < 100 {
		g.sensitivity++
	}
	if isKeyJustPressed(ebiten.KeyMinus) && g.sensitivity > 1 {
		g.sensitivity--
	}
	if g.paused || g.player.Over {
		return
	}

	// Desktop fallback controls, driving the same action surface.
	g.edgeKey(ebiten.KeyArrowLeft, touch.KeyMoveLeft)
	g.edgeKey(ebiten.KeyArrowRight, touch.KeyMoveRight)
	g.edgeKey(ebiten.KeyArrowDown, touch.KeySoftDrop)
	if isKeyJustPressed(ebiten.KeyArrowUp) || isKeyJustPressed(ebiten.KeyX) {
		g.player.RotateRight()
	}
	if isKeyJustPressed(ebiten.KeySpace) {
		g.player.HardDrop()
	}
	if isKeyJustPressed(ebiten.KeyC) {
		g.player.Hold()
	}
}

// edgeKey forwards keyboard press/release edges as continuous key state.
func (g *Game) edgeKey(key ebiten.Key, code touch.Key) {
	if isKeyJustPressed(key) {
		g.player.PressKey(code)
	}
	if isKeyJustReleased(key) {
		g.player.ReleaseKey(code)
	}
}

// feedTouches turns ebiten's per-tick touch state into down/move/up events
// for the controller.
func (g *Game) feedTouches() {
	for _, id := range appendJustPressedTouchIDs(g.touchBuf[:0]) {
		x, y := touchPosition(id)
		g.ctrl.TouchDown(touch.TouchID(id), float64(x), float64(y))
		g.prevTouch[id] = image.Pt(x, y)
	}

	for _, id := range appendTouchIDs(g.touchBuf[:0]) {
		prev, ok := g.prevTouch[id]
		if !ok {
			continue
		}
		x, y := touchPosition(id)
		if x == prev.X && y == prev.Y {
			continue
		}
		g.ctrl.TouchMove(touch.TouchID(id), float64(x), float64(y),
			float64(x-prev.X), float64(y-prev.Y))
		g.prevTouch[id] = image.Pt(x, y)
	}

	for id := range g.prevTouch {
		if !isTouchJustReleased(id) {
			continue
		}
		x, y := touchPositionInPreviousTick(id)
		g.ctrl.TouchUp(touch.TouchID(id), float64(x), float64(y))
		delete(g.prevTouch, id)
	}
}

// feedMouse maps the left mouse button onto a reserved touch id so the
// gesture controller is exercisable on desktop.
func (g *Game) feedMouse() {
	if isMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := cursorPosition()
		if !g.mouseDown {
			g.mouseDown = true
			g.mousePrev = image.Pt(x, y)
			g.ctrl.TouchDown(touch.MouseTouchID, float64(x), float64(y))
			return
		}
		if x != g.mousePrev.X || y != g.mousePrev.Y {
			g.ctrl.TouchMove(touch.MouseTouchID, float64(x), float64(y),
				float64(x-g.mousePrev.X), float64(y-g.mousePrev.Y))
			g.mousePrev = image.Pt(x, y)
		}
		return
	}
	if g.mouseDown {
		g.mouseDown = false
		g.ctrl.TouchUp(touch.MouseTouchID, float64(g.mousePrev.X), float64(g.mousePrev.Y))
	}
}
