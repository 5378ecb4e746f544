package touch

import (
	"io"
	"testing"
	"time"

	game_log "github.com/ingyamilmolinar/blockfall/internal/log"
)

var testLogger *game_log.Logger

func init() {
	testLogger = game_log.New(io.Discard, game_log.LevelError)
}

/* ───────────────────────── test doubles ───────────────────────── */

// recorder implements Actor and records every call so tests can assert on
// ordering, counts and the press/release invariants.
type recorder struct {
	events    []string
	held      map[Key]bool
	moves     []int
	hardDrops int
	holds     int
	rotates   int

	doublePress   bool
	doubleRelease bool
	bothMoveKeys  bool
	pressCount    map[Key]int
	releaseCount  map[Key]int
}

func newRecorder() *recorder {
	return &recorder{
		held:         map[Key]bool{},
		pressCount:   map[Key]int{},
		releaseCount: map[Key]int{},
	}
}

func (r *recorder) PressKey(k Key) {
	if r.held[k] {
		r.doublePress = true
	}
	r.held[k] = true
	r.pressCount[k]++
	if r.held[KeyMoveLeft] && r.held[KeyMoveRight] {
		r.bothMoveKeys = true
	}
	r.events = append(r.events, "press:"+k.String())
}

func (r *recorder) ReleaseKey(k Key) {
	if !r.held[k] {
		r.doubleRelease = true
	}
	r.held[k] = false
	r.releaseCount[k]++
	r.events = append(r.events, "release:"+k.String())
}

func (r *recorder) HardDrop() {
	r.hardDrops++
	r.events = append(r.events, "hardDrop")
}

func (r *recorder) Hold() {
	r.holds++
	r.events = append(r.events, "hold")
}

func (r *recorder) RotateRight() {
	r.rotates++
	r.events = append(r.events, "rotateRight")
}

func (r *recorder) MoveOneCell(dir int) {
	r.moves = append(r.moves, dir)
	if dir > 0 {
		r.events = append(r.events, "move:+1")
	} else {
		r.events = append(r.events, "move:-1")
	}
}

func (r *recorder) checkInvariants(t *testing.T) {
	t.Helper()
	if r.doublePress {
		t.Fatalf("double press without intervening release: %v", r.events)
	}
	if r.doubleRelease {
		t.Fatalf("release without matching press: %v", r.events)
	}
	if r.bothMoveKeys {
		t.Fatalf("moveLeft and moveRight pressed simultaneously: %v", r.events)
	}
}

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestController(cfg Config, rec *recorder) (*Controller, *fakeClock) {
	c := NewController(rec, cfg, testLogger)
	fc := &fakeClock{t: time.Unix(1000, 0)}
	c.now = fc.now
	return c, fc
}

/* ───────────────────────── taps & swipes ───────────────────────── */

func TestTapFiresRotateOnly(t *testing.T) {
	rec := newRecorder()
	c, clk := newTestController(AccumulatorConfig(), rec)

	c.TouchDown(1, 0, 0)
	clk.advance(100 * time.Millisecond)
	c.TouchUp(1, 3, 2)

	if rec.rotates != 1 {
		t.Fatalf("rotates = %d, want 1", rec.rotates)
	}
	if len(rec.events) != 1 {
		t.Fatalf("unexpected extra actions: %v", rec.events)
	}
	if c.IsActive() {
		t.Fatalf("session still active after touch up")
	}
}

func TestSlowTouchIsNotATap(t *testing.T) {
	rec := newRecorder()
	c, clk := newTestController(AccumulatorConfig(), rec)

	c.TouchDown(1, 0, 0)
	clk.advance(400 * time.Millisecond)
	c.TouchUp(1, 3, 2)

	if rec.rotates != 0 {
		t.Fatalf("slow touch fired rotate: %v", rec.events)
	}
}

func TestHardDropFiresExactlyOnce(t *testing.T) {
	rec := newRecorder()
	c, clk := newTestController(AccumulatorConfig(), rec)

	c.TouchDown(1, 0, 0)
	clk.advance(100 * time.Millisecond)
	c.TouchMove(1, 0, 100, 0, 100) // 1000 px/s downward, 100px > floor

	if rec.hardDrops != 1 {
		t.Fatalf("hardDrops = %d, want 1", rec.hardDrops)
	}

	// Latched: further motion and the trailing up do nothing.
	clk.advance(50 * time.Millisecond)
	c.TouchMove(1, 0, 150, 0, 50)
	c.TouchUp(1, 0, 150)

	if rec.hardDrops != 1 || rec.rotates != 0 || rec.holds != 0 {
		t.Fatalf("latch leaked actions: %v", rec.events)
	}
	rec.checkInvariants(t)
}

func TestSwipeUpFiresHold(t *testing.T) {
	rec := newRecorder()
	c, clk := newTestController(AccumulatorConfig(), rec)

	c.TouchDown(1, 0, 200)
	clk.advance(100 * time.Millisecond)
	c.TouchMove(1, 0, 100, 0, -100)
	c.TouchUp(1, 0, 100)

	if rec.holds != 1 {
		t.Fatalf("holds = %d, want 1: %v", rec.holds, rec.events)
	}
	if rec.hardDrops != 0 || rec.rotates != 0 {
		t.Fatalf("hold swipe fired extra actions: %v", rec.events)
	}
}

func TestDiagonalDragIsNotASwipe(t *testing.T) {
	rec := newRecorder()
	c, clk := newTestController(AccumulatorConfig(), rec)

	// Fast but diagonal: |dy| < |dx| * 1.5, so no instantaneous action.
	c.TouchDown(1, 0, 0)
	clk.advance(100 * time.Millisecond)
	c.TouchMove(1, 80, 100, 80, 100)

	if rec.hardDrops != 0 || rec.holds != 0 {
		t.Fatalf("diagonal drag classified as swipe: %v", rec.events)
	}
}

/* ───────────────────────── soft drop ───────────────────────── */

func TestSoftDropPressAndFrameAccurateRelease(t *testing.T) {
	rec := newRecorder()
	c, clk := newTestController(AccumulatorConfig(), rec)

	c.TouchDown(1, 0, 0)
	y := 0.0
	// Slow sustained drag: 8px per 16ms (500 px/s) stays below the
	// hard-drop floor and above the soft-drop floor.
	for i := 0; i < 8; i++ {
		clk.advance(16 * time.Millisecond)
		y += 8
		c.TouchMove(1, 0, y, 0, 8)
	}
	if rec.pressCount[KeySoftDrop] != 1 {
		t.Fatalf("softDrop presses = %d, want 1: %v", rec.pressCount[KeySoftDrop], rec.events)
	}
	if rec.releaseCount[KeySoftDrop] != 0 {
		t.Fatalf("softDrop released while sustained: %v", rec.events)
	}

	// Direction reversal releases on that very frame, not at touch-up.
	clk.advance(16 * time.Millisecond)
	y -= 8
	c.TouchMove(1, 0, y, 0, -8)
	if rec.releaseCount[KeySoftDrop] != 1 {
		t.Fatalf("softDrop releases = %d, want 1 after reversal: %v", rec.releaseCount[KeySoftDrop], rec.events)
	}

	c.TouchUp(1, 0, y)
	if rec.releaseCount[KeySoftDrop] != 1 {
		t.Fatalf("touch up re-released softDrop: %v", rec.events)
	}
	if rec.hardDrops != 0 {
		t.Fatalf("slow drag fired hardDrop: %v", rec.events)
	}
	rec.checkInvariants(t)
}

/* ───────────────────────── accumulator strategy ───────────────────────── */

func TestAccumulatorQuantum(t *testing.T) {
	// Sensitivity 50 with the default 54px cell means 54 px/cell.
	rec := newRecorder()
	c, clk := newTestController(AccumulatorConfig(), rec)

	c.TouchDown(1, 0, 0)
	clk.advance(16 * time.Millisecond)
	c.TouchMove(1, 54, 0, 54, 0)
	if len(rec.moves) != 1 || rec.moves[0] != 1 {
		t.Fatalf("moves = %v, want [+1]", rec.moves)
	}
	if c.s.accum != 0 {
		t.Fatalf("accumulator = %v, want 0", c.s.accum)
	}
	c.TouchUp(1, 54, 0)

	rec = newRecorder()
	c, clk = newTestController(AccumulatorConfig(), rec)
	c.TouchDown(1, 0, 0)
	clk.advance(16 * time.Millisecond)
	c.TouchMove(1, 53, 0, 53, 0)
	if len(rec.moves) != 0 {
		t.Fatalf("moves = %v, want none below one quantum", rec.moves)
	}
	if c.s.accum != 53 {
		t.Fatalf("accumulator = %v, want 53", c.s.accum)
	}
}

func TestAccumulatorLosesNoPixels(t *testing.T) {
	rec := newRecorder()
	c, clk := newTestController(AccumulatorConfig(), rec)

	deltas := []float64{3, 17, -9, 40, 22, -61, 130, 5, 5, 5, -1, 88, -33, 2}
	c.TouchDown(1, 0, 0)
	x := 0.0
	for _, d := range deltas {
		clk.advance(16 * time.Millisecond)
		x += d
		c.TouchMove(1, x, 0, d, 0)
	}

	const ppc = 54.0
	emitted := 0.0
	for _, dir := range rec.moves {
		emitted += float64(dir) * ppc
	}
	total := 0.0
	for _, d := range deltas {
		total += d
	}
	if got := emitted + c.s.accum; got != total {
		t.Fatalf("emitted+remainder = %v, want total displacement %v", got, total)
	}
	rec.checkInvariants(t)
}

func TestAccumulatorReadsSensitivityLive(t *testing.T) {
	sens := 50
	cfg := AccumulatorConfig()
	cfg.Sensitivity = func() int { return sens }
	rec := newRecorder()
	c, clk := newTestController(cfg, rec)

	c.TouchDown(1, 0, 0)
	clk.advance(16 * time.Millisecond)
	c.TouchMove(1, 50, 0, 50, 0) // below the 54px quantum
	if len(rec.moves) != 0 {
		t.Fatalf("moves = %v, want none at sensitivity 50", rec.moves)
	}

	// Mid-session settings change shrinks the quantum to 54+50-80 = 24px.
	sens = 80
	clk.advance(16 * time.Millisecond)
	c.TouchMove(1, 74, 0, 24, 0)
	if len(rec.moves) != 3 {
		t.Fatalf("moves = %v, want 3 after sensitivity raise", rec.moves)
	}
}

/* ───────────────────────── step strategy ───────────────────────── */

func TestStepStrategyEmitsPerIncrement(t *testing.T) {
	rec := newRecorder()
	c, clk := newTestController(StepConfig(), rec)

	c.TouchDown(1, 0, 0)
	clk.advance(16 * time.Millisecond)
	c.TouchMove(1, 25, 0, 25, 0) // past the direction gate, one step
	if len(rec.moves) != 1 || rec.moves[0] != 1 {
		t.Fatalf("moves = %v, want [+1]", rec.moves)
	}

	clk.advance(16 * time.Millisecond)
	c.TouchMove(1, 28, 0, 3, 0) // under the per-increment minimum
	if len(rec.moves) != 1 {
		t.Fatalf("moves = %v, want no step for 3px", rec.moves)
	}

	clk.advance(16 * time.Millisecond)
	c.TouchMove(1, 34, 0, 6, 0) // 6px from the reset reference
	if len(rec.moves) != 2 {
		t.Fatalf("moves = %v, want second step", rec.moves)
	}
	rec.checkInvariants(t)
}

/* ───────────────────────── holdkey strategy ───────────────────────── */

func TestHoldKeyMutualExclusion(t *testing.T) {
	rec := newRecorder()
	c, clk := newTestController(HoldKeyConfig(), rec)

	c.TouchDown(1, 100, 0)
	clk.advance(32 * time.Millisecond)
	c.TouchMove(1, 130, 0, 30, 0)
	if !rec.held[KeyMoveRight] {
		t.Fatalf("moveRight not pressed after rightward drag: %v", rec.events)
	}

	// Key stays held while the drag continues rightward.
	clk.advance(32 * time.Millisecond)
	c.TouchMove(1, 140, 0, 10, 0)
	if rec.pressCount[KeyMoveRight] != 1 {
		t.Fatalf("moveRight pressed %d times, want 1", rec.pressCount[KeyMoveRight])
	}

	// Crossing to the left of the origin swaps keys, release first.
	clk.advance(64 * time.Millisecond)
	c.TouchMove(1, 70, 0, -70, 0)
	if !rec.held[KeyMoveLeft] || rec.held[KeyMoveRight] {
		t.Fatalf("expected left held and right released: %v", rec.events)
	}

	c.TouchUp(1, 70, 0)
	if rec.held[KeyMoveLeft] || rec.held[KeyMoveRight] || rec.held[KeySoftDrop] {
		t.Fatalf("keys still held after touch up: %v", rec.events)
	}
	if rec.rotates != 0 {
		t.Fatalf("drag fired rotate: %v", rec.events)
	}
	rec.checkInvariants(t)
}

/* ───────────────────────── lifecycle ───────────────────────── */

func TestSecondFingerIgnored(t *testing.T) {
	rec := newRecorder()
	c, clk := newTestController(AccumulatorConfig(), rec)

	c.TouchDown(1, 0, 0)
	c.TouchDown(2, 300, 300) // second concurrent finger
	if !c.IsActive() {
		t.Fatalf("first session lost on second finger down")
	}

	clk.advance(50 * time.Millisecond)
	c.TouchMove(2, 300, 500, 0, 200) // would be a hard drop if tracked
	c.TouchUp(2, 300, 500)
	if rec.hardDrops != 0 || rec.rotates != 0 {
		t.Fatalf("second finger produced actions: %v", rec.events)
	}

	clk.advance(50 * time.Millisecond)
	c.TouchUp(1, 0, 0)
	if rec.rotates != 1 {
		t.Fatalf("first finger tap lost: %v", rec.events)
	}
}

func TestResetReleasesAndClears(t *testing.T) {
	rec := newRecorder()
	c, clk := newTestController(HoldKeyConfig(), rec)

	c.TouchDown(1, 0, 0)
	clk.advance(32 * time.Millisecond)
	c.TouchMove(1, 40, 0, 40, 0)
	if !rec.held[KeyMoveRight] {
		t.Fatalf("precondition: moveRight not held")
	}

	c.Reset()
	if rec.held[KeyMoveRight] {
		t.Fatalf("Reset left moveRight held")
	}
	if c.IsActive() {
		t.Fatalf("Reset left session active")
	}

	// Events for the dead session are no-ops, including a duplicate reset.
	c.TouchMove(1, 80, 0, 40, 0)
	c.TouchUp(1, 80, 0)
	c.Reset()
	rec.checkInvariants(t)
}
