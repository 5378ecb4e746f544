package touch

import "time"

// Strategy selects how horizontal finger travel turns into piece movement.
type Strategy int

const (
	// StrategyHoldKey presses a move key once the gesture commits to a
	// direction and holds it for the rest of the gesture; repeat timing is
	// the player's, not the finger's.
	StrategyHoldKey Strategy = iota
	// StrategyStep emits one move-one-cell call per finger travel increment
	// past StepMinDelta, giving finger-to-cell correspondence.
	StrategyStep
	// StrategyAccumulator buffers every horizontal pixel into an
	// accumulator and consumes it in pixels-per-cell quanta, so fractional
	// motion carries across frames and no travel is ever lost.
	StrategyAccumulator
)

func (s Strategy) String() string {
	switch s {
	case StrategyHoldKey:
		return "holdkey"
	case StrategyStep:
		return "step"
	case StrategyAccumulator:
		return "accumulator"
	default:
		return "unknown"
	}
}

// StrategyFromString maps a config value to a Strategy, defaulting to the
// accumulator.
func StrategyFromString(s string) Strategy {
	switch s {
	case "holdkey":
		return StrategyHoldKey
	case "step":
		return StrategyStep
	case "accumulator":
		return StrategyAccumulator
	default:
		return StrategyAccumulator
	}
}

// VelocityMode selects how gesture velocity is averaged.
type VelocityMode int

const (
	// VelocityTotal divides total displacement by total gesture time.
	// Stable against frame-rate jitter; the preferred default.
	VelocityTotal VelocityMode = iota
	// VelocityPerFrame uses the latest sample delta only.
	VelocityPerFrame
)

const (
	// DefaultSensitivity is the 1:1 feel baseline of the 1..100 range.
	DefaultSensitivity = 50
	// DefaultCellSize is the visual cell size in pixels that sensitivity 50
	// maps to one cell of finger travel.
	DefaultCellSize = 54.0

	// minElapsed floors time deltas so velocity can't spike on zero or
	// near-zero dt.
	minElapsed = 16 * time.Millisecond
)

// Config holds every tunable of the classifier. The three historical
// tunings are the preset constructors below; all of them are the same
// classifier with different numbers.
type Config struct {
	// Tap: down-up within both ceilings fires rotate.
	TapMaxDuration time.Duration
	TapMaxDistance float64

	// Swipes must exceed this total distance before an instantaneous
	// action is considered at all.
	SwipeMinDistance float64
	// VerticalityRatio gates "primarily vertical": |dy| > |dx| * ratio.
	// 1.0 is permissive; 1.5 rejects diagonal drags.
	VerticalityRatio float64

	HardDropMinVelocity float64 // px/s downward
	HardDropMinDistance float64 // px downward
	HoldMinVelocity     float64 // px/s upward
	HoldMinDistance     float64 // px upward

	SoftDropMinVelocity float64 // px/s downward
	// SoftDropHysteresis releases soft-drop the moment the downward
	// condition stops holding instead of waiting for touch-up. Release
	// is then judged on per-frame velocity for a frame-accurate stop.
	SoftDropHysteresis bool

	// MoveStartDistance is the horizontal displacement that commits the
	// gesture to a direction (holdkey and step strategies).
	MoveStartDistance float64
	// StepMinDelta is the per-event travel that emits one cell (step
	// strategy).
	StepMinDelta float64

	Strategy     Strategy
	VelocityMode VelocityMode

	// ExclusiveAxis keeps horizontal movement and soft-drop from being
	// active together: horizontal requires a primarily horizontal gesture
	// and entering soft-drop releases the move keys.
	ExclusiveAxis bool

	// CellSize is the visual cell size in pixels, the sensitivity-50
	// baseline of the accumulator quantum.
	CellSize float64

	// Sensitivity returns the configured 1..100 scalar. It is consulted on
	// every evaluation, never cached, so a mid-session settings change
	// takes effect immediately. Nil means DefaultSensitivity.
	Sensitivity func() int
}

// pixelsPerCell converts the current sensitivity into the accumulator
// quantum: cellSize + 50 - sensitivity, so 50 is exactly one visual cell
// and higher sensitivity shrinks the quantum. Never returns less than 1px.
func (c Config) pixelsPerCell() float64 {
	s := DefaultSensitivity
	if c.Sensitivity != nil {
		s = c.Sensitivity()
	}
	if s < 1 {
		s = 1
	} else if s > 100 {
		s = 100
	}
	cell := c.CellSize
	if cell <= 0 {
		cell = DefaultCellSize
	}
	ppc := cell + 50 - float64(s)
	if ppc < 1 {
		ppc = 1
	}
	return ppc
}

// AccumulatorConfig is the default tuning: pixel-exact horizontal stepping
// with soft-drop allowed alongside it.
func AccumulatorConfig() Config {
	return Config{
		TapMaxDuration:      250 * time.Millisecond,
		TapMaxDistance:      24,
		SwipeMinDistance:    48,
		VerticalityRatio:    1.5,
		HardDropMinVelocity: 800,
		HardDropMinDistance: 80,
		HoldMinVelocity:     800,
		HoldMinDistance:     80,
		SoftDropMinVelocity: 200,
		SoftDropHysteresis:  true,
		MoveStartDistance:   20,
		StepMinDelta:        5,
		Strategy:            StrategyAccumulator,
		VelocityMode:        VelocityTotal,
		ExclusiveAxis:       false,
		CellSize:            DefaultCellSize,
	}
}

// HoldKeyConfig delivers horizontal motion as held move keys and leaves
// repeat timing to the player's auto-shift.
func HoldKeyConfig() Config {
	cfg := AccumulatorConfig()
	cfg.Strategy = StrategyHoldKey
	cfg.VerticalityRatio = 1.0
	cfg.VelocityMode = VelocityPerFrame
	cfg.SoftDropHysteresis = false
	cfg.ExclusiveAxis = true
	return cfg
}

// StepConfig emits one cell per travel increment without an accumulator.
func StepConfig() Config {
	cfg := AccumulatorConfig()
	cfg.Strategy = StrategyStep
	cfg.ExclusiveAxis = true
	return cfg
}
