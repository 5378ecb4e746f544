package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Ebiten input state is reached through package variables so headless tests
// can swap in synthetic touch and key streams.
var (
	appendTouchIDs = func(ids []ebiten.TouchID) []ebiten.TouchID {
		return ebiten.AppendTouchIDs(ids)
	}
	appendJustPressedTouchIDs = func(ids []ebiten.TouchID) []ebiten.TouchID {
		return inpututil.AppendJustPressedTouchIDs(ids)
	}
	touchPosition               = ebiten.TouchPosition
	touchPositionInPreviousTick = inpututil.TouchPositionInPreviousTick
	isTouchJustReleased         = inpututil.IsTouchJustReleased

	cursorPosition       = ebiten.CursorPosition
	isMouseButtonPressed = ebiten.IsMouseButtonPressed

	isKeyPressed      = ebiten.IsKeyPressed
	isKeyJustPressed  = inpututil.IsKeyJustPressed
	isKeyJustReleased = inpututil.IsKeyJustReleased
)
