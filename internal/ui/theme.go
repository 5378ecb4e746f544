package ui

import (
	"image/color"

	"github.com/ingyamilmolinar/blockfall/core/game"
)

var (
	colBG          = color.RGBA{20, 20, 30, 255}
	colBoardBG     = color.RGBA{10, 10, 14, 255}
	colGridLine    = color.RGBA{40, 40, 50, 255}
	colBoardBorder = color.RGBA{120, 120, 140, 255}
	colHUDBar      = color.RGBA{30, 30, 42, 255}
	colGhost       = color.RGBA{70, 70, 85, 255}
)

// pieceColors is indexed by game.PieceKind.
var pieceColors = [...]color.RGBA{
	game.PieceI: {0, 200, 255, 255},
	game.PieceO: {240, 210, 40, 255},
	game.PieceT: {180, 60, 220, 255},
	game.PieceS: {40, 200, 80, 255},
	game.PieceZ: {220, 60, 60, 255},
	game.PieceJ: {60, 90, 230, 255},
	game.PieceL: {240, 140, 40, 255},
}
