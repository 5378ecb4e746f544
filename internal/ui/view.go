package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/ingyamilmolinar/blockfall/core/game"
)

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colBG)
	g.drawHUDBar(screen)
	g.drawBoard(screen)
	g.drawSidebar(screen)

	if g.paused {
		ebitenutil.DebugPrintAt(screen, "PAUSED", screenW/2-20, screenH/2)
	}
	if g.player.Over {
		ebitenutil.DebugPrintAt(screen, "GAME OVER - tap or press R to restart", screenW/2-110, screenH/2)
	}
}

func (g *Game) drawHUDBar(screen *ebiten.Image) {
	drawRect(screen, rect(0, 0, screenW, topOffset), colHUDBar, true)
	hud := fmt.Sprintf("score %d  lines %d  level %d | %s sens %d",
		g.player.Score, g.player.Lines, g.player.Level, g.strategy, g.sensitivity)
	ebitenutil.DebugPrintAt(screen, hud, 8, 12)
}

func (g *Game) drawBoard(screen *ebiten.Image) {
	bx1, by1 := g.cam.ScreenPos(0, 0)
	bx2, by2 := g.cam.ScreenPos(game.BoardWidth*cellSize, game.BoardHeight*cellSize)
	drawRect(screen, rect(bx1, by1, bx2, by2), colBoardBG, true)
	for i := 1; i < game.BoardWidth; i++ {
		x, _ := g.cam.ScreenPos(float64(i)*cellSize, 0)
		drawRect(screen, rect(x, by1, x+1, by2), colGridLine, true)
	}
	for j := 1; j < game.BoardHeight; j++ {
		_, y := g.cam.ScreenPos(0, float64(j)*cellSize)
		drawRect(screen, rect(bx1, y, bx2, y+1), colGridLine, true)
	}
	drawRect(screen, rect(bx1, by1, bx2, by2), colBoardBorder, false)

	for y := 0; y < game.BoardHeight; y++ {
		for x := 0; x < game.BoardWidth; x++ {
			if kind, ok := g.player.Board.CellKind(x, y); ok {
				g.drawCell(screen, x, y, pieceColors[kind])
			}
		}
	}

	if !g.player.Over {
		ghostY := g.player.GhostY()
		ghost := g.player.Cur
		ghost.Y = ghostY
		for _, c := range ghost.Cells() {
			if c.Y >= 0 {
				g.drawCellOutline(screen, c.X, c.Y, colGhost)
			}
		}
		for _, c := range g.player.Cur.Cells() {
			if c.Y >= 0 {
				g.drawCell(screen, c.X, c.Y, pieceColors[g.player.Cur.Kind])
			}
		}
	}
}

func (g *Game) drawCell(screen *ebiten.Image, i, j int, col color.RGBA) {
	x1, y1, x2, y2 := g.cam.CellRect(i, j, cellSize)
	drawRect(screen, rect(x1+1, y1+1, x2-1, y2-1), col, true)
}

func (g *Game) drawCellOutline(screen *ebiten.Image, i, j int, col color.RGBA) {
	x1, y1, x2, y2 := g.cam.CellRect(i, j, cellSize)
	drawRect(screen, rect(x1+1, y1+1, x2-1, y2-1), col, false)
}

// drawSidebar renders the next and hold previews in their own 4x4 boxes.
func (g *Game) drawSidebar(screen *ebiten.Image) {
	sx := float64(game.BoardWidth*cellSize) + 16
	preview := 24.0

	ebitenutil.DebugPrintAt(screen, "next", int(sx), topOffset+8)
	g.drawPreview(screen, g.player.Next, sx, topOffset+28, preview)

	ebitenutil.DebugPrintAt(screen, "hold", int(sx), topOffset+160)
	if g.player.HasHold {
		g.drawPreview(screen, g.player.HoldKind, sx, topOffset+180, preview)
	}
}

func (g *Game) drawPreview(screen *ebiten.Image, kind game.PieceKind, x, y, cell float64) {
	p := game.Piece{Kind: kind}
	for _, c := range p.Cells() {
		x1 := x + float64(c.X)*cell
		y1 := y + float64(c.Y)*cell
		drawRect(screen, rect(x1+1, y1+1, x1+cell-1, y1+cell-1), pieceColors[kind], true)
	}
}
