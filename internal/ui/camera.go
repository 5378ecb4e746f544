package ui

// Camera maps board-space pixels to screen-space. The board renders at a
// fixed logical scale; the offsets place it under the HUD bar.
type Camera struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

func NewCamera() *Camera { return &Camera{Scale: 1.0} }

// ScreenPos converts board-space coordinates to screen-space using the
// current camera transform.
func (c *Camera) ScreenPos(x, y float64) (sx, sy float64) {
	sx = x*c.Scale + c.OffsetX
	sy = y*c.Scale + c.OffsetY
	return
}

// CellRect returns the screen-space rectangle of board cell (i, j).
func (c *Camera) CellRect(i, j int, cell float64) (x1, y1, x2, y2 float64) {
	x1, y1 = c.ScreenPos(float64(i)*cell, float64(j)*cell)
	x2 = x1 + cell*c.Scale
	y2 = y1 + cell*c.Scale
	return
}
