package game

// Board dimensions in cells.
const (
	BoardWidth  = 10
	BoardHeight = 20
)

// cellValue is 0 for empty, otherwise 1 + PieceKind of the locked piece.
type cellValue uint8

const cellEmpty cellValue = 0

// Board is the locked-cell grid. Row 0 is the top; pieces may extend above
// it (negative Y) while spawning.
type Board struct {
	cells [BoardHeight][BoardWidth]cellValue
}

func NewBoard() *Board { return &Board{} }

// CellKind reports whether (x, y) holds a locked cell and of which kind.
func (b *Board) CellKind(x, y int) (PieceKind, bool) {
	if x < 0 || x >= BoardWidth || y < 0 || y >= BoardHeight {
		return 0, false
	}
	v := b.cells[y][x]
	if v == cellEmpty {
		return 0, false
	}
	return PieceKind(v - 1), true
}

// Fits is the collision query: every cell of p must be inside the side and
// bottom walls and not overlap a locked cell. Cells above the top are fine,
// pieces spawn there.
func (b *Board) Fits(p Piece) bool {
	for _, c := range p.Cells() {
		if c.X < 0 || c.X >= BoardWidth || c.Y >= BoardHeight {
			return false
		}
		if c.Y >= 0 && b.cells[c.Y][c.X] != cellEmpty {
			return false
		}
	}
	return true
}

// Merge locks the piece into the grid. Cells above the top are discarded.
func (b *Board) Merge(p Piece) {
	for _, c := range p.Cells() {
		if c.Y >= 0 && c.Y < BoardHeight && c.X >= 0 && c.X < BoardWidth {
			b.cells[c.Y][c.X] = cellValue(p.Kind) + 1
		}
	}
}

// ClearFullRows removes every complete row, shifts everything above down,
// and returns how many rows were cleared.
func (b *Board) ClearFullRows() int {
	cleared := 0
	dst := BoardHeight - 1
	for src := BoardHeight - 1; src >= 0; src-- {
		full := true
		for x := 0; x < BoardWidth; x++ {
			if b.cells[src][x] == cellEmpty {
				full = false
				break
			}
		}
		if full {
			cleared++
			continue
		}
		if dst != src {
			b.cells[dst] = b.cells[src]
		}
		dst--
	}
	for ; dst >= 0; dst-- {
		b.cells[dst] = [BoardWidth]cellValue{}
	}
	return cleared
}

// Reset empties the grid.
func (b *Board) Reset() {
	*b = Board{}
}
