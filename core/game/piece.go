package game

// PieceKind enumerates the seven tetrominoes.
type PieceKind int

const (
	PieceI PieceKind = iota
	PieceO
	PieceT
	PieceS
	PieceZ
	PieceJ
	PieceL
	pieceKindCount
)

func (k PieceKind) String() string {
	switch k {
	case PieceI:
		return "I"
	case PieceO:
		return "O"
	case PieceT:
		return "T"
	case PieceS:
		return "S"
	case PieceZ:
		return "Z"
	case PieceJ:
		return "J"
	case PieceL:
		return "L"
	default:
		return "?"
	}
}

// Cell is a board coordinate; Y grows downward.
type Cell struct{ X, Y int }

// shapes holds the four rotation states of each kind as offsets inside a
// 4x4 box, standard rotation-system layout.
var shapes = [pieceKindCount][4][4]Cell{
	PieceI: {
		{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
		{{2, 0}, {2, 1}, {2, 2}, {2, 3}},
		{{0, 2}, {1, 2}, {2, 2}, {3, 2}},
		{{1, 0}, {1, 1}, {1, 2}, {1, 3}},
	},
	PieceO: {
		{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
		{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
		{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
		{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
	},
	PieceT: {
		{{1, 0}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 0}, {1, 1}, {2, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {1, 2}},
		{{1, 0}, {0, 1}, {1, 1}, {1, 2}},
	},
	PieceS: {
		{{1, 0}, {2, 0}, {0, 1}, {1, 1}},
		{{1, 0}, {1, 1}, {2, 1}, {2, 2}},
		{{1, 1}, {2, 1}, {0, 2}, {1, 2}},
		{{0, 0}, {0, 1}, {1, 1}, {1, 2}},
	},
	PieceZ: {
		{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
		{{2, 0}, {1, 1}, {2, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {1, 2}, {2, 2}},
		{{1, 0}, {0, 1}, {1, 1}, {0, 2}},
	},
	PieceJ: {
		{{0, 0}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 0}, {2, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {2, 2}},
		{{1, 0}, {1, 1}, {0, 2}, {1, 2}},
	},
	PieceL: {
		{{2, 0}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {0, 2}},
		{{0, 0}, {1, 0}, {1, 1}, {1, 2}},
	},
}

// Piece is a falling tetromino: kind, rotation state and the board position
// of its 4x4 box origin.
type Piece struct {
	Kind PieceKind
	Rot  int
	X, Y int
}

// SpawnPiece places a fresh piece centered above the visible board.
func SpawnPiece(kind PieceKind) Piece {
	return Piece{Kind: kind, Rot: 0, X: BoardWidth/2 - 2, Y: -1}
}

// Cells returns the four absolute board cells the piece occupies.
func (p Piece) Cells() [4]Cell {
	var out [4]Cell
	for i, c := range shapes[p.Kind][p.Rot&3] {
		out[i] = Cell{X: p.X + c.X, Y: p.Y + c.Y}
	}
	return out
}

// Rotated returns the piece turned one state clockwise.
func (p Piece) Rotated() Piece {
	p.Rot = (p.Rot + 1) & 3
	return p
}

// Shifted returns the piece moved by (dx, dy).
func (p Piece) Shifted(dx, dy int) Piece {
	p.X += dx
	p.Y += dy
	return p
}
