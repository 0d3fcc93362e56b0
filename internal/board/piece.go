package board

// Kind is the piece type. Only Pawn and Knight are ever placed on the board;
// the rest exist so the move generator can say "not handled" explicitly.
type Kind uint8

const (
	Pawn Kind = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoKind
)

func (k Kind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "none"
	}
}

// Side identifies the owner of a piece. NoSide marks an unused slot.
type Side uint8

const (
	White Side = iota
	Black
	NoSide
)

func (s Side) String() string {
	switch s {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "none"
	}
}

// StartRow is the pawn starting row of the side, -1 for NoSide.
func (s Side) StartRow() int {
	switch s {
	case White:
		return 1
	case Black:
		return 6
	default:
		return -1
	}
}

// Forward is the row direction pawns of the side advance in.
func (s Side) Forward() int {
	if s == Black {
		return -1
	}
	return 1
}

// Piece is immutable after the registry creates it.
type Piece struct {
	Index  int
	Kind   Kind
	Side   Side
	Square Square
	Share  float64
}

// FullShare is the share every piece starts with, in percent.
const FullShare = 100.0
