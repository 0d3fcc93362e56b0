package board

import "fmt"

const (
	Size       = 8
	NumSquares = Size * Size
	MaxPieces  = 32
)

// Square is a linear board index: row*8 + col. Row 0 is White's back rank,
// col 0 is the a-file (A1 = 0, H8 = 63).
type Square int

const NoSquare Square = -1

// ToSquare converts a (row, col) pair into a Square.
// Out-of-range coordinates are a programming error and panic.
func ToSquare(row, col int) Square {
	sq, ok := SquareAt(row, col)
	if !ok {
		panic(fmt.Sprintf("board: coordinate (%d,%d) out of range", row, col))
	}
	return sq
}

// SquareAt is the checked variant of ToSquare.
func SquareAt(row, col int) (Square, bool) {
	if row < 0 || row >= Size || col < 0 || col >= Size {
		return NoSquare, false
	}
	return Square(row*Size + col), true
}

func (s Square) Valid() bool { return s >= 0 && s < NumSquares }

// Coord returns the (row, col) pair of s. Panics on an invalid square.
func (s Square) Coord() (row, col int) {
	if !s.Valid() {
		panic(fmt.Sprintf("board: square %d out of range", int(s)))
	}
	return int(s) / Size, int(s) % Size
}

// String returns the algebraic name (a1..h8), or "-" for an invalid square.
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	row, col := s.Coord()
	return string(rune('a'+col)) + string(rune('1'+row))
}
