package board

// InitPieces returns the fixed starting set: for each side 8 pawns and 2 knights,
// White first. Indices follow creation order (White 0-9, Black 10-19).
func InitPieces() []Piece {
	pieces := make([]Piece, 0, 20)
	add := func(k Kind, s Side, sq Square) {
		pieces = append(pieces, Piece{Index: len(pieces), Kind: k, Side: s, Square: sq, Share: FullShare})
	}
	for col := 0; col < Size; col++ {
		add(Pawn, White, ToSquare(1, col))
	}
	add(Knight, White, ToSquare(0, 1))
	add(Knight, White, ToSquare(0, 6))
	for col := 0; col < Size; col++ {
		add(Pawn, Black, ToSquare(6, col))
	}
	add(Knight, Black, ToSquare(7, 1))
	add(Knight, Black, ToSquare(7, 6))
	return pieces
}
