// Package movegen lists the squares a piece could move to under the simplified
// pawn/knight rules: no captures, no occupancy, no legality checks.
package movegen

import "github.com/park285/presence-heatmap/internal/board"

var knightOffsets = [8][2]int{
	{2, 1}, {1, 2}, {-1, 2}, {-2, 1},
	{-2, -1}, {-1, -2}, {1, -2}, {2, -1},
}

// Moves returns the target squares of p in a stable order.
// Kinds other than pawn and knight yield nil.
func Moves(p board.Piece) []board.Square {
	switch p.Kind {
	case board.Pawn:
		return pawnMoves(p)
	case board.Knight:
		return knightMoves(p.Square)
	default:
		return nil
	}
}

func pawnMoves(p board.Piece) []board.Square {
	row, col := p.Square.Coord()
	dir := p.Side.Forward()
	one, ok := board.SquareAt(row+dir, col)
	if !ok {
		return nil
	}
	moves := []board.Square{one}
	if row == p.Side.StartRow() {
		if two, ok := board.SquareAt(row+2*dir, col); ok {
			moves = append(moves, two)
		}
	}
	return moves
}

func knightMoves(from board.Square) []board.Square {
	row, col := from.Coord()
	moves := make([]board.Square, 0, len(knightOffsets))
	for _, off := range knightOffsets {
		if sq, ok := board.SquareAt(row+off[0], col+off[1]); ok {
			moves = append(moves, sq)
		}
	}
	return moves
}
