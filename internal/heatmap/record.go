// Package heatmap distributes piece shares over the board and aggregates them
// per square and per side.
package heatmap

import "github.com/park285/presence-heatmap/internal/board"

// SquareRecord holds the shares deposited on one square, one slot per piece index.
type SquareRecord struct {
	Shares     [board.MaxPieces]float64
	SumWhite   float64
	SumBlack   float64
	SumTotal   float64
	EmptyShare float64
}

func (r *SquareRecord) reset() {
	*r = SquareRecord{EmptyShare: board.FullShare}
}

// Grid is the per-square state of one distribution pass.
type Grid struct {
	Squares [board.NumSquares]SquareRecord

	// slot owner sides of the last pass; NoSide for unused slots
	sides [board.MaxPieces]board.Side
}

// NewGrid returns a grid with every square fully empty.
func NewGrid() *Grid {
	g := &Grid{}
	g.Reset()
	return g
}

// Reset clears all records and slot owners.
func (g *Grid) Reset() {
	for i := range g.Squares {
		g.Squares[i].reset()
	}
	for i := range g.sides {
		g.sides[i] = board.NoSide
	}
}

// At returns the record of sq.
func (g *Grid) At(sq board.Square) *SquareRecord {
	return &g.Squares[sq]
}

// SlotSide reports which side owns slot i in the last pass.
func (g *Grid) SlotSide(i int) board.Side {
	if i < 0 || i >= len(g.sides) {
		return board.NoSide
	}
	return g.sides[i]
}

// PieceTotal sums the shares piece index deposited over the whole board.
func (g *Grid) PieceTotal(index int) float64 {
	var total float64
	for i := range g.Squares {
		total += g.Squares[i].Shares[index]
	}
	return total
}

// Hottest returns the square with the largest sum for side (first one on ties)
// and that sum. An all-zero board yields NoSquare.
func (g *Grid) Hottest(side board.Side) (board.Square, float64) {
	best, bestSum := board.NoSquare, 0.0
	for i := range g.Squares {
		v := g.Squares[i].SumWhite
		if side == board.Black {
			v = g.Squares[i].SumBlack
		}
		if v > bestSum {
			best, bestSum = board.Square(i), v
		}
	}
	return best, bestSum
}
