package heatmap

import (
	"fmt"

	"github.com/park285/presence-heatmap/internal/board"
	"github.com/park285/presence-heatmap/internal/movegen"
)

// Deposit is one share placed by a piece on a square.
type Deposit struct {
	Piece  int
	Square board.Square
	Share  float64
}

// Distribute resets g, spreads each piece's share evenly over its origin and move
// targets, then aggregates. A piece with no moves deposits nothing.
// Deposits on the same square and slot accumulate.
func (g *Grid) Distribute(pieces []board.Piece) error {
	if err := g.deposit(pieces); err != nil {
		return err
	}
	g.aggregate()
	return nil
}

func (g *Grid) deposit(pieces []board.Piece) error {
	g.Reset()
	for _, p := range pieces {
		if p.Index < 0 || p.Index >= board.MaxPieces {
			return fmt.Errorf("piece index %d outside slot table", p.Index)
		}
		if !p.Square.Valid() {
			return fmt.Errorf("piece %d on invalid square %d", p.Index, int(p.Square))
		}
		if g.sides[p.Index] != board.NoSide {
			return fmt.Errorf("duplicate piece index %d", p.Index)
		}
		g.sides[p.Index] = p.Side
		for _, d := range Spread(p) {
			g.Squares[d.Square].Shares[d.Piece] += d.Share
		}
	}
	return nil
}

// Spread lists the deposits of one piece: origin first, then targets in move order.
func Spread(p board.Piece) []Deposit {
	moves := movegen.Moves(p)
	if len(moves) == 0 {
		return []Deposit{{Piece: p.Index, Square: p.Square, Share: 0}}
	}
	per := p.Share / float64(len(moves)+1)
	out := make([]Deposit, 0, len(moves)+1)
	out = append(out, Deposit{Piece: p.Index, Square: p.Square, Share: per})
	for _, m := range moves {
		out = append(out, Deposit{Piece: p.Index, Square: m, Share: per})
	}
	return out
}
