package heatmap

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/park285/presence-heatmap/internal/board"
)

func (g *Grid) aggregate() {
	for sq := range g.Squares {
		g.aggregateSquare(sq)
	}
}

// aggregateSquare recomputes the sums of one square from its slots.
func (g *Grid) aggregateSquare(sq int) {
	r := &g.Squares[sq]
	var white, black float64
	for i, s := range r.Shares {
		switch g.sides[i] {
		case board.White:
			white += s
		case board.Black:
			black += s
		}
	}
	r.SumWhite = white
	r.SumBlack = black
	r.SumTotal = white + black
	r.EmptyShare = board.FullShare - r.SumTotal
}

// DistributeParallel is Distribute with aggregation fanned out one goroutine per
// board row. Each goroutine owns its eight squares exclusively, so the result is
// identical to the sequential pass.
func (g *Grid) DistributeParallel(ctx context.Context, pieces []board.Piece) error {
	if err := g.deposit(pieces); err != nil {
		return err
	}
	eg, ctx := errgroup.WithContext(ctx)
	for row := 0; row < board.Size; row++ {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for col := 0; col < board.Size; col++ {
				g.aggregateSquare(row*board.Size + col)
			}
			return nil
		})
	}
	return eg.Wait()
}
