package heatmap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/park285/presence-heatmap/internal/board"
)

const eps = 1e-9

func standardGrid(t *testing.T) *Grid {
	t.Helper()
	g := NewGrid()
	require.NoError(t, g.Distribute(board.InitPieces()))
	return g
}

func TestShareConservation(t *testing.T) {
	g := standardGrid(t)
	for _, p := range board.InitPieces() {
		assert.InDelta(t, p.Share, g.PieceTotal(p.Index), eps, "piece %d", p.Index)
	}
}

func TestSquareInvariants(t *testing.T) {
	g := standardGrid(t)
	for sq := range g.Squares {
		r := g.Squares[sq]
		assert.InDelta(t, r.SumWhite+r.SumBlack, r.SumTotal, eps)
		assert.InDelta(t, 100-r.SumTotal, r.EmptyShare, eps)
		assert.GreaterOrEqual(t, r.SumWhite, 0.0)
		assert.LessOrEqual(t, r.SumWhite, 100.0)
		assert.GreaterOrEqual(t, r.SumBlack, 0.0)
		assert.LessOrEqual(t, r.SumBlack, 100.0)
	}
}

func TestStandardSetValues(t *testing.T) {
	g := standardGrid(t)

	a2 := g.At(board.ToSquare(1, 0))
	assert.InDelta(t, 100.0/3, a2.SumWhite, eps)
	assert.Zero(t, a2.SumBlack)

	a1 := g.At(board.ToSquare(0, 0))
	assert.Zero(t, a1.SumWhite)
	assert.Zero(t, a1.SumBlack)
	assert.Equal(t, 100.0, a1.EmptyShare)

	// pawn double step plus knight b1
	a3 := g.At(board.ToSquare(2, 0))
	assert.InDelta(t, 100.0/3+25, a3.SumWhite, eps)

	// e5 is reached only by the black e-pawn double step
	e5 := g.At(board.ToSquare(4, 4))
	assert.Zero(t, e5.SumWhite)
	assert.InDelta(t, 100.0/3, e5.SumBlack, eps)

	g8 := g.At(board.ToSquare(7, 6))
	assert.InDelta(t, 25.0, g8.SumBlack, eps)
	assert.InDelta(t, 25.0, g8.Shares[19], eps)
}

func TestSidesResolvedByOwnerNotSlotPosition(t *testing.T) {
	// black pieces at indices below 16 must still count as black
	g := standardGrid(t)
	e7 := g.At(board.ToSquare(6, 4))
	assert.Zero(t, e7.SumWhite)
	assert.InDelta(t, 100.0/3+25, e7.SumBlack, eps)
	assert.Equal(t, board.Black, g.SlotSide(14))
	assert.Equal(t, board.NoSide, g.SlotSide(25))
}

func TestDistributeIdempotent(t *testing.T) {
	pieces := board.InitPieces()
	g := NewGrid()
	require.NoError(t, g.Distribute(pieces))
	first := g.Squares
	require.NoError(t, g.Distribute(pieces))
	assert.Equal(t, first, g.Squares)
}

func TestParallelMatchesSequential(t *testing.T) {
	pieces := board.InitPieces()
	seq := NewGrid()
	require.NoError(t, seq.Distribute(pieces))
	par := NewGrid()
	require.NoError(t, par.DistributeParallel(context.Background(), pieces))
	assert.Equal(t, seq.Squares, par.Squares)
}

func TestPieceWithoutMovesDepositsNothing(t *testing.T) {
	g := NewGrid()
	p := board.Piece{Index: 0, Kind: board.Pawn, Side: board.White, Square: board.ToSquare(7, 3), Share: 100}
	require.NoError(t, g.Distribute([]board.Piece{p}))
	assert.Zero(t, g.PieceTotal(0))
	assert.Equal(t, 100.0, g.At(p.Square).EmptyShare)
}

func TestDepositsAccumulateOnSameSlot(t *testing.T) {
	g := NewGrid()
	g.sides[3] = board.White
	for _, d := range []Deposit{{3, 10, 20}, {3, 10, 5}} {
		g.Squares[d.Square].Shares[d.Piece] += d.Share
	}
	g.aggregate()
	assert.InDelta(t, 25.0, g.At(10).SumWhite, eps)
}

func TestDistributeRejectsBadPieces(t *testing.T) {
	g := NewGrid()
	assert.Error(t, g.Distribute([]board.Piece{{Index: 32, Kind: board.Pawn, Side: board.White, Square: 8, Share: 100}}))
	assert.Error(t, g.Distribute([]board.Piece{{Index: 0, Kind: board.Pawn, Side: board.White, Square: 64, Share: 100}}))
	dup := board.Piece{Index: 1, Kind: board.Knight, Side: board.Black, Square: 40, Share: 100}
	assert.Error(t, g.Distribute([]board.Piece{dup, dup}))
}

func TestSpreadOrder(t *testing.T) {
	ds := Spread(board.Piece{Index: 8, Kind: board.Knight, Side: board.White, Square: 1, Share: 100})
	require.Len(t, ds, 4)
	assert.Equal(t, board.Square(1), ds[0].Square)
	for _, d := range ds {
		assert.Equal(t, 25.0, d.Share)
		assert.Equal(t, 8, d.Piece)
	}
}

func TestHottest(t *testing.T) {
	g := standardGrid(t)
	sq, v := g.Hottest(board.White)
	assert.Equal(t, board.ToSquare(1, 3), sq)
	assert.InDelta(t, 100.0/3+25, v, eps)

	sq, _ = g.Hottest(board.Black)
	assert.Equal(t, board.ToSquare(5, 0), sq)

	empty := NewGrid()
	sq, v = empty.Hottest(board.White)
	assert.Equal(t, board.NoSquare, sq)
	assert.Zero(t, v)
}
