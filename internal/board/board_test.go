package board

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSquareRoundTrip(t *testing.T) {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			sq := ToSquare(row, col)
			require.True(t, sq.Valid())
			r, c := sq.Coord()
			assert.Equal(t, row, r)
			assert.Equal(t, col, c)
		}
	}
	assert.Equal(t, Square(0), ToSquare(0, 0))
	assert.Equal(t, Square(63), ToSquare(7, 7))
	assert.Equal(t, Square(8), ToSquare(1, 0))
}

func TestGeometryFailsFast(t *testing.T) {
	assert.Panics(t, func() { ToSquare(8, 0) })
	assert.Panics(t, func() { ToSquare(0, -1) })
	assert.Panics(t, func() { Square(64).Coord() })
	assert.Panics(t, func() { NoSquare.Coord() })

	_, ok := SquareAt(-1, 3)
	assert.False(t, ok)
}

func TestSquareString(t *testing.T) {
	assert.Equal(t, "a1", Square(0).String())
	assert.Equal(t, "h8", Square(63).String())
	assert.Equal(t, "e4", ToSquare(3, 4).String())
	assert.Equal(t, "-", NoSquare.String())
}

func TestInitPieces(t *testing.T) {
	pieces := InitPieces()
	require.Len(t, pieces, 20)

	for i, p := range pieces {
		assert.Equal(t, i, p.Index)
		assert.Equal(t, FullShare, p.Share)
		if i < 10 {
			assert.Equal(t, White, p.Side, "piece %d", i)
		} else {
			assert.Equal(t, Black, p.Side, "piece %d", i)
		}
	}
	for col := 0; col < Size; col++ {
		assert.Equal(t, Piece{Index: col, Kind: Pawn, Side: White, Square: ToSquare(1, col), Share: 100}, pieces[col])
		assert.Equal(t, Piece{Index: 10 + col, Kind: Pawn, Side: Black, Square: ToSquare(6, col), Share: 100}, pieces[10+col])
	}
	assert.Equal(t, ToSquare(0, 1), pieces[8].Square)
	assert.Equal(t, ToSquare(0, 6), pieces[9].Square)
	assert.Equal(t, ToSquare(7, 1), pieces[18].Square)
	assert.Equal(t, ToSquare(7, 6), pieces[19].Square)
	assert.Equal(t, Knight, pieces[19].Kind)
}

func TestPiecesFromStartingFENMatchesRegistry(t *testing.T) {
	pieces, skipped, err := PiecesFromFEN(StartingFEN)
	require.NoError(t, err)
	assert.Equal(t, 12, skipped)
	assert.Equal(t, InitPieces(), pieces)
}

func TestPiecesFromFENCustom(t *testing.T) {
	pieces, skipped, err := PiecesFromFEN("4k3/8/8/3n4/4P3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	assert.Equal(t, 2, skipped)
	require.Len(t, pieces, 2)
	assert.Equal(t, Piece{Index: 0, Kind: Pawn, Side: White, Square: ToSquare(3, 4), Share: 100}, pieces[0])
	assert.Equal(t, Piece{Index: 1, Kind: Knight, Side: Black, Square: ToSquare(4, 3), Share: 100}, pieces[1])
}

func TestPiecesFromFENRejectsGarbage(t *testing.T) {
	_, _, err := PiecesFromFEN("not a fen")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidFEN))

	_, _, err = PiecesFromFEN("  ")
	assert.True(t, errors.Is(err, ErrInvalidFEN))
}
