package board

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	nchess "github.com/corentings/chess/v2"
)

// StartingFEN is the standard initial position.
const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var (
	ErrInvalidFEN    = errors.New("invalid FEN")
	ErrTooManyPieces = errors.New("too many pieces for the slot table")
)

var trackedPieceKinds = map[nchess.PieceType]Kind{
	nchess.Pawn:   Pawn,
	nchess.Knight: Knight,
}

// PiecesFromFEN builds the piece list from a FEN position. Only pawns and knights
// are kept; the rest are reported in skipped. Pieces are grouped the same way
// InitPieces creates them, so the standard start position yields InitPieces().
func PiecesFromFEN(fen string) (pieces []Piece, skipped int, err error) {
	fen = strings.TrimSpace(fen)
	if fen == "" {
		return nil, 0, fmt.Errorf("%w: empty", ErrInvalidFEN)
	}
	opt, err := nchess.FEN(fen)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	game := nchess.NewGame(opt)

	type placed struct {
		kind Kind
		side Side
		sq   Square
	}
	var found []placed
	for sq, pc := range game.Position().Board().SquareMap() {
		if pc == nchess.NoPiece {
			continue
		}
		kind, ok := trackedPieceKinds[pc.Type()]
		if !ok {
			skipped++
			continue
		}
		side := White
		if pc.Color() == nchess.Black {
			side = Black
		}
		found = append(found, placed{
			kind: kind,
			side: side,
			sq:   ToSquare(int(sq.Rank()), int(sq.File())),
		})
	}
	if len(found) > MaxPieces {
		return nil, skipped, fmt.Errorf("%w: %d", ErrTooManyPieces, len(found))
	}

	sort.Slice(found, func(i, j int) bool {
		a, b := found[i], found[j]
		if a.side != b.side {
			return a.side < b.side
		}
		if a.kind != b.kind {
			return a.kind < b.kind
		}
		return a.sq < b.sq
	})
	pieces = make([]Piece, len(found))
	for i, f := range found {
		pieces[i] = Piece{Index: i, Kind: f.kind, Side: f.side, Square: f.sq, Share: FullShare}
	}
	return pieces, skipped, nil
}
