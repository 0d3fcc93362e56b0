package heatmappresenter

import (
	"github.com/park285/presence-heatmap/internal/board"
	svcheatmap "github.com/park285/presence-heatmap/internal/service/heatmap"
	"github.com/park285/presence-heatmap/pkg/heatmapdto"
)

func ToDTO(res *svcheatmap.Result) *heatmapdto.Snapshot {
	if res == nil || res.Grid == nil {
		return nil
	}
	snap := &heatmapdto.Snapshot{
		RunID:      res.RunID,
		ComputedAt: res.ComputedAt,
		Pieces:     make([]heatmapdto.Piece, 0, len(res.Pieces)),
		Squares:    make([]heatmapdto.Square, 0, board.NumSquares),
		BoardImage: append([]byte(nil), res.Image...),
	}
	for _, p := range res.Pieces {
		snap.Pieces = append(snap.Pieces, toDTOPiece(p))
	}
	for sq := board.Square(0); sq < board.NumSquares; sq++ {
		rec := res.Grid.At(sq)
		row, col := sq.Coord()
		out := heatmapdto.Square{
			Name:       sq.String(),
			Row:        row,
			Col:        col,
			SumWhite:   rec.SumWhite,
			SumBlack:   rec.SumBlack,
			SumTotal:   rec.SumTotal,
			EmptyShare: rec.EmptyShare,
		}
		for i, share := range rec.Shares {
			if share != 0 {
				out.Shares = append(out.Shares, heatmapdto.SlotShare{Piece: i, Share: share})
			}
		}
		snap.Squares = append(snap.Squares, out)
	}
	return snap
}

func toDTOPiece(p board.Piece) heatmapdto.Piece {
	return heatmapdto.Piece{
		Index:  p.Index,
		Kind:   p.Kind.String(),
		Side:   p.Side.String(),
		Square: p.Square.String(),
		Share:  p.Share,
	}
}
