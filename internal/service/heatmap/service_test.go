package heatmap

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/park285/presence-heatmap/internal/board"
	core "github.com/park285/presence-heatmap/internal/heatmap"
)

type stubRenderer struct {
	calls int
	err   error
}

func (s *stubRenderer) RenderPNG(ctx context.Context, grid *core.Grid, pieces []board.Piece, opts RenderOptions) ([]byte, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return []byte("png"), nil
}

func TestNewServiceRequiresRenderer(t *testing.T) {
	if _, err := NewService(nil, Config{RenderImage: true}, nil); !errors.Is(err, ErrRendererRequired) {
		t.Fatalf("expected ErrRendererRequired, got %v", err)
	}
	if _, err := NewService(nil, Config{}, nil); err != nil {
		t.Fatalf("text-only service: %v", err)
	}
}

func TestComputeStampsRunAndLogs(t *testing.T) {
	observed, logs := observer.New(zap.InfoLevel)
	r := &stubRenderer{}
	svc, err := NewService(r, Config{RenderImage: true}, zap.New(observed))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	fixed := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	svc.newID = func() string { return "run-1" }

	res, err := svc.Compute(context.Background(), board.InitPieces())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if res.RunID != "run-1" || !res.ComputedAt.Equal(fixed) || string(res.Image) != "png" || r.calls != 1 {
		t.Fatalf("unexpected result: %+v (renderer calls %d)", res, r.calls)
	}
	if got := res.Grid.At(board.ToSquare(1, 0)).SumWhite; got <= 0 {
		t.Fatalf("expected white presence on a2, got %v", got)
	}

	entries := logs.FilterMessage("heatmap_computed").All()
	if len(entries) != 1 {
		t.Fatalf("expected one heatmap_computed log, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["run_id"] != "run-1" || fields["hot_white"] != "d2" || fields["hot_black"] != "a6" {
		t.Fatalf("unexpected log fields: %v", fields)
	}
}

func TestComputeParallelMatchesSequential(t *testing.T) {
	seq, _ := NewService(nil, Config{}, nil)
	par, _ := NewService(nil, Config{Parallel: true}, nil)
	a, err := seq.Compute(context.Background(), board.InitPieces())
	if err != nil {
		t.Fatalf("sequential: %v", err)
	}
	b, err := par.Compute(context.Background(), board.InitPieces())
	if err != nil {
		t.Fatalf("parallel: %v", err)
	}
	if a.Grid.Squares != b.Grid.Squares {
		t.Fatalf("parallel grid differs from sequential")
	}
	if a.RunID == b.RunID {
		t.Fatalf("expected distinct run ids")
	}
}

func TestComputePropagatesErrors(t *testing.T) {
	svc, _ := NewService(&stubRenderer{err: errors.New("boom")}, Config{RenderImage: true}, nil)
	if _, err := svc.Compute(context.Background(), board.InitPieces()); err == nil {
		t.Fatalf("expected render error")
	}
	bad := []board.Piece{{Index: 40, Kind: board.Pawn, Side: board.White, Square: 8, Share: 100}}
	if _, err := svc.Compute(context.Background(), bad); err == nil {
		t.Fatalf("expected distribute error")
	}
}

func TestSVGRendererProducesPNG(t *testing.T) {
	grid := core.NewGrid()
	pieces := board.InitPieces()
	if err := grid.Distribute(pieces); err != nil {
		t.Fatalf("Distribute: %v", err)
	}
	r := NewSVGHeatmapRenderer(32)
	raw, err := r.RenderPNG(context.Background(), grid, pieces, RenderOptions{TitleWhite: "White", TitleBlack: "Black", ShowValues: true})
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	l := r.(*svgHeatmapRenderer).layout()
	if b := img.Bounds(); b.Dx() != l.totalWidth || b.Dy() != l.totalHeight {
		t.Fatalf("unexpected size %v", b)
	}

	// a hot white square must differ from its cold counterpart on the black panel
	hot := l.squareOrigin(0, board.ToSquare(2, 0))
	cold := l.squareOrigin(1, board.ToSquare(2, 0))
	if img.At(hot.X+1, hot.Y+1) == img.At(cold.X+1, cold.Y+1) {
		t.Fatalf("expected heat shading to differ between panels")
	}
}

func TestSVGRendererHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewSVGHeatmapRenderer(24).RenderPNG(ctx, core.NewGrid(), nil, RenderOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := NewSVGHeatmapRenderer(24).RenderPNG(context.Background(), nil, nil, RenderOptions{}); err == nil {
		t.Fatalf("expected error for nil grid")
	}
}

func TestMarkerSVGOnlyForTrackedKinds(t *testing.T) {
	if markerSVG(board.Pawn, board.White) == nil || markerSVG(board.Knight, board.Black) == nil {
		t.Fatalf("expected markers for pawn and knight")
	}
	if markerSVG(board.Queen, board.White) != nil {
		t.Fatalf("queen should have no marker")
	}
	img, err := renderMarkerImage(board.Knight, board.White, 20)
	if err != nil || img == nil {
		t.Fatalf("renderMarkerImage: %v", err)
	}
	again, _ := renderMarkerImage(board.Knight, board.White, 20)
	if again != img {
		t.Fatalf("expected cached marker image")
	}
}
