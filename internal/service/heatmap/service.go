package heatmap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/park285/presence-heatmap/internal/board"
	core "github.com/park285/presence-heatmap/internal/heatmap"
)

var ErrRendererRequired = errors.New("heatmap renderer required when image rendering is enabled")

type Config struct {
	Parallel    bool
	RenderImage bool
	Render      RenderOptions
}

type Service struct {
	renderer BoardRenderer
	cfg      Config
	logger   *zap.Logger

	now   func() time.Time
	newID func() string
}

// Result is one computed heatmap. Grid and Pieces are read-only after Compute.
type Result struct {
	RunID      string
	ComputedAt time.Time
	Elapsed    time.Duration
	Pieces     []board.Piece
	Grid       *core.Grid
	Image      []byte
}

func NewService(renderer BoardRenderer, cfg Config, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.RenderImage && renderer == nil {
		return nil, ErrRendererRequired
	}
	return &Service{
		renderer: renderer,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}, nil
}

// Compute runs one distribution pass over pieces and, when enabled, renders the PNG.
func (s *Service) Compute(ctx context.Context, pieces []board.Piece) (*Result, error) {
	start := s.now()
	grid := core.NewGrid()

	var err error
	if s.cfg.Parallel {
		err = grid.DistributeParallel(ctx, pieces)
	} else {
		err = grid.Distribute(pieces)
	}
	if err != nil {
		return nil, fmt.Errorf("distribute shares: %w", err)
	}

	res := &Result{
		RunID:      s.newID(),
		ComputedAt: start,
		Pieces:     append([]board.Piece(nil), pieces...),
		Grid:       grid,
	}

	if s.cfg.RenderImage {
		png, err := s.renderer.RenderPNG(ctx, grid, pieces, s.cfg.Render)
		if err != nil {
			return nil, fmt.Errorf("render heatmap: %w", err)
		}
		res.Image = png
	}
	res.Elapsed = s.now().Sub(start)

	hotWhite, _ := grid.Hottest(board.White)
	hotBlack, _ := grid.Hottest(board.Black)
	s.logger.Info("heatmap_computed",
		zap.String("run_id", res.RunID),
		zap.Int("pieces", len(pieces)),
		zap.Bool("parallel", s.cfg.Parallel),
		zap.Int("image_bytes", len(res.Image)),
		zap.String("hot_white", hotWhite.String()),
		zap.String("hot_black", hotBlack.String()),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}
