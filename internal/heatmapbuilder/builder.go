package heatmapbuilder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/park285/presence-heatmap/internal/adapter/heatmappresenter"
	"github.com/park285/presence-heatmap/internal/board"
	"github.com/park285/presence-heatmap/internal/config"
	"github.com/park285/presence-heatmap/internal/egress"
	"github.com/park285/presence-heatmap/internal/msgcat"
	svcheatmap "github.com/park285/presence-heatmap/internal/service/heatmap"
)

type Deps struct {
	Config    *config.AppConfig
	Catalog   *msgcat.Catalog
	Formatter *heatmappresenter.Formatter
	Service   *svcheatmap.Service
	Egress    egress.Egress
	Presenter *heatmappresenter.Presenter

	logger  *zap.Logger
	closers []func() error
}

func New(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger) (*Deps, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	catalog, err := msgcat.New(cfg.MessagesDir)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}

	// Image rendering only pays off when something consumes the PNG.
	renderImage := cfg.PNGPath != "" || cfg.Publishing()
	var renderer svcheatmap.BoardRenderer
	if renderImage {
		renderer = svcheatmap.NewSVGHeatmapRenderer(cfg.SquareSize)
	}
	svcCfg := svcheatmap.Config{
		Parallel:    cfg.Parallel,
		RenderImage: renderImage,
		Render: svcheatmap.RenderOptions{
			TitleWhite: catalog.Text("render.title.white", "White"),
			TitleBlack: catalog.Text("render.title.black", "Black"),
			ShowValues: true,
		},
	}
	service, err := svcheatmap.NewService(renderer, svcCfg, logger)
	if err != nil {
		return nil, err
	}

	d := &Deps{
		Config:    cfg,
		Catalog:   catalog,
		Formatter: heatmappresenter.NewFormatter(catalog),
		Service:   service,
		logger:    logger,
	}

	transports, err := d.openTransports(ctx)
	if err != nil {
		_ = d.Close()
		return nil, err
	}
	d.Egress = egress.NewEgress(cfg.PublishMode, cfg.PublishDryRun, transports, logger)
	d.Presenter = heatmappresenter.NewPresenter(d.Egress.SendText, d.Egress.SendImage)
	return d, nil
}

// openTransports connects only the transport PUBLISH_MODE selects. Dry runs
// never touch the network.
func (d *Deps) openTransports(ctx context.Context) (egress.Transports, error) {
	var t egress.Transports
	cfg := d.Config
	if !cfg.Publishing() || cfg.PublishDryRun {
		return t, nil
	}
	headers := cfg.Headers

	switch cfg.PublishMode {
	case config.PublishHTTP:
		t.HTTP = egress.NewClient(cfg.PublishBaseURL,
			egress.WithHeaderProvider(headers),
			egress.WithTimeout(cfg.PublishTimeout),
		)
		d.closers = append(d.closers, t.HTTP.Close)
	case config.PublishWS:
		t.WS = egress.NewWSPublisher(cfg.PublishWSURL, headers)
		cctx, cancel := context.WithTimeout(ctx, cfg.PublishTimeout)
		defer cancel()
		if err := t.WS.Connect(cctx); err != nil {
			return t, fmt.Errorf("ws connect: %w", err)
		}
		d.closers = append(d.closers, t.WS.Close)
	case config.PublishRedis:
		cctx, cancel := context.WithTimeout(ctx, cfg.PublishTimeout)
		defer cancel()
		p, err := egress.NewRedisPublisher(cctx, cfg.RedisURL, cfg.PublishChannel)
		if err != nil {
			return t, err
		}
		t.Redis = p
		d.closers = append(d.closers, p.Close)
	}
	d.logger.Info("egress_ready", zap.String("mode", cfg.PublishMode), zap.String("room", cfg.PublishRoom))
	return t, nil
}

// Pieces returns the starting set, or the pawns and knights of HEATMAP_FEN when set.
func (d *Deps) Pieces() ([]board.Piece, error) {
	fen := strings.TrimSpace(d.Config.FEN)
	if fen == "" {
		return board.InitPieces(), nil
	}
	pieces, skipped, err := board.PiecesFromFEN(fen)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		d.logger.Debug("fen_pieces_skipped", zap.Int("skipped", skipped), zap.Int("kept", len(pieces)))
	}
	return pieces, nil
}

// Close releases transports in reverse order of opening.
func (d *Deps) Close() error {
	if d == nil {
		return nil
	}
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	d.closers = nil
	return errors.Join(errs...)
}
