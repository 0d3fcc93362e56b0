package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/park285/presence-heatmap/internal/adapter/heatmappresenter"
	appcfg "github.com/park285/presence-heatmap/internal/config"
	"github.com/park285/presence-heatmap/internal/heatmapbuilder"
	"github.com/park285/presence-heatmap/internal/obslog"
	"github.com/park285/presence-heatmap/pkg/heatmapdto"
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	logger := obslog.L()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, logger)
	stop()
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *appcfg.AppConfig, logger *zap.Logger) error {
	deps, err := heatmapbuilder.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("heatmap_init_failed", zap.Error(err))
		return err
	}
	defer func() {
		if cerr := deps.Close(); cerr != nil {
			logger.Warn("egress_close_failed", zap.Error(cerr))
		}
	}()

	pieces, err := deps.Pieces()
	if err != nil {
		logger.Error("pieces_load_failed", zap.Error(err))
		return err
	}
	res, err := deps.Service.Compute(ctx, pieces)
	if err != nil {
		logger.Error("heatmap_compute_failed", zap.Error(err))
		return err
	}

	if err := deps.Formatter.WriteHeatmap(os.Stdout, res.Grid); err != nil {
		logger.Error("heatmap_print_failed", zap.Error(err))
		return err
	}

	snap := heatmappresenter.ToDTO(res)
	if cfg.PNGPath != "" {
		if err := writeFile(cfg.PNGPath, snap.BoardImage); err != nil {
			logger.Error("png_write_failed", zap.String("path", cfg.PNGPath), zap.Error(err))
			return err
		}
		logger.Info("png_written", zap.String("path", cfg.PNGPath), zap.Int("bytes", len(snap.BoardImage)))
	}
	if cfg.JSONPath != "" {
		if err := writeSnapshot(cfg.JSONPath, snap); err != nil {
			logger.Error("json_write_failed", zap.String("path", cfg.JSONPath), zap.Error(err))
			return err
		}
		logger.Info("json_written", zap.String("path", cfg.JSONPath))
	}

	if cfg.Publishing() {
		caption, err := deps.Formatter.Caption(res)
		if err != nil {
			logger.Error("caption_render_failed", zap.Error(err))
			return err
		}
		pctx, cancel := context.WithTimeout(ctx, cfg.PublishTimeout)
		defer cancel()
		if err := deps.Presenter.Heatmap(pctx, cfg.PublishRoom, caption, snap); err != nil {
			logger.Error("heatmap_publish_failed", zap.String("mode", cfg.PublishMode), zap.Error(err))
			return err
		}
		logger.Info("heatmap_published", zap.String("mode", cfg.PublishMode), zap.String("room", cfg.PublishRoom), zap.String("run_id", res.RunID))
	}
	return nil
}

func writeSnapshot(path string, snap *heatmapdto.Snapshot) error {
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return writeFile(path, append(b, '\n'))
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}
