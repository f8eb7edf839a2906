package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/inkwell/inkwell/internal/config"
	"github.com/inkwell/inkwell/internal/content"
	"github.com/inkwell/inkwell/internal/gitstore"
	"github.com/inkwell/inkwell/internal/metrics"
	"github.com/inkwell/inkwell/internal/server"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Addr string `short:"a" help:"Listen address, overriding the configured one"`
}

func (s *ServeCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	if s.Addr != "" {
		cfg.Server.Addr = s.Addr
	}

	store, err := content.NewStore(cfg.Paths.ContentDir, cfg.Paths.ContentImagesDir)
	if err != nil {
		return err
	}

	recorder := metrics.NewPrometheusRecorder(nil)
	svc, hist := newBuildService(cfg, store, newDeployer(cfg, false), recorder)
	if hist != nil {
		defer hist.Close()
	}

	var api server.ContentAPI = store
	if cfg.Git.AutoCommit {
		committer, err := gitstore.Open(cfg.Paths.ContentDir, cfg.Git.Author, cfg.Git.Email)
		if err != nil {
			slog.Warn("Auto-commit disabled", "error", err)
		} else if committer == nil {
			slog.Info("Content directory is not a git worktree, auto-commit disabled")
		} else {
			api = gitstore.NewContentStore(store, committer)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, api, svc, server.Options{History: hist, Recorder: recorder})
	if err := srv.Start(ctx); err != nil {
		return err
	}
	fmt.Printf("Editor listening on http://%s\n", cfg.Server.Addr)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Stop(shutdownCtx)
}
