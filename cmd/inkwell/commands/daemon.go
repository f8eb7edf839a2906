package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/inkwell/inkwell/internal/config"
	"github.com/inkwell/inkwell/internal/content"
	"github.com/inkwell/inkwell/internal/daemon"
)

// DaemonCmd implements the 'daemon' command.
type DaemonCmd struct {
	SkipDeploy bool `name:"skip-deploy" help:"Build locally without syncing to S3"`
}

func (d *DaemonCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}

	store, err := content.NewStore(cfg.Paths.ContentDir, cfg.Paths.ContentImagesDir)
	if err != nil {
		return err
	}

	svc, hist := newBuildService(cfg, store, newDeployer(cfg, d.SkipDeploy), nil)
	if hist != nil {
		defer hist.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return daemon.New(cfg, svc).Run(ctx)
}
