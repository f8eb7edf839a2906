package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/inkwell/inkwell/internal/config"
	"github.com/inkwell/inkwell/internal/content"
	"github.com/inkwell/inkwell/internal/history"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Force      bool `short:"f" help:"Rebuild even when no source file changed"`
	SkipDeploy bool `name:"skip-deploy" help:"Build locally without syncing to S3"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}

	store, err := content.NewStore(cfg.Paths.ContentDir, cfg.Paths.ContentImagesDir)
	if err != nil {
		return err
	}

	svc, hist := newBuildService(cfg, store, newDeployer(cfg, b.SkipDeploy), nil)
	if hist != nil {
		defer hist.Close()
	}

	result, err := svc.Run(context.Background(), b.Force)
	if err != nil {
		return err
	}

	switch result.Outcome {
	case history.OutcomeSkipped:
		fmt.Println("No changes detected, nothing to do")
	default:
		fmt.Printf("Built %d posts across %d listing pages in %s\n",
			result.Posts, result.Pages, result.Duration.Round(time.Millisecond))
		if result.Deployed {
			fmt.Printf("Deployed to s3://%s\n", cfg.AWS.S3Bucket)
		}
	}
	return nil
}
