// Package commands defines the inkwell CLI command tree.
package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/inkwell/inkwell/internal/build"
	"github.com/inkwell/inkwell/internal/config"
	"github.com/inkwell/inkwell/internal/content"
	"github.com/inkwell/inkwell/internal/deploy"
	"github.com/inkwell/inkwell/internal/history"
	"github.com/inkwell/inkwell/internal/metrics"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI is the root command definition and global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"inkwell.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build  BuildCmd  `cmd:"" help:"Build the site, deploying when changes are detected"`
	Serve  ServeCmd  `cmd:"" help:"Start the editor HTTP server"`
	Daemon DaemonCmd `cmd:"" help:"Watch sources and rebuild continuously"`
	Init   InitCmd   `cmd:"" help:"Scaffold a new site in the current directory"`
}

// AfterApply runs after flag parsing; sets up logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// newDeployer picks the deploy target from config. skipDeploy or a missing
// bucket yields the no-op deployer.
func newDeployer(cfg *config.Config, skipDeploy bool) deploy.Deployer {
	if skipDeploy || cfg.AWS.S3Bucket == "" {
		return deploy.Noop{}
	}
	return deploy.NewS3CloudFront(cfg.AWS.S3Bucket, cfg.AWS.CloudFrontDistID)
}

// newBuildService assembles the build service shared by build, serve, and
// daemon. The returned history store may be nil when opening it fails; the
// service works without it.
func newBuildService(cfg *config.Config, store *content.Store, deployer deploy.Deployer, recorder metrics.Recorder) (*build.Service, *history.Store) {
	opts := []build.Option{build.WithDeployer(deployer)}
	if recorder != nil {
		opts = append(opts, build.WithRecorder(recorder))
	}

	hist, err := history.Open(cfg.HistoryPath())
	if err != nil {
		slog.Warn("Build history disabled", "error", err)
		hist = nil
	} else {
		opts = append(opts, build.WithHistory(hist))
	}

	return build.NewService(cfg, store, opts...), hist
}
