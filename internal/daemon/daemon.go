// Package daemon runs unattended publish cycles, triggered by filesystem
// changes and an optional periodic schedule.
package daemon

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"github.com/inkwell/inkwell/internal/build"
	"github.com/inkwell/inkwell/internal/config"
	"github.com/inkwell/inkwell/internal/logfields"
)

// Daemon watches the source tree and runs the build service.
type Daemon struct {
	cfg       *config.Config
	service   *build.Service
	logger    *slog.Logger
	scheduler gocron.Scheduler
	watcher   *fsnotify.Watcher
	debouncer *Debouncer
}

// New creates a daemon around the build service.
func New(cfg *config.Config, service *build.Service) *Daemon {
	return &Daemon{cfg: cfg, service: service, logger: slog.Default()}
}

// Run blocks until the context is cancelled.
func (d *Daemon) Run(ctx context.Context) error {
	quiet := time.Duration(d.cfg.Daemon.DebounceSeconds) * time.Second
	d.debouncer = NewDebouncer(quiet, 10*quiet, func() { d.runBuild(ctx, "filesystem change") })

	if d.cfg.Daemon.Watch {
		if err := d.startWatcher(ctx); err != nil {
			return err
		}
		defer d.watcher.Close()
	}
	if err := d.startSchedule(ctx); err != nil {
		return err
	}

	// Initial build catches changes made while the daemon was down.
	d.runBuild(ctx, "startup")

	go d.debouncer.Run(ctx)
	<-ctx.Done()

	if d.scheduler != nil {
		if err := d.scheduler.Shutdown(); err != nil {
			d.logger.Warn("Scheduler shutdown failed", logfields.Error(err))
		}
	}
	return nil
}

func (d *Daemon) runBuild(ctx context.Context, reason string) {
	if ctx.Err() != nil {
		return
	}
	d.logger.Info("Triggering build", slog.String("reason", reason))
	if _, err := d.service.Run(ctx, false); err != nil {
		d.logger.Error("Build failed", logfields.Error(err))
	}
}

func (d *Daemon) startWatcher(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create filesystem watcher: %w", err)
	}
	d.watcher = watcher

	roots := []string{
		d.cfg.Paths.ContentDir,
		d.cfg.Paths.ContentImagesDir,
		d.cfg.Paths.TemplatesDir,
		d.cfg.Paths.StaticDir,
	}
	for _, root := range roots {
		if err := d.watchTree(root); err != nil {
			d.logger.Warn("Cannot watch directory", logfields.Path(root), logfields.Error(err))
		}
	}

	go d.watchLoop(ctx)
	d.logger.Info("Watching for changes", slog.Any("roots", roots))
	return nil
}

// watchTree registers root and its subdirectories. fsnotify does not recurse.
func (d *Daemon) watchTree(root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return d.watcher.Add(path)
		}
		return nil
	})
}

func (d *Daemon) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-d.watcher.Events:
			if !ok {
				return
			}
			if ignoreEvent(event) {
				continue
			}
			// New subdirectories (for example a fresh image folder) must be
			// added to the watch set.
			if event.Op.Has(fsnotify.Create) {
				if err := d.watchTree(event.Name); err == nil {
					d.logger.Debug("Watching new path", logfields.Path(event.Name))
				}
			}
			d.logger.Debug("Change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			d.debouncer.Notify()
		case err, ok := <-d.watcher.Errors:
			if !ok {
				return
			}
			d.logger.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// ignoreEvent filters chmods and editor temp files.
func ignoreEvent(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return true
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") || strings.HasSuffix(base, ".swp") {
		return true
	}
	return false
}

func (d *Daemon) startSchedule(ctx context.Context) error {
	if d.cfg.Daemon.BuildInterval == "" {
		return nil
	}
	interval, err := time.ParseDuration(d.cfg.Daemon.BuildInterval)
	if err != nil {
		return fmt.Errorf("parse daemon.build_interval: %w", err)
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}
	d.scheduler = scheduler

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { d.runBuild(ctx, "schedule") }),
		gocron.WithName("periodic-build"),
	)
	if err != nil {
		return fmt.Errorf("create periodic build job: %w", err)
	}

	scheduler.Start()
	d.logger.Info("Periodic builds scheduled", slog.Duration("interval", interval))
	return nil
}
