// Package build orchestrates a full publish run: fingerprint the sources,
// skip when nothing changed, otherwise generate the site, deploy it, and
// only then persist the new fingerprints and identities.
package build

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/inkwell/inkwell/internal/config"
	"github.com/inkwell/inkwell/internal/content"
	"github.com/inkwell/inkwell/internal/deploy"
	ierrors "github.com/inkwell/inkwell/internal/errors"
	"github.com/inkwell/inkwell/internal/fingerprint"
	"github.com/inkwell/inkwell/internal/history"
	"github.com/inkwell/inkwell/internal/identity"
	"github.com/inkwell/inkwell/internal/logfields"
	"github.com/inkwell/inkwell/internal/metrics"
	"github.com/inkwell/inkwell/internal/site"
)

// State-directory filenames. Both live under Paths.StateDir.
const (
	fingerprintFile = "fingerprints.json"
	identityFile    = "identities.json"
)

// Outcome mirrors history.Outcome for callers that do not track history.
type Outcome = history.Outcome

// Result summarizes one run of the service.
type Result struct {
	BuildID  string        `json:"build_id"`
	Outcome  Outcome       `json:"outcome"`
	Posts    int           `json:"posts"`
	Pages    int           `json:"listing_pages"`
	Deployed bool          `json:"deployed"`
	Duration time.Duration `json:"-"`
}

// Service runs publish cycles. Runs are serialized: a second caller blocks
// until the in-flight run finishes.
type Service struct {
	cfg      *config.Config
	store    *content.Store
	deployer deploy.Deployer
	history  *history.Store
	recorder metrics.Recorder
	logger   *slog.Logger

	mu sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithDeployer sets the deploy target. Defaults to deploy.Noop.
func WithDeployer(d deploy.Deployer) Option {
	return func(s *Service) { s.deployer = d }
}

// WithHistory enables build history recording.
func WithHistory(h *history.Store) Option {
	return func(s *Service) { s.history = h }
}

// WithRecorder enables metrics.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// NewService creates a build service.
func NewService(cfg *config.Config, store *content.Store, opts ...Option) *Service {
	s := &Service{
		cfg:      cfg,
		store:    store,
		deployer: deploy.Noop{},
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes one publish cycle. When force is false and no source file
// changed since the last successful run, the cycle is skipped. State is
// persisted only after every earlier step, deploy included, has succeeded.
func (s *Service) Run(ctx context.Context, force bool) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	buildID := identity.NewID()[:12]
	logger := s.logger.With(logfields.BuildID(buildID))
	started := time.Now()
	result := &Result{BuildID: buildID}

	finish := func(outcome Outcome, report *site.Report, runErr error) (*Result, error) {
		result.Outcome = outcome
		result.Duration = time.Since(started)
		if report != nil {
			result.Posts = report.Posts
			result.Pages = report.ListingPages
			for stage, d := range report.StageDurations {
				s.recorder.ObserveStageDuration(stage, d)
			}
		}
		s.recorder.ObserveBuildDuration(result.Duration)
		s.recorder.IncBuildOutcome(metrics.OutcomeLabel(outcome))
		s.recordHistory(ctx, result, report, started, runErr)
		return result, runErr
	}

	logger.Info("Starting publish cycle", slog.Bool("force", force))

	inputs, err := s.fingerprintInputs()
	if err != nil {
		return finish(history.OutcomeFailed, nil, err)
	}
	current, err := fingerprint.Compute(inputs)
	if err != nil {
		return finish(history.OutcomeFailed, nil, err)
	}
	previous, err := fingerprint.Load(s.statePath(fingerprintFile))
	if err != nil {
		return finish(history.OutcomeFailed, nil, err)
	}
	if !force && !fingerprint.ShouldBuild(previous, current) {
		logger.Info("No changes detected, skipping build")
		return finish(history.OutcomeSkipped, nil, nil)
	}

	registry, err := identity.Load(s.statePath(identityFile))
	if err != nil {
		return finish(history.OutcomeFailed, nil, err)
	}

	report, err := site.NewBuilder(s.cfg, s.store, registry).Build(ctx)
	if err != nil {
		logger.Error("Build failed", logfields.Error(err))
		return finish(history.OutcomeFailed, report, err)
	}
	logger.Info("Site generated",
		slog.Int("posts", report.Posts), slog.Int("pages", report.ListingPages))

	if err := s.deployer.Deploy(ctx, s.cfg.Paths.OutputDir); err != nil {
		s.recorder.IncDeploy(false)
		logger.Error("Deploy failed, state not persisted", logfields.Error(err))
		return finish(history.OutcomeFailed, report, err)
	}
	if _, isNoop := s.deployer.(deploy.Noop); !isNoop {
		result.Deployed = true
		s.recorder.IncDeploy(true)
	}

	// Identities before fingerprints: fingerprints saved without the minted
	// ids would make the next changed run mint fresh ids for published URLs.
	if err := registry.Flush(); err != nil {
		return finish(history.OutcomeFailed, report, err)
	}
	if err := fingerprint.Save(s.statePath(fingerprintFile), current); err != nil {
		return finish(history.OutcomeFailed, report, err)
	}

	s.recorder.SetSitePosts(report.Posts)
	logger.Info("Publish cycle complete", logfields.DurationMS(float64(time.Since(started).Milliseconds())))
	return finish(history.OutcomeBuilt, report, nil)
}

// fingerprintInputs lists every file whose content participates in change
// detection: the two templates, the stylesheet when present, and all post
// sources, static images, and content images.
func (s *Service) fingerprintInputs() ([]fingerprint.Input, error) {
	inputs := []fingerprint.Input{
		{Key: "index_template", Path: filepath.Join(s.cfg.Paths.TemplatesDir, "index.html")},
		{Key: "post_template", Path: filepath.Join(s.cfg.Paths.TemplatesDir, "post.html")},
	}
	style := filepath.Join(s.cfg.Paths.StaticDir, "style.css")
	if _, err := os.Stat(style); err == nil {
		inputs = append(inputs, fingerprint.Input{Key: "style", Path: style})
	}

	posts, err := s.store.PostFiles()
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		inputs = append(inputs, fingerprint.Input{Key: "posts/" + filepath.Base(p), Path: p})
	}

	// Same glob CopyAssets flattens into the output images/ directory.
	static, err := filepath.Glob(filepath.Join(s.cfg.Paths.StaticDir, "images", "*"))
	if err != nil {
		return nil, ierrors.FileSystemError("list static images", err)
	}
	for _, img := range static {
		if info, err := os.Stat(img); err != nil || info.IsDir() {
			continue
		}
		inputs = append(inputs, fingerprint.Input{Key: "images/" + filepath.Base(img), Path: img})
	}

	images, err := s.store.ContentImageFiles()
	if err != nil {
		return nil, err
	}
	for _, img := range images {
		rel, err := filepath.Rel(s.cfg.Paths.ContentImagesDir, img)
		if err != nil {
			return nil, ierrors.FileSystemError("relativize image path", err)
		}
		inputs = append(inputs, fingerprint.Input{Key: "images/" + filepath.ToSlash(rel), Path: img})
	}
	return inputs, nil
}

func (s *Service) statePath(name string) string {
	return filepath.Join(s.cfg.Paths.StateDir, name)
}

func (s *Service) recordHistory(ctx context.Context, result *Result, report *site.Report, started time.Time, runErr error) {
	if s.history == nil {
		return
	}
	entry := history.Entry{
		BuildID:    result.BuildID,
		StartedAt:  started,
		DurationMS: result.Duration.Milliseconds(),
		Outcome:    result.Outcome,
		Posts:      result.Posts,
		Pages:      result.Pages,
		Deployed:   result.Deployed,
	}
	if runErr != nil {
		entry.Error = runErr.Error()
	}
	if report != nil {
		entry.Stages = make(map[string]string, len(report.StageDurations))
		for stage, d := range report.StageDurations {
			entry.Stages[stage] = d.Round(time.Microsecond).String()
		}
	}
	if err := s.history.Record(ctx, entry); err != nil {
		s.logger.Warn("Failed to record build history", logfields.Error(err))
	}
}
