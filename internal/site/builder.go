package site

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/inkwell/inkwell/internal/config"
	"github.com/inkwell/inkwell/internal/content"
	ierrors "github.com/inkwell/inkwell/internal/errors"
	"github.com/inkwell/inkwell/internal/identity"
	"github.com/inkwell/inkwell/internal/logfields"
)

// Stage is a discrete unit of work in the site build.
type Stage func(ctx context.Context, bs *buildState) error

// Report summarizes one site build for callers and the build history.
type Report struct {
	Posts          int                      `json:"posts"`
	ListingPages   int                      `json:"listing_pages"`
	StageDurations map[string]time.Duration `json:"stage_durations"`
}

// Builder produces the output tree from content, templates, and assets.
// One Builder performs one build; it is not reused.
type Builder struct {
	cfg      *config.Config
	store    *content.Store
	registry *identity.Registry
	logger   *slog.Logger
}

// NewBuilder creates a site builder.
func NewBuilder(cfg *config.Config, store *content.Store, registry *identity.Registry) *Builder {
	return &Builder{cfg: cfg, store: store, registry: registry, logger: slog.Default()}
}

type buildState struct {
	renderer *Renderer
	posts    []Post
	pages    []Page
	report   *Report
}

// Build runs all site stages in order, stopping at the first failure.
// Output ordering is deterministic regardless of stage internals: posts are
// sorted before pagination and every writer consumes the sorted sequence.
func (b *Builder) Build(ctx context.Context) (*Report, error) {
	if err := os.MkdirAll(b.cfg.Paths.OutputDir, 0o755); err != nil {
		return nil, ierrors.FileSystemError("create output directory", err)
	}

	bs := &buildState{report: &Report{StageDurations: map[string]time.Duration{}}}
	stages := []struct {
		name string
		fn   Stage
	}{
		{"parse_templates", b.stageParseTemplates},
		{"load_posts", b.stageLoadPosts},
		{"render_listings", b.stageRenderListings},
		{"render_posts", b.stageRenderPosts},
		{"render_feed", b.stageRenderFeed},
		{"copy_assets", b.stageCopyAssets},
	}

	for _, st := range stages {
		select {
		case <-ctx.Done():
			return bs.report, ierrors.BuildFailed(st.name, ctx.Err())
		default:
		}
		t0 := time.Now()
		err := st.fn(ctx, bs)
		bs.report.StageDurations[st.name] = time.Since(t0)
		if err != nil {
			return bs.report, err
		}
		b.logger.Debug("Stage complete", logfields.Stage(st.name),
			logfields.DurationMS(float64(bs.report.StageDurations[st.name].Milliseconds())))
	}
	return bs.report, nil
}

func (b *Builder) stageParseTemplates(_ context.Context, bs *buildState) error {
	renderer, err := NewRenderer(b.cfg.Paths.TemplatesDir, b.cfg.Website)
	if err != nil {
		return err
	}
	bs.renderer = renderer
	return nil
}

func (b *Builder) stageLoadPosts(_ context.Context, bs *buildState) error {
	posts, err := LoadPosts(b.store, b.registry)
	if err != nil {
		return err
	}
	bs.posts = SortPosts(posts)
	bs.report.Posts = len(bs.posts)
	return nil
}

func (b *Builder) stageRenderListings(_ context.Context, bs *buildState) error {
	bs.pages = Paginate(bs.posts, b.cfg.Website.PostsPerPage)
	bs.report.ListingPages = len(bs.pages)
	for _, page := range bs.pages {
		path := filepath.Join(b.cfg.Paths.OutputDir, ListingFilename(page.Number))
		if err := renderToFile(path, func(f *os.File) error {
			return bs.renderer.RenderListing(f, page)
		}); err != nil {
			return err
		}
		b.logger.Debug("Rendered listing", logfields.Page(page.Number), logfields.Path(path))
	}
	return nil
}

func (b *Builder) stageRenderPosts(ctx context.Context, bs *buildState) error {
	postsDir := filepath.Join(b.cfg.Paths.OutputDir, "posts")
	if err := os.MkdirAll(postsDir, 0o755); err != nil {
		return ierrors.FileSystemError("create posts output directory", err)
	}
	for _, post := range bs.posts {
		select {
		case <-ctx.Done():
			return ierrors.BuildFailed("render_posts", ctx.Err())
		default:
		}
		// Output path is keyed by the stable identifier, never the slug.
		path := filepath.Join(postsDir, post.ID+".html")
		if err := renderToFile(path, func(f *os.File) error {
			return bs.renderer.RenderPost(f, post)
		}); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) stageRenderFeed(_ context.Context, bs *buildState) error {
	feed, err := RenderFeed(bs.posts, b.cfg.Website, b.cfg.Website.FeedSize)
	if err != nil {
		return err
	}
	path := filepath.Join(b.cfg.Paths.OutputDir, "feed.xml")
	if err := os.WriteFile(path, []byte(feed), 0o644); err != nil {
		return ierrors.FileSystemError("write feed", err)
	}
	return nil
}

func (b *Builder) stageCopyAssets(_ context.Context, _ *buildState) error {
	contentImages, err := b.store.ContentImageFiles()
	if err != nil {
		return err
	}
	return CopyAssets(b.cfg.Paths.StaticDir, contentImages, b.cfg.Paths.OutputDir)
}

func renderToFile(path string, render func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return ierrors.FileSystemError("create output file", err)
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return ierrors.FileSystemError(fmt.Sprintf("close %s", filepath.Base(path)), err)
	}
	return nil
}
