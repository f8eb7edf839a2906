package site

import (
	"html/template"
	"io"
	"path/filepath"

	"github.com/inkwell/inkwell/internal/config"
	ierrors "github.com/inkwell/inkwell/internal/errors"
)

// Renderer renders listing and post pages from the template directory.
// Rendering is a pure function of (template, data); all state is read at
// construction time.
type Renderer struct {
	index *template.Template
	post  *template.Template
	site  config.Website
}

// ListingData is handed to the index template.
type ListingData struct {
	Site        config.Website
	Posts       []Post
	CurrentPage int
	TotalPages  int
}

// PostData is handed to the post template.
type PostData struct {
	Site config.Website
	Post Post
}

// templateFuncs are the helpers available to site templates, used by the
// default templates for pagination links.
var templateFuncs = template.FuncMap{
	"add": func(a, b int) int { return a + b },
	"sub": func(a, b int) int { return a - b },
}

// NewRenderer parses index.html and post.html from templatesDir.
func NewRenderer(templatesDir string, site config.Website) (*Renderer, error) {
	index, err := template.New("index.html").Funcs(templateFuncs).
		ParseFiles(filepath.Join(templatesDir, "index.html"))
	if err != nil {
		return nil, ierrors.Wrap(err, ierrors.CategoryBuild, ierrors.SeverityFatal, "failed to parse index template")
	}
	post, err := template.New("post.html").Funcs(templateFuncs).
		ParseFiles(filepath.Join(templatesDir, "post.html"))
	if err != nil {
		return nil, ierrors.Wrap(err, ierrors.CategoryBuild, ierrors.SeverityFatal, "failed to parse post template")
	}
	return &Renderer{index: index, post: post, site: site}, nil
}

// RenderListing renders one listing page.
func (r *Renderer) RenderListing(w io.Writer, page Page) error {
	data := ListingData{
		Site:        r.site,
		Posts:       page.Posts,
		CurrentPage: page.Number,
		TotalPages:  page.Total,
	}
	if err := r.index.Execute(w, data); err != nil {
		return ierrors.Wrap(err, ierrors.CategoryBuild, ierrors.SeverityFatal, "failed to render listing page").
			WithContext("page", page.Number)
	}
	return nil
}

// RenderPost renders one individual post page.
func (r *Renderer) RenderPost(w io.Writer, post Post) error {
	if err := r.post.Execute(w, PostData{Site: r.site, Post: post}); err != nil {
		return ierrors.Wrap(err, ierrors.CategoryBuild, ierrors.SeverityFatal, "failed to render post page").
			WithContext("slug", post.Slug)
	}
	return nil
}
