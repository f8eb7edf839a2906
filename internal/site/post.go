// Package site renders the static site: post loading, pagination, listing
// and post pages, the RSS feed, and asset copying.
package site

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/inkwell/inkwell/internal/content"
	ierrors "github.com/inkwell/inkwell/internal/errors"
	"github.com/inkwell/inkwell/internal/frontmatter"
	"github.com/inkwell/inkwell/internal/identity"
	"github.com/inkwell/inkwell/internal/markdown"
)

// Post is a fully parsed post source, immutable for the duration of a build.
type Post struct {
	Slug         string
	ID           string
	Title        string
	Subtitle     string
	Date         string // normalized YYYY-MM-DD
	DateReadable string
	Unlisted     bool
	Meta         map[string]string
	BodyHTML     template.HTML
}

// LoadPosts parses every post source file under the store, converts bodies
// to HTML, and assigns stable identifiers via the registry.
//
// Loading is strict: a missing title, a missing or unparseable date, or
// broken frontmatter fails the whole load. Emitting a partially valid site
// is worse than failing the build.
func LoadPosts(store *content.Store, registry *identity.Registry) ([]Post, error) {
	paths, err := store.PostFiles()
	if err != nil {
		return nil, err
	}

	posts := make([]Post, 0, len(paths))
	seen := make(map[string]string, len(paths))
	for _, path := range paths {
		post, err := loadPost(path, registry)
		if err != nil {
			return nil, err
		}
		// Two live posts sharing an identifier would render to the same
		// output path and carry duplicate feed guids.
		if other, ok := seen[post.ID]; ok {
			return nil, ierrors.InvalidPost(post.Slug+".md",
				fmt.Sprintf("identifier is already used by %q", other+".md"))
		}
		seen[post.ID] = post.Slug
		posts = append(posts, post)
	}
	return posts, nil
}

func loadPost(path string, registry *identity.Registry) (Post, error) {
	filename := filepath.Base(path)
	slug := strings.TrimSuffix(filename, ".md")

	data, err := os.ReadFile(path)
	if err != nil {
		return Post{}, ierrors.FileSystemError("read post", err)
	}

	fields, body, err := frontmatter.Parse(data)
	if err != nil {
		return Post{}, ierrors.InvalidPost(filename, fmt.Sprintf("frontmatter: %v", err))
	}

	title := strings.TrimSpace(fields["title"])
	if title == "" {
		return Post{}, ierrors.InvalidPost(filename, "missing required field: title")
	}

	rawDate := strings.TrimSpace(fields["date"])
	if rawDate == "" {
		return Post{}, ierrors.InvalidPost(filename, "missing required field: date")
	}
	date, err := content.NormalizeDate(rawDate)
	if err != nil {
		return Post{}, ierrors.InvalidPost(filename, fmt.Sprintf("unparseable date %q (want YYYY-MM-DD)", rawDate))
	}

	bodyHTML, err := markdown.Convert(body)
	if err != nil {
		return Post{}, ierrors.InvalidPost(filename, fmt.Sprintf("markdown: %v", err))
	}

	id, err := resolveID(slug, fields, registry)
	if err != nil {
		return Post{}, err
	}

	parsed, _ := time.Parse("2006-01-02", date)
	return Post{
		Slug:         slug,
		ID:           id,
		Title:        title,
		Subtitle:     strings.TrimSpace(fields["subtitle"]),
		Date:         date,
		DateReadable: parsed.Format("January 02, 2006"),
		Unlisted:     strings.EqualFold(strings.TrimSpace(fields["unlisted"]), "true"),
		Meta:         fields,
		BodyHTML:     template.HTML(bodyHTML),
	}, nil
}

// resolveID assigns the post's stable identifier. An explicit `id` frontmatter
// key pins identity across slug renames; otherwise the slug-keyed registry
// supplies (or mints) the identifier.
func resolveID(slug string, fields map[string]string, registry *identity.Registry) (string, error) {
	if pinned := strings.TrimSpace(fields["id"]); pinned != "" {
		if err := registry.Bind(slug, pinned); err != nil {
			return "", err
		}
		return pinned, nil
	}
	return registry.Resolve(slug), nil
}
