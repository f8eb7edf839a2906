// Package content implements the filesystem-backed store for post sources
// and per-post image folders.
//
// Posts and images are plain files on disk; the filesystem is the database
// and the natural serialization point. Concurrent edits to the same filename
// are last-writer-wins. This is a documented limitation of the single-author
// design, not a defect.
package content

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	ierrors "github.com/inkwell/inkwell/internal/errors"
	"github.com/inkwell/inkwell/internal/frontmatter"
)

// Store reads and mutates post sources and content images under a content root.
type Store struct {
	postsDir  string
	imagesDir string
}

// NewStore creates a content store over the given post and image directories,
// creating them if needed.
func NewStore(postsDir, imagesDir string) (*Store, error) {
	for _, dir := range []string{postsDir, imagesDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, ierrors.FileSystemError("create content directory", err)
		}
	}
	return &Store{postsDir: postsDir, imagesDir: imagesDir}, nil
}

// PostsDir returns the directory holding post source files.
func (s *Store) PostsDir() string { return s.postsDir }

// ImagesDir returns the directory holding per-post image folders.
func (s *Store) ImagesDir() string { return s.imagesDir }

// PostInfo is the editor-facing listing projection of a post source file.
type PostInfo struct {
	Filename string `json:"filename"`
	Title    string `json:"title"`
	Date     string `json:"date"`
}

// ListPosts returns listing info for every post source file, sorted by date
// descending. Listing is lenient: files with broken frontmatter still appear,
// with the filename stem as title. Build-time parsing is the strict path.
func (s *Store) ListPosts() ([]PostInfo, error) {
	paths, err := s.PostFiles()
	if err != nil {
		return nil, err
	}

	infos := make([]PostInfo, 0, len(paths))
	for _, path := range paths {
		stem := strings.TrimSuffix(filepath.Base(path), ".md")
		info := PostInfo{Filename: filepath.Base(path), Title: stem}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, ierrors.FileSystemError("read post", err)
		}
		if fields, _, perr := frontmatter.Parse(data); perr == nil {
			if t := strings.TrimSpace(fields["title"]); t != "" {
				info.Title = t
			}
			if d, derr := NormalizeDate(fields["date"]); derr == nil {
				info.Date = d
			}
		}
		infos = append(infos, info)
	}

	sort.SliceStable(infos, func(i, j int) bool {
		return infos[i].Date > infos[j].Date
	})
	return infos, nil
}

// PostFiles returns the absolute paths of all post source files in
// deterministic (name-sorted) order.
func (s *Store) PostFiles() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.postsDir, "*.md"))
	if err != nil {
		return nil, ierrors.FileSystemError("list posts", err)
	}
	sort.Strings(matches)
	return matches, nil
}

// ReadPost returns the raw source of a post by filename.
func (s *Store) ReadPost(filename string) ([]byte, error) {
	path, err := s.postPath(filename)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ierrors.PostNotFound(filename)
		}
		return nil, ierrors.FileSystemError("read post", err)
	}
	return data, nil
}

// WritePost saves raw source under the given filename, overwriting any
// existing content (last-writer-wins).
func (s *Store) WritePost(filename string, data []byte) error {
	path, err := s.postPath(filename)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return ierrors.FileSystemError("write post", err)
	}
	return nil
}

// DeletePost removes a post source file and its paired image folder, leaving
// no orphaned image files behind.
func (s *Store) DeletePost(filename string) error {
	path, err := s.postPath(filename)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return ierrors.PostNotFound(filename)
	}
	if err := os.Remove(path); err != nil {
		return ierrors.FileSystemError("delete post", err)
	}

	slug := strings.TrimSuffix(filename, ".md")
	if err := os.RemoveAll(filepath.Join(s.imagesDir, slug)); err != nil {
		return ierrors.FileSystemError("delete post images", err)
	}
	return nil
}

const newPostTemplate = `---
title: %s
subtitle: Write your description here.
date: %s
unlisted: false
---

Write your content here.
`

// CreatePost creates a new post from a title, deriving the slug and filename.
// It refuses to overwrite an existing post.
func (s *Store) CreatePost(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = "Untitled Post"
	}

	slug, err := Slugify(title)
	if err != nil {
		return "", ierrors.ValidationFailed(fmt.Sprintf("cannot derive slug from title %q", title))
	}
	filename := slug + ".md"

	path, err := s.postPath(filename)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err == nil {
		return "", ierrors.ValidationFailed(fmt.Sprintf("post %s already exists", filename))
	}

	body := fmt.Sprintf(newPostTemplate, title, time.Now().Format("2006-01-02"))
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return "", ierrors.FileSystemError("create post", err)
	}
	return filename, nil
}

// postPath validates a filename and resolves it inside the posts directory.
func (s *Store) postPath(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return "", ierrors.ValidationFailed(fmt.Sprintf("invalid post filename %q", filename))
	}
	if !strings.HasSuffix(filename, ".md") {
		return "", ierrors.ValidationFailed(fmt.Sprintf("post filename %q must end in .md", filename))
	}
	return filepath.Join(s.postsDir, filename), nil
}

// NormalizeDate parses a date string and normalizes it to YYYY-MM-DD.
func NormalizeDate(value string) (string, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(value))
	if err != nil {
		return "", err
	}
	return t.Format("2006-01-02"), nil
}
