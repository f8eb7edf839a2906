package content

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/image/draw"

	ierrors "github.com/inkwell/inkwell/internal/errors"
	"github.com/inkwell/inkwell/internal/logfields"
)

// SaveImage stores an uploaded image under the slug's image folder. JPEG and
// PNG uploads wider than maxWidth are scaled down proportionally before
// writing; other formats are stored verbatim. maxWidth <= 0 disables scaling.
func (s *Store) SaveImage(slug, filename string, r io.Reader, maxWidth int) (string, error) {
	if err := validateImageName(slug, filename); err != nil {
		return "", err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", ierrors.FileSystemError("read upload", err)
	}

	if maxWidth > 0 {
		if scaled, ok, err := downscale(data, maxWidth); err != nil {
			return "", ierrors.Wrap(err, ierrors.CategoryContent, ierrors.SeverityError, "failed to resize image").
				WithContext("filename", filename)
		} else if ok {
			data = scaled
		}
	}

	dir := filepath.Join(s.imagesDir, slug)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", ierrors.FileSystemError("create image directory", err)
	}
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0o644); err != nil {
		return "", ierrors.FileSystemError("write image", err)
	}
	slog.Debug("Stored image", logfields.Slug(slug), logfields.File(filename), slog.Int("bytes", len(data)))
	return filename, nil
}

// ListImages returns the image filenames stored for a slug, sorted by name.
// A slug with no folder yet has zero images.
func (s *Store) ListImages(slug string) ([]string, error) {
	if !IsValidSlug(slug) {
		return nil, ierrors.ValidationFailed(fmt.Sprintf("invalid slug %q", slug))
	}
	entries, err := os.ReadDir(filepath.Join(s.imagesDir, slug))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, ierrors.FileSystemError("list images", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// DeleteImage removes a single image from a slug's folder.
func (s *Store) DeleteImage(slug, filename string) error {
	path, err := s.ImagePath(slug, filename)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return ierrors.FileSystemError("delete image", err)
	}
	return nil
}

// ImagePath resolves and verifies the on-disk path of a stored image.
func (s *Store) ImagePath(slug, filename string) (string, error) {
	if err := validateImageName(slug, filename); err != nil {
		return "", err
	}
	path := filepath.Join(s.imagesDir, slug, filename)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", ierrors.ImageNotFound(slug, filename)
		}
		return "", ierrors.FileSystemError("stat image", err)
	}
	return path, nil
}

// ContentImageFiles returns the paths of every content image across all
// slugs, sorted, for fingerprinting and asset copying.
func (s *Store) ContentImageFiles() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(s.imagesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, ierrors.FileSystemError("walk content images", err)
	}
	sort.Strings(paths)
	return paths, nil
}

func validateImageName(slug, filename string) error {
	if !IsValidSlug(slug) {
		return ierrors.ValidationFailed(fmt.Sprintf("invalid slug %q", slug))
	}
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return ierrors.ValidationFailed(fmt.Sprintf("invalid image filename %q", filename))
	}
	return nil
}

// downscale re-encodes a JPEG or PNG image at maxWidth when it is wider.
// Returns ok=false when the image needed no scaling or is not a raster
// format we resize.
func downscale(data []byte, maxWidth int) ([]byte, bool, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		// Not a decodable raster image; store verbatim.
		return nil, false, nil
	}
	if cfg.Width <= maxWidth || (format != "jpeg" && format != "png") {
		return nil, false, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false, err
	}

	height := cfg.Height * maxWidth / cfg.Width
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 85})
	case "png":
		err = png.Encode(&buf, dst)
	}
	if err != nil {
		return nil, false, err
	}
	return buf.Bytes(), true, nil
}
