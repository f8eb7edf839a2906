package site

import (
	"io"
	"os"
	"path/filepath"

	ierrors "github.com/inkwell/inkwell/internal/errors"
)

// CopyAssets copies design-time static images, per-post content images, and
// the stylesheet into the output tree. Image copies are flattened into a
// single images/ directory; existing files are overwritten byte-for-byte.
func CopyAssets(staticDir string, contentImages []string, outputDir string) error {
	imagesOut := filepath.Join(outputDir, "images")
	if err := os.MkdirAll(imagesOut, 0o755); err != nil {
		return ierrors.FileSystemError("create images output directory", err)
	}

	staticImages, err := filepath.Glob(filepath.Join(staticDir, "images", "*"))
	if err != nil {
		return ierrors.FileSystemError("list static images", err)
	}
	for _, src := range append(staticImages, contentImages...) {
		info, err := os.Stat(src)
		if err != nil {
			return ierrors.FileSystemError("stat asset", err)
		}
		if info.IsDir() {
			continue
		}
		if err := copyFile(src, filepath.Join(imagesOut, filepath.Base(src))); err != nil {
			return err
		}
	}

	style := filepath.Join(staticDir, "style.css")
	if _, err := os.Stat(style); err == nil {
		if err := copyFile(style, filepath.Join(outputDir, "style.css")); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return ierrors.FileSystemError("open asset", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return ierrors.FileSystemError("create asset", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return ierrors.FileSystemError("copy asset", err)
	}
	return out.Close()
}
