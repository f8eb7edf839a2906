package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/inkwell/inkwell/internal/config"
	"github.com/inkwell/inkwell/internal/site"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration and template files"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	fmt.Printf("Writing configuration to %s\n", root.Config)
	if err := config.Init(root.Config, i.Force); err != nil {
		return err
	}

	cfg := config.Default()
	for _, dir := range []string{
		cfg.Paths.ContentDir,
		cfg.Paths.ContentImagesDir,
		filepath.Join(cfg.Paths.StaticDir, "images"),
		cfg.Paths.TemplatesDir,
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	scaffold := []struct {
		path    string
		content string
	}{
		{filepath.Join(cfg.Paths.TemplatesDir, "index.html"), site.DefaultIndexTemplate},
		{filepath.Join(cfg.Paths.TemplatesDir, "post.html"), site.DefaultPostTemplate},
		{filepath.Join(cfg.Paths.StaticDir, "style.css"), site.DefaultStylesheet},
	}
	for _, f := range scaffold {
		if !i.Force {
			if _, err := os.Stat(f.path); err == nil {
				fmt.Printf("Keeping existing %s\n", f.path)
				continue
			}
		}
		if err := os.WriteFile(f.path, []byte(f.content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", f.path, err)
		}
		fmt.Printf("Created %s\n", f.path)
	}

	fmt.Println("Site scaffold ready. Run 'inkwell serve' to start writing.")
	return nil
}
