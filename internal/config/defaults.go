package config

import (
	"fmt"
	"os"
)

// Default returns a Config populated with defaults. Load unmarshals the
// configuration file on top of it, so file values win.
func Default() *Config {
	return &Config{
		Website: Website{
			PostsPerPage: 5,
			FeedSize:     25,
		},
		Paths: Paths{
			ContentDir:       "content/posts",
			ContentImagesDir: "content/images",
			StaticDir:        "static",
			TemplatesDir:     "templates",
			OutputDir:        "dist",
			StateDir:         ".inkwell",
		},
		Server: Server{
			Addr:          "127.0.0.1:8080",
			MaxImageWidth: 1600,
		},
		Daemon: Daemon{
			Watch:           true,
			DebounceSeconds: 2,
		},
	}
}

const initialConfig = `# inkwell configuration
website:
  title: My Blog
  description: Notes and essays.
  base_url: https://example.com
  posts_per_page: 5
  feed_size: 25

paths:
  content_dir: content/posts
  content_images_dir: content/images
  static_dir: static
  templates_dir: templates
  output_dir: dist
  state_dir: .inkwell

# aws:
#   s3_bucket: my-blog-bucket
#   cloudfront_dist_id: E1ABCDEFGHIJKL

server:
  addr: 127.0.0.1:8080
  max_image_width: 1600

daemon:
  watch: true
  debounce_seconds: 2
  # build_interval: 1h

git:
  auto_commit: false
`

// Init writes an initial configuration file. It refuses to overwrite an
// existing file unless force is set.
func Init(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
		}
	}
	return os.WriteFile(path, []byte(initialConfig), 0o644)
}
