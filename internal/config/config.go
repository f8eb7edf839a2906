// Package config loads and validates the inkwell configuration file.
//
// The configuration is an explicit struct handed to component constructors;
// there is no package-level mutable state.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	ierrors "github.com/inkwell/inkwell/internal/errors"
)

// Config represents the application configuration.
type Config struct {
	Website Website `yaml:"website"`
	Paths   Paths   `yaml:"paths"`
	AWS     AWS     `yaml:"aws"`
	Server  Server  `yaml:"server"`
	Daemon  Daemon  `yaml:"daemon"`
	Git     Git     `yaml:"git"`
}

// Website holds site-level settings used by templates and the feed.
type Website struct {
	Title        string `yaml:"title"`
	Description  string `yaml:"description,omitempty"`
	BaseURL      string `yaml:"base_url"`
	PostsPerPage int    `yaml:"posts_per_page"`
	FeedSize     int    `yaml:"feed_size"`
}

// Paths locates all build inputs and the output tree.
type Paths struct {
	ContentDir       string `yaml:"content_dir"`
	ContentImagesDir string `yaml:"content_images_dir"`
	StaticDir        string `yaml:"static_dir"`
	TemplatesDir     string `yaml:"templates_dir"`
	OutputDir        string `yaml:"output_dir"`
	StateDir         string `yaml:"state_dir"`
}

// AWS holds the deploy target. Credentials come from the environment
// (.env supported), never from this file.
type AWS struct {
	S3Bucket         string `yaml:"s3_bucket,omitempty"`
	CloudFrontDistID string `yaml:"cloudfront_dist_id,omitempty"`
}

// Server configures the editor HTTP surface.
type Server struct {
	Addr          string `yaml:"addr"`
	MaxImageWidth int    `yaml:"max_image_width"`
}

// Daemon configures watch mode.
type Daemon struct {
	Watch           bool   `yaml:"watch"`
	DebounceSeconds int    `yaml:"debounce_seconds"`
	BuildInterval   string `yaml:"build_interval,omitempty"` // Go duration, empty disables the schedule
}

// Git configures optional auto-commit of content mutations.
type Git struct {
	AutoCommit bool   `yaml:"auto_commit"`
	Author     string `yaml:"author,omitempty"`
	Email      string `yaml:"email,omitempty"`
}

// Load reads and validates a configuration file, applying defaults for
// fields the file does not set.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ierrors.ConfigNotFound(path)
		}
		return nil, ierrors.Wrap(err, ierrors.CategoryConfig, ierrors.SeverityFatal, "failed to read configuration")
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, ierrors.Wrap(err, ierrors.CategoryConfig, ierrors.SeverityFatal, "failed to parse configuration")
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays INKWELL_* environment variables on top of the file.
// Deploy targets and the listen address are the settings that differ between
// machines; everything else belongs in the config file.
func (c *Config) applyEnv() {
	if v := os.Getenv("INKWELL_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("INKWELL_S3_BUCKET"); v != "" {
		c.AWS.S3Bucket = v
	}
	if v := os.Getenv("INKWELL_CLOUDFRONT_DIST_ID"); v != "" {
		c.AWS.CloudFrontDistID = v
	}
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	if c.Website.Title == "" {
		return ierrors.ConfigInvalid("website.title", "must not be empty")
	}
	if c.Website.BaseURL == "" {
		return ierrors.ConfigInvalid("website.base_url", "must not be empty")
	}
	if c.Website.PostsPerPage < 1 {
		return ierrors.ConfigInvalid("website.posts_per_page", "must be at least 1")
	}
	if c.Website.FeedSize < 1 {
		return ierrors.ConfigInvalid("website.feed_size", "must be at least 1")
	}
	if c.Paths.ContentDir == "" {
		return ierrors.ConfigInvalid("paths.content_dir", "must not be empty")
	}
	if c.Paths.OutputDir == "" {
		return ierrors.ConfigInvalid("paths.output_dir", "must not be empty")
	}
	return nil
}

// HistoryPath is the build history database location.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.Paths.StateDir, "history.db")
}
