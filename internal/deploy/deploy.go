// Package deploy publishes the generated output tree to its hosting target.
package deploy

import (
	"context"
	"log/slog"
	"os/exec"
	"strings"

	ierrors "github.com/inkwell/inkwell/internal/errors"
	"github.com/inkwell/inkwell/internal/logfields"
)

// Deployer publishes outputDir to a hosting target.
type Deployer interface {
	Deploy(ctx context.Context, outputDir string) error
}

// Noop is used for local builds and in daemons configured without a bucket.
type Noop struct{}

func (Noop) Deploy(_ context.Context, outputDir string) error {
	slog.Debug("Deploy disabled, output left on disk", logfields.Path(outputDir))
	return nil
}

// commandRunner is swapped out in tests.
type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// S3CloudFront syncs the output tree to an S3 bucket with the aws CLI and
// then invalidates the CloudFront distribution so the edge caches refetch.
type S3CloudFront struct {
	Bucket         string
	DistributionID string

	run    commandRunner
	logger *slog.Logger
}

// NewS3CloudFront creates a deployer for the given bucket. distributionID may
// be empty, in which case the invalidation step is skipped.
func NewS3CloudFront(bucket, distributionID string) *S3CloudFront {
	return &S3CloudFront{
		Bucket:         bucket,
		DistributionID: distributionID,
		run:            runCommand,
		logger:         slog.Default(),
	}
}

func (d *S3CloudFront) Deploy(ctx context.Context, outputDir string) error {
	if d.Bucket == "" {
		return ierrors.New(ierrors.CategoryConfig, ierrors.SeverityFatal, "deploy requested but no S3 bucket configured")
	}

	target := "s3://" + d.Bucket
	d.logger.Info("Syncing output to S3", logfields.Path(outputDir), slog.String("bucket", d.Bucket))
	out, err := d.run(ctx, "aws", "s3", "sync", outputDir, target, "--delete")
	if err != nil {
		return ierrors.DeployFailed(target, err).
			WithContext("output", strings.TrimSpace(string(out)))
	}

	if d.DistributionID == "" {
		d.logger.Debug("No CloudFront distribution configured, skipping invalidation")
		return nil
	}

	d.logger.Info("Invalidating CloudFront distribution", slog.String("distribution", d.DistributionID))
	out, err = d.run(ctx, "aws", "cloudfront", "create-invalidation",
		"--distribution-id", d.DistributionID, "--paths", "/*")
	if err != nil {
		return ierrors.DeployFailed("cloudfront:"+d.DistributionID, err).
			WithContext("output", strings.TrimSpace(string(out)))
	}
	return nil
}
