package export

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/chrisdamba/foodpredict/internal/cloudwriter"
	"github.com/chrisdamba/foodpredict/internal/models"
)

// Sink stores one finished export file and returns where it went.
type Sink interface {
	Put(ctx context.Context, name, contentType string, data []byte) (string, error)
}

type LocalSink struct {
	Dir string
}

func (s LocalSink) Put(ctx context.Context, name, _ string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.Dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	target := filepath.Join(s.Dir, name)
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", target, err)
	}
	return target, nil
}

// CloudSink uploads files under prefix in a bucket.
type CloudSink struct {
	Factory cloudwriter.CloudWriterFactory
	Bucket  string
	Prefix  string
}

func (s CloudSink) Put(ctx context.Context, name, contentType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	w, err := s.Factory.NewWriter(s.Bucket, path.Join(s.Prefix, name), contentType)
	if err != nil {
		return "", fmt.Errorf("failed to create cloud file writer: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return w.Location(), nil
}

// NewSink builds the sink for the configured destination.
func NewSink(ctx context.Context, cfg models.ExportConfig) (Sink, error) {
	switch cfg.Destination {
	case "", "local":
		return LocalSink{Dir: cfg.OutputPath}, nil
	case "s3":
		factory, err := cloudwriter.NewS3WriterFactory(ctx, cfg.S3Region)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
		}
		return CloudSink{Factory: factory, Bucket: cfg.S3Bucket, Prefix: cfg.S3Prefix}, nil
	default:
		return nil, fmt.Errorf("unsupported export destination: %s", cfg.Destination)
	}
}
