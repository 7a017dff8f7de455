package snapshot

import (
	"strings"

	"github.com/iamNilotpal/lthash/internal/adapters/compression"
	"github.com/iamNilotpal/lthash/internal/core/domain"
)

const (
	DefaultPath = "lthash.snap"

	frameMagic = "LTHS"
	frameRaw   = byte(0)
	frameZstd  = byte(1)

	// Header plus an encoded full-width snapshot fits comfortably.
	frameBufferSize = domain.ChecksumSize + 128
)

// DefaultOptions returns snapshot settings with zstd compression enabled.
func DefaultOptions() *domain.SnapshotOptions {
	return &domain.SnapshotOptions{
		Path:               DefaultPath,
		CompressionOptions: compression.DefaultOptions(),
	}
}

func prepareDefaults(opts *domain.SnapshotOptions) *domain.SnapshotOptions {
	if strings.TrimSpace(opts.Path) == "" {
		opts.Path = DefaultPath
	}

	if opts.CompressionOptions == nil {
		opts.CompressionOptions = compression.DefaultOptions()
	} else if opts.CompressionOptions.Level == 0 {
		opts.CompressionOptions.Level = compression.DefaultLevel
	}

	return opts
}

// Validate checks snapshot options after defaults have been applied.
func Validate(opts *domain.SnapshotOptions) error {
	return compression.Validate(opts.CompressionOptions)
}
