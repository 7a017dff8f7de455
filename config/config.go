package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iamNilotpal/lthash/internal/adapters/compression"
	"github.com/iamNilotpal/lthash/internal/adapters/digest"
	"github.com/iamNilotpal/lthash/internal/adapters/wordview"
	"github.com/iamNilotpal/lthash/internal/core/domain"
	"github.com/iamNilotpal/lthash/internal/core/services/snapshot"
)

type Config struct {
	Digest   DigestConfig   `yaml:"digest"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Log      LogConfig      `yaml:"log"`
}

// Holds element digest configuration
type DigestConfig struct {
	Algorithm string `yaml:"algorithm"`  // blake3, blake3-xof, blake2b-256, sha256, sha3-256
	ByteOrder string `yaml:"byte_order"` // little-endian or big-endian
}

// Holds snapshot persistence configuration
type SnapshotConfig struct {
	Path             string `yaml:"path"`              // Snapshot file
	Compression      bool   `yaml:"compression"`       // Compress with zstd
	CompressionLevel uint8  `yaml:"compression_level"` // Compression level (1-4)
}

type LogConfig struct {
	Level       string `yaml:"level"`       // debug, info, warn, error
	Development bool   `yaml:"development"` // Console output instead of JSON
}

// Returns a Config struct with reasonable default values.
func DefaultConfig() *Config {
	return &Config{
		Digest: DigestConfig{
			Algorithm: string(digest.BLAKE3),
			ByteOrder: string(domain.LittleEndian),
		},
		Snapshot: SnapshotConfig{
			Path:             snapshot.DefaultPath,
			Compression:      true,
			CompressionLevel: compression.DefaultLevel,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Loads configuration from a YAML file. Keys missing from the file keep
// their default values.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Validate checks every section against the options the engine and the
// snapshot store accept.
func (c *Config) Validate() error {
	if err := digest.Validate(c.DigestOptions()); err != nil {
		return fmt.Errorf("invalid digest configuration: %w", err)
	}

	if err := wordview.Validate(domain.ByteOrder(c.Digest.ByteOrder)); err != nil {
		return fmt.Errorf("invalid digest configuration: %w", err)
	}

	if c.Snapshot.Path == "" {
		return fmt.Errorf("snapshot.path is required")
	}

	if err := compression.Validate(c.SnapshotOptions().CompressionOptions); err != nil {
		return fmt.Errorf("invalid snapshot configuration: %w", err)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}

	return nil
}

func (c *Config) DigestOptions() *domain.DigestOptions {
	return &domain.DigestOptions{Algorithm: domain.DigestAlgorithm(c.Digest.Algorithm)}
}

// EngineOptions converts the digest section into engine options.
func (c *Config) EngineOptions() *domain.LtHashOptions {
	return &domain.LtHashOptions{
		DigestOptions: c.DigestOptions(),
		ByteOrder:     domain.ByteOrder(c.Digest.ByteOrder),
	}
}

// SnapshotOptions converts the snapshot section into store options.
func (c *Config) SnapshotOptions() *domain.SnapshotOptions {
	opts := compression.DefaultOptions()
	opts.Enable = c.Snapshot.Compression
	opts.Level = c.Snapshot.CompressionLevel

	return &domain.SnapshotOptions{
		Path:               c.Snapshot.Path,
		CompressionOptions: opts,
	}
}
