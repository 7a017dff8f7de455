package snapshot

import (
	"context"
	stderrors "errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/iamNilotpal/lthash/internal/adapters/compression"
	"github.com/iamNilotpal/lthash/internal/adapters/fs"
	"github.com/iamNilotpal/lthash/internal/core/domain"
	"github.com/iamNilotpal/lthash/internal/core/ports"
	"github.com/iamNilotpal/lthash/pkg/errors"
	"github.com/iamNilotpal/lthash/pkg/pool"
	"github.com/iamNilotpal/lthash/pkg/system"
)

var (
	// ErrNotFound indicates there is no snapshot at the requested path.
	ErrNotFound = stderrors.New("snapshot not found")

	// ErrBadFrame indicates a file that is not a snapshot frame.
	ErrBadFrame = stderrors.New("not a snapshot file")
)

// Store reads and writes snapshot files. A frame is the magic "LTHS", one
// flag byte (0 raw, 1 zstd) and the encoded snapshot. Writes go to a
// temporary file that is renamed over the target, so readers never observe a
// partial snapshot.
//
// A Store is safe for concurrent use as long as callers do not write the same
// path concurrently.
type Store struct {
	path     string
	compress bool

	fs         ports.FileSystemPort
	compressor ports.CompressionPort
	buffers    *pool.BufferPool
	logger     *zap.SugaredLogger
}

// NewStore creates a store for opts.Path. A nil opts selects DefaultOptions.
// The decoder is always available, so compressed snapshots can be read even
// when compression is disabled for writing.
func NewStore(opts *domain.SnapshotOptions, logger *zap.SugaredLogger) (*Store, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	opts = prepareDefaults(opts)

	if err := Validate(opts); err != nil {
		return nil, err
	}

	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	compressor, err := compression.NewZstdCompression(opts.CompressionOptions)
	if err != nil {
		return nil, errors.New(errors.ErrorCompression, "create compressor", err)
	}

	return &Store{
		path:       opts.Path,
		compress:   opts.CompressionOptions.Enable,
		fs:         fs.NewLocalFileSystem(),
		compressor: compressor,
		buffers:    pool.NewBufferPool(frameBufferSize),
		logger:     logger,
	}, nil
}

// Path returns the default snapshot path of the store.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether a file is present at the default path.
func (s *Store) Exists() (bool, error) {
	return s.fs.Exists(s.path)
}

// Save writes snap to the default path.
func (s *Store) Save(ctx context.Context, snap *Snapshot) error {
	return s.SaveTo(ctx, s.path, snap)
}

// Load reads the snapshot at the default path.
func (s *Store) Load(ctx context.Context) (*Snapshot, error) {
	return s.LoadFrom(ctx, s.path)
}

// SaveTo writes snap to path, creating parent directories as needed.
func (s *Store) SaveTo(ctx context.Context, path string, snap *Snapshot) error {
	_, err := system.RunWithContext(ctx, func(context.Context) (struct{}, error) {
		return struct{}{}, s.save(path, snap)
	})
	return err
}

// LoadFrom reads the snapshot at path. A missing file yields an error
// matching ErrNotFound.
func (s *Store) LoadFrom(ctx context.Context, path string) (*Snapshot, error) {
	return system.RunWithContext(ctx, func(context.Context) (*Snapshot, error) {
		return s.load(path)
	})
}

func (s *Store) save(path string, snap *Snapshot) error {
	payload := Encode(snap)
	flag := frameRaw

	if s.compress {
		out, compressed, err := s.compressor.Compress(payload)
		if err != nil {
			return errors.New(errors.ErrorCompression, "compress snapshot", err)
		}
		if compressed {
			payload, flag = out, frameZstd
		}
	}

	buf := s.buffers.Get()
	buf.WriteString(frameMagic)
	buf.WriteByte(flag)
	buf.Write(payload)
	frame := s.buffers.Copy(buf)

	if err := s.fs.CreateDir(filepath.Dir(path), 0755); err != nil {
		return errors.New(errors.ErrorStorage, "create snapshot directory", err)
	}

	tmp := path + ".tmp"
	if err := s.fs.WriteFile(tmp, 0644, frame); err != nil {
		return errors.New(errors.ErrorStorage, "write snapshot", err)
	}

	if err := s.fs.Rename(tmp, path); err != nil {
		if rmErr := s.fs.DeleteFile(tmp); rmErr != nil {
			s.logger.Warnw("failed to remove temporary snapshot", "path", tmp, "error", rmErr)
		}
		return errors.New(errors.ErrorStorage, "replace snapshot", err)
	}

	s.logger.Debugw(
		"snapshot saved",
		"path", path, "algorithm", snap.Algorithm, "bytes", len(frame), "compressed", flag == frameZstd,
	)
	return nil
}

func (s *Store) load(path string) (*Snapshot, error) {
	ok, err := s.fs.Exists(path)
	if err != nil {
		return nil, errors.New(errors.ErrorStorage, "stat snapshot", err)
	}
	if !ok {
		return nil, errors.New(errors.ErrorStorage, "load snapshot", fmt.Errorf("%w: %s", ErrNotFound, path))
	}

	frame, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.ErrorStorage, "read snapshot", err)
	}

	if len(frame) < len(frameMagic)+1 || string(frame[:len(frameMagic)]) != frameMagic {
		return nil, errors.New(errors.ErrorEncoding, "load snapshot", fmt.Errorf("%w: %s", ErrBadFrame, path))
	}

	payload := frame[len(frameMagic)+1:]
	switch flag := frame[len(frameMagic)]; flag {
	case frameRaw:
	case frameZstd:
		if payload, err = s.compressor.Decompress(payload); err != nil {
			return nil, errors.New(errors.ErrorCompression, "decompress snapshot", err)
		}
	default:
		return nil, errors.New(
			errors.ErrorEncoding, "load snapshot", fmt.Errorf("%w: unknown frame flag %d", ErrBadFrame, flag),
		)
	}

	snap, err := Decode(payload)
	if err != nil {
		return nil, err
	}

	s.logger.Debugw("snapshot loaded", "path", path, "algorithm", snap.Algorithm, "empty", len(snap.Checksum) == 0)
	return snap, nil
}

// Close releases the compressor.
func (s *Store) Close() error {
	return s.compressor.Close()
}
