// Package snapshot captures, encodes and persists accumulator state so a
// checksum can be carried across processes and restored into a new engine.
package snapshot

import (
	"fmt"
	"time"

	"github.com/iamNilotpal/lthash/internal/core/domain"
	"github.com/iamNilotpal/lthash/internal/core/services/lthash"
	"github.com/iamNilotpal/lthash/pkg/errors"
)

// Version is the snapshot encoding version written by Encode.
const Version uint32 = 1

// Snapshot is the accumulator of one engine plus what is needed to interpret it.
type Snapshot struct {
	// Version of the encoding the snapshot was read from or will be written with.
	Version uint32

	// Algorithm names the element digest the checksum was built with.
	Algorithm string

	// ByteOrder of the accumulator words.
	ByteOrder domain.ByteOrder

	// Checksum is the raw accumulator: domain.ChecksumSize bytes, or empty
	// for an engine that was reset.
	Checksum []byte

	// CreatedAt records when the snapshot was captured.
	CreatedAt time.Time
}

// Capture copies the current state of h.
func Capture(h *lthash.LtHash) *Snapshot {
	return &Snapshot{
		Version:   Version,
		Algorithm: h.Algorithm(),
		ByteOrder: h.ByteOrder(),
		Checksum:  h.GetChecksum(),
		CreatedAt: time.Now().UTC(),
	}
}

// Restore loads s into h. The snapshot must have been captured from an engine
// with the same digest algorithm and byte order, otherwise the checksum would
// be meaningless to h and an invalid argument error is returned.
func Restore(h *lthash.LtHash, s *Snapshot) error {
	if s.Algorithm != h.Algorithm() {
		return errors.NewValidationError(
			"algorithm", s.Algorithm,
			fmt.Errorf("snapshot uses digest %q, engine uses %q", s.Algorithm, h.Algorithm()),
		)
	}

	if s.ByteOrder != h.ByteOrder() {
		return errors.NewValidationError(
			"byteOrder", s.ByteOrder,
			fmt.Errorf("snapshot uses %s words, engine uses %s", s.ByteOrder, h.ByteOrder()),
		)
	}

	if len(s.Checksum) == 0 {
		h.Reset()
		return nil
	}

	return h.SetChecksum(s.Checksum)
}
