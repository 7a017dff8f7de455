// Package lthash implements an incremental, order-independent checksum of a
// multiset of byte strings (LtHash).
package lthash

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/iamNilotpal/lthash/internal/adapters/digest"
	"github.com/iamNilotpal/lthash/internal/adapters/wordview"
	"github.com/iamNilotpal/lthash/internal/core/domain"
	"github.com/iamNilotpal/lthash/internal/core/ports"
	"github.com/iamNilotpal/lthash/pkg/errors"
)

// LtHash maintains a homomorphic checksum of a multiset of byte strings.
// Elements are folded into a fixed-width accumulator with word-wise modular
// arithmetic, so the checksum depends only on which elements are present and
// never on the order they were added or removed in.
//
// An LtHash is not safe for concurrent use. Callers sharing one must serialize
// every call, including the read-only ones.
type LtHash struct {
	options *domain.LtHashOptions
	digest  ports.DigestPort
	words   ports.WordViewPort
	logger  *zap.SugaredLogger

	// Either empty (after Reset) or exactly domain.ChecksumSize bytes.
	checksum []byte
}

// New creates an engine whose accumulator is zero-filled, the checksum of
// the empty multiset. A nil opts selects BLAKE3 and little-endian words.
func New(opts *domain.LtHashOptions) (*LtHash, error) {
	if opts != nil {
		if err := Validate(opts); err != nil {
			return nil, err
		}
		opts = prepareDefaults(opts)
	} else {
		opts = prepareDefaults(&domain.LtHashOptions{})
	}

	d, err := digest.New(opts.DigestOptions)
	if err != nil {
		return nil, err
	}

	words := opts.WordView
	if words == nil {
		if words, err = wordview.New(opts.ByteOrder); err != nil {
			return nil, err
		}
	}

	return &LtHash{
		options:  opts,
		digest:   d,
		words:    words,
		logger:   opts.Logger,
		checksum: make([]byte, domain.ChecksumSize),
	}, nil
}

// Add folds every element into the checksum. A nil or empty list is a no-op.
func (h *LtHash) Add(elements ...[]byte) {
	h.applyElements(domain.FoldAdd, elements)
}

// Remove takes every element back out of the checksum. Removing an element
// that was never added leaves a well-defined but meaningless checksum; the
// engine cannot detect it.
func (h *LtHash) Remove(elements ...[]byte) {
	h.applyElements(domain.FoldSubtract, elements)
}

// Update replaces oldValue's contribution with newValue's.
func (h *LtHash) Update(oldValue, newValue []byte) {
	h.Remove(oldValue)
	h.Add(newValue)
}

// Reset discards the accumulator and leaves the engine empty. An empty
// engine never equals a full-width checksum; the next Add or Remove starts
// again from a zero-filled accumulator.
func (h *LtHash) Reset() {
	h.checksum = []byte{}
	h.logger.Debugw("checksum reset", "algorithm", h.digest.Name())
}

// SetChecksum replaces the accumulator with a copy of checksum, which must be
// exactly domain.ChecksumSize bytes. On error the accumulator is unchanged.
func (h *LtHash) SetChecksum(checksum []byte) error {
	if len(checksum) != domain.ChecksumSize {
		h.logger.Debugw("checksum rejected", "size", len(checksum), "want", domain.ChecksumSize)
		return errors.NewValidationError(
			"checksum", len(checksum),
			fmt.Errorf("illegal checksum provided: the checksum must be of %d bytes, got %d", domain.ChecksumSize, len(checksum)),
		)
	}

	next := make([]byte, domain.ChecksumSize)
	if err := deepCopy(checksum, next); err != nil {
		return err
	}

	h.checksum = next
	return nil
}

// GetChecksum returns a copy of the accumulator. It is domain.ChecksumSize
// bytes long unless the engine is empty.
func (h *LtHash) GetChecksum() []byte {
	out := make([]byte, len(h.checksum))
	copy(out, h.checksum)
	return out
}

// ChecksumEquals compares the accumulator with other without branching on
// their contents. Only the shorter length influences the running time.
func (h *LtHash) ChecksumEquals(other []byte) bool {
	x := len(h.checksum) ^ len(other)
	for i := 0; i < len(h.checksum) && i < len(other); i++ {
		x |= int(h.checksum[i] ^ other[i])
	}
	return x == 0
}

// IsEmpty reports whether the engine has been Reset and not used since.
func (h *LtHash) IsEmpty() bool {
	return len(h.checksum) == 0
}

// Algorithm returns the name of the element digest.
func (h *LtHash) Algorithm() string {
	return h.digest.Name()
}

// ByteOrder returns the byte order of the accumulator words.
func (h *LtHash) ByteOrder() domain.ByteOrder {
	return domain.ByteOrder(h.words.Name())
}

// DigestSize returns how many leading accumulator bytes each fold touches.
func (h *LtHash) DigestSize() int {
	return h.digest.Size()
}
