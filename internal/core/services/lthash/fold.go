package lthash

import (
	"fmt"

	"github.com/iamNilotpal/lthash/internal/core/domain"
	"github.com/iamNilotpal/lthash/pkg/errors"
)

func (h *LtHash) applyElements(mode domain.FoldMode, elements [][]byte) {
	if len(elements) == 0 {
		return
	}

	if h.IsEmpty() {
		h.checksum = make([]byte, domain.ChecksumSize)
	}

	for _, element := range elements {
		h.applyDigest(mode, h.digest.Digest(element))
	}
}

// applyDigest folds sum into the first Size() bytes of the accumulator.
// Output beyond the declared digest size is ignored. Words wrap modulo 2^32
// in both directions, so subtracting a digest exactly undoes adding it.
func (h *LtHash) applyDigest(mode domain.FoldMode, sum []byte) {
	width := min(len(sum), h.digest.Size())
	for i := 0; i+domain.WordSize <= width; i += domain.WordSize {
		c := h.words.ReadWord(h.checksum, i)
		d := h.words.ReadWord(sum, i)

		if mode == domain.FoldSubtract {
			c -= d
		} else {
			c += d
		}

		h.words.WriteWord(h.checksum, i, c)
	}
}

func deepCopy(source, destination []byte) error {
	if len(source) != len(destination) {
		return errors.NewValidationError(
			"source", len(source),
			fmt.Errorf("bad input arrays in deep copy: source is %d bytes, destination %d", len(source), len(destination)),
		)
	}

	copy(destination, source)
	return nil
}
