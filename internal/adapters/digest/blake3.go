package digest

import (
	"lukechampine.com/blake3"
)

type blake3Digest struct {
	name string
	size int
}

// NewBLAKE3 returns the default element digest: BLAKE3-256.
func NewBLAKE3() *blake3Digest {
	return &blake3Digest{name: string(BLAKE3), size: 32}
}

// NewBLAKE3XOF returns a BLAKE3 digest with size bytes of extended output.
func NewBLAKE3XOF(size int) *blake3Digest {
	return &blake3Digest{name: string(BLAKE3XOF), size: size}
}

func (b *blake3Digest) Digest(data []byte) []byte {
	if b.size == 32 {
		sum := blake3.Sum256(data)
		return sum[:]
	}

	h := blake3.New(b.size, nil)
	h.Write(data)
	return h.Sum(nil)
}

func (b *blake3Digest) Size() int {
	return b.size
}

func (b *blake3Digest) Name() string {
	return b.name
}
