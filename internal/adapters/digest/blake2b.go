package digest

import (
	"golang.org/x/crypto/blake2b"
)

type blake2b256 struct {
	name string
}

func NewBLAKE2b256() *blake2b256 {
	return &blake2b256{name: string(BLAKE2b256)}
}

func (b *blake2b256) Digest(data []byte) []byte {
	sum := blake2b.Sum256(data)
	return sum[:]
}

func (b *blake2b256) Size() int {
	return blake2b.Size256
}

func (b *blake2b256) Name() string {
	return b.name
}
