package digest

import (
	"golang.org/x/crypto/sha3"
)

var sha3256Size = len(sha3.Sum256(nil))

type sha3256 struct {
	name string
}

func NewSHA3256() *sha3256 {
	return &sha3256{name: string(SHA3256)}
}

func (s *sha3256) Digest(data []byte) []byte {
	sum := sha3.Sum256(data)
	return sum[:]
}

func (s *sha3256) Size() int {
	return sha3256Size
}

func (s *sha3256) Name() string {
	return s.name
}
