package digest

import (
	sha256_lib "crypto/sha256"
)

type sha256 struct {
	name string
}

func NewSHA256() *sha256 {
	return &sha256{name: string(SHA256)}
}

func (s *sha256) Digest(data []byte) []byte {
	sum := sha256_lib.Sum256(data)
	return sum[:]
}

func (s *sha256) Size() int {
	return sha256_lib.Size
}

func (s *sha256) Name() string {
	return s.name
}
