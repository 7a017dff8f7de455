package ports

// Defines an interface for digesting a single element before it is folded
// into an accumulator.
type DigestPort interface {
	// Digest returns a fixed-length digest of data. The same input must always
	// produce the same output and the result length must equal Size.
	Digest(data []byte) []byte

	// Size returns the digest length in bytes.
	Size() int

	// Name returns the algorithm identifier recorded alongside snapshots.
	Name() string
}
