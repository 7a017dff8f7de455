package domain

// SnapshotOptions configures where and how accumulator snapshots are persisted.
type SnapshotOptions struct {
	// Path is the file the snapshot is read from and written to.
	//
	// Default: "lthash.snap"
	Path string

	// CompressionOptions configures compression of the encoded snapshot.
	CompressionOptions *CompressionOptions
}
