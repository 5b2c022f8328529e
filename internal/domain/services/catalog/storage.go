package catalog

import "io"

// ArtifactStore is the contract the engine requires from PDF file
// storage: store bytes under an opaque key, fetch and delete by key.
type ArtifactStore interface {
	// Store writes the artifact and returns its storage key.
	Store(r io.Reader, originalFilename string) (key string, err error)

	// Open opens a stored artifact for reading. The caller closes it.
	Open(key string) (io.ReadCloser, error)

	// Delete removes a stored artifact.
	Delete(key string) error
}
