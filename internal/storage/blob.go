package storage

import "io"

// BlobStore holds uploaded problem/choice images and the header logo.
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
	Delete(key string) error
}
