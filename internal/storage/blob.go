package storage

import "io"

// BlobStore holds book cover images and other static assets.
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
}
