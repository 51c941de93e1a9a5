// Package storage abstracts product image storage.
package storage

import (
	"context"
	"io"
)

// MaxUploadBytes caps product image uploads at 16 MB.
const MaxUploadBytes = 16 << 20

// StoredImage describes a saved image and its optional thumbnail.
type StoredImage struct {
	Filename  string
	Thumbnail string
}

// Storage saves and removes product images.
type Storage interface {
	// Save validates and stores an uploaded image, returning the generated
	// filenames. Thumbnail generation is best-effort and may be empty.
	Save(ctx context.Context, originalName string, r io.Reader) (*StoredImage, error)

	// Delete removes an image and its thumbnail. Missing files are ignored.
	Delete(ctx context.Context, filename string) error

	// URL returns the public URL path for a stored filename.
	URL(filename string) string
}
