// Package filestore provides attachment file storage backends. Attachments
// are written under a per-project prefix and addressed by relative path.
package filestore

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound indicates the requested file does not exist.
var ErrNotFound = errors.New("file not found")

// Store persists attachment files.
type Store interface {
	// Save writes the file at the given relative path, creating parent
	// directories as needed, and returns the stored path.
	Save(ctx context.Context, relPath string, r io.Reader) (string, error)

	// Delete removes the file at the given relative path. Deleting a
	// missing file is not an error.
	Delete(ctx context.Context, relPath string) error

	// PublicURL returns the URL clients use to fetch the file.
	PublicURL(relPath string) string
}
