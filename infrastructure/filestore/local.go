package filestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStore stores attachment files on the local filesystem under a root
// directory and serves them from a URL prefix.
type LocalStore struct {
	root      string
	urlPrefix string
}

// NewLocalStore creates a LocalStore rooted at the given directory.
// Files are served under urlPrefix (e.g. "/uploads").
func NewLocalStore(root, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{
		root:      root,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
	}, nil
}

// Root returns the root directory files are stored under.
func (s *LocalStore) Root() string {
	return s.root
}

// Save writes the file at the given relative path.
func (s *LocalStore) Save(_ context.Context, relPath string, r io.Reader) (string, error) {
	full, err := s.resolve(relPath)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create attachment dir: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("create attachment file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		_ = os.Remove(full)
		return "", fmt.Errorf("write attachment file: %w", err)
	}

	return relPath, nil
}

// Delete removes the file at the given relative path.
func (s *LocalStore) Delete(_ context.Context, relPath string) error {
	full, err := s.resolve(relPath)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete attachment file: %w", err)
	}
	return nil
}

// PublicURL returns the URL the file is served from.
func (s *LocalStore) PublicURL(relPath string) string {
	return s.urlPrefix + "/" + path.Clean(strings.TrimPrefix(relPath, "/"))
}

// resolve joins relPath onto the root, rejecting paths that escape it.
func (s *LocalStore) resolve(relPath string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(relPath))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid attachment path %q", relPath)
	}
	return filepath.Join(s.root, clean), nil
}

var _ Store = (*LocalStore)(nil)
