package filestore

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/jlaffaye/ftp"

	"github.com/foliolabs/folio/internal/config"
)

// dialTimeout bounds the FTP control connection setup.
const dialTimeout = 30 * time.Second

// FTPStore stores attachment files on a remote FTP server, typically the
// public_html directory of a shared web host. A fresh connection is opened
// per operation; shared hosts drop idle control connections quickly.
type FTPStore struct {
	cfg config.FTPConfig
}

// NewFTPStore creates an FTPStore from configuration.
func NewFTPStore(cfg config.FTPConfig) *FTPStore {
	return &FTPStore{cfg: cfg}
}

// Save uploads the file to remotePath/relPath, creating directories as needed.
func (s *FTPStore) Save(ctx context.Context, relPath string, r io.Reader) (string, error) {
	conn, err := s.connect(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = conn.Quit() }()

	remote := s.remotePath(relPath)

	if err := s.ensureDirs(conn, path.Dir(remote)); err != nil {
		return "", err
	}

	if err := conn.Stor(remote, r); err != nil {
		return "", fmt.Errorf("ftp store %s: %w", remote, err)
	}

	return relPath, nil
}

// Delete removes the file at remotePath/relPath. Missing files are ignored.
func (s *FTPStore) Delete(ctx context.Context, relPath string) error {
	conn, err := s.connect(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Quit() }()

	remote := s.remotePath(relPath)
	if err := conn.Delete(remote); err != nil {
		// 550 means the file is already gone.
		if strings.Contains(err.Error(), "550") {
			return nil
		}
		return fmt.Errorf("ftp delete %s: %w", remote, err)
	}
	return nil
}

// PublicURL returns the media URL the uploaded file is served from.
func (s *FTPStore) PublicURL(relPath string) string {
	base := strings.TrimSuffix(s.cfg.MediaURL(), "/")
	return base + "/" + strings.TrimPrefix(relPath, "/")
}

func (s *FTPStore) connect(ctx context.Context) (*ftp.ServerConn, error) {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host(), s.cfg.Port())

	conn, err := ftp.Dial(addr, ftp.DialWithContext(ctx), ftp.DialWithTimeout(dialTimeout))
	if err != nil {
		return nil, fmt.Errorf("ftp dial %s: %w", addr, err)
	}

	if err := conn.Login(s.cfg.User(), s.cfg.Password()); err != nil {
		_ = conn.Quit()
		return nil, fmt.Errorf("ftp login: %w", err)
	}

	return conn, nil
}

// ensureDirs creates each path segment of dir. MakeDir fails when the
// directory already exists, which is fine.
func (s *FTPStore) ensureDirs(conn *ftp.ServerConn, dir string) error {
	if dir == "" || dir == "." || dir == "/" {
		return nil
	}

	segments := strings.Split(strings.Trim(dir, "/"), "/")
	current := ""
	for _, segment := range segments {
		current = current + "/" + segment
		_ = conn.MakeDir(current)
	}
	return nil
}

func (s *FTPStore) remotePath(relPath string) string {
	return path.Join(s.cfg.RemotePath(), strings.TrimPrefix(relPath, "/"))
}

var _ Store = (*FTPStore)(nil)
