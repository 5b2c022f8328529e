// Package filestore stores work PDFs on local disk. Writes stream
// through a temp file with an on-the-fly SHA-256 and finish with an
// atomic rename, so a crash never leaves a half-written artifact behind
// under its final key.
package filestore

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"socarchive/internal/domain"
)

// FileStore manages artifact files under a single data directory.
// The storage key handed out is the file name relative to that directory.
type FileStore struct {
	dataDir string
}

// New creates a FileStore, creating the data directory if needed.
func New(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o750); err != nil {
		return nil, fmt.Errorf("create data directory %s: %w", dataDir, err)
	}

	return &FileStore{dataDir: dataDir}, nil
}

// Store writes the artifact to disk and returns its storage key.
// Pattern: temp file, write with SHA-256, fsync, atomic rename. The temp
// file is removed on any failure.
func (fs *FileStore) Store(r io.Reader, originalFilename string) (string, error) {
	key := generateKey(originalFilename)
	fullPath := filepath.Join(fs.dataDir, key)
	tmpPath := fullPath + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	hasher := sha256.New()
	tee := io.TeeReader(r, hasher)

	if _, err := io.Copy(f, tee); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("write artifact: %w", err)
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("fsync artifact: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("close artifact: %w", err)
	}

	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("rename artifact: %w", err)
	}

	return key, nil
}

// Open opens a stored artifact for reading. The caller closes it.
func (fs *FileStore) Open(key string) (io.ReadCloser, error) {
	path, err := fs.resolve(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("artifact %q not found", key)}
		}
		return nil, fmt.Errorf("open artifact %s: %w", key, err)
	}

	return f, nil
}

// Delete removes a stored artifact.
func (fs *FileStore) Delete(key string) error {
	path, err := fs.resolve(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return &domain.NotFoundError{Message: fmt.Sprintf("artifact %q not found", key)}
		}
		return fmt.Errorf("delete artifact %s: %w", key, err)
	}

	return nil
}

// Checksum computes the SHA-256 of a stored artifact.
func (fs *FileStore) Checksum(key string) (string, error) {
	f, err := fs.Open(key)
	if err != nil {
		return "", err
	}
	defer f.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", fmt.Errorf("hash artifact %s: %w", key, err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// resolve maps a key to its on-disk path, rejecting anything that would
// escape the data directory.
func (fs *FileStore) resolve(key string) (string, error) {
	if key == "" || key == "." || key == ".." || key != filepath.Base(key) {
		return "", &domain.ValidationError{Message: fmt.Sprintf("invalid artifact key: %q", key)}
	}
	return filepath.Join(fs.dataDir, key), nil
}

// generateKey builds a storage name: {base}_{timestamp}_{uuid}.pdf.
// The original extension is dropped; only PDFs are stored.
func generateKey(originalFilename string) string {
	base := strings.TrimSuffix(filepath.Base(originalFilename), filepath.Ext(originalFilename))
	base = sanitize(base)
	if base == "" {
		base = "work"
	}

	return fmt.Sprintf("%s_%s_%s.pdf",
		base,
		time.Now().UTC().Format("20060102T150405"),
		uuid.NewString(),
	)
}

// sanitize keeps letters, digits, dashes and underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "_")
}
