// Package upload stores incoming documents under collision-resistant
// temporary names for the lifetime of one request.
package upload

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Document describes a received upload sitting in the temp directory.
type Document struct {
	OriginalName string
	Ext          string
	Size         int64
	Path         string
}

type Store struct {
	dir      string
	maxBytes int64
}

func NewStore(dir string, maxBytes int64) *Store {
	return &Store{dir: dir, maxBytes: maxBytes}
}

// Save writes the uploaded file to the temp directory under a uuid name
// that keeps the original extension. Empty and oversized uploads are
// rejected before anything touches disk.
func (s *Store) Save(file multipart.File, header *multipart.FileHeader) (*Document, error) {
	if header.Size == 0 {
		return nil, fmt.Errorf("uploaded file is empty")
	}
	if s.maxBytes > 0 && header.Size > s.maxBytes {
		return nil, fmt.Errorf("file exceeds maximum size of %d bytes", s.maxBytes)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	path := filepath.Join(s.dir, uuid.NewString()+ext)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}

	written, err := io.Copy(dst, file)
	if cerr := dst.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("write temp file: %w", err)
	}

	return &Document{
		OriginalName: header.Filename,
		Ext:          ext,
		Size:         written,
		Path:         path,
	}, nil
}

// Remove deletes a stored temp file. Removing a file that is already
// gone is not an error; cleanup may run more than once.
func (s *Store) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
