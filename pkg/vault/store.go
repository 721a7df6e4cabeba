// Package vault provides path-based access to the notes in a vault directory.
package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// FileRef points at an entry in the vault.
type FileRef struct {
	Path    string // vault-relative, normalized
	AbsPath string
	IsDir   bool
	Size    int64
	ModTime time.Time
}

// IsFile reports whether the entry is a plain file.
func (f *FileRef) IsFile() bool {
	return f != nil && !f.IsDir
}

// Store is the file store the note service works against.
type Store interface {
	// Find returns nil, nil when nothing exists at path.
	Find(path string) (*FileRef, error)
	Read(ref *FileRef) (string, error)
	// CreateFolder creates path and any missing parents. It returns
	// ErrFolderExists when the folder is already present.
	CreateFolder(path string) error
	// CreateFile creates a new file and fails with *AlreadyExistsError if
	// anything already occupies path.
	CreateFile(path, content string) (*FileRef, error)
}

// DiskStore is a Store over a vault directory on the local filesystem.
type DiskStore struct {
	root string
}

// Open returns a DiskStore rooted at dir, which must be an existing directory.
func Open(dir string) (*DiskStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve vault path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("open vault: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open vault: %s is not a directory", abs)
	}
	return &DiskStore{root: abs}, nil
}

// Root returns the absolute vault directory.
func (s *DiskStore) Root() string {
	return s.root
}

// Name returns the vault name, which is the name of its directory.
func (s *DiskStore) Name() string {
	return filepath.Base(s.root)
}

func (s *DiskStore) abs(path string) string {
	return filepath.Join(s.root, filepath.FromSlash(NormalizePath(path)))
}

func (s *DiskStore) Find(path string) (*FileRef, error) {
	path = NormalizePath(path)
	abs := s.abs(path)
	info, err := os.Stat(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	return &FileRef{
		Path:    path,
		AbsPath: abs,
		IsDir:   info.IsDir(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

func (s *DiskStore) Read(ref *FileRef) (string, error) {
	if !ref.IsFile() {
		return "", fmt.Errorf("read %s: not a file", ref.Path)
	}
	content, err := os.ReadFile(ref.AbsPath)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", ref.Path, err)
	}
	return string(content), nil
}

func (s *DiskStore) CreateFolder(path string) error {
	path = NormalizePath(path)
	abs := s.abs(path)
	if info, err := os.Stat(abs); err == nil {
		if info.IsDir() {
			return ErrFolderExists
		}
		return fmt.Errorf("create folder %s: a file is in the way", path)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return fmt.Errorf("create folder %s: %w", path, err)
	}
	return nil
}

func (s *DiskStore) CreateFile(path, content string) (*FileRef, error) {
	path = NormalizePath(path)
	abs := s.abs(path)

	f, err := os.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, fs.ErrExist) {
		return nil, &AlreadyExistsError{Path: path}
	}
	if err != nil {
		return nil, fmt.Errorf("create file %s: %w", path, err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return nil, fmt.Errorf("write file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close file %s: %w", path, err)
	}
	return s.Find(path)
}
