// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/taibuivan/etagere/internal/platform/constants"
)

// FileStore keeps the terminal client's token in a single file.
type FileStore struct {
	path string
}

// NewFileStore creates a store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultFileStore returns the store at <user config dir>/etagere/token.
func DefaultFileStore() (*FileStore, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("session: locate config dir: %w", err)
	}
	return NewFileStore(filepath.Join(dir, constants.TokenFileDir, constants.TokenFileName)), nil
}

// Path returns the file location.
func (store *FileStore) Path() string {
	return store.path
}

// Load returns the stored token, or "" when the file does not exist.
func (store *FileStore) Load() (string, error) {
	data, err := os.ReadFile(store.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("session: read %s: %w", store.path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes token with owner-only permissions.
func (store *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0o700); err != nil {
		return fmt.Errorf("session: create %s: %w", filepath.Dir(store.path), err)
	}
	if err := os.WriteFile(store.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("session: write %s: %w", store.path, err)
	}
	return nil
}

// Clear removes the file. A missing file is not an error.
func (store *FileStore) Clear() error {
	if err := os.Remove(store.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session: remove %s: %w", store.path, err)
	}
	return nil
}
