//go:build !js || !wasm

package credentials

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pagecraft/studio/internal/env"
)

// FileStore implements Store using a JSON file on disk, so a login
// survives across CLI invocations.
type FileStore struct {
	mu       sync.Mutex
	filePath string
}

// NewFileStore creates a file-backed store. The path comes from the
// STUDIO_CREDENTIALS_PATH environment variable when set, otherwise
// ~/.pagecraft/credentials.json.
func NewFileStore() (*FileStore, error) {
	if path, ok := env.Get("STUDIO_CREDENTIALS_PATH"); ok {
		return &FileStore{filePath: path}, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return &FileStore{filePath: filepath.Join(homeDir, ".pagecraft", "credentials.json")}, nil
}

// NewFileStoreAt creates a file-backed store at an explicit path.
func NewFileStoreAt(path string) *FileStore {
	return &FileStore{filePath: path}
}

// Get retrieves the pair from disk
func (f *FileStore) Get(ctx context.Context) (*Pair, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	pair := &Pair{}
	if err := json.Unmarshal(data, pair); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}
	if !pair.Complete() {
		// A half-written or hand-edited file must not surface as a
		// partial pair.
		return nil, ErrNotFound
	}
	return pair, nil
}

// Set persists the pair to disk with owner-only permissions
func (f *FileStore) Set(ctx context.Context, pair *Pair) error {
	if !pair.Complete() {
		return ErrIncompletePair
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	dir := filepath.Dir(f.filePath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(pair, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	if err := os.WriteFile(f.filePath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write credentials to %s: %w", f.filePath, err)
	}
	return nil
}

// Clear removes the credentials file
func (f *FileStore) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove credentials file: %w", err)
	}
	return nil
}

// Name returns the store name
func (f *FileStore) Name() string {
	return fmt.Sprintf("FileStore(%s)", f.filePath)
}
