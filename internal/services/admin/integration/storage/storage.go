// Package storage opens the admin persistence backend used by the server.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	adminstorage "github.com/louisbranch/adminpanel/internal/services/admin/storage"
	adminsqlite "github.com/louisbranch/adminpanel/internal/services/admin/storage/sqlite"
)

// OpenStore opens the admin SQLite store at path, creating its parent
// directory when needed.
func OpenStore(path string) (adminstorage.Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("admin storage path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}

	store, err := adminsqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open admin sqlite store: %w", err)
	}
	return store, nil
}
