package migrations

import (
	"io/fs"
	"sort"
	"strings"
	"testing"
)

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := fs.ReadDir(FS, ".")
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("expected migrations to be embedded")
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	if files[0] != "001_panel_sessions.sql" {
		t.Fatalf("expected first migration 001_panel_sessions.sql, got %s", files[0])
	}
}

func TestMigrationsHaveUpSections(t *testing.T) {
	entries, err := fs.ReadDir(FS, ".")
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	for _, entry := range entries {
		content, err := fs.ReadFile(FS, entry.Name())
		if err != nil {
			t.Fatalf("read %s: %v", entry.Name(), err)
		}
		if !strings.Contains(string(content), "-- +migrate Up") {
			t.Fatalf("migration %s has no up section", entry.Name())
		}
	}
}
