package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiskStoreSave(t *testing.T) {
	store, err := NewDiskStore(filepath.Join(t.TempDir(), "uploads"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	stored, err := store.Save("Informe Final.PDF", strings.NewReader("contenido"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Ext(stored) != ".pdf" {
		t.Fatalf("stored name must keep a lowercased extension, got %q", stored)
	}
	if stored == "Informe Final.PDF" {
		t.Fatalf("stored name must not be the upload name")
	}
	// a bare name, so callers can build URLs off their own mount point
	if stored != filepath.Base(stored) {
		t.Fatalf("stored name must carry no directory, got %q", stored)
	}

	data, err := os.ReadFile(filepath.Join(store.Dir, stored))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "contenido" {
		t.Fatalf("content mismatch: %q", data)
	}

	// two saves of the same name never collide
	other, err := store.Save("Informe Final.PDF", strings.NewReader("otro"))
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if other == stored {
		t.Fatalf("stored names must be unique")
	}
}
