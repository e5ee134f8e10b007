package disk

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveWritesAndNames(t *testing.T) {
	dir := t.TempDir()
	fs, err := New(filepath.Join(dir, "images"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	name, err := fs.Save("file", "Photo.PNG", strings.NewReader("image-bytes"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(name, "file_") || !strings.HasSuffix(name, ".png") {
		t.Fatalf("unexpected stored name %q", name)
	}

	data, err := os.ReadFile(filepath.Join(dir, "images", name))
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if string(data) != "image-bytes" {
		t.Fatalf("stored content mismatch: %q", data)
	}
}

func TestSaveNamesNeverCollide(t *testing.T) {
	fs, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		name, err := fs.Save("file", "same.png", strings.NewReader("x"))
		if err != nil {
			t.Fatalf("Save: %v", err)
		}
		if seen[name] {
			t.Fatalf("name collision on %q", name)
		}
		seen[name] = true
	}
}

func TestNewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	if _, err := New(dir); err != nil {
		t.Fatalf("New: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("upload dir not created: %v", err)
	}
}
