package imports_test

import (
	"os"
	"path/filepath"
	"testing"

	"csscompare/imports"
)

func TestFileLoader_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "base.css")
	if err := os.WriteFile(path, []byte("a{color:red}"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, resolvedDir, err := imports.FileLoader{}.Load(dir, "base.css")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(data) != "a{color:red}" {
		t.Errorf("data = %q", data)
	}
	if resolvedDir != dir {
		t.Errorf("resolvedDir = %q, want %q", resolvedDir, dir)
	}
}

func TestFileLoader_NotFound(t *testing.T) {
	dir := t.TempDir()
	_, _, err := imports.FileLoader{}.Load(dir, "missing.css")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !os.IsNotExist(err) {
		t.Errorf("expected os.IsNotExist error, got %v", err)
	}
}

func TestFileLoader_Nested(t *testing.T) {
	sub := filepath.Join(t.TempDir(), "sub")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(sub, "nested.css"), []byte("b{x:1}"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, resolvedDir, err := imports.FileLoader{}.Load(filepath.Dir(sub), "sub/nested.css")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if resolvedDir != sub {
		t.Errorf("resolvedDir = %q, want %q", resolvedDir, sub)
	}
}
