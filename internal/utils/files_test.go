package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSafeWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := SafeWriteFile(path, []byte("one")); err != nil {
		t.Fatalf("SafeWriteFile: %v", err)
	}
	if err := SafeWriteFile(path, []byte("two")); err != nil {
		t.Fatalf("SafeWriteFile overwrite: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "two" {
		t.Fatalf("content = %q, want %q", data, "two")
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind")
	}
}

func TestSafeWriteFileMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.txt")
	if err := SafeWriteFile(path, []byte("x")); err == nil {
		t.Fatalf("expected error for missing directory")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("partial file written")
	}
}

func TestFileSizeKB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sized.bin")
	if err := os.WriteFile(path, make([]byte, 1536), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	kb, err := FileSizeKB(path)
	if err != nil {
		t.Fatalf("FileSizeKB: %v", err)
	}
	if kb != 1.5 {
		t.Fatalf("size = %f KB, want 1.5", kb)
	}
	if _, err := FileSizeKB(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
