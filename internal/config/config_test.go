package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !c.Autoclean {
		t.Fatalf("autoclean default should be true")
	}
	if c.Delimiter != "," {
		t.Fatalf("delimiter default = %q, want ','", c.Delimiter)
	}
	if c.MaxDuplicateIndices != 10 {
		t.Fatalf("max_duplicate_indices default = %d, want 10", c.MaxDuplicateIndices)
	}
	if c.OutDir != "" {
		t.Fatalf("out_dir default = %q, want empty", c.OutDir)
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	c := Default()
	c.OutDir = "/tmp/reports"
	c.Autoclean = false
	c.Delimiter = ";"
	c.MaxDuplicateIndices = 5
	if err := Save(c, ""); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".microclean", "config.yaml")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	got, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.OutDir != "/tmp/reports" || got.Autoclean || got.Delimiter != ";" || got.MaxDuplicateIndices != 5 {
		t.Fatalf("round trip = %#v", got)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("out_dir: /data\nautoclean: false\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.OutDir != "/data" || c.Autoclean {
		t.Fatalf("loaded = %#v", c)
	}
	// untouched keys keep their defaults
	if c.Delimiter != "," || c.MaxDuplicateIndices != 10 {
		t.Fatalf("defaults lost: %#v", c)
	}
}
