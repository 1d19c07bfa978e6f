package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEOMAP_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Data.Dir != "geo_data" {
		t.Errorf("data dir %q", c.Data.Dir)
	}
	if c.Output.Name != "plot.png" {
		t.Errorf("output name %q", c.Output.Name)
	}
	if c.UI.Tick != 250*time.Millisecond {
		t.Errorf("tick %v", c.UI.Tick)
	}
	if c.UI.SplitPercent != 60 {
		t.Errorf("split %d", c.UI.SplitPercent)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "[data]\ndir = \"/srv/layers\"\n[ui]\nsplit_percent = 5\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GEOMAP_CONFIG", path)

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Data.Dir != "/srv/layers" {
		t.Errorf("data dir %q", c.Data.Dir)
	}
	if c.UI.SplitPercent != 10 {
		t.Errorf("split should clamp to 10, got %d", c.UI.SplitPercent)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("GEOMAP_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("GEOMAP_OUTPUT_NAME", "coast.bmp")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Output.Name != "coast.bmp" {
		t.Errorf("output name %q", c.Output.Name)
	}
}
