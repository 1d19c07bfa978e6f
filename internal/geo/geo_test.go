package geo

import (
	"os"
	"path/filepath"
	"testing"
)

const coastline = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {}, "geometry": {"type": "LineString", "coordinates": [[10.0, 59.0], [10.5, 59.5], [11.0, 60.0]]}},
    {"type": "Feature", "properties": {}, "geometry": {"type": "Point", "coordinates": [10.2, 59.2]}}
  ]
}`

const lighthouse = `{"type": "Feature", "properties": {}, "geometry": {"type": "Point", "coordinates": [5.0, 62.0]}}`

func writeLayer(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeLayer(t, dir, "b_rivers.geojson", lighthouse)
	writeLayer(t, dir, "a_coast.geojson", coastline)
	writeLayer(t, dir, "notes.txt", "not a layer")
	if err := os.Mkdir(filepath.Join(dir, "sub.geojson"), 0o755); err != nil {
		t.Fatal(err)
	}

	names, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(names) != 2 || names[0] != "a_coast.geojson" || names[1] != "b_rivers.geojson" {
		t.Errorf("got %v", names)
	}
}

func TestScanMissingDir(t *testing.T) {
	if _, err := Scan(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()

	t.Run("feature collection", func(t *testing.T) {
		writeLayer(t, dir, "coast.geojson", coastline)
		info := Inspect(filepath.Join(dir, "coast.geojson"))

		if info.Err != "" {
			t.Fatalf("unexpected error: %s", info.Err)
		}
		if info.Features != 2 {
			t.Errorf("features = %d", info.Features)
		}
		if info.Counts["LineString"] != 1 || info.Counts["Point"] != 1 {
			t.Errorf("counts = %v", info.Counts)
		}
		if !info.HasBound {
			t.Fatal("expected a bound")
		}
		b := info.Bound
		if b.Min[0] != 10.0 || b.Min[1] != 59.0 || b.Max[0] != 11.0 || b.Max[1] != 60.0 {
			t.Errorf("bound = %v", b)
		}
		if info.Modified == "" || info.Modified == "N/A" {
			t.Errorf("modified = %q", info.Modified)
		}
	})

	t.Run("bare feature", func(t *testing.T) {
		writeLayer(t, dir, "light.geojson", lighthouse)
		info := Inspect(filepath.Join(dir, "light.geojson"))
		if info.Err != "" || info.Features != 1 {
			t.Errorf("err=%q features=%d", info.Err, info.Features)
		}
	})

	t.Run("bare geometry", func(t *testing.T) {
		writeLayer(t, dir, "geom.geojson", `{"type":"Point","coordinates":[1.0,2.0]}`)
		info := Inspect(filepath.Join(dir, "geom.geojson"))
		if info.Err != "" || info.Counts["Point"] != 1 {
			t.Errorf("err=%q counts=%v", info.Err, info.Counts)
		}
	})

	t.Run("broken file reports but does not fail", func(t *testing.T) {
		writeLayer(t, dir, "broken.geojson", `{"type": "FeatureCollec`)
		info := Inspect(filepath.Join(dir, "broken.geojson"))
		if info.Err == "" {
			t.Error("expected a parse error")
		}
		if info.HasBound {
			t.Error("broken file should have no bound")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		info := Inspect(filepath.Join(dir, "missing.geojson"))
		if info.Err == "" || info.Modified != "N/A" {
			t.Errorf("err=%q modified=%q", info.Err, info.Modified)
		}
	})
}

func TestCache(t *testing.T) {
	dir := t.TempDir()
	writeLayer(t, dir, "coast.geojson", coastline)
	c := NewCache(dir)

	first := c.Info("coast.geojson")
	if first.Err != "" {
		t.Fatalf("unexpected error: %s", first.Err)
	}

	// mutate the file; the cache must keep serving the memoized result
	writeLayer(t, dir, "coast.geojson", `{"type":"Point","coordinates":[0,0]}`)
	if got := c.Info("coast.geojson"); got != first {
		t.Error("second Info returned a fresh inspection")
	}

	c.Reset()
	fresh := c.Info("coast.geojson")
	if fresh == first {
		t.Error("Reset did not invalidate the cache")
	}
	if fresh.Counts["Point"] != 1 || fresh.Features != 1 {
		t.Errorf("fresh info %+v", fresh)
	}
}
