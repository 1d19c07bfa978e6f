// Package geo scans a directory of GeoJSON layers and inspects their
// metadata: sizes, timestamps, feature counts, geometry kinds and
// bounds. Inspection results are memoized so the UI can show them every
// frame without re-reading files.
package geo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// LayerInfo holds the inspected metadata of a single layer file.
type LayerInfo struct {
	Name     string
	SizeKB   int64
	Modified string // "2006-01-02 15:04", or "N/A" if stat failed
	Features int
	Counts   map[string]int // GeoJSON geometry type -> occurrences
	Bound    orb.Bound
	HasBound bool
	Err      string // parse or stat failure, shown to the user
}

// Scan lists the .geojson files in dir, sorted by name.
func Scan(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(e.Name()), ".geojson") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Inspect reads and parses a single layer file. Parse and stat failures
// land in the returned info's Err field, never in the error return; a
// broken file is still a listable layer.
func Inspect(path string) *LayerInfo {
	info := &LayerInfo{
		Name:   filepath.Base(path),
		Counts: make(map[string]int),
	}

	if st, err := os.Stat(path); err == nil {
		info.SizeKB = st.Size() / 1024
		info.Modified = st.ModTime().Format("2006-01-02 15:04")
	} else {
		info.Modified = "N/A"
		info.Err = "file info not available"
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		info.Err = fmt.Sprintf("read error: %v", err)
		return info
	}

	geoms, featureCount, err := decode(raw)
	if err != nil {
		info.Err = fmt.Sprintf("parse error: %v", err)
		return info
	}
	info.Features = featureCount

	for _, g := range geoms {
		info.Counts[g.GeoJSONType()]++
		b := g.Bound()
		if !info.HasBound {
			info.Bound = b
			info.HasBound = true
		} else {
			info.Bound = info.Bound.Union(b)
		}
	}

	return info
}

// decode accepts a FeatureCollection, a bare Feature, or a bare
// Geometry, returning the flattened geometries and the feature count.
func decode(raw []byte) ([]orb.Geometry, int, error) {
	if fc, err := geojson.UnmarshalFeatureCollection(raw); err == nil {
		var geoms []orb.Geometry
		for _, f := range fc.Features {
			if f.Geometry != nil {
				geoms = append(geoms, f.Geometry)
			}
		}
		return geoms, len(fc.Features), nil
	}

	if f, err := geojson.UnmarshalFeature(raw); err == nil {
		if f.Geometry == nil {
			return nil, 1, nil
		}
		return []orb.Geometry{f.Geometry}, 1, nil
	}

	g, err := geojson.UnmarshalGeometry(raw)
	if err != nil {
		return nil, 0, err
	}
	return []orb.Geometry{g.Geometry()}, 1, nil
}

// Cache memoizes Inspect per path. Not safe for concurrent use; the
// render loop is the only caller.
type Cache struct {
	dir   string
	infos map[string]*LayerInfo
}

// NewCache creates a cache over the given layer directory.
func NewCache(dir string) *Cache {
	return &Cache{
		dir:   dir,
		infos: make(map[string]*LayerInfo),
	}
}

// Info returns the inspected metadata for the named layer, computing it
// on first request only.
func (c *Cache) Info(name string) *LayerInfo {
	if info, ok := c.infos[name]; ok {
		return info
	}
	info := Inspect(filepath.Join(c.dir, name))
	c.infos[name] = info
	return info
}

// Reset drops every cached entry so the next Info re-reads the file.
func (c *Cache) Reset() {
	c.infos = make(map[string]*LayerInfo)
}
