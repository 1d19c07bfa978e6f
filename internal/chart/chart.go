// Package chart renders selected GeoJSON layers to a bitmap image.
package chart

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"golang.org/x/image/bmp"
)

const (
	defaultWidth  = 1024
	defaultHeight = 768
	pointRadius   = 5.0
	padding       = 0.1 // fraction of the bound added on each side
)

// background is the ocean fill behind all layers.
var background = color.RGBA{R: 173, G: 216, B: 230, A: 255}

// Palette is the cycle of layer colors assigned on selection.
var Palette = []color.RGBA{
	{0, 0, 0, 255},       // black
	{255, 0, 0, 255},     // red
	{0, 255, 0, 255},     // green
	{0, 0, 255, 255},     // blue
	{255, 255, 0, 255},   // yellow
	{255, 0, 255, 255},   // magenta
	{0, 255, 255, 255},   // cyan
}

// Suffixes are the accepted output image extensions.
var Suffixes = []string{".png", ".jpg", ".jpeg", ".bmp"}

// ValidName reports whether name is a usable output filename: a
// non-empty base plus one of the accepted suffixes.
func ValidName(name string) bool {
	lower := strings.ToLower(name)
	for _, s := range Suffixes {
		if strings.HasSuffix(lower, s) && len(name) > len(s) {
			return true
		}
	}
	return false
}

// Layer is one input file with its assigned color.
type Layer struct {
	Path  string
	Color color.Color
}

// Options controls a render pass.
type Options struct {
	Width, Height int
	Points        bool
	Lines         bool
	Polygons      bool
	Bound         orb.Bound // combined bound of the selected layers
	HasBound      bool      // false falls back to the whole world
}

// viewport maps lon/lat to pixel coordinates.
type viewport struct {
	minLon, minLat float64
	maxLon, maxLat float64
	width, height  float64
}

// newViewport pads the bound by 10% per side (with an epsilon floor so
// a single point still gets a visible area) and clamps to world limits.
func newViewport(opts Options) viewport {
	minLon, minLat := -180.0, -90.0
	maxLon, maxLat := 180.0, 90.0

	if opts.HasBound {
		const epsilon = 0.001
		b := opts.Bound

		lonRange := b.Max[0] - b.Min[0]
		if lonRange < epsilon {
			lonRange = epsilon
		}
		latRange := b.Max[1] - b.Min[1]
		if latRange < epsilon {
			latRange = epsilon
		}

		minLon = max(b.Min[0]-lonRange*padding, -180)
		maxLon = min(b.Max[0]+lonRange*padding, 180)
		minLat = max(b.Min[1]-latRange*padding, -90)
		maxLat = min(b.Max[1]+latRange*padding, 90)
	}

	return viewport{
		minLon: minLon, minLat: minLat,
		maxLon: maxLon, maxLat: maxLat,
		width:  float64(opts.Width),
		height: float64(opts.Height),
	}
}

// project converts a lon/lat point to pixel coordinates, y growing down.
func (v viewport) project(p orb.Point) (float64, float64) {
	x := (p[0] - v.minLon) / (v.maxLon - v.minLon) * v.width
	y := v.height - (p[1]-v.minLat)/(v.maxLat-v.minLat)*v.height
	return x, y
}

// Render draws the layers onto a fresh canvas. A layer that fails to
// parse is skipped; rendering continues with the rest.
func Render(layers []Layer, opts Options) image.Image {
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultHeight
	}

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetColor(background)
	dc.Clear()

	vp := newViewport(opts)

	for _, layer := range layers {
		raw, err := os.ReadFile(layer.Path)
		if err != nil {
			continue
		}
		fc, err := geojson.UnmarshalFeatureCollection(raw)
		if err != nil {
			if f, ferr := geojson.UnmarshalFeature(raw); ferr == nil {
				fc = geojson.NewFeatureCollection()
				fc.Append(f)
			} else if g, gerr := geojson.UnmarshalGeometry(raw); gerr == nil {
				fc = geojson.NewFeatureCollection()
				fc.Append(geojson.NewFeature(g.Geometry()))
			} else {
				continue
			}
		}

		c := layer.Color
		if c == nil {
			c = Palette[0]
		}
		dc.SetColor(c)

		for _, f := range fc.Features {
			if f.Geometry != nil {
				drawGeometry(dc, vp, f.Geometry, opts)
			}
		}
	}

	return dc.Image()
}

func drawGeometry(dc *gg.Context, vp viewport, g orb.Geometry, opts Options) {
	switch geom := g.(type) {
	case orb.Point:
		if opts.Points {
			drawPoint(dc, vp, geom)
		}
	case orb.MultiPoint:
		if opts.Points {
			for _, p := range geom {
				drawPoint(dc, vp, p)
			}
		}
	case orb.LineString:
		if opts.Lines {
			drawLine(dc, vp, geom, false)
		}
	case orb.MultiLineString:
		if opts.Lines {
			for _, ls := range geom {
				drawLine(dc, vp, ls, false)
			}
		}
	case orb.Polygon:
		if opts.Polygons {
			drawPolygon(dc, vp, geom)
		}
	case orb.MultiPolygon:
		if opts.Polygons {
			for _, poly := range geom {
				drawPolygon(dc, vp, poly)
			}
		}
	case orb.Collection:
		for _, sub := range geom {
			drawGeometry(dc, vp, sub, opts)
		}
	}
}

func drawPoint(dc *gg.Context, vp viewport, p orb.Point) {
	x, y := vp.project(p)
	dc.DrawCircle(x, y, pointRadius)
	dc.Fill()
}

func drawLine(dc *gg.Context, vp viewport, ls orb.LineString, closed bool) {
	if len(ls) == 0 {
		return
	}
	x, y := vp.project(ls[0])
	dc.MoveTo(x, y)
	for _, p := range ls[1:] {
		x, y = vp.project(p)
		dc.LineTo(x, y)
	}
	if closed {
		dc.ClosePath()
	}
	dc.SetLineWidth(1)
	dc.Stroke()
}

// drawPolygon strokes each ring as a closed outline.
func drawPolygon(dc *gg.Context, vp viewport, poly orb.Polygon) {
	for _, ring := range poly {
		drawLine(dc, vp, orb.LineString(ring), true)
	}
}

// Save encodes the image to path, choosing the codec from the suffix.
// The parent directory is created if needed.
func Save(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		err = png.Encode(f, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
	case ".bmp":
		err = bmp.Encode(f, img)
	default:
		err = fmt.Errorf("unsupported image suffix %q", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
