package app

import (
	"context"
	"os"
	"path/filepath"

	"geomap"
	"geomap/internal/chart"
)

// Result is what a confirmed session hands to the chart renderer.
type Result struct {
	Layers     []chart.Layer
	Options    chart.Options
	OutputPath string
}

// Run drives the render loop until the user confirms a plot, quits, or
// ctx is cancelled. It returns a nil Result when there is nothing to
// plot; cancellation exits cleanly with no partial output.
func (a *App) Run(ctx context.Context) (*Result, error) {
	screen, err := geomap.NewScreen(nil)
	if err != nil {
		return nil, err
	}
	if err := screen.EnterRawMode(); err != nil {
		return nil, err
	}
	defer screen.ExitRawMode()

	events := geomap.NewEvents(ctx, os.Stdin, screen.ResizeChan(), a.cfg.UI.Tick)

	for !a.quit {
		if ctx.Err() != nil {
			return nil, nil
		}

		a.syncList()

		size := screen.Size()
		a.list.Scroll(a.viewportHeight(size.Height))

		// memoize metadata for the highlighted layer before drawing
		if cur := a.list.Current(); cur >= 0 {
			a.cache.Info(a.files[cur])
		}

		a.draw(screen.Buffer())
		screen.Flush()

		ev, ok := events.Next(ctx)
		if !ok {
			return nil, nil
		}
		switch ev.Kind {
		case geomap.EventKey:
			a.handleKey(ev.Key)
		case geomap.EventMouse:
			a.handleMouse(ev.Mouse, size.Width)
		case geomap.EventResize, geomap.EventTick:
			// state is rebuilt from scratch next pass anyway
		}
	}

	if !a.plot {
		return nil, nil
	}
	return a.result(), nil
}

// syncList refilters on pattern change, forced while the search field
// is focused so entering or leaving the mode resyncs immediately.
func (a *App) syncList() {
	a.list.Sync(len(a.files), a.search.String(), a.mode == ModeSearch,
		func(i int) string { return a.files[i] })
}

// result assembles the selected layers, their colors, the combined
// bound and the output path for the renderer.
func (a *App) result() *Result {
	res := &Result{
		OutputPath: filepath.Join(a.cfg.Output.Dir, a.output.String()),
		Options: chart.Options{
			Points:   a.points,
			Lines:    a.lines,
			Polygons: a.polygons,
		},
	}

	for i, sel := range a.selected {
		if !sel {
			continue
		}

		ci := a.colors[i]
		if ci < 0 {
			ci = 0
		}
		res.Layers = append(res.Layers, chart.Layer{
			Path:  filepath.Join(a.cfg.Data.Dir, a.files[i]),
			Color: chart.Palette[ci],
		})

		info := a.cache.Info(a.files[i])
		if info.HasBound {
			if !res.Options.HasBound {
				res.Options.Bound = info.Bound
				res.Options.HasBound = true
			} else {
				res.Options.Bound = res.Options.Bound.Union(info.Bound)
			}
		}
	}

	return res
}
