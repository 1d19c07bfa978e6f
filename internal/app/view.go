package app

import (
	"fmt"
	"sort"

	"geomap"
)

var (
	styleDefault = geomap.DefaultStyle()
	styleHeader  = geomap.DefaultStyle().Bold()
	styleDim     = geomap.DefaultStyle().Dim()
	styleSelect  = geomap.DefaultStyle().Inverse()
	styleError   = geomap.DefaultStyle().Foreground(geomap.Red)
	styleBorder  = geomap.DefaultStyle().Foreground(geomap.Cyan)
)

// searchVisible reports whether the filter row occupies a list line.
func (a *App) searchVisible() bool {
	return a.mode == ModeSearch || a.search.Len() > 0
}

// viewportHeight is the number of list rows visible for a terminal of
// height h: everything minus the pane border, the notification line and
// the footer, minus one more when the filter row is shown.
func (a *App) viewportHeight(h int) int {
	vh := h - 4
	if a.searchVisible() {
		vh--
	}
	if vh < 0 {
		vh = 0
	}
	return vh
}

// draw rebuilds the whole frame into the buffer. Nothing is retained
// between frames; this runs once per loop iteration.
func (a *App) draw(buf *geomap.Buffer) {
	buf.Clear()
	w, h := buf.Size()

	if a.screen == screenHelp {
		a.drawHelp(buf, w, h)
	} else {
		a.drawMain(buf, w, h)
	}

	a.drawChrome(buf, w, h)

	// the focused field consumed this frame's key (or ignored KeyNone)
	a.pending = geomap.Key{}
}

func (a *App) drawMain(buf *geomap.Buffer, w, h int) {
	contentH := h - 2
	if contentH < 2 || w < 10 {
		return
	}

	lw := w * a.splitPercent / 100
	if lw < 4 {
		lw = 4
	}
	if lw > w-4 {
		lw = w - 4
	}

	buf.DrawBorder(0, 0, lw, contentH, styleBorder)
	buf.DrawBorder(lw, 0, w-lw, contentH, styleBorder)
	buf.WriteStringClipped(2, 0, " Layers ", styleHeader, lw-3)
	buf.WriteStringClipped(lw+2, 0, " Details ", styleHeader, w-lw-3)

	a.drawList(buf, 1, 1, lw-2, contentH-2)
	a.drawDetails(buf, lw+2, 1, w-lw-4)
}

// drawList renders the filter row (when active) and the visible slice
// of matched layer rows.
func (a *App) drawList(buf *geomap.Buffer, x, y, width, height int) {
	if width < 8 || height < 1 {
		return
	}

	var l geomap.Layout
	l.Open(geomap.Pt(x, y), geomap.Vertical)

	rows := height
	if a.searchVisible() {
		l.Push(geomap.Horizontal)
		l.Label("/", 1, styleHeader)
		l.Field(a.search, width-1, styleDefault, a.fieldKey(ModeSearch))
		l.Pop()
		rows--
	}

	if a.list.Empty() {
		l.Label("  (no matching layers)", width, styleDim)
	}

	for pos := a.list.Offset(); pos < a.list.Offset()+rows; pos++ {
		idx := a.list.At(pos)
		if idx < 0 {
			break
		}

		rowStyle := styleDefault
		if pos == a.list.Selection() {
			rowStyle = styleSelect
		}

		marker := "[ ]"
		markerStyle := rowStyle
		if a.selected[idx] {
			marker = "[x]"
			if ci := a.colors[idx]; ci >= 0 {
				markerStyle = rowStyle.Foreground(paletteStyles[ci])
			}
		}

		l.Push(geomap.Horizontal)
		l.Label(fmt.Sprintf("%3d ", pos+1), 4, rowStyle)
		l.Label(marker, 4, markerStyle)
		l.Label(a.files[idx], width-8, rowStyle)
		l.Pop()
	}

	l.Close()
	l.Paint(buf)
}

// drawDetails renders the info pane for the current layer plus the
// plotting options, including the output name field.
func (a *App) drawDetails(buf *geomap.Buffer, x, y, width int) {
	if width < 8 {
		return
	}

	var l geomap.Layout
	l.Open(geomap.Pt(x, y), geomap.Vertical)

	l.Label("Layer Info", width, styleHeader)
	if cur := a.list.Current(); cur >= 0 {
		info := a.cache.Info(a.files[cur])
		l.Label(info.Name, width, styleDefault)
		l.Label(fmt.Sprintf("Size: %d KB", info.SizeKB), width, styleDefault)
		l.Label(fmt.Sprintf("Modified: %s", info.Modified), width, styleDefault)
		l.Label(fmt.Sprintf("Features: %d", info.Features), width, styleDefault)

		kinds := make([]string, 0, len(info.Counts))
		for k := range info.Counts {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		for _, k := range kinds {
			l.Label(fmt.Sprintf("  %s: %d", k, info.Counts[k]), width, styleDefault)
		}

		if info.HasBound {
			b := info.Bound
			l.Label(fmt.Sprintf("BBox: [%.2f, %.2f, %.2f, %.2f]",
				b.Min[0], b.Min[1], b.Max[0], b.Max[1]), width, styleDefault)
		}
		if info.Err != "" {
			l.Label(info.Err, width, styleError)
		}
	} else {
		l.Label("No layer selected", width, styleDim)
	}

	l.Spacer(geomap.Pt(0, 1))

	l.Label("Options", width, styleHeader)
	l.Label(fmt.Sprintf("Next color: %s", paletteNames[a.colorIdx]), width,
		styleDefault.Foreground(paletteStyles[a.colorIdx]))
	l.Label(fmt.Sprintf("%s Points (p)", checkbox(a.points)), width, styleDefault)
	l.Label(fmt.Sprintf("%s Lines (l)", checkbox(a.lines)), width, styleDefault)
	l.Label(fmt.Sprintf("%s Polygons (o)", checkbox(a.polygons)), width, styleDefault)

	l.Push(geomap.Horizontal)
	l.Label("Output: ", 8, styleDefault)
	outStyle := styleDefault
	if a.mode == ModeRename {
		outStyle = styleHeader
	}
	l.Field(a.output, width-8, outStyle, a.fieldKey(ModeRename))
	l.Pop()

	l.Close()
	l.Paint(buf)
}

func (a *App) drawHelp(buf *geomap.Buffer, w, h int) {
	contentH := h - 2
	if contentH < 3 || w < 10 {
		return
	}

	buf.DrawBorder(0, 0, w, contentH, styleBorder)
	buf.WriteStringClipped(2, 0, " Help ", styleHeader, w-3)

	var l geomap.Layout
	l.Open(geomap.Pt(2, 1), geomap.Vertical)
	l.Label("Keybinds:", w-4, styleHeader)
	for _, line := range helpKeybinds {
		l.Label("  "+line, w-4, styleDefault)
	}
	l.Spacer(geomap.Pt(0, 1))
	l.Label("Press any key to return.", w-4, styleDim)
	l.Close()
	l.Paint(buf)
}

// drawChrome renders the notification line and the footer.
func (a *App) drawChrome(buf *geomap.Buffer, w, h int) {
	if h < 2 {
		return
	}

	var l geomap.Layout
	l.Open(geomap.Pt(0, h-2), geomap.Vertical)
	l.Label(a.notification, w, styleDim)
	l.Push(geomap.Horizontal)
	l.Label(fmt.Sprintf(" %s ", a.mode), 9, styleSelect)
	l.Label(" q: quit | h: help | enter: plot", w-9, styleDim)
	l.Pop()
	l.Close()
	l.Paint(buf)
}

// fieldKey hands the pending key to the field focused by mode m; any
// other field sees no key this frame.
func (a *App) fieldKey(m Mode) geomap.Key {
	if a.mode == m {
		return a.pending
	}
	return geomap.Key{}
}

func checkbox(b bool) string {
	if b {
		return "[x]"
	}
	return "[ ]"
}
