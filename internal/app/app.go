// Package app wires the terminal runtime to the layer browser: mode
// dispatch, per-frame view construction and the render loop.
package app

import (
	"fmt"

	"geomap"
	"geomap/internal/chart"
	"geomap/internal/config"
	"geomap/internal/geo"
)

// Mode is the current input mode.
type Mode int

const (
	ModeNav    Mode = iota // list navigation and action keys
	ModeRename             // editing the output filename
	ModeSearch             // editing the filter pattern
)

func (m Mode) String() string {
	switch m {
	case ModeRename:
		return "Rename"
	case ModeSearch:
		return "Search"
	default:
		return "Browse"
	}
}

// screenID selects which top-level screen is shown.
type screenID int

const (
	screenMain screenID = iota
	screenHelp
)

// paletteNames mirrors chart.Palette for notifications and row markers.
var paletteNames = []string{"black", "red", "green", "blue", "yellow", "magenta", "cyan"}

// paletteStyles mirrors chart.Palette in terminal colors.
var paletteStyles = []geomap.Color{
	geomap.Black, geomap.Red, geomap.Green, geomap.Blue,
	geomap.Yellow, geomap.Magenta, geomap.Cyan,
}

var helpKeybinds = []string{
	"j/k or arrow keys: navigate file list",
	"space: toggle file selection",
	"enter: plot selected files",
	"c: cycle next assignment color",
	"r: rename output image",
	"/: start fuzzy search",
	"p: toggle points visibility",
	"l: toggle lines visibility",
	"o: toggle polygons visibility",
	"q: quit without plotting",
	"h: show this help screen",
	"click & drag divider: resize panes",
}

// App is the whole UI state. All mutation happens on the render loop
// goroutine; nothing here needs locking.
type App struct {
	cfg config.Config

	files []string
	cache *geo.Cache

	selected []bool
	colors   []int // palette index per file, -1 when unassigned
	colorIdx int   // next color to assign

	points   bool
	lines    bool
	polygons bool

	output     *geomap.TextField
	prevOutput string
	search     *geomap.TextField
	prevSearch string

	list geomap.ListView

	mode   Mode
	screen screenID

	// the one key this frame's focused Field consumes
	pending geomap.Key

	notification string

	splitPercent int
	resizing     bool

	quit bool
	plot bool
}

// New builds the initial state over the scanned layer files.
func New(cfg config.Config, files []string) *App {
	a := &App{
		cfg:          cfg,
		files:        files,
		cache:        geo.NewCache(cfg.Data.Dir),
		selected:     make([]bool, len(files)),
		colors:       make([]int, len(files)),
		points:       true,
		lines:        true,
		polygons:     true,
		output:       geomap.NewTextField(cfg.Output.Name),
		search:       geomap.NewTextField(""),
		splitPercent: cfg.UI.SplitPercent,
		notification: "Select GeoJSON layers to plot",
	}
	for i := range a.colors {
		a.colors[i] = -1
	}
	if len(files) == 0 {
		a.notification = fmt.Sprintf("No .geojson files found in %s", cfg.Data.Dir)
	}
	return a
}

// handleKey dispatches one keypress according to the current screen and
// mode. Any key leaves the help screen; the notification line is
// cleared on every keypress, so stale messages never linger.
func (a *App) handleKey(k geomap.Key) {
	a.notification = ""

	if a.screen == screenHelp {
		a.screen = screenMain
		return
	}

	if k.Code == geomap.KeyCtrlC {
		a.quit = true
		return
	}

	switch a.mode {
	case ModeNav:
		a.handleNavKey(k)
	case ModeRename:
		a.handleRenameKey(k)
	case ModeSearch:
		a.handleSearchKey(k)
	}
}

func (a *App) handleNavKey(k geomap.Key) {
	switch {
	case k.Code == geomap.KeyDown || k.Rune == 'j':
		a.list.MoveDown()
	case k.Code == geomap.KeyUp || k.Rune == 'k':
		a.list.MoveUp()
	case k.Code == geomap.KeyRune && k.Rune == ' ':
		a.toggleSelection()
	case k.Code == geomap.KeyEnter:
		if a.selectedCount() > 0 {
			a.plot = true
			a.quit = true
			a.notification = fmt.Sprintf("Plotting %d selected layers...", a.selectedCount())
		} else {
			a.notification = "No layers selected to plot. Use space to select."
		}
	case k.Rune == 'c' || k.Rune == 'C':
		a.colorIdx = (a.colorIdx + 1) % len(chart.Palette)
		a.notification = fmt.Sprintf("Next assignment color: %s", paletteNames[a.colorIdx])
	case k.Rune == 'r' || k.Rune == 'R':
		a.mode = ModeRename
		a.prevOutput = a.output.String()
		a.output.SetCursor(a.output.Len())
		a.notification = "Editing output name. Enter to confirm, Esc to cancel."
	case k.Rune == '/':
		a.mode = ModeSearch
		a.prevSearch = a.search.String()
		a.search.SetCursor(a.search.Len())
		a.notification = "Enter search pattern. Enter to apply, Esc to cancel."
	case k.Rune == 'p' || k.Rune == 'P':
		a.points = !a.points
		a.notification = fmt.Sprintf("Points visibility: %s", onOff(a.points))
	case k.Rune == 'l' || k.Rune == 'L':
		a.lines = !a.lines
		a.notification = fmt.Sprintf("Lines visibility: %s", onOff(a.lines))
	case k.Rune == 'o' || k.Rune == 'O':
		a.polygons = !a.polygons
		a.notification = fmt.Sprintf("Polygons visibility: %s", onOff(a.polygons))
	case k.Rune == 'q' || k.Rune == 'Q':
		a.quit = true
	case k.Rune == 'h' || k.Rune == 'H':
		a.screen = screenHelp
	}
}

func (a *App) handleRenameKey(k geomap.Key) {
	switch k.Code {
	case geomap.KeyEnter:
		name := a.output.String()
		switch {
		case name == "":
			a.notification = "Output name cannot be empty. Reverted."
			a.output.SetText(a.prevOutput)
		case !chart.ValidName(name):
			a.notification = "Output name must end with .png, .jpg, .jpeg or .bmp. Reverted."
			a.output.SetText(a.prevOutput)
		default:
			a.notification = fmt.Sprintf("Output name set to %s", name)
		}
		a.mode = ModeNav
	case geomap.KeyEscape:
		a.output.SetText(a.prevOutput)
		a.notification = "Rename cancelled."
		a.mode = ModeNav
	default:
		a.pending = k
	}
}

func (a *App) handleSearchKey(k geomap.Key) {
	switch k.Code {
	case geomap.KeyEnter:
		if a.search.String() == "" {
			a.notification = "Search cleared. Showing all layers."
		} else {
			a.notification = fmt.Sprintf("Filtering by %q (%d results)", a.search.String(), a.list.Len())
		}
		a.mode = ModeNav
	case geomap.KeyEscape:
		a.search.SetText(a.prevSearch)
		a.notification = "Search cancelled."
		a.mode = ModeNav
	default:
		a.pending = k
	}
}

// toggleSelection flips the current row's selection, assigning the next
// palette color on select and releasing it on deselect.
func (a *App) toggleSelection() {
	cur := a.list.Current()
	if cur < 0 {
		a.notification = "No layers to select in current view."
		return
	}

	a.selected[cur] = !a.selected[cur]
	if a.selected[cur] {
		a.colors[cur] = a.colorIdx
		a.notification = fmt.Sprintf("Selected %s (%s)", a.files[cur], paletteNames[a.colorIdx])
		a.colorIdx = (a.colorIdx + 1) % len(chart.Palette)
	} else {
		a.colors[cur] = -1
		a.notification = fmt.Sprintf("Deselected %s", a.files[cur])
	}
}

// handleMouse implements divider dragging: press near the divider to
// grab it, drag to move it, release to let go. The split is a
// percentage of the terminal width clamped to [10, 90].
func (a *App) handleMouse(m geomap.Mouse, termWidth int) {
	if a.screen != screenMain || termWidth <= 0 {
		return
	}

	dividerCol := termWidth * a.splitPercent / 100

	switch {
	case m.Button == geomap.MouseLeft && m.Action == geomap.MousePress:
		if m.X >= dividerCol-1 && m.X <= dividerCol+1 {
			a.resizing = true
		}
	case m.Button == geomap.MouseLeft && m.Action == geomap.MouseDrag:
		if a.resizing {
			pct := int(float64(m.X)/float64(termWidth)*100 + 0.5)
			if pct < 10 {
				pct = 10
			}
			if pct > 90 {
				pct = 90
			}
			a.splitPercent = pct
		}
	case m.Button == geomap.MouseLeft && m.Action == geomap.MouseRelease:
		a.resizing = false
	}
}

func (a *App) selectedCount() int {
	n := 0
	for _, s := range a.selected {
		if s {
			n++
		}
	}
	return n
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}
