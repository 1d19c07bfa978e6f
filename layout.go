package geomap

import (
	"github.com/mattn/go-runewidth"
)

// Direction specifies which way a frame stacks its children.
type Direction int

const (
	Vertical   Direction = iota // children placed one below another
	Horizontal                  // children placed side by side
)

// axis returns the unit vector along which a frame grows.
func (d Direction) axis() Point {
	if d == Horizontal {
		return Pt(1, 0)
	}
	return Pt(0, 1)
}

// Frame is one entry in the layout nesting: a direction, an origin, and
// the extent accumulated from the children placed so far. The extent
// starts at (0,0) and only grows for the lifetime of the frame.
type Frame struct {
	Dir    Direction
	Origin Point
	Extent Point
}

// next returns the next available position inside the frame: the origin
// plus the extent projected along the frame's own growth axis. This is
// the entire placement algorithm; widgets never choose positions.
func (f *Frame) next() Point {
	return f.Origin.Add(f.Extent.Mul(f.Dir.axis()))
}

// grow folds a child of the given size into the frame's extent.
// Vertical frames sum heights and max widths; Horizontal frames sum
// widths and max heights.
func (f *Frame) grow(size Point) {
	if f.Dir == Vertical {
		if size.X > f.Extent.X {
			f.Extent.X = size.X
		}
		f.Extent.Y += size.Y
	} else {
		f.Extent.X += size.X
		if size.Y > f.Extent.Y {
			f.Extent.Y = size.Y
		}
	}
}

// DrawOp is a single emitted draw instruction: paint Text at Pos,
// clipped or padded to Width cells, in Style. The consuming renderer
// owns actual screen painting.
type DrawOp struct {
	Pos   Point
	Width int
	Text  string
	Style Style
}

// Layout converts a procedural sequence of widget calls into absolute
// positions via a stack of frames, emitting draw ops along the way.
// It is rebuilt from scratch every frame; nothing is retained.
//
// Stack discipline is enforced with panics: an unbalanced Open / Push /
// Pop / Close is a bug in the widget tree construction, not a runtime
// condition, so it must not be absorbed.
type Layout struct {
	frames []Frame
	ops    []DrawOp
}

// Reset clears the layout for reuse, keeping capacity.
func (l *Layout) Reset() {
	l.frames = l.frames[:0]
	l.ops = l.ops[:0]
}

// Open pushes the root frame. Panics if a frame is already open.
func (l *Layout) Open(origin Point, dir Direction) {
	if len(l.frames) != 0 {
		panic("layout: Open with a frame already open (missing Close?)")
	}
	l.frames = append(l.frames, Frame{Dir: dir, Origin: origin})
}

// Push opens a nested frame anchored at the parent's next position.
// Panics if there is no parent frame.
func (l *Layout) Push(dir Direction) {
	if len(l.frames) == 0 {
		panic("layout: Push without an open root (missing Open?)")
	}
	parent := &l.frames[len(l.frames)-1]
	l.frames = append(l.frames, Frame{Dir: dir, Origin: parent.next()})
}

// Pop closes the top frame and folds its final extent into its parent.
// Panics if it would pop the root; that belongs to Close.
func (l *Layout) Pop() {
	if len(l.frames) < 2 {
		panic("layout: Pop without matching Push")
	}
	top := l.frames[len(l.frames)-1]
	l.frames = l.frames[:len(l.frames)-1]
	l.frames[len(l.frames)-1].grow(top.Extent)
}

// Close removes the root frame and returns its final extent.
// Panics unless exactly the root remains.
func (l *Layout) Close() Point {
	if len(l.frames) != 1 {
		panic("layout: Close without matching Open")
	}
	root := l.frames[0]
	l.frames = l.frames[:0]
	return root.Extent
}

// Depth returns the number of open frames.
func (l *Layout) Depth() int {
	return len(l.frames)
}

func (l *Layout) top() *Frame {
	if len(l.frames) == 0 {
		panic("layout: widget call with no open frame")
	}
	return &l.frames[len(l.frames)-1]
}

// Label places text at the top frame's next position and grows the
// frame by (width, 1). The width is caller-declared, not measured from
// the text: fixed-column layouts stay stable regardless of content, and
// the renderer clips or pads to match.
func (l *Layout) Label(text string, width int, style Style) {
	f := l.top()
	l.ops = append(l.ops, DrawOp{Pos: f.next(), Width: width, Text: text, Style: style})
	f.grow(Pt(width, 1))
}

// Field places an editable text field. The single pending key is applied
// to the field first, then the buffer is drawn padded to width, then a
// one-cell highlight marks the cursor. Growth is identical to Label.
//
// The cursor cell shows the rune under the cursor (or a space past the
// end) in the inverse of the field style, at the column given by the
// display width of the runes before the cursor.
func (l *Layout) Field(field *TextField, width int, style Style, pending Key) {
	field.Apply(pending)

	f := l.top()
	pos := f.next()
	text := field.String()
	l.ops = append(l.ops, DrawOp{Pos: pos, Width: width, Text: text, Style: style})

	runes := []rune(text)
	cur := field.Cursor()
	col := runewidth.StringWidth(string(runes[:cur]))
	under := " "
	if cur < len(runes) {
		under = string(runes[cur])
	}
	if col < width {
		l.ops = append(l.ops, DrawOp{
			Pos:   Pt(pos.X+col, pos.Y),
			Width: 1,
			Text:  under,
			Style: style.Inverse(),
		})
	}

	f.grow(Pt(width, 1))
}

// Spacer advances the top frame by a blank region of the given size
// without emitting any draw op.
func (l *Layout) Spacer(size Point) {
	l.top().grow(size)
}

// Ops returns the draw ops emitted so far this frame.
func (l *Layout) Ops() []DrawOp {
	return l.ops
}

// Paint renders every emitted op into the buffer, clipping each op's
// text to its declared width and clearing the remainder of the cell run.
func (l *Layout) Paint(buf *Buffer) {
	for _, op := range l.ops {
		n := buf.WriteStringClipped(op.Pos.X, op.Pos.Y, op.Text, op.Style, op.Width)
		for x := op.Pos.X + n; x < op.Pos.X+op.Width; x++ {
			buf.Set(x, op.Pos.Y, NewCell(' ', op.Style))
		}
	}
}
