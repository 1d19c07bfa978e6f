package geomap

import (
	"context"
	"io"
	"time"
)

// KeyCode identifies a decoded key.
type KeyCode int

const (
	KeyNone KeyCode = iota // zero value; no pending key this frame
	KeyRune                // printable rune, see Key.Rune
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyTab
	KeyCtrlC
)

// Key is a single decoded keypress.
type Key struct {
	Code KeyCode
	Rune rune // valid when Code == KeyRune
}

// MouseButton identifies which button a mouse event refers to.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
	MouseNone
)

// MouseAction is what happened with the button.
type MouseAction int

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseDrag
	MouseMove
)

// Mouse is a decoded SGR mouse event with 0-indexed cell coordinates.
type Mouse struct {
	Button MouseButton
	Action MouseAction
	X, Y   int
}

// EventKind discriminates the Event union.
type EventKind int

const (
	EventKey EventKind = iota
	EventMouse
	EventResize
	EventTick
)

// Event is one item from the input stream: a key, a mouse event, a
// terminal resize, or a timer tick when nothing else arrived in time.
type Event struct {
	Kind   EventKind
	Key    Key
	Mouse  Mouse
	Resize Size
}

// Events decodes terminal input into a stream of events. A reader
// goroutine owns the blocking reads; the consumer polls with Next.
type Events struct {
	events chan Event
	tick   time.Duration
}

// NewEvents starts the input decoding goroutine reading from r (usually
// os.Stdin). resize, if non-nil, is folded into the stream. tick is the
// maximum time Next blocks before synthesizing a tick event, so the
// consumer's loop keeps turning even with no input. The goroutine exits
// when ctx is cancelled or the reader hits EOF.
func NewEvents(ctx context.Context, r io.Reader, resize <-chan Size, tick time.Duration) *Events {
	e := &Events{
		events: make(chan Event, 16),
		tick:   tick,
	}

	go e.readLoop(ctx, r)

	if resize != nil {
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case sz := <-resize:
					select {
					case e.events <- Event{Kind: EventResize, Resize: sz}:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	return e
}

// Next returns the next event, or a tick event if none arrives within
// the tick interval. Returns false when ctx is done.
func (e *Events) Next(ctx context.Context) (Event, bool) {
	t := time.NewTimer(e.tick)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return Event{}, false
	case ev := <-e.events:
		return ev, true
	case <-t.C:
		return Event{Kind: EventTick}, true
	}
}

// readLoop reads raw bytes and decodes them into events. Reads block in
// raw mode until at least one byte arrives; a full escape sequence is
// normally delivered in one read, so decoding works on the chunk.
func (e *Events) readLoop(ctx context.Context, r io.Reader) {
	buf := make([]byte, 256)
	for {
		n, err := r.Read(buf)
		if err != nil {
			return
		}
		chunk := buf[:n]
		for len(chunk) > 0 {
			ev, consumed := decode(chunk)
			if consumed == 0 {
				// unfinished sequence at the end of the chunk; drop it
				// rather than blocking the stream on a stray ESC
				break
			}
			chunk = chunk[consumed:]
			if ev == nil {
				continue
			}
			select {
			case e.events <- *ev:
			case <-ctx.Done():
				return
			}
		}
	}
}

// decode decodes one event from the front of the chunk. Returns the
// event (nil for sequences we recognize but ignore) and the number of
// bytes consumed; consumed == 0 means the chunk ends mid-sequence.
func decode(chunk []byte) (*Event, int) {
	c := chunk[0]

	if c != 0x1b {
		return decodePlain(chunk)
	}

	// lone escape
	if len(chunk) == 1 {
		return &Event{Kind: EventKey, Key: Key{Code: KeyEscape}}, 1
	}

	if chunk[1] == '[' {
		return decodeCSI(chunk)
	}

	// alt-prefixed key; treat the escape as its own keypress
	return &Event{Kind: EventKey, Key: Key{Code: KeyEscape}}, 1
}

// decodePlain decodes a non-escape byte sequence: control characters
// and UTF-8 runes.
func decodePlain(chunk []byte) (*Event, int) {
	switch chunk[0] {
	case 0x03:
		return &Event{Kind: EventKey, Key: Key{Code: KeyCtrlC}}, 1
	case '\r', '\n':
		return &Event{Kind: EventKey, Key: Key{Code: KeyEnter}}, 1
	case '\t':
		return &Event{Kind: EventKey, Key: Key{Code: KeyTab}}, 1
	case 0x7f, 0x08:
		return &Event{Kind: EventKey, Key: Key{Code: KeyBackspace}}, 1
	}

	if chunk[0] < 0x20 {
		// other control chars are ignored
		return nil, 1
	}

	r, size := decodeRune(chunk)
	if size == 0 {
		return nil, 0
	}
	return &Event{Kind: EventKey, Key: Key{Code: KeyRune, Rune: r}}, size
}

// decodeRune decodes a single UTF-8 rune from the chunk without pulling
// in unicode/utf8 error-handling semantics: a truncated sequence
// returns size 0 so the caller can wait for more bytes.
func decodeRune(chunk []byte) (rune, int) {
	c := chunk[0]
	var size int
	switch {
	case c < 0x80:
		return rune(c), 1
	case c&0xe0 == 0xc0:
		size = 2
	case c&0xf0 == 0xe0:
		size = 3
	case c&0xf8 == 0xf0:
		size = 4
	default:
		// invalid lead byte, skip it
		return 0xfffd, 1
	}
	if len(chunk) < size {
		return 0, 0
	}
	r := rune(c & (0x7f >> size))
	for i := 1; i < size; i++ {
		if chunk[i]&0xc0 != 0x80 {
			return 0xfffd, 1
		}
		r = r<<6 | rune(chunk[i]&0x3f)
	}
	return r, size
}

// decodeCSI decodes an ESC [ sequence: cursor keys, delete, and SGR
// mouse reports.
func decodeCSI(chunk []byte) (*Event, int) {
	if len(chunk) < 3 {
		return nil, 0
	}

	switch chunk[2] {
	case 'A':
		return &Event{Kind: EventKey, Key: Key{Code: KeyUp}}, 3
	case 'B':
		return &Event{Kind: EventKey, Key: Key{Code: KeyDown}}, 3
	case 'C':
		return &Event{Kind: EventKey, Key: Key{Code: KeyRight}}, 3
	case 'D':
		return &Event{Kind: EventKey, Key: Key{Code: KeyLeft}}, 3
	case 'H':
		return &Event{Kind: EventKey, Key: Key{Code: KeyHome}}, 3
	case 'F':
		return &Event{Kind: EventKey, Key: Key{Code: KeyEnd}}, 3
	case '<':
		return decodeSGRMouse(chunk)
	}

	// parameterized sequences like \x1b[3~
	end := 2
	for end < len(chunk) {
		b := chunk[end]
		if b >= '0' && b <= '9' || b == ';' {
			end++
			continue
		}
		break
	}
	if end >= len(chunk) {
		return nil, 0
	}

	final := chunk[end]
	params := string(chunk[2:end])
	consumed := end + 1

	if final == '~' {
		switch params {
		case "1", "7":
			return &Event{Kind: EventKey, Key: Key{Code: KeyHome}}, consumed
		case "3":
			return &Event{Kind: EventKey, Key: Key{Code: KeyDelete}}, consumed
		case "4", "8":
			return &Event{Kind: EventKey, Key: Key{Code: KeyEnd}}, consumed
		}
		return nil, consumed
	}

	return nil, consumed
}

// decodeSGRMouse decodes \x1b[<b;x;yM (press/drag) or ...m (release).
func decodeSGRMouse(chunk []byte) (*Event, int) {
	// find the final byte
	end := 3
	for end < len(chunk) && chunk[end] != 'M' && chunk[end] != 'm' {
		end++
	}
	if end >= len(chunk) {
		return nil, 0
	}
	release := chunk[end] == 'm'
	consumed := end + 1

	var nums [3]int
	ni := 0
	val := 0
	seen := false
	for _, b := range chunk[3:end] {
		if b >= '0' && b <= '9' {
			val = val*10 + int(b-'0')
			seen = true
			continue
		}
		if b == ';' && ni < 2 {
			nums[ni] = val
			ni++
			val = 0
			seen = false
			continue
		}
		return nil, consumed
	}
	if ni != 2 || !seen {
		return nil, consumed
	}
	nums[2] = val

	cb, x, y := nums[0], nums[1]-1, nums[2]-1

	m := Mouse{X: x, Y: y}
	switch {
	case cb&64 != 0:
		if cb&1 == 0 {
			m.Button = MouseWheelUp
		} else {
			m.Button = MouseWheelDown
		}
		m.Action = MousePress
	default:
		switch cb & 3 {
		case 0:
			m.Button = MouseLeft
		case 1:
			m.Button = MouseMiddle
		case 2:
			m.Button = MouseRight
		case 3:
			m.Button = MouseNone
		}
		switch {
		case release:
			m.Action = MouseRelease
		case cb&32 != 0:
			if m.Button == MouseNone {
				m.Action = MouseMove
			} else {
				m.Action = MouseDrag
			}
		default:
			m.Action = MousePress
		}
	}

	return &Event{Kind: EventMouse, Mouse: m}, consumed
}
