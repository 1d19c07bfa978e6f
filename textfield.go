package geomap

// TextField is a single-line editable buffer with a cursor.
// The buffer is a rune slice and the cursor is a rune index in
// [0, len], so editing stays correct for non-ASCII input. The cursor is
// re-clamped before every edit because the buffer may have been reset
// externally (e.g. reverted on cancel) since the cursor was last valid.
type TextField struct {
	runes  []rune
	cursor int
}

// NewTextField creates a field pre-filled with the given text, cursor at 0.
func NewTextField(text string) *TextField {
	return &TextField{runes: []rune(text)}
}

// String returns the field contents.
func (f *TextField) String() string {
	return string(f.runes)
}

// Len returns the number of runes in the buffer.
func (f *TextField) Len() int {
	return len(f.runes)
}

// Cursor returns the rune index of the cursor.
func (f *TextField) Cursor() int {
	f.clamp()
	return f.cursor
}

// SetText replaces the buffer contents. The cursor is clamped lazily on
// the next edit rather than eagerly here.
func (f *TextField) SetText(text string) {
	f.runes = []rune(text)
}

// SetCursor moves the cursor to the given rune index, clamped to bounds.
func (f *TextField) SetCursor(i int) {
	f.cursor = i
	f.clamp()
}

func (f *TextField) clamp() {
	if f.cursor < 0 {
		f.cursor = 0
	}
	if f.cursor > len(f.runes) {
		f.cursor = len(f.runes)
	}
}

// Apply consumes a single key. Printable runes insert at the cursor,
// Left/Right move it, Backspace deletes before it, Delete deletes at it.
// Any other key leaves the field untouched and returns false so the
// caller's mode dispatch can handle it (Enter, Escape, ...).
// At most one key is applied per frame; there is no input queue here.
func (f *TextField) Apply(k Key) bool {
	f.clamp()

	switch k.Code {
	case KeyRune:
		if f.cursor >= len(f.runes) {
			f.runes = append(f.runes, k.Rune)
		} else {
			f.runes = append(f.runes, 0)
			copy(f.runes[f.cursor+1:], f.runes[f.cursor:])
			f.runes[f.cursor] = k.Rune
		}
		f.cursor++
		return true

	case KeyLeft:
		if f.cursor > 0 {
			f.cursor--
		}
		return true

	case KeyRight:
		if f.cursor < len(f.runes) {
			f.cursor++
		}
		return true

	case KeyBackspace:
		if f.cursor > 0 {
			f.cursor--
			f.runes = append(f.runes[:f.cursor], f.runes[f.cursor+1:]...)
		}
		return true

	case KeyDelete:
		if f.cursor < len(f.runes) {
			f.runes = append(f.runes[:f.cursor], f.runes[f.cursor+1:]...)
		}
		return true
	}

	return false
}
