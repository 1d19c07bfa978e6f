package geomap

import "testing"

func TestBuffer(t *testing.T) {
	t.Run("new buffer is all spaces", func(t *testing.T) {
		buf := NewBuffer(4, 2)
		if got := buf.String(); got != "    \n    " {
			t.Errorf("got %q", got)
		}
	})

	t.Run("set and get round trip", func(t *testing.T) {
		buf := NewBuffer(10, 10)
		c := NewCell('x', DefaultStyle().Bold())
		buf.Set(3, 4, c)
		if got := buf.Get(3, 4); got != c {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("out of bounds is silent", func(t *testing.T) {
		buf := NewBuffer(2, 2)
		buf.Set(-1, 0, NewCell('x', DefaultStyle()))
		buf.Set(5, 5, NewCell('x', DefaultStyle()))
		if got := buf.Get(5, 5); got != EmptyCell() {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("write string", func(t *testing.T) {
		buf := NewBuffer(10, 1)
		n := buf.WriteString(2, 0, "hello", DefaultStyle())
		if n != 5 {
			t.Errorf("wrote %d cells", n)
		}
		if got := buf.String(); got != "  hello   " {
			t.Errorf("got %q", got)
		}
	})

	t.Run("write string clips at edge", func(t *testing.T) {
		buf := NewBuffer(5, 1)
		n := buf.WriteString(3, 0, "abc", DefaultStyle())
		if n != 2 {
			t.Errorf("wrote %d cells", n)
		}
		if got := buf.String(); got != "   ab" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("write string clipped at maxWidth", func(t *testing.T) {
		buf := NewBuffer(10, 1)
		n := buf.WriteStringClipped(0, 0, "abcdef", DefaultStyle(), 3)
		if n != 3 {
			t.Errorf("wrote %d cells", n)
		}
		if got := buf.String(); got != "abc       " {
			t.Errorf("got %q", got)
		}
	})

	t.Run("lines and rects", func(t *testing.T) {
		buf := NewBuffer(5, 3)
		buf.HLine(0, 0, 5, '-', DefaultStyle())
		buf.VLine(2, 0, 3, '|', DefaultStyle())
		buf.FillRect(3, 1, 2, 2, NewCell('#', DefaultStyle()))
		want := "--|--\n  |##\n  |##"
		if got := buf.String(); got != want {
			t.Errorf("got:\n%s\nwant:\n%s", got, want)
		}
	})

	t.Run("border", func(t *testing.T) {
		buf := NewBuffer(5, 3)
		buf.DrawBorder(0, 0, 5, 3, DefaultStyle())
		want := "┌───┐\n│   │\n└───┘"
		if got := buf.String(); got != want {
			t.Errorf("got:\n%s\nwant:\n%s", got, want)
		}
	})

	t.Run("resize preserves content that fits", func(t *testing.T) {
		buf := NewBuffer(6, 2)
		buf.WriteString(0, 0, "abcdef", DefaultStyle())
		buf.Resize(3, 2)
		if got := buf.String(); got != "abc\n   " {
			t.Errorf("after shrink: %q", got)
		}
		buf.Resize(5, 2)
		if got := buf.String(); got != "abc  \n     " {
			t.Errorf("after grow: %q", got)
		}
	})

	t.Run("string trimmed drops trailing blanks", func(t *testing.T) {
		buf := NewBuffer(6, 3)
		buf.WriteString(0, 0, "ab", DefaultStyle())
		if got := buf.StringTrimmed(); got != "ab" {
			t.Errorf("got %q", got)
		}
	})
}
