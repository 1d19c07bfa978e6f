package geomap

import (
	"bytes"
	"strings"
	"testing"
)

func testScreen(t *testing.T) (*Screen, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	s, err := NewScreen(&out)
	if err != nil {
		t.Fatal(err)
	}
	return s, &out
}

func TestScreenFlush(t *testing.T) {
	t.Run("first flush writes changed cells once", func(t *testing.T) {
		s, out := testScreen(t)
		s.Buffer().WriteString(0, 0, "hi", DefaultStyle())
		s.Flush()

		if !strings.Contains(out.String(), "hi") {
			t.Errorf("output %q missing content", out.String())
		}

		out.Reset()
		s.Flush()
		if out.Len() != 0 {
			t.Errorf("unchanged frame wrote %q", out.String())
		}
	})

	t.Run("only the diff is written", func(t *testing.T) {
		s, out := testScreen(t)
		s.Buffer().WriteString(0, 0, "aaaa", DefaultStyle())
		s.Flush()
		out.Reset()

		s.Buffer().Set(2, 0, NewCell('b', DefaultStyle()))
		s.Flush()

		got := out.String()
		if !strings.Contains(got, "b") {
			t.Errorf("output %q missing changed cell", got)
		}
		if strings.Contains(got, "aa") {
			t.Errorf("output %q rewrote unchanged cells", got)
		}
	})

	t.Run("style change emits escape codes", func(t *testing.T) {
		s, out := testScreen(t)
		s.Buffer().Set(0, 0, NewCell('x', DefaultStyle().Bold().Foreground(Red)))
		s.Flush()

		got := out.String()
		if !strings.Contains(got, ";1") || !strings.Contains(got, ";31") {
			t.Errorf("output %q missing bold/red codes", got)
		}
	})

	t.Run("full flush repaints everything", func(t *testing.T) {
		s, out := testScreen(t)
		s.Buffer().WriteString(0, 0, "row", DefaultStyle())
		s.Flush()
		out.Reset()

		s.FlushFull()
		got := out.String()
		if !strings.Contains(got, "\x1b[2J") {
			t.Error("full flush should clear the screen")
		}
		if !strings.Contains(got, "row") {
			t.Error("full flush should repaint content")
		}
	})
}
