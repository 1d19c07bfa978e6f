package geomap

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestDecode(t *testing.T) {
	keyCases := []struct {
		name  string
		input string
		want  Key
	}{
		{"plain rune", "a", Key{Code: KeyRune, Rune: 'a'}},
		{"utf8 rune", "ø", Key{Code: KeyRune, Rune: 'ø'}},
		{"enter", "\r", Key{Code: KeyEnter}},
		{"tab", "\t", Key{Code: KeyTab}},
		{"backspace", "\x7f", Key{Code: KeyBackspace}},
		{"ctrl-c", "\x03", Key{Code: KeyCtrlC}},
		{"lone escape", "\x1b", Key{Code: KeyEscape}},
		{"up", "\x1b[A", Key{Code: KeyUp}},
		{"down", "\x1b[B", Key{Code: KeyDown}},
		{"right", "\x1b[C", Key{Code: KeyRight}},
		{"left", "\x1b[D", Key{Code: KeyLeft}},
		{"home", "\x1b[H", Key{Code: KeyHome}},
		{"end", "\x1b[F", Key{Code: KeyEnd}},
		{"delete", "\x1b[3~", Key{Code: KeyDelete}},
	}

	for _, tc := range keyCases {
		t.Run(tc.name, func(t *testing.T) {
			ev, n := decode([]byte(tc.input))
			if ev == nil {
				t.Fatal("no event decoded")
			}
			if n != len(tc.input) {
				t.Errorf("consumed %d of %d bytes", n, len(tc.input))
			}
			if ev.Kind != EventKey || ev.Key != tc.want {
				t.Errorf("got %+v, want key %+v", ev, tc.want)
			}
		})
	}

	t.Run("several keys in one chunk", func(t *testing.T) {
		chunk := []byte("ab\x1b[A")
		var keys []Key
		for len(chunk) > 0 {
			ev, n := decode(chunk)
			if n == 0 {
				break
			}
			chunk = chunk[n:]
			if ev != nil {
				keys = append(keys, ev.Key)
			}
		}
		want := []Key{{Code: KeyRune, Rune: 'a'}, {Code: KeyRune, Rune: 'b'}, {Code: KeyUp}}
		if len(keys) != len(want) {
			t.Fatalf("decoded %d keys, want %d", len(keys), len(want))
		}
		for i := range want {
			if keys[i] != want[i] {
				t.Errorf("key %d: got %+v, want %+v", i, keys[i], want[i])
			}
		}
	})

	t.Run("truncated csi consumes nothing", func(t *testing.T) {
		if _, n := decode([]byte("\x1b[")); n != 0 {
			t.Errorf("consumed %d bytes of incomplete sequence", n)
		}
	})
}

func TestDecodeSGRMouse(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  Mouse
	}{
		{"left press", "\x1b[<0;10;5M", Mouse{Button: MouseLeft, Action: MousePress, X: 9, Y: 4}},
		{"left release", "\x1b[<0;10;5m", Mouse{Button: MouseLeft, Action: MouseRelease, X: 9, Y: 4}},
		{"left drag", "\x1b[<32;11;5M", Mouse{Button: MouseLeft, Action: MouseDrag, X: 10, Y: 4}},
		{"right press", "\x1b[<2;1;1M", Mouse{Button: MouseRight, Action: MousePress, X: 0, Y: 0}},
		{"wheel up", "\x1b[<64;4;4M", Mouse{Button: MouseWheelUp, Action: MousePress, X: 3, Y: 3}},
		{"wheel down", "\x1b[<65;4;4M", Mouse{Button: MouseWheelDown, Action: MousePress, X: 3, Y: 3}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev, n := decode([]byte(tc.input))
			if ev == nil {
				t.Fatal("no event decoded")
			}
			if n != len(tc.input) {
				t.Errorf("consumed %d of %d bytes", n, len(tc.input))
			}
			if ev.Kind != EventMouse || ev.Mouse != tc.want {
				t.Errorf("got %+v, want mouse %+v", ev, tc.want)
			}
		})
	}
}

func TestEventsStream(t *testing.T) {
	t.Run("keys arrive in order", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		e := NewEvents(ctx, strings.NewReader("ab"), nil, time.Second)

		for _, want := range []rune{'a', 'b'} {
			ev, ok := e.Next(ctx)
			if !ok {
				t.Fatal("stream closed early")
			}
			if ev.Kind != EventKey || ev.Key.Rune != want {
				t.Fatalf("got %+v, want rune %q", ev, want)
			}
		}
	})

	t.Run("tick fires with no input", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		e := NewEvents(ctx, strings.NewReader(""), nil, 5*time.Millisecond)
		// drain until the reader goroutine is done producing, then expect ticks
		deadline := time.After(time.Second)
		for {
			select {
			case <-deadline:
				t.Fatal("no tick within deadline")
			default:
			}
			ev, ok := e.Next(ctx)
			if !ok {
				t.Fatal("stream closed")
			}
			if ev.Kind == EventTick {
				return
			}
		}
	})

	t.Run("cancellation stops the stream", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		e := NewEvents(ctx, strings.NewReader(""), nil, time.Hour)
		cancel()
		if _, ok := e.Next(ctx); ok {
			t.Error("Next should report done after cancel")
		}
	})

	t.Run("resize events are folded in", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		resize := make(chan Size, 1)
		e := NewEvents(ctx, strings.NewReader(""), resize, time.Second)
		resize <- Size{Width: 120, Height: 40}

		for {
			ev, ok := e.Next(ctx)
			if !ok {
				t.Fatal("stream closed")
			}
			if ev.Kind == EventResize {
				if ev.Resize.Width != 120 || ev.Resize.Height != 40 {
					t.Errorf("got %+v", ev.Resize)
				}
				return
			}
			if ev.Kind == EventTick {
				t.Fatal("tick before resize arrived")
			}
		}
	})
}
