package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestScrollClampRange(t *testing.T) {
	for total := 0; total <= 100; total++ {
		for visible := 1; visible <= 50; visible++ {
			maxStart := maxInt(0, total-visible)
			for _, delta := range []int{-5, -1, 0, 1, 5} {
				for _, offset := range []int{0, maxStart / 2, maxStart} {
					got := scrollClamp(offset, delta, total, visible)
					if got < 0 || got > maxStart {
						t.Fatalf("scrollClamp(%d, %d, %d, %d) = %d outside [0,%d]", offset, delta, total, visible, got, maxStart)
					}
				}
			}
			if got := scrollClamp(0, -1, total, visible); got != 0 {
				t.Fatalf("scroll up from 0 = %d", got)
			}
			if got := scrollClamp(maxStart, 1, total, visible); got != maxStart {
				t.Fatalf("scroll down from max = %d, want %d", got, maxStart)
			}
		}
	}
}

func TestToggleFocusParity(t *testing.T) {
	for _, start := range []focusTarget{focusProcess, focusInput} {
		l := newLayout(80, 24)
		l.focused = start
		for n := 1; n <= 6; n++ {
			toggleFocus(l)
			if n%2 == 0 && l.focused != start {
				t.Fatalf("after %d toggles from %v focus = %v", n, start, l.focused)
			}
			if n%2 == 1 && l.focused == start {
				t.Fatalf("after %d toggles from %v focus unchanged", n, start)
			}
		}
	}
}

func TestScrollOnlyWithProcessFocus(t *testing.T) {
	h := newHarness(t, 80, 24)
	h.rt.running = true
	list := make(processList, 40)
	for i := range list {
		list[i] = processEntry{pid: i + 1, name: "p"}
	}
	h.rt.sess.processes = list
	visible := h.rt.layout.proc.visibleRows()

	h.key(tcell.KeyDown)
	h.drain()
	if h.rt.sess.scroll != 0 {
		t.Fatalf("scrolled with input focus: %d", h.rt.sess.scroll)
	}

	h.key(tcell.KeyTab)
	h.key(tcell.KeyDown)
	h.key(tcell.KeyDown)
	h.drain()
	if h.rt.sess.scroll != 2 {
		t.Fatalf("scroll = %d, want 2", h.rt.sess.scroll)
	}

	h.key(tcell.KeyEnd)
	h.drain()
	if h.rt.sess.scroll != 40-visible {
		t.Fatalf("End scroll = %d, want %d", h.rt.sess.scroll, 40-visible)
	}
	h.key(tcell.KeyPgDn)
	h.drain()
	if h.rt.sess.scroll != 40-visible {
		t.Fatalf("PgDn past end = %d", h.rt.sess.scroll)
	}
	h.key(tcell.KeyHome)
	h.key(tcell.KeyUp)
	h.drain()
	if h.rt.sess.scroll != 0 {
		t.Fatalf("Home then Up = %d", h.rt.sess.scroll)
	}
}
