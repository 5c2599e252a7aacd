package main

import "testing"

func TestComputeLayoutSumsToLines(t *testing.T) {
	for lines := 10; lines <= 200; lines++ {
		for cols := 40; cols <= 300; cols += 13 {
			procH, inputH, statusH := computeLayout(lines, cols)
			if procH+inputH+statusH != lines {
				t.Fatalf("computeLayout(%d, %d) = %d+%d+%d, want sum %d", lines, cols, procH, inputH, statusH, lines)
			}
			if inputH < inputPanelHeight {
				t.Fatalf("computeLayout(%d, %d) inputH = %d", lines, cols, inputH)
			}
			if statusH != statusPanelHeight {
				t.Fatalf("computeLayout(%d, %d) statusH = %d", lines, cols, statusH)
			}
			if procH < minProcessHeight {
				t.Fatalf("computeLayout(%d, %d) procH = %d below floor", lines, cols, procH)
			}
			if lines >= 20 && procH < (lines*60+99)/100 {
				t.Fatalf("computeLayout(%d, %d) procH = %d below 60%%", lines, cols, procH)
			}
		}
	}
}

func TestComputeLayoutKnownSizes(t *testing.T) {
	cases := []struct {
		lines  int
		procH  int
		inputH int
	}{
		{10, 2, 5},
		{19, 11, 5},
		{20, 12, 5},
		{24, 16, 5},
		{50, 42, 5},
	}
	for _, c := range cases {
		procH, inputH, _ := computeLayout(c.lines, 80)
		if procH != c.procH || inputH != c.inputH {
			t.Fatalf("computeLayout(%d) = %d/%d, want %d/%d", c.lines, procH, inputH, c.procH, c.inputH)
		}
	}
}

func TestResizeMatchesColdStart(t *testing.T) {
	sizes := [][2]int{{80, 24}, {40, 10}, {300, 200}, {120, 33}, {80, 24}}
	warm := newLayout(sizes[0][0], sizes[0][1])
	warm.focused = focusProcess
	for _, sz := range sizes[1:] {
		warm.resize(sz[0], sz[1])
		cold := newLayout(sz[0], sz[1])
		for i, p := range warm.panels() {
			q := cold.panels()[i]
			if p.y != q.y || p.x != q.x || p.height != q.height || p.width != q.width {
				t.Fatalf("panel %d after resize to %v = %+v, cold %+v", i, sz, p, q)
			}
		}
		if warm.focused != focusProcess {
			t.Fatalf("focus lost on resize to %v", sz)
		}
	}
}

func TestLayoutPanelsStack(t *testing.T) {
	l := newLayout(80, 24)
	if l.focused != focusInput {
		t.Fatalf("initial focus = %v, want input", l.focused)
	}
	if l.input.y != l.proc.height || l.status.y != l.proc.height+l.input.height {
		t.Fatalf("panels not stacked: %+v %+v %+v", l.proc, l.input, l.status)
	}
	if l.proc.visibleRows() != l.proc.height-3 {
		t.Fatalf("visibleRows = %d", l.proc.visibleRows())
	}
	l.destroy()
	for _, p := range l.panels() {
		if p.win != nil {
			t.Fatalf("panel %q kept its window after destroy", p.title)
		}
	}
}

func TestCenteredRectClipsToScreen(t *testing.T) {
	x, y, w, h := centeredRect(80, 24, 50, 12)
	if x != 15 || y != 6 || w != 50 || h != 12 {
		t.Fatalf("centeredRect = %d,%d %dx%d", x, y, w, h)
	}
	x, y, w, h = centeredRect(30, 8, 50, 12)
	if x != 0 || y != 0 || w != 30 || h != 8 {
		t.Fatalf("centeredRect small = %d,%d %dx%d", x, y, w, h)
	}
}
