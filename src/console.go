package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// console is the only side-effecting drawing boundary. tcell.Screen
// satisfies it; tests use tcell's simulation screen.
type console interface {
	Size() (width, height int)
	Clear()
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	ShowCursor(x, y int)
	HideCursor()
	Show()
	Sync()
}

type opKind int

const (
	opText opKind = iota
	opBox
)

// drawOp is one drawing instruction in window-relative coordinates.
type drawOp struct {
	kind  opKind
	row   int
	col   int
	width int
	text  string
	style tcell.Style
}

// window is a panel's drawing surface: renderers append instructions to it
// and flush copies them, clipped, onto a console.
type window struct {
	y      int
	x      int
	height int
	width  int
	ops    []drawOp
	cursor bool
	curRow int
	curCol int
}

func newWindow(y, x, height, width int) *window {
	return &window{y: y, x: x, height: height, width: width}
}

func (w *window) erase() {
	w.ops = w.ops[:0]
	w.cursor = false
}

func (w *window) box(style tcell.Style) {
	w.ops = append(w.ops, drawOp{kind: opBox, style: style})
}

// print writes text at row/col, truncated to width cells. Cells past the
// text are padded with spaces so stale content is overwritten.
func (w *window) print(row, col, width int, text string, style tcell.Style) {
	if width <= 0 || row < 0 || row >= w.height {
		return
	}
	w.ops = append(w.ops, drawOp{kind: opText, row: row, col: col, width: width, text: text, style: style})
}

func (w *window) moveCursor(row, col int) {
	w.cursor = true
	w.curRow = row
	w.curCol = col
}

// fitCells truncates text to width cells and pads it with spaces.
func fitCells(text string, width int) []rune {
	if width <= 0 {
		return nil
	}
	text = runewidth.Truncate(text, width, "")
	out := make([]rune, 0, width)
	cells := 0
	for _, r := range text {
		out = append(out, r)
		cells += maxInt(1, runewidth.RuneWidth(r))
	}
	for ; cells < width; cells++ {
		out = append(out, ' ')
	}
	return out
}

func (w *window) flush(screen console) {
	for _, op := range w.ops {
		switch op.kind {
		case opBox:
			drawBox(screen, w.x, w.y, w.x+w.width, w.y+w.height, op.style)
		case opText:
			maxW := minInt(op.width, w.width-op.col)
			drawText(screen, w.x+op.col, w.y+op.row, maxW, op.text, op.style)
		}
	}
	if w.cursor {
		screen.ShowCursor(w.x+w.curCol, w.y+w.curRow)
	}
}
