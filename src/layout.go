package main

const (
	statusPanelHeight = 3
	inputPanelHeight  = 5
	minProcessHeight  = 2
)

// computeLayout splits the terminal height between the process, input and
// status panels. Width does not influence the split.
//
// The clamps run in a fixed order: the 60% rule for the process panel first,
// then the input minimum, then the functional process floor.
func computeLayout(lines, cols int) (procH, inputH, statusH int) {
	statusH = statusPanelHeight
	inputH = inputPanelHeight
	procH = lines - inputH - statusH

	minProc := (lines*60 + 99) / 100
	if procH < minProc {
		procH = minProc
		inputH = lines - procH - statusH
		if inputH < inputPanelHeight {
			inputH = inputPanelHeight
			procH = lines - inputH - statusH
		}
	}
	if procH < minProcessHeight {
		procH = minProcessHeight
	}
	return procH, inputH, statusH
}

type panel struct {
	y      int
	x      int
	height int
	width  int
	title  string
	win    *window
}

func (p panel) visibleRows() int {
	return maxInt(1, p.height-3)
}

type layout struct {
	proc    panel
	input   panel
	status  panel
	focused focusTarget
	lines   int
	cols    int
}

func newLayout(cols, lines int) *layout {
	l := &layout{focused: focusInput}
	l.resize(cols, lines)
	return l
}

// resize throws away the panel windows and recreates all three at the new
// geometry. Focus survives.
func (l *layout) resize(cols, lines int) {
	procH, inputH, statusH := computeLayout(lines, cols)
	l.lines = lines
	l.cols = cols
	l.proc = newPanel(" Processes ", 0, 0, procH, cols)
	l.input = newPanel(" Command ", procH, 0, inputH, cols)
	l.status = newPanel(" Status ", procH+inputH, 0, statusH, cols)
}

func newPanel(title string, y, x, height, width int) panel {
	return panel{
		y:      y,
		x:      x,
		height: height,
		width:  width,
		title:  title,
		win:    newWindow(y, x, height, width),
	}
}

func (l *layout) panels() []panel {
	return []panel{l.proc, l.input, l.status}
}

func centeredRect(cols, lines, w, h int) (x, y, width, height int) {
	width = minInt(w, cols)
	height = minInt(h, lines)
	x = maxInt(0, (cols-width)/2)
	y = maxInt(0, (lines-height)/2)
	return x, y, width, height
}

// destroy releases the panel windows; the layout must not be drawn afterwards.
func (l *layout) destroy() {
	l.proc.win = nil
	l.input.win = nil
	l.status.win = nil
}
