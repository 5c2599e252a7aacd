package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

var (
	textStyle     = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack)
	borderStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorBlack)
	headStyle     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkSlateGray).Bold(true)
	selectedStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorLightGray)
	errorStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkSlateGray).Bold(true)
)

const emptyProcessMessage = "no active processes"

func formatPrompt(host string, port int) string {
	if host == "" {
		host = "0.0.0.0"
	}
	return fmt.Sprintf("remote@%s:%d> ", host, port)
}

func (rt *runtime) render() {
	l := rt.layout
	if l == nil || l.proc.win == nil {
		return
	}
	rt.screen.Clear()
	rt.screen.HideCursor()

	renderBorder(l.proc)
	if l.focused == focusProcess {
		l.proc.win.print(0, 1, 3, "[*]", selectedStyle)
	}
	renderProcesses(l.proc, rt.sess.processes, rt.sess.scroll)

	renderBorder(l.input)
	renderInput(l.input, rt.input, formatPrompt(rt.sess.host, rt.sess.port))

	renderBorder(l.status)
	renderStatus(l.status, rt.sess, rt.now())

	for _, p := range l.panels() {
		p.win.flush(rt.screen)
	}
	rt.screen.Show()
}

func renderBorder(p panel) {
	p.win.erase()
	p.win.box(borderStyle)
	titleW := runewidth.StringWidth(p.title)
	x := maxInt(1, (p.width-titleW)/2)
	p.win.print(0, x, minInt(titleW, p.width-x-1), p.title, headStyle)
}

// renderProcesses draws the column header and the visible slice of entries
// starting at scroll.
func renderProcesses(p panel, list processList, scroll int) {
	innerH := p.height - 2
	innerW := p.width - 2
	if innerH <= 0 || innerW <= 0 {
		return
	}
	if len(list) == 0 {
		cx := maxInt(1, (innerW-len(emptyProcessMessage))/2+1)
		cy := maxInt(1, innerH/2+1)
		p.win.print(cy, cx, p.width-1-cx, emptyProcessMessage, textStyle)
		return
	}
	nameW := maxInt(0, innerW-10)
	p.win.print(1, 2, innerW-1, fmt.Sprintf("%-8s %s", "PID", "NAME"), headStyle)
	visible := innerH - 1
	for row := 0; row < visible && scroll+row < len(list); row++ {
		if scroll+row < 0 {
			continue
		}
		e := list[scroll+row]
		name := runewidth.Truncate(e.name, nameW, "")
		p.win.print(row+2, 2, innerW-1, fmt.Sprintf("%-8d %s", e.pid, name), textStyle)
	}
}

func renderInput(p panel, line *inputLine, prompt string) {
	innerW := p.width - 2
	if innerW <= 0 || p.height < 3 {
		return
	}
	text := line.String()
	promptW := runewidth.StringWidth(prompt)
	// Keep the cursor visible when the line is wider than the panel.
	offset := 0
	if avail := innerW - promptW - 1; avail > 0 && line.cursorPos > avail {
		offset = line.cursorPos - avail
	}
	p.win.print(1, 1, innerW, prompt+text[offset:], textStyle)
	p.win.moveCursor(1, minInt(1+promptW+line.cursorPos-offset, p.width-2))
}

func renderStatus(p panel, sess *session, now time.Time) {
	innerW := p.width - 2
	if innerW <= 0 || p.height < 3 {
		return
	}
	right := statusSummary(sess, now)
	left := sess.statusText
	if sess.lastReply != "" {
		left = left + " | " + sess.lastReply
	}
	rightW := runewidth.StringWidth(right)
	if rightW+2 > innerW {
		right = ""
		rightW = 0
	}
	leftW := innerW - rightW
	line := string(fitCells(left, leftW)) + right
	p.win.print(1, 1, innerW, line, headStyle)
}

func statusSummary(sess *session, now time.Time) string {
	count := humanize.Comma(int64(len(sess.processes)))
	noun := "processes"
	if len(sess.processes) == 1 {
		noun = "process"
	}
	if sess.refreshed.IsZero() {
		return fmt.Sprintf("%s %s ", count, noun)
	}
	return fmt.Sprintf("%s %s · refreshed %s ", count, noun, humanize.RelTime(sess.refreshed, now, "ago", "from now"))
}

func drawBox(screen console, x0, y0, x1, y1 int, style tcell.Style) {
	w := x1 - x0
	h := y1 - y0
	if w <= 1 || h <= 1 {
		return
	}
	for x := x0; x < x1; x++ {
		screen.SetContent(x, y0, tcell.RuneHLine, nil, style)
		screen.SetContent(x, y1-1, tcell.RuneHLine, nil, style)
	}
	for y := y0; y < y1; y++ {
		screen.SetContent(x0, y, tcell.RuneVLine, nil, style)
		screen.SetContent(x1-1, y, tcell.RuneVLine, nil, style)
	}
	screen.SetContent(x0, y0, tcell.RuneULCorner, nil, style)
	screen.SetContent(x1-1, y0, tcell.RuneURCorner, nil, style)
	screen.SetContent(x0, y1-1, tcell.RuneLLCorner, nil, style)
	screen.SetContent(x1-1, y1-1, tcell.RuneLRCorner, nil, style)
}

func drawText(screen console, x, y, width int, text string, style tcell.Style) {
	if width <= 0 {
		return
	}
	col := x
	for _, r := range fitCells(text, width) {
		screen.SetContent(col, y, r, nil, style)
		col += maxInt(1, runewidth.RuneWidth(r))
	}
}

func renderDialogFrame(screen console, w, h int, title string) *window {
	cols, lines := screen.Size()
	x, y, width, height := centeredRect(cols, lines, w, h)
	win := newWindow(y, x, height, width)
	for row := 0; row < height; row++ {
		win.print(row, 0, width, "", textStyle)
	}
	win.box(borderStyle)
	titleW := runewidth.StringWidth(title)
	tx := maxInt(1, (width-titleW)/2)
	win.print(0, tx, minInt(titleW, width-tx-1), title, headStyle)
	return win
}

func helpLines() []string {
	return []string{
		"LIST             refresh the process list",
		"START <cmd>      start a process (alias: RUN, 2)",
		"STOP <pid>       kill a process (alias: 3)",
		"MONITOR <pid>    show the state of one process",
		"EXIT             disconnect and quit (alias: 4)",
		"HELP             show this help",
		"",
		"Tab              switch focus (processes/command)",
		"Up/Down          scroll processes when focused",
		"F1               help    F2/Ctrl+N  start process",
		"Ctrl+C           quit",
	}
}

func renderHelp(screen console) *window {
	lines := helpLines()
	width := 4
	for _, l := range lines {
		width = maxInt(width, len(l)+6)
	}
	win := renderDialogFrame(screen, width, len(lines)+5, " Help ")
	for i, l := range lines {
		win.print(2+i, 3, win.width-4, l, textStyle)
	}
	win.print(win.height-2, 3, win.width-4, "any key: close", textStyle)
	return win
}

func renderStartPrompt(screen console, line *inputLine) *window {
	win := renderDialogFrame(screen, 60, 7, " Start process ")
	win.print(2, 3, win.width-4, "Command line:", textStyle)
	field := line.String()
	avail := win.width - 8
	offset := 0
	if avail > 0 && line.cursorPos > avail {
		offset = line.cursorPos - avail
	}
	win.print(3, 3, win.width-6, "  "+field[offset:], selectedStyle)
	win.print(win.height-2, 3, win.width-4, "Enter: start  Esc: cancel", textStyle)
	win.moveCursor(3, minInt(5+line.cursorPos-offset, win.width-2))
	return win
}
