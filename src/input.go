package main

import "github.com/gdamore/tcell/v2"

const inputCapacity = 256

// inputLine is an editable single-line buffer with a cursor. The length is
// always below capacity, leaving room for the terminator on the wire.
type inputLine struct {
	buf       []byte
	cursorPos int
	capacity  int
}

func newInputLine(capacity int) *inputLine {
	if capacity < 2 {
		capacity = 2
	}
	return &inputLine{buf: make([]byte, 0, capacity), capacity: capacity}
}

func (l *inputLine) Len() int { return len(l.buf) }

func (l *inputLine) String() string { return string(l.buf) }

func isPrintable(r rune) bool {
	return r >= 0x20 && r <= 0x7e
}

// insert splices ch in at the cursor. Non-printable input and a full buffer
// are ignored.
func (l *inputLine) insert(ch rune) bool {
	if !isPrintable(ch) || len(l.buf) >= l.capacity-1 {
		return false
	}
	l.buf = append(l.buf, 0)
	copy(l.buf[l.cursorPos+1:], l.buf[l.cursorPos:])
	l.buf[l.cursorPos] = byte(ch)
	l.cursorPos++
	return true
}

func (l *inputLine) backspace() bool {
	if l.cursorPos == 0 {
		return false
	}
	copy(l.buf[l.cursorPos-1:], l.buf[l.cursorPos:])
	l.buf = l.buf[:len(l.buf)-1]
	l.cursorPos--
	return true
}

func (l *inputLine) deleteAt() bool {
	if l.cursorPos >= len(l.buf) {
		return false
	}
	copy(l.buf[l.cursorPos:], l.buf[l.cursorPos+1:])
	l.buf = l.buf[:len(l.buf)-1]
	return true
}

func (l *inputLine) moveCursor(delta int) {
	l.cursorPos += delta
	if l.cursorPos < 0 {
		l.cursorPos = 0
	}
	if l.cursorPos > len(l.buf) {
		l.cursorPos = len(l.buf)
	}
}

// submit reports whether the line is ready to dispatch. An empty line is
// never ready; a non-empty one is upper-cased in place first.
func (l *inputLine) submit() bool {
	if len(l.buf) == 0 {
		return false
	}
	toUpperASCII(l.buf)
	return true
}

func (l *inputLine) clear() {
	l.buf = l.buf[:0]
	l.cursorPos = 0
}

func toUpperASCII(b []byte) {
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
}

// handleKey applies an editing key. It returns true when Enter produced a
// ready command; the caller reads it and then calls clear.
func (l *inputLine) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEnter:
		return l.submit()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		l.backspace()
	case tcell.KeyDelete:
		l.deleteAt()
	case tcell.KeyLeft:
		l.moveCursor(-1)
	case tcell.KeyRight:
		l.moveCursor(1)
	case tcell.KeyHome, tcell.KeyCtrlA:
		l.cursorPos = 0
	case tcell.KeyEnd, tcell.KeyCtrlE:
		l.cursorPos = len(l.buf)
	case tcell.KeyCtrlU:
		l.clear()
	case tcell.KeyRune:
		l.insert(ev.Rune())
	}
	return false
}
