package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

const (
	dialogWidth   = 50
	dialogHeight  = 12
	hostFieldSize = 254
	portFieldSize = 8
)

type dialogField int

const (
	fieldHost dialogField = iota
	fieldPort
)

type connectDialog struct {
	host    *inputLine
	port    *inputLine
	field   dialogField
	message string
	busy    string
}

func newConnectDialog(cfg config) *connectDialog {
	d := &connectDialog{
		host: newInputLine(hostFieldSize + 1),
		port: newInputLine(portFieldSize),
	}
	d.setAddr(cfg.host, cfg.port)
	return d
}

func (d *connectDialog) setAddr(host string, port int) {
	d.host.clear()
	for _, r := range host {
		d.host.insert(r)
	}
	d.port.clear()
	for _, r := range strconv.Itoa(port) {
		d.port.insert(r)
	}
}

func (d *connectDialog) active() *inputLine {
	if d.field == fieldPort {
		return d.port
	}
	return d.host
}

func (d *connectDialog) validate() (string, int, error) {
	portText := strings.TrimSpace(d.port.String())
	port, err := strconv.Atoi(portText)
	if err != nil || port <= 0 || port > 65535 {
		return "", 0, fmt.Errorf("invalid port: %s", portText)
	}
	host := strings.TrimSpace(d.host.String())
	if host == "" {
		return "", 0, errors.New("host cannot be empty")
	}
	return host, port, nil
}

func (d *connectDialog) render(screen console) *window {
	win := renderDialogFrame(screen, dialogWidth, dialogHeight, " Connect to server ")
	fieldW := win.width - 6
	hostStyle, portStyle := textStyle, textStyle
	if d.field == fieldHost {
		hostStyle = selectedStyle
	} else {
		portStyle = selectedStyle
	}
	win.print(2, 3, fieldW, "Server host:", textStyle)
	win.print(3, 3, fieldW, "  "+tailCells(d.host.String(), fieldW-2), hostStyle)
	win.print(5, 3, fieldW, "Port:", textStyle)
	win.print(6, 3, fieldW, "  "+d.port.String(), portStyle)
	switch {
	case d.busy != "":
		win.print(8, 3, fieldW, d.busy, headStyle)
	case d.message != "":
		win.print(8, 3, fieldW, d.message, errorStyle)
	}
	win.print(win.height-2, 3, fieldW, "Enter: connect  Tab: field  F3: find  Esc: quit", textStyle)
	return win
}

func tailCells(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if len(s) > width {
		return s[len(s)-width:]
	}
	return s
}

func (rt *runtime) paintModal(win *window) {
	rt.screen.Clear()
	rt.screen.HideCursor()
	win.flush(rt.screen)
	rt.screen.Show()
}

// connectionDialog collects host and port and performs the handshake. It
// returns false when the user cancels or input ends; the program should
// then exit.
func (rt *runtime) connectionDialog() bool {
	rt.phase = phaseDialog
	d := newConnectDialog(rt.cfg)
	for {
		rt.paintModal(d.render(rt.screen))
		ev, ok := rt.keys.next(modeModal)
		if !ok {
			return false
		}
		switch tev := ev.(type) {
		case *tcell.EventResize:
			rt.handleResize()
			continue
		case *tcell.EventKey:
			switch tev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				rt.log.Info("connection dialog cancelled")
				return false
			case tcell.KeyTab, tcell.KeyBacktab, tcell.KeyUp, tcell.KeyDown:
				if d.field == fieldHost {
					d.field = fieldPort
				} else {
					d.field = fieldHost
				}
			case tcell.KeyF3:
				rt.discoverInto(d)
			case tcell.KeyEnter:
				if rt.tryConnect(d) {
					return true
				}
			case tcell.KeyBackspace, tcell.KeyBackspace2:
				d.active().backspace()
				d.message = ""
			case tcell.KeyRune:
				d.active().insert(tev.Rune())
				d.message = ""
			}
		}
	}
}

func (rt *runtime) tryConnect(d *connectDialog) bool {
	host, port, err := d.validate()
	if err != nil {
		d.message = err.Error()
		return false
	}
	d.busy = "Connecting..."
	rt.paintModal(d.render(rt.screen))
	d.busy = ""

	rt.log.Info("connecting", "host", host, "port", port)
	conn, err := rt.dial(rt.cfg, host, port)
	if err != nil {
		rt.log.Warn("connect failed", "host", host, "port", port, "err", err)
		d.message = fmt.Sprintf("error: could not connect to %s:%d", host, port)
		return false
	}
	rt.sess.attach(conn, host, port)
	rt.sess.log.Info("connected")
	rt.handshake()
	return true
}

// handshake issues the implicit first LIST and waits briefly for it.
func (rt *runtime) handshake() {
	if err := rt.sess.sendLine("LIST"); err != nil {
		rt.sess.log.Warn("initial LIST failed", "err", err)
		return
	}
	buf := rt.sess.recvBuffer()
	n, err := rt.sess.waitRecv(buf, rt.cfg.handshakeTimeout)
	if err != nil {
		rt.sess.log.Warn("initial LIST reply failed", "err", err)
		return
	}
	rt.sess.scroll = 0
	if n == 0 {
		return
	}
	if err := rt.replaceProcesses(sanitizeReply(string(buf[:n]))); err != nil {
		rt.sess.log.Warn("initial LIST reply discarded", "err", err)
	}
}

func (rt *runtime) discoverInto(d *connectDialog) {
	if !rt.cfg.discoveryEnabled {
		d.message = "discovery is disabled"
		return
	}
	d.busy = "Searching for servers..."
	rt.paintModal(d.render(rt.screen))
	d.busy = ""
	addr, total, err := rt.found.nextServer(rt.now(), func() ([]serverAddr, error) {
		return rt.discover(rt.cfg)
	})
	if err != nil {
		rt.log.Info("discovery found nothing", "err", err)
		d.message = "no servers found"
		return
	}
	d.setAddr(addr.host, addr.port)
	d.message = fmt.Sprintf("found %d server(s), F3: next", total)
}

func (rt *runtime) showHelp() {
	for {
		rt.paintModal(renderHelp(rt.screen))
		ev, ok := rt.keys.next(modeModal)
		if !ok {
			rt.running = false
			return
		}
		if _, resized := ev.(*tcell.EventResize); resized {
			rt.handleResize()
			continue
		}
		if _, isKey := ev.(*tcell.EventKey); isKey {
			return
		}
	}
}

// startPrompt reads a free-text command line and starts it on the server.
// The text keeps its case.
func (rt *runtime) startPrompt() {
	line := newInputLine(inputCapacity - len("START "))
	for {
		rt.paintModal(renderStartPrompt(rt.screen, line))
		ev, ok := rt.keys.next(modeModal)
		if !ok {
			rt.running = false
			return
		}
		switch tev := ev.(type) {
		case *tcell.EventResize:
			rt.handleResize()
		case *tcell.EventKey:
			switch tev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return
			case tcell.KeyEnter:
				text := strings.TrimSpace(line.String())
				if text == "" {
					continue
				}
				rt.dispatch("START " + text)
				rt.timers.resetPeriodic(rt.now(), rt.cfg)
				return
			default:
				line.handleKey(tev)
			}
		}
	}
}
