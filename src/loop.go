package main

import (
	"github.com/gdamore/tcell/v2"
)

// run drives the connected phase until EXIT, Ctrl+C, a signal, end of input
// or a lost connection.
func (rt *runtime) run() {
	rt.phase = phaseRunning
	rt.running = true
	rt.timers.resetPeriodic(rt.now(), rt.cfg)
	rt.log.Info("event loop started", "poll", rt.cfg.pollInterval)
	for rt.running {
		if rt.keys.checkInterrupt() {
			rt.log.Info("interrupted")
			rt.running = false
			break
		}
		rt.step()
		if rt.keys.stopped() {
			rt.running = false
		}
	}
	rt.log.Info("event loop stopped", "status", rt.sess.statusText)
}

func (rt *runtime) step() {
	rt.render()
	ev, ok := rt.keys.next(modePolling)
	if ok {
		rt.handleEvent(ev)
		return
	}
	rt.pollServer()
	if !rt.running {
		return
	}
	rt.runTimers()
	if !rt.running {
		return
	}
	rt.sleep(rt.cfg.pollInterval)
}

func (rt *runtime) handleResize() {
	cols, lines := rt.screen.Size()
	rt.layout.resize(cols, lines)
	rt.sess.scroll = scrollClamp(rt.sess.scroll, 0, len(rt.sess.processes), rt.layout.proc.visibleRows())
	rt.screen.Clear()
	rt.screen.Sync()
}

func (rt *runtime) handleEvent(ev tcell.Event) {
	switch tev := ev.(type) {
	case *tcell.EventResize:
		rt.handleResize()
	case *tcell.EventKey:
		rt.handleKey(tev)
	}
}

func (rt *runtime) handleKey(ev *tcell.EventKey) {
	visible := rt.layout.proc.visibleRows()
	switch ev.Key() {
	case tcell.KeyCtrlC:
		rt.running = false
		return
	case tcell.KeyTab, tcell.KeyBacktab:
		toggleFocus(rt.layout)
		return
	case tcell.KeyUp:
		if rt.scrollProcesses(-1) {
			return
		}
	case tcell.KeyDown:
		if rt.scrollProcesses(1) {
			return
		}
	case tcell.KeyPgUp:
		if rt.scrollProcesses(-visible) {
			return
		}
	case tcell.KeyPgDn:
		if rt.scrollProcesses(visible) {
			return
		}
	case tcell.KeyHome:
		if rt.jumpScroll(true) {
			return
		}
	case tcell.KeyEnd:
		if rt.jumpScroll(false) {
			return
		}
	case tcell.KeyF1:
		rt.showHelp()
		return
	case tcell.KeyF2, tcell.KeyCtrlN:
		rt.startPrompt()
		return
	}

	if !rt.input.handleKey(ev) {
		return
	}
	line := rt.input.String()
	rt.input.clear()
	rt.dispatch(line)
	rt.timers.resetPeriodic(rt.now(), rt.cfg)
}

// shutdown releases the panels and the connection. It is safe to call more
// than once.
func (rt *runtime) shutdown() {
	if rt.phase == phaseTerminated {
		return
	}
	if rt.layout != nil {
		rt.layout.destroy()
	}
	rt.sess.close()
	rt.sess.processes = nil
	rt.phase = phaseTerminated
	rt.log.Info("terminated")
}
