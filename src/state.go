package main

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
)

func newRuntime(cfg config, screen console, events <-chan tcell.Event, interrupt <-chan os.Signal, logger *slog.Logger) *runtime {
	if logger == nil {
		logger = discardLogger()
	}
	cols, lines := screen.Size()
	return &runtime{
		cfg:      cfg,
		screen:   screen,
		keys:     &keySource{events: events, interrupt: interrupt},
		layout:   newLayout(cols, lines),
		input:    newInputLine(inputCapacity),
		sess:     newSession(cfg, logger),
		phase:    phaseDialog,
		log:      logger,
		now:      time.Now,
		sleep:    time.Sleep,
		dial:     connect,
		discover: discoverServers,
		found:    &discoveryCache{},
	}
}

// replaceProcesses parses a LIST-style reply and swaps it in wholesale. On
// failure the previous list stays as it was.
func (rt *runtime) replaceProcesses(text string) error {
	list, err := parseProcessList(text)
	if err != nil {
		rt.log.Warn("discarding process list reply", "err", err, "bytes", len(text))
		rt.sess.lastReply = "reply too large, list kept"
		return err
	}
	rt.sess.processes = list
	rt.sess.refreshed = rt.now()
	return nil
}

// applyAsync handles data that arrived without an outstanding command,
// normally the answer to a timer-driven LIST. Only the list changes.
func (rt *runtime) applyAsync(data []byte) {
	if err := rt.replaceProcesses(sanitizeReply(string(data))); err != nil {
		return
	}
	rt.sess.scroll = scrollClamp(rt.sess.scroll, 0, len(rt.sess.processes), rt.layout.proc.visibleRows())
}

// pollServer performs the loop's single non-blocking socket check.
func (rt *runtime) pollServer() {
	if !rt.sess.connected() {
		return
	}
	buf := rt.sess.recvBuffer()
	n, err := rt.sess.pollRecv(buf)
	if err != nil {
		rt.connectionLost(err)
		return
	}
	if n > 0 {
		rt.sess.log.Debug("async data", "bytes", n)
		rt.applyAsync(buf[:n])
	}
}

func (rt *runtime) connectionLost(err error) {
	if errors.Is(err, errConnectionLost) || errors.Is(err, errNotConnected) {
		rt.sess.log.Info("connection lost", "err", err)
	} else {
		rt.sess.log.Warn("connection failed", "err", err)
	}
	rt.sess.statusText = "Connection lost"
	rt.running = false
}

func (t *refreshTimers) armDeferred(now time.Time, cfg config) {
	t.deferred = now.Add(cfg.deferredRefresh)
}

func (t *refreshTimers) resetPeriodic(now time.Time, cfg config) {
	if cfg.periodicRefresh <= 0 {
		t.periodic = time.Time{}
		return
	}
	t.periodic = now.Add(cfg.periodicRefresh)
}

// listSent records that a LIST went out, so neither timer fires again right
// behind it.
func (t *refreshTimers) listSent(now time.Time, cfg config) {
	t.deferred = time.Time{}
	t.resetPeriodic(now, cfg)
}

func (t refreshTimers) due(now time.Time) bool {
	if !t.deferred.IsZero() && !now.Before(t.deferred) {
		return true
	}
	return !t.periodic.IsZero() && !now.Before(t.periodic)
}

// runTimers sends the implicit refresh when either timer has elapsed. The
// reply is picked up by a later poll.
func (rt *runtime) runTimers() {
	now := rt.now()
	if !rt.timers.due(now) {
		return
	}
	deferred := !rt.timers.deferred.IsZero() && !now.Before(rt.timers.deferred)
	rt.sess.log.Debug("implicit refresh", "deferred", deferred)
	if err := rt.sess.sendLine("LIST"); err != nil {
		rt.connectionLost(err)
		return
	}
	rt.timers.listSent(now, rt.cfg)
}
