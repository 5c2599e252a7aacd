package main

import (
	"log/slog"
	"net"
	"time"
)

type config struct {
	host             string
	port             int
	sendTimeout      time.Duration
	connectTimeout   time.Duration
	replyTimeout     time.Duration
	handshakeTimeout time.Duration
	recvBufferSize   int
	deferredRefresh  time.Duration
	periodicRefresh  time.Duration
	pollInterval     time.Duration
	discoveryEnabled bool
	discoveryPort    int
	discoveryTimeout time.Duration
	logLevel         string
	logFile          string
}

// phase is the top-level lifecycle of one client run.
type phase int

const (
	phaseDialog phase = iota
	phaseRunning
	phaseTerminated
)

// inputMode selects how the key source is read.
type inputMode int

const (
	modePolling inputMode = iota
	modeModal
)

type focusTarget int

const (
	focusProcess focusTarget = 0
	focusInput   focusTarget = 1
)

type processEntry struct {
	pid  int
	name string
}

type processList []processEntry

type session struct {
	conn       net.Conn
	host       string
	port       int
	id         string
	statusText string
	lastReply  string
	scroll     int
	processes  processList
	refreshed  time.Time
	cfg        config
	log        *slog.Logger
}

// refreshTimers holds the two independent LIST schedules. A zero deferred
// time means no refresh is pending.
type refreshTimers struct {
	deferred time.Time
	periodic time.Time
}

type runtime struct {
	cfg      config
	screen   console
	keys     *keySource
	layout   *layout
	input    *inputLine
	sess     *session
	timers   refreshTimers
	phase    phase
	running  bool
	log      *slog.Logger
	now      func() time.Time
	sleep    func(time.Duration)
	dial     func(cfg config, host string, port int) (net.Conn, error)
	discover func(cfg config) ([]serverAddr, error)
	found    *discoveryCache
}
