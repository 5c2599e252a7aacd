package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/google/uuid"
)

var (
	errConnectionLost = errors.New("connection lost")
	errNotConnected   = errors.New("not connected")
)

// connect opens the TCP stream to the server. No connect timeout is applied
// unless one is configured; the send timeout is applied per write.
func connect(cfg config, host string, port int) (net.Conn, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	d := net.Dialer{Timeout: cfg.connectTimeout}
	conn, err := d.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", addr, err)
	}
	return conn, nil
}

func newSession(cfg config, logger *slog.Logger) *session {
	return &session{
		host:       cfg.host,
		port:       cfg.port,
		statusText: "Not connected",
		cfg:        cfg,
		log:        logger,
	}
}

func (s *session) attach(conn net.Conn, host string, port int) {
	s.conn = conn
	s.host = host
	s.port = port
	s.id = uuid.NewString()
	s.log = s.log.With("session", s.id, "server", net.JoinHostPort(host, strconv.Itoa(port)))
	s.statusText = s.connectedStatus()
	s.lastReply = ""
	s.scroll = 0
	s.processes = processList{}
}

func (s *session) connectedStatus() string {
	return fmt.Sprintf("Connected to %s:%d", s.host, s.port)
}

func (s *session) connected() bool {
	return s.conn != nil
}

func (s *session) send(text string) (int, error) {
	if s.conn == nil {
		return 0, errNotConnected
	}
	if s.cfg.sendTimeout > 0 {
		if err := s.conn.SetWriteDeadline(time.Now().Add(s.cfg.sendTimeout)); err != nil {
			return 0, fmt.Errorf("%w: %v", errConnectionLost, err)
		}
	}
	n, err := s.conn.Write([]byte(text))
	if err != nil {
		return n, fmt.Errorf("%w: send: %v", errConnectionLost, err)
	}
	return n, nil
}

func (s *session) sendLine(line string) error {
	_, err := s.send(line + "\n")
	return err
}

// pollRecv never blocks: it returns 0 when nothing is pending and
// errConnectionLost when the peer has closed.
func (s *session) pollRecv(buf []byte) (int, error) {
	return s.waitRecv(buf, 0)
}

// waitRecv waits up to timeout for data and performs at most one read.
func (s *session) waitRecv(buf []byte, timeout time.Duration) (int, error) {
	if s.conn == nil {
		return 0, errNotConnected
	}
	return recvWithin(s.conn, buf, timeout)
}

func (s *session) close() {
	if s.conn == nil {
		return
	}
	if err := s.conn.Close(); err != nil {
		s.log.Debug("close connection", "err", err)
	}
	s.conn = nil
}

func (s *session) recvBuffer() []byte {
	size := s.cfg.recvBufferSize
	if size <= 0 {
		size = 65536
	}
	return make([]byte, size)
}

// deadlineRecv is the portable readiness check: a read bounded by a short
// deadline. A timeout means nothing was pending.
func deadlineRecv(conn net.Conn, buf []byte, timeout time.Duration) (int, error) {
	if timeout <= 0 {
		timeout = time.Millisecond
	}
	if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return 0, fmt.Errorf("%w: %v", errConnectionLost, err)
	}
	n, err := conn.Read(buf)
	if n > 0 {
		return n, nil
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return 0, nil
	}
	if err == nil {
		return 0, errConnectionLost
	}
	return 0, fmt.Errorf("%w: %v", errConnectionLost, err)
}

// readReady reads from a connection already known to be readable. Zero
// bytes at that point means the peer closed.
func readReady(conn net.Conn, buf []byte) (int, error) {
	if err := conn.SetReadDeadline(time.Time{}); err != nil {
		return 0, fmt.Errorf("%w: %v", errConnectionLost, err)
	}
	n, err := conn.Read(buf)
	if n > 0 {
		return n, nil
	}
	if err == nil {
		return 0, errConnectionLost
	}
	return 0, fmt.Errorf("%w: %v", errConnectionLost, err)
}
