//go:build unix

package main

import (
	"errors"
	"net"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// recvWithin checks readiness with poll(2) and reads only when the socket is
// readable. A zero timeout makes the check non-blocking.
func recvWithin(conn net.Conn, buf []byte, timeout time.Duration) (int, error) {
	sc, ok := conn.(syscall.Conn)
	if !ok {
		return deadlineRecv(conn, buf, timeout)
	}
	raw, err := sc.SyscallConn()
	if err != nil {
		return deadlineRecv(conn, buf, timeout)
	}
	ready, err := pollReadable(raw, timeout)
	if err != nil {
		return 0, err
	}
	if !ready {
		return 0, nil
	}
	return readReady(conn, buf)
}

func pollReadable(raw syscall.RawConn, timeout time.Duration) (bool, error) {
	ms := int(timeout / time.Millisecond)
	var ready bool
	var pollErr error
	ctrlErr := raw.Control(func(fd uintptr) {
		fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		for {
			n, err := unix.Poll(fds, ms)
			if errors.Is(err, unix.EINTR) {
				continue
			}
			if err != nil {
				pollErr = err
				return
			}
			ready = n > 0 && fds[0].Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) != 0
			return
		}
	})
	if ctrlErr != nil {
		return false, errors.Join(errConnectionLost, ctrlErr)
	}
	if pollErr != nil {
		return false, errors.Join(errConnectionLost, pollErr)
	}
	return ready, nil
}
