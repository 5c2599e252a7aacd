//go:build !unix

package main

import (
	"net"
	"time"
)

func recvWithin(conn net.Conn, buf []byte, timeout time.Duration) (int, error) {
	return deadlineRecv(conn, buf, timeout)
}
