package main

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

const (
	discoverRequest   = "DISCOVER_SERVERS"
	discoverReplyTag  = "SERVER_AT:"
	discoveryCacheTTL = 5 * time.Second
)

var errNoServers = errors.New("no servers found")

type serverAddr struct {
	host string
	port int
}

func (a serverAddr) String() string {
	return net.JoinHostPort(a.host, strconv.Itoa(a.port))
}

// discoverServers broadcasts a discovery probe on the local network and
// collects answers until the configured timeout.
func discoverServers(cfg config) ([]serverAddr, error) {
	target := &net.UDPAddr{IP: net.IPv4bcast, Port: cfg.discoveryPort}
	return discoverFrom(target, cfg.discoveryTimeout)
}

func discoverFrom(target *net.UDPAddr, timeout time.Duration) ([]serverAddr, error) {
	conn, err := net.ListenPacket("udp4", ":0")
	if err != nil {
		return nil, fmt.Errorf("discovery listen: %w", err)
	}
	defer conn.Close()

	if _, err := conn.WriteTo([]byte(discoverRequest), target); err != nil {
		return nil, fmt.Errorf("discovery send: %w", err)
	}
	if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return nil, fmt.Errorf("discovery deadline: %w", err)
	}

	servers := make([]serverAddr, 0)
	seen := make(map[string]struct{})
	buf := make([]byte, 1024)
	for {
		n, from, err := conn.ReadFrom(buf)
		if err != nil {
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				break
			}
			return servers, fmt.Errorf("discovery read: %w", err)
		}
		udp, ok := from.(*net.UDPAddr)
		if !ok {
			continue
		}
		port, ok := parseDiscoveryReply(string(buf[:n]))
		if !ok {
			continue
		}
		addr := serverAddr{host: udp.IP.String(), port: port}
		if _, dup := seen[addr.String()]; dup {
			continue
		}
		seen[addr.String()] = struct{}{}
		servers = append(servers, addr)
	}
	return servers, nil
}

func parseDiscoveryReply(msg string) (int, bool) {
	msg = strings.TrimSpace(msg)
	if !strings.HasPrefix(msg, discoverReplyTag) {
		return 0, false
	}
	port, err := strconv.Atoi(strings.TrimSpace(msg[len(discoverReplyTag):]))
	if err != nil || port <= 0 || port > 65535 {
		return 0, false
	}
	return port, true
}

// discoveryCache keeps the last discovery result for a short while so that
// repeated requests cycle through known servers instead of re-probing.
type discoveryCache struct {
	at      time.Time
	servers []serverAddr
	next    int
}

func (c *discoveryCache) nextServer(now time.Time, probe func() ([]serverAddr, error)) (serverAddr, int, error) {
	if c.at.IsZero() || now.Sub(c.at) >= discoveryCacheTTL || len(c.servers) == 0 {
		servers, err := probe()
		c.at = now
		c.servers = servers
		c.next = 0
		if err != nil && len(servers) == 0 {
			return serverAddr{}, 0, err
		}
	}
	if len(c.servers) == 0 {
		return serverAddr{}, 0, errNoServers
	}
	addr := c.servers[c.next%len(c.servers)]
	c.next++
	return addr, len(c.servers), nil
}
