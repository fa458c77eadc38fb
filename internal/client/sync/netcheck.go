package sync

import (
	"context"
	"log/slog"
	"net"
	"time"
)

const (
	// defaultProbeAddr is a well-known, highly available endpoint (public DNS).
	defaultProbeAddr    = "8.8.8.8:53"
	defaultProbeTimeout = 3 * time.Second
)

// Prober answers whether the network is reachable right now.
type Prober interface {
	IsReachable(ctx context.Context) bool
}

// ConnectivityProbe performs a single bounded TCP dial to decide
// reachability. No retries; callers re-probe on their own schedule.
type ConnectivityProbe struct {
	addr    string
	timeout time.Duration
}

func NewConnectivityProbe() *ConnectivityProbe {
	return &ConnectivityProbe{
		addr:    defaultProbeAddr,
		timeout: defaultProbeTimeout,
	}
}

// NewConnectivityProbeWithTarget builds a probe against a custom endpoint.
func NewConnectivityProbeWithTarget(addr string, timeout time.Duration) *ConnectivityProbe {
	return &ConnectivityProbe{
		addr:    addr,
		timeout: timeout,
	}
}

func (p *ConnectivityProbe) IsReachable(ctx context.Context) bool {
	dialer := net.Dialer{Timeout: p.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", p.addr)
	if err != nil {
		slog.Warn("no network connection detected", "probe", p.addr, "error", err)
		return false
	}
	conn.Close()
	return true
}

var _ Prober = (*ConnectivityProbe)(nil)
