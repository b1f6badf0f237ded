package adbhost

import (
	"context"
	"fmt"
	"net"

	"github.com/prife/adbhost/wire"
)

// Dialer knows how to create connections to an adb server.
type Dialer interface {
	Dial(ctx context.Context, address string) (*wire.Conn, error)
}

// ReverseTunneler registers handlers for sockets the server directs back at
// this client (reverse forwarding). Dialers that talk to a server able to do
// that may implement it; the client only forwards.
type ReverseTunneler interface {
	// AddReverseTunnel registers handler for incoming sockets on address.
	// If address is empty the tunneler picks one, and returns it either way.
	AddReverseTunnel(handler func(net.Conn), address string) (string, error)
	RemoveReverseTunnel(address string) error
	ClearReverseTunnels() error
}

type tcpDialer struct{}

// Dial connects to the adb server listening on a TCP address.
// The default address is localhost:5037.
func (tcpDialer) Dial(ctx context.Context, address string) (*wire.Conn, error) {
	var d net.Dialer
	netConn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w: error dialing %s: %s", wire.ErrServerNotAvailable, address, err)
	}

	return wire.NewConn(netConn), nil
}

// UnixDialer connects to an adb server listening on a unix domain socket
// (adb server nodaemon --transport-socket or a relayed socket).
type UnixDialer struct{}

func (UnixDialer) Dial(ctx context.Context, address string) (*wire.Conn, error) {
	var d net.Dialer
	netConn, err := d.DialContext(ctx, "unix", address)
	if err != nil {
		return nil, fmt.Errorf("%w: error dialing %s: %s", wire.ErrServerNotAvailable, address, err)
	}

	return wire.NewConn(netConn), nil
}
