package adbhost

import (
	"context"
	"fmt"
	"io"

	"github.com/prife/adbhost/wire"
)

// Connect dials the server, sends a single request frame and consumes the
// status reply. On OKAY the live connection is returned to the caller, who
// owns it and must Close it. On any failure the connection is closed before
// the error surfaces; close errors never mask the primary failure.
//
// A cancelled ctx aborts the dial and the status read. If ctx is already
// cancelled, Connect fails before anything is written to the transport.
func (c *Adb) Connect(ctx context.Context, request string) (*wire.Conn, error) {
	if ctx.Err() != nil {
		return nil, fmt.Errorf("request %s aborted: %w", request, context.Cause(ctx))
	}

	conn, err := c.server.Dial(ctx)
	if err != nil {
		return nil, err
	}

	if err := conn.SendMessage([]byte(request)); err != nil {
		conn.Close()
		return nil, err
	}

	if _, err := conn.ReadStatusContext(ctx, request); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// ServiceConn is a service channel bound to a single device: the connection
// left over after a transport-switch handshake, carrying the resolved
// transport id. Reads drain any bytes the handshake buffered before
// touching the transport; Close closes the underlying connection.
type ServiceConn struct {
	*wire.Conn

	// The id of the transport this channel is bound to. Resolved during the
	// handshake unless the descriptor carried it already.
	TransportID uint64

	// The device service this channel was opened for, e.g. "shell:".
	Service string

	r io.Reader
}

func (s *ServiceConn) Read(p []byte) (int, error) {
	return s.r.Read(p)
}

// ReadMessage reads one length-prefixed frame, for services that keep
// speaking the framed protocol after the bind.
func (s *ServiceConn) ReadMessage() ([]byte, error) {
	return wire.ReadMessage(s.r)
}

func (s *ServiceConn) ReadMessageString() (string, error) {
	return wire.ReadMessageString(s.r)
}

// ConnectDevice binds a fresh connection to the device descriptor selects
// and opens service on it. The returned channel is a raw byte stream to the
// device service; the caller owns it.
//
// The server's protocol version is validated before dialing, so a mismatched
// server is reported as such instead of failing somewhere inside the
// handshake.
func (c *Adb) ConnectDevice(ctx context.Context, descriptor DeviceDescriptor, service string) (*ServiceConn, error) {
	if err := c.ValidateVersion(ctx); err != nil {
		return nil, fmt.Errorf("ConnectDevice: %w", err)
	}

	switchReq, idKnown, err := descriptor.transportDescriptor()
	if err != nil {
		return nil, fmt.Errorf("ConnectDevice: %w", err)
	}

	conn, err := c.Connect(ctx, switchReq)
	if err != nil {
		return nil, fmt.Errorf("error connecting to device '%s': %w", descriptor, err)
	}

	sc, err := openService(ctx, conn, descriptor.transportID, idKnown, service)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("ConnectDevice: %w", err)
	}
	return sc, nil
}

// openService runs the post-bind half of the handshake on a connection that
// already passed the transport switch: write the service request, resolve
// the transport id, consume the ack.
func openService(ctx context.Context, conn *wire.Conn, transportID uint64, idKnown bool, service string) (*ServiceConn, error) {
	if err := conn.SendMessage([]byte(service)); err != nil {
		return nil, err
	}

	// host:tport binds emit the 8-byte id before the status;
	// host:transport-id binds don't, the id is already known.
	if !idKnown {
		id, err := conn.ReadTransportIDContext(ctx)
		if err != nil {
			return nil, err
		}
		transportID = id
	}

	if _, err := conn.ReadStatusContext(ctx, service); err != nil {
		return nil, err
	}

	return &ServiceConn{
		Conn:        conn,
		TransportID: transportID,
		Service:     service,
		r:           conn.ReleaseReader(),
	}, nil
}
