package adbhost

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// ProtocolVersion is the server protocol version this client speaks.
// ConnectDevice refuses to run against a server reporting anything else.
const ProtocolVersion = 41

// ErrVersionMismatch the server speaks a different protocol version than
// this client.
var ErrVersionMismatch = errors.New("VersionMismatch")

// ErrTunnelsUnsupported the configured dialer cannot register reverse
// tunnels.
var ErrTunnelsUnsupported = errors.New("TunnelsUnsupported")

// Adb communicates with host services on the adb server.
// Eg.
//
//	client, err := adb.New()
//	client.ListDevices(ctx)
//
// See list of services at https://android.googlesource.com/platform/system/core/+/master/adb/SERVICES.TXT.
type Adb struct {
	server server
}

// New creates a new Adb client that uses the default ServerConfig.
func New() (*Adb, error) {
	return NewWithConfig(ServerConfig{})
}

func NewWithConfig(config ServerConfig) (*Adb, error) {
	server, err := newServer(config)
	if err != nil {
		return nil, err
	}
	return &Adb{server}, nil
}

// ServerVersion asks the ADB server for its internal version number.
func (c *Adb) ServerVersion(ctx context.Context) (int, error) {
	resp, err := c.roundTripSingleResponse(ctx, "host:version")
	if err != nil {
		return 0, fmt.Errorf("ServerVersion: %w", err)
	}

	version, err := parseServerVersion(resp)
	if err != nil {
		return 0, fmt.Errorf("ServerVersion: %w", err)
	}
	return version, nil
}

// ValidateVersion fails unless the server speaks exactly ProtocolVersion.
func (c *Adb) ValidateVersion(ctx context.Context) error {
	version, err := c.ServerVersion(ctx)
	if err != nil {
		return err
	}
	if version != ProtocolVersion {
		return fmt.Errorf("%w: server is %d, client is %d", ErrVersionMismatch, version, ProtocolVersion)
	}
	return nil
}

// KillServer tells the server to quit immediately.
// Corresponds to the command:
//
//	adb kill-server
func (c *Adb) KillServer(ctx context.Context) error {
	conn, err := c.Connect(ctx, "host:kill")
	if err != nil {
		return fmt.Errorf("KillServer: %w", err)
	}
	// The server is going away; nothing left to read on this connection.
	conn.Close()
	return nil
}

// HostFeatures returns the feature set of the server itself.
func (c *Adb) HostFeatures(ctx context.Context) ([]string, error) {
	resp, err := c.roundTripSingleResponse(ctx, "host:host-features")
	if err != nil {
		return nil, fmt.Errorf("HostFeatures: %w", err)
	}
	return splitFeatures(resp), nil
}

// ListDevices returns the list of online devices.
// Corresponds to the command:
//
//	adb devices -l
func (c *Adb) ListDevices(ctx context.Context) ([]*DeviceInfo, error) {
	resp, err := c.roundTripSingleResponse(ctx, "host:devices-l")
	if err != nil {
		return nil, fmt.Errorf("ListDevices: %w", err)
	}

	devices, err := parseDeviceList(resp)
	if err != nil {
		return nil, fmt.Errorf("ListDevices: %w", err)
	}
	return devices, nil
}

// DeviceFeatures binds a transport to the device descriptor selects and
// returns the resolved transport id along with the device's feature set.
func (c *Adb) DeviceFeatures(ctx context.Context, descriptor DeviceDescriptor) (uint64, []string, error) {
	conn, err := c.ConnectDevice(ctx, descriptor, "host:features")
	if err != nil {
		return 0, nil, fmt.Errorf("DeviceFeatures: %w", err)
	}
	defer conn.Close()

	resp, err := conn.ReadMessageString()
	if err != nil {
		return 0, nil, fmt.Errorf("DeviceFeatures: %w", err)
	}
	return conn.TransportID, splitFeatures(resp), nil
}

// WaitState is the device lifecycle transition WaitFor blocks on.
type WaitState string

const (
	WaitStateDevice     WaitState = "device"
	WaitStateDisconnect WaitState = "disconnect"
)

// WaitFor blocks until the device descriptor selects reaches state. The
// server holds the status back until the condition is met, so the wait can
// be long; ctx is honoured for its whole duration.
func (c *Adb) WaitFor(ctx context.Context, descriptor DeviceDescriptor, state WaitState) error {
	command := fmt.Sprintf("wait-for-%s-%s", descriptor.waitType(), state)
	service, err := FormatDeviceService(descriptor, command)
	if err != nil {
		return fmt.Errorf("WaitFor: %w", err)
	}

	// The OKAY itself is the success signal; no payload follows.
	conn, err := c.Connect(ctx, service)
	if err != nil {
		return fmt.Errorf("WaitFor: %w", err)
	}
	conn.Close()
	return nil
}

// AddReverseTunnel registers handler for sockets the server opens toward
// this client, if the configured dialer supports reverse tunnels.
func (c *Adb) AddReverseTunnel(handler func(net.Conn), address string) (string, error) {
	t, ok := c.server.Tunneler()
	if !ok {
		return "", ErrTunnelsUnsupported
	}
	return t.AddReverseTunnel(handler, address)
}

func (c *Adb) RemoveReverseTunnel(address string) error {
	t, ok := c.server.Tunneler()
	if !ok {
		return ErrTunnelsUnsupported
	}
	return t.RemoveReverseTunnel(address)
}

func (c *Adb) ClearReverseTunnels() error {
	t, ok := c.server.Tunneler()
	if !ok {
		return ErrTunnelsUnsupported
	}
	return t.ClearReverseTunnels()
}

// roundTripSingleResponse issues req and reads the single response message,
// closing the connection afterwards. Close errors on this drained stream are
// swallowed; read and write errors propagate.
func (c *Adb) roundTripSingleResponse(ctx context.Context, req string) (string, error) {
	conn, err := c.Connect(ctx, req)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	return conn.ReadMessageString()
}

// parseServerVersion decodes the host:version payload: a hex-length-framed
// string whose content is itself a hex number. Historical double encoding.
func parseServerVersion(versionRaw string) (int, error) {
	version, err := strconv.ParseInt(versionRaw, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("error parsing server version: %s", versionRaw)
	}
	return int(version), nil
}

func splitFeatures(resp string) []string {
	if resp == "" {
		return nil
	}
	return strings.Split(resp, ",")
}
