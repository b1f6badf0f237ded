package adbhost

import (
	"context"
	"fmt"

	"github.com/prife/adbhost/wire"
)

// Feature names a device or server may report.
const (
	FeatureShell2                    = "shell_v2"
	FeatureCmd                       = "cmd"
	FeatureStat2                     = "stat_v2"
	FeatureLs2                       = "ls_v2"
	FeatureLibusb                    = "libusb"
	FeaturePushSync                  = "push_sync"
	FeatureApex                      = "apex"
	FeatureFixedPushMkdir            = "fixed_push_mkdir"
	FeatureAbb                       = "abb"
	FeatureFixedPushSymlinkTimestamp = "fixed_push_symlink_timestamp"
	FeatureAbbExec                   = "abb_exec"
	FeatureRemountShell              = "remount_shell"
	FeatureTrackApp                  = "track_app"
	FeatureSendRecv2                 = "sendrecv_v2"
	FeatureDelayedAck                = "delayed_ack"
)

// Banner describes a bound device. The feature list is the authoritative
// capability set; product, model and device are best-effort decoration from
// the listing.
type Banner struct {
	Product  string
	Model    string
	Device   string
	Features []string
}

func (b Banner) HasFeature(name string) bool {
	for _, f := range b.Features {
		if f == name {
			return true
		}
	}
	return false
}

// Transport is a resolved handle on one device connection: its serial,
// banner and the server-assigned transport id, bound to the client that
// created it. Service channels opened through it address the device by id,
// so they keep hitting the same device even if serials recycle.
type Transport struct {
	client *Adb

	Serial      string
	Banner      Banner
	TransportID uint64
}

// CreateTransport resolves the device descriptor selects into a Transport.
//
// The feature set comes from the device itself; serial and banner
// decoration come from the listing entry with the matching transport id. If
// the device vanished from the listing in between (a race, not an error),
// the serial stays empty and the banner carries only the features.
func (c *Adb) CreateTransport(ctx context.Context, descriptor DeviceDescriptor) (*Transport, error) {
	transportID, features, err := c.DeviceFeatures(ctx, descriptor)
	if err != nil {
		return nil, fmt.Errorf("CreateTransport: %w", err)
	}

	devices, err := c.ListDevices(ctx)
	if err != nil {
		return nil, fmt.Errorf("CreateTransport: %w", err)
	}

	transport := &Transport{
		client:      c,
		Banner:      Banner{Features: features},
		TransportID: transportID,
	}
	for _, device := range devices {
		if device.TransportID == transportID {
			transport.Serial = device.Serial
			transport.Banner.Product = device.Product
			transport.Banner.Model = device.Model
			transport.Banner.Device = device.DeviceInfo
			break
		}
	}
	return transport, nil
}

// Connect opens a service channel to this transport's device.
func (t *Transport) Connect(ctx context.Context, service string) (*ServiceConn, error) {
	return t.client.ConnectDevice(ctx, DeviceWithTransportID(t.TransportID), service)
}

// DeviceInfo re-resolves this transport's entry in the device listing.
func (t *Transport) DeviceInfo(ctx context.Context) (*DeviceInfo, error) {
	devices, err := t.client.ListDevices(ctx)
	if err != nil {
		return nil, fmt.Errorf("DeviceInfo: %w", err)
	}
	for _, device := range devices {
		if device.TransportID == t.TransportID {
			return device, nil
		}
	}
	return nil, fmt.Errorf("DeviceInfo: %w: device list doesn't contain transport id %d", wire.ErrDeviceNotFound, t.TransportID)
}
