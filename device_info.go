package adbhost

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/prife/adbhost/wire"
)

// ErrMissingTransportID a devices-l line for an online device carried no
// transport_id attribute.
var ErrMissingTransportID = errors.New("MissingTransportID")

// DeviceInfo describes one online device from a host:devices-l listing.
type DeviceInfo struct {
	// Always set.
	Serial string

	// Product, model and device are optional on the wire.
	Product    string
	Model      string
	DeviceInfo string

	// The id the server assigned to the device's transport. Never zero.
	TransportID uint64
}

func newDeviceInfo(serial string, attrs map[string]string) (*DeviceInfo, error) {
	if serial == "" {
		return nil, fmt.Errorf("%w: device serial cannot be blank", wire.ErrAssertion)
	}

	tidstr, ok := attrs["transport_id"]
	if !ok {
		return nil, fmt.Errorf("%w: device %s", ErrMissingTransportID, serial)
	}
	tid, err := strconv.ParseUint(tidstr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad transport_id %q for device %s", wire.ErrParse, tidstr, serial)
	}
	if tid == 0 {
		return nil, fmt.Errorf("%w: device %s", ErrMissingTransportID, serial)
	}

	return &DeviceInfo{
		Serial:      serial,
		Product:     attrs["product"],
		Model:       attrs["model"],
		DeviceInfo:  attrs["device"],
		TransportID: tid,
	}, nil
}

// parseDeviceList parses a host:devices-l payload. Lines whose state is not
// "device" are dropped, so offline and unauthorized entries never surface.
func parseDeviceList(list string) ([]*DeviceInfo, error) {
	devices := []*DeviceInfo{}
	scanner := bufio.NewScanner(strings.NewReader(list))

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		device, err := parseDeviceLong(line)
		if err != nil {
			return nil, err
		}
		if device != nil {
			devices = append(devices, device)
		}
	}

	return devices, nil
}

// parseDeviceLong parses one devices-l line: SERIAL STATE [KEY:VALUE]...
// Fields are split on any whitespace; the server has emitted both tabs and
// spaces over the years. Returns (nil, nil) for devices not in the online
// state.
func parseDeviceLong(line string) (*DeviceInfo, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil, fmt.Errorf("%w: malformed device line %q", wire.ErrParse, line)
	}

	// Anything that isn't the online state is filtered, including states
	// this library doesn't know about.
	state, err := parseDeviceState(fields[1])
	if err != nil || state != StateOnline {
		return nil, nil
	}

	return newDeviceInfo(fields[0], parseDeviceAttributes(fields[2:]))
}

func parseDeviceAttributes(fields []string) map[string]string {
	attrs := map[string]string{}
	for _, field := range fields {
		key, val, ok := strings.Cut(field, ":")
		if !ok {
			continue
		}
		switch key {
		case "product", "model", "device", "transport_id":
			attrs[key] = val
		}
	}
	return attrs
}
