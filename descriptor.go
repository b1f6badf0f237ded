package adbhost

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidDescriptor the device descriptor does not carry a usable
// discriminant (unknown kind, or a blank serial).
var ErrInvalidDescriptor = errors.New("InvalidDescriptor")

type deviceDescriptorType int

const (
	// host:tport:any
	deviceAny deviceDescriptorType = iota
	// host:tport:serial:<serial>
	deviceSerial
	// host:tport:usb
	deviceUsb
	// host:tport:local
	deviceLocal
	// host:transport-id:<id>
	deviceTransportID
)

// DeviceDescriptor selects which device a host command or transport switch
// addresses. The zero value selects "any single device".
type DeviceDescriptor struct {
	descriptorType deviceDescriptorType

	// Only used if descriptorType is deviceSerial.
	serial string

	// Only used if descriptorType is deviceTransportID.
	transportID uint64
}

// AnyDevice selects the single connected device, whatever its transport.
func AnyDevice() DeviceDescriptor {
	return DeviceDescriptor{descriptorType: deviceAny}
}

// AnyUsbDevice selects the single device connected over USB.
func AnyUsbDevice() DeviceDescriptor {
	return DeviceDescriptor{descriptorType: deviceUsb}
}

// AnyLocalDevice selects the single device connected over TCP/IP (an
// emulator, or a device reached via adb connect).
func AnyLocalDevice() DeviceDescriptor {
	return DeviceDescriptor{descriptorType: deviceLocal}
}

func DeviceWithSerial(serial string) DeviceDescriptor {
	return DeviceDescriptor{
		descriptorType: deviceSerial,
		serial:         serial,
	}
}

// DeviceWithTransportID selects a device by the 64-bit id the server
// assigned to its transport. Binding by id skips the id exchange of the
// transport-switch handshake, since the id is already known.
func DeviceWithTransportID(id uint64) DeviceDescriptor {
	return DeviceDescriptor{
		descriptorType: deviceTransportID,
		transportID:    id,
	}
}

func (d DeviceDescriptor) String() string {
	switch d.descriptorType {
	case deviceAny:
		return "any device"
	case deviceUsb:
		return "usb device"
	case deviceLocal:
		return "local device"
	case deviceSerial:
		return "device with serial " + d.serial
	case deviceTransportID:
		return "device with transport id " + strconv.FormatUint(d.transportID, 10)
	default:
		return fmt.Sprintf("invalid descriptor %d", d.descriptorType)
	}
}

// hostPrefix returns the host-service prefix addressing the selected device:
// host, host-serial:<s>, host-usb, host-local, or host-transport-id:<n>.
func (d DeviceDescriptor) hostPrefix() (string, error) {
	switch d.descriptorType {
	case deviceAny:
		return "host", nil
	case deviceUsb:
		return "host-usb", nil
	case deviceLocal:
		return "host-local", nil
	case deviceSerial:
		if isBlank(d.serial) {
			return "", fmt.Errorf("%w: blank serial", ErrInvalidDescriptor)
		}
		return "host-serial:" + d.serial, nil
	case deviceTransportID:
		return "host-transport-id:" + strconv.FormatUint(d.transportID, 10), nil
	default:
		return "", fmt.Errorf("%w: unknown descriptor type %d", ErrInvalidDescriptor, d.descriptorType)
	}
}

// transportDescriptor returns the request that binds a host connection to
// the selected device. known reports whether the transport id is carried by
// the descriptor itself; only the host:tport forms make the server emit the
// 8-byte id before the status.
func (d DeviceDescriptor) transportDescriptor() (req string, known bool, err error) {
	switch d.descriptorType {
	case deviceAny:
		return "host:tport:any", false, nil
	case deviceUsb:
		return "host:tport:usb", false, nil
	case deviceLocal:
		return "host:tport:local", false, nil
	case deviceSerial:
		if isBlank(d.serial) {
			return "", false, fmt.Errorf("%w: blank serial", ErrInvalidDescriptor)
		}
		return "host:tport:serial:" + d.serial, false, nil
	case deviceTransportID:
		return "host:transport-id:" + strconv.FormatUint(d.transportID, 10), true, nil
	default:
		return "", false, fmt.Errorf("%w: unknown descriptor type %d", ErrInvalidDescriptor, d.descriptorType)
	}
}

// waitType maps the descriptor onto the transport class of a
// wait-for-<type>-<state> service. Only usb and local are distinguishable;
// everything else waits for any transport.
func (d DeviceDescriptor) waitType() string {
	switch d.descriptorType {
	case deviceUsb:
		return "usb"
	case deviceLocal:
		return "local"
	default:
		return "any"
	}
}

// FormatDeviceService renders command as a host service addressed to the
// device d selects, e.g. host-serial:abc:wait-for-any-device.
func FormatDeviceService(d DeviceDescriptor, command string) (string, error) {
	prefix, err := d.hostPrefix()
	if err != nil {
		return "", err
	}
	return prefix + ":" + command, nil
}
