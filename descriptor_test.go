package adbhost

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHostPrefix(t *testing.T) {
	tests := []struct {
		descriptor DeviceDescriptor
		want       string
	}{
		{AnyDevice(), "host"},
		{AnyUsbDevice(), "host-usb"},
		{AnyLocalDevice(), "host-local"},
		{DeviceWithSerial("emulator-5554"), "host-serial:emulator-5554"},
		{DeviceWithTransportID(23), "host-transport-id:23"},
	}

	seen := map[string]bool{}
	for _, tt := range tests {
		prefix, err := tt.descriptor.hostPrefix()
		assert.NoError(t, err)
		assert.Equal(t, tt.want, prefix)
		assert.False(t, seen[prefix], "prefixes must be distinct per descriptor")
		seen[prefix] = true
	}
}

func TestTransportDescriptor(t *testing.T) {
	tests := []struct {
		descriptor DeviceDescriptor
		want       string
		idKnown    bool
	}{
		{AnyDevice(), "host:tport:any", false},
		{AnyUsbDevice(), "host:tport:usb", false},
		{AnyLocalDevice(), "host:tport:local", false},
		{DeviceWithSerial("emulator-5554"), "host:tport:serial:emulator-5554", false},
		{DeviceWithTransportID(23), "host:transport-id:23", true},
	}

	for _, tt := range tests {
		req, known, err := tt.descriptor.transportDescriptor()
		assert.NoError(t, err)
		assert.Equal(t, tt.want, req)
		assert.Equal(t, tt.idKnown, known)
	}
}

func TestWaitType(t *testing.T) {
	assert.Equal(t, "any", AnyDevice().waitType())
	assert.Equal(t, "usb", AnyUsbDevice().waitType())
	assert.Equal(t, "local", AnyLocalDevice().waitType())
	assert.Equal(t, "any", DeviceWithSerial("x").waitType())
	assert.Equal(t, "any", DeviceWithTransportID(1).waitType())
}

func TestFormatDeviceService(t *testing.T) {
	service, err := FormatDeviceService(DeviceWithSerial("abc"), "wait-for-any-device")
	assert.NoError(t, err)
	assert.Equal(t, "host-serial:abc:wait-for-any-device", service)

	service, err = FormatDeviceService(AnyDevice(), "features")
	assert.NoError(t, err)
	assert.Equal(t, "host:features", service)
}

func TestBlankSerialInvalid(t *testing.T) {
	for _, serial := range []string{"", "  ", "\t"} {
		_, err := DeviceWithSerial(serial).hostPrefix()
		assert.True(t, errors.Is(err, ErrInvalidDescriptor))

		_, _, err = DeviceWithSerial(serial).transportDescriptor()
		assert.True(t, errors.Is(err, ErrInvalidDescriptor))
	}
}

func TestUnknownDescriptorTypeInvalid(t *testing.T) {
	bogus := DeviceDescriptor{descriptorType: deviceDescriptorType(42)}

	_, err := bogus.hostPrefix()
	assert.True(t, errors.Is(err, ErrInvalidDescriptor))

	_, _, err = bogus.transportDescriptor()
	assert.True(t, errors.Is(err, ErrInvalidDescriptor))
}

func TestDescriptorString(t *testing.T) {
	assert.Equal(t, "any device", AnyDevice().String())
	assert.Equal(t, "device with serial abc", DeviceWithSerial("abc").String())
	assert.Equal(t, "device with transport id 7", DeviceWithTransportID(7).String())
}
