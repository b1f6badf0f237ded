package wire

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdbServerError(t *testing.T) {
	tests := []struct {
		request  string
		msg      string
		sentinel error
	}{
		{"", "fail", ErrAdb},
		{"host:features", "unknown host service", ErrAdb},
		{"", "device not found", ErrDeviceNotFound},
		{"", "device 'LGV4801c74eccd' not found", ErrDeviceNotFound},
		{"host:tport:usb", "no devices/emulators found", ErrAdb},
	}

	for _, tt := range tests {
		err := adbServerError(tt.request, tt.msg)
		assert.True(t, errors.Is(err, tt.sentinel), "%s should map to %v", tt.msg, tt.sentinel)
		assert.Contains(t, err.Error(), tt.msg)
		assert.Contains(t, err.Error(), "request "+tt.request)
	}
}

func TestErrIncompleteMessage(t *testing.T) {
	err := errIncompleteMessage("length", 1, 4)
	assert.True(t, errors.Is(err, ErrConnectionReset))
	assert.EqualError(t, err, "ConnectionReset: incomplete length: read 1 bytes, expecting 4")
}
