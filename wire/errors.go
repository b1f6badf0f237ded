package wire

import (
	"errors"
)

var (
	ErrAssertion = errors.New("AssertionError")
	ErrParse     = errors.New("ParseError")
	// ErrServerNotAvailable the server was not available on the requested address.
	ErrServerNotAvailable = errors.New("ServerNotAvailable")
	// ErrNetwork general network error communicating with the server.
	ErrNetwork = errors.New("Network")
	// ErrConnectionReset the connection to the server was reset in the middle of an operation. Server probably died.
	ErrConnectionReset = errors.New("ConnectionReset")
	// ErrAdb the server returned FAIL with an error message.
	ErrAdb = errors.New("AdbError")
	// ErrDeviceNotFound the server returned a "device not found" error.
	ErrDeviceNotFound = errors.New("DeviceNotFound")
	// ErrUnexpectedStatus the server answered with something that is neither OKAY nor FAIL.
	ErrUnexpectedStatus = errors.New("UnexpectedStatus")
	// ErrReaderReleased a framing read was attempted after the reader was released.
	ErrReaderReleased = errors.New("ReaderReleased")
)
