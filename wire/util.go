package wire

import (
	"fmt"
	"regexp"
)

// deviceNotFoundMessagePattern matches all possible error messages returned by adb servers to
// report that a matching device was not found. Used to map those onto ErrDeviceNotFound.
//
// Old servers send "device not found", and newer ones "device 'serial' not found".
var deviceNotFoundMessagePattern = regexp.MustCompile(`device( '.*')? not found`)

func adbServerError(request string, serverMsg string) error {
	if deviceNotFoundMessagePattern.MatchString(serverMsg) {
		return fmt.Errorf("%w: request %s, server error: %s", ErrDeviceNotFound, request, serverMsg)
	}
	return fmt.Errorf("%w: request %s, server error: %s", ErrAdb, request, serverMsg)
}

func errIncompleteMessage(description string, actual int, expected int) error {
	return fmt.Errorf("%w: incomplete %s: read %d bytes, expecting %d", ErrConnectionReset, description, actual, expected)
}
