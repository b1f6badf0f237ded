package services

import (
	"context"
	"errors"

	adb "github.com/prife/adbhost"
	log "github.com/sirupsen/logrus"
)

// DeviceEvent reports one lifecycle transition of a watched device.
type DeviceEvent struct {
	Serial      string
	TransportID uint64
	Online      bool
}

// Monitor watches the device selected by descriptor, reporting every
// connect/disconnect transition through onEvent until ctx is cancelled.
//
// Each cycle blocks on the server's wait-for-*-device service, resolves the
// arrived device into a transport for its serial and id, then blocks on
// wait-for-*-disconnect. The server only acks a wait once the condition
// holds, so the loop is idle between transitions.
func Monitor(ctx context.Context, client *adb.Adb, descriptor adb.DeviceDescriptor, onEvent func(DeviceEvent)) error {
	for {
		if err := client.WaitFor(ctx, descriptor, adb.WaitStateDevice); err != nil {
			return monitorErr(err)
		}

		event := DeviceEvent{Online: true}
		transport, err := client.CreateTransport(ctx, descriptor)
		if err != nil {
			// The device may already be gone again; report the transition anyway.
			log.Warnf("adb-monitor: device arrived but could not be resolved: %v", err)
		} else {
			event.Serial = transport.Serial
			event.TransportID = transport.TransportID
		}
		log.Infof("adb-monitor: online %+v", event)
		onEvent(event)

		if err := client.WaitFor(ctx, descriptor, adb.WaitStateDisconnect); err != nil {
			return monitorErr(err)
		}
		event.Online = false
		log.Infof("adb-monitor: offline %+v", event)
		onEvent(event)
	}
}

// monitorErr turns a cancellation into a clean stop.
func monitorErr(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	log.Errorln(err)
	return err
}
