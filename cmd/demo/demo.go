// An app demonstrating most of the library's features.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"

	adb "github.com/prife/adbhost"
)

var (
	port = flag.Int("p", adb.AdbPort, "")

	client *adb.Adb
)

func main() {
	flag.Parse()
	ctx := context.Background()

	var err error
	client, err = adb.NewWithConfig(adb.ServerConfig{
		Port: *port,
	})
	if err != nil {
		log.Fatal(err)
	}

	serverVersion, err := client.ServerVersion(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Server version:", serverVersion)

	if err := client.ValidateVersion(ctx); err != nil {
		log.Fatal(err)
	}

	features, err := client.HostFeatures(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Server features:", features)

	devices, err := client.ListDevices(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Devices:")
	for _, device := range devices {
		fmt.Printf("\t%+v\n", *device)
	}

	PrintTransportAndError(ctx, adb.AnyDevice())
	PrintTransportAndError(ctx, adb.AnyLocalDevice())
	PrintTransportAndError(ctx, adb.AnyUsbDevice())
	for _, device := range devices {
		PrintTransportAndError(ctx, adb.DeviceWithSerial(device.Serial))
	}
}

func PrintTransportAndError(ctx context.Context, descriptor adb.DeviceDescriptor) {
	if err := PrintTransport(ctx, descriptor); err != nil {
		log.Println(err)
	}
}

func PrintTransport(ctx context.Context, descriptor adb.DeviceDescriptor) error {
	transport, err := client.CreateTransport(ctx, descriptor)
	if err != nil {
		return err
	}

	fmt.Println(descriptor)
	fmt.Printf("\tserial no: %s\n", transport.Serial)
	fmt.Printf("\ttransport id: %d\n", transport.TransportID)
	fmt.Printf("\tbanner: %+v\n", transport.Banner)
	fmt.Printf("\tshell_v2: %v\n", transport.Banner.HasFeature(adb.FeatureShell2))

	conn, err := transport.Connect(ctx, "shell:echo hello from adbhost")
	if err != nil {
		return err
	}
	defer conn.Close()

	output, err := io.ReadAll(conn)
	if err != nil {
		return err
	}
	fmt.Printf("\tshell output: %s", output)

	return nil
}
