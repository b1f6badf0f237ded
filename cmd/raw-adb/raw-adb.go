// A simple tool for sending raw messages to an adb server.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	adb "github.com/prife/adbhost"
	"github.com/prife/adbhost/wire"
)

var (
	host = kingpin.Flag("host", "host the adb server is listening on").Default("127.0.0.1").String()
	port = kingpin.Flag("port", "port the adb server is listening on").Short('p').Default("5037").Int()
	unix = kingpin.Flag("unix", "dial a unix socket path instead of tcp").String()
)

func main() {
	kingpin.Parse()

	fmt.Printf("using %s:%d\n", *host, *port)

	printServerVersion()

	for {
		line := readLine()
		if line == "" {
			continue
		}
		err := doCommand(line)
		if err != nil {
			fmt.Println("error:", err)
		}
	}
}

func printServerVersion() {
	err := doCommand("host:version")
	if err != nil {
		log.Fatal(err)
	}
}

func readLine() string {
	fmt.Print("> ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		log.Fatal(err)
	}
	return strings.TrimSpace(line)
}

func doCommand(cmd string) error {
	client, err := adb.NewWithConfig(config())
	if err != nil {
		log.Fatal(err)
	}

	conn, err := client.Connect(context.Background(), cmd)
	if err != nil {
		return err
	}
	defer conn.Close()

	for {
		msg, err := conn.ReadMessage()
		if errors.Is(err, wire.ErrConnectionReset) {
			// The server closes the connection after the response.
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("< %s\n", msg)
	}
}

func config() adb.ServerConfig {
	if *unix != "" {
		return adb.ServerConfig{Socket: *unix}
	}
	return adb.ServerConfig{Host: *host, Port: *port}
}
