// Command relay bridges an adb server between transports, optionally
// hexdumping the protocol for debugging: expose a unix-socket server on tcp,
// a tcp server on a unix socket, or tap a tcp server on another port.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"path"
	"runtime"

	log "github.com/sirupsen/logrus"
)

func tcpToUnix(tcp, unix string) error {
	listener, err := net.Listen("unix", unix)
	if err != nil {
		return fmt.Errorf("relay: fail to listen on: %v, error:%v", unix, err)
	}

	os.Chmod(unix, 0777)
	log.Infoln("listen on:", unix)
	for {
		conn, err := listener.Accept()
		if err != nil {
			return fmt.Errorf("relay: fail to accept: %v", err)
		}

		client, err := net.Dial("tcp", tcp)
		if err != nil {
			log.Errorln("relay: fail to dial:", err)
			conn.Close()
			continue
		}
		go func() {
			io.Copy(client, conn)
			client.Close()
		}()
		go func() {
			io.Copy(conn, client)
			conn.Close()
		}()
	}
}

func unixToTCP(unix, tcp string) error {
	listener, err := net.Listen("tcp", tcp)
	if err != nil {
		return fmt.Errorf("relay: fail to listen on: %v, error:%v", tcp, err)
	}

	log.Infoln("listen on:", tcp)
	for {
		conn, err := listener.Accept()
		if err != nil {
			return fmt.Errorf("relay: fail to accept: %v", err)
		}

		client, err := net.Dial("unix", unix)
		if err != nil {
			log.Errorln("relay: fail to dial:", err)
			conn.Close()
			continue
		}
		go func() {
			io.Copy(client, conn)
			client.Close()
		}()
		go func() {
			io.Copy(conn, client)
			conn.Close()
		}()
	}
}

// tcpToTCP taps the byte stream in both directions, hexdumping every chunk.
// Point a client at listen and watch the server protocol go by.
func tcpToTCP(target, listen string) error {
	listener, err := net.Listen("tcp4", listen)
	if err != nil {
		return fmt.Errorf("relay: fail to listen on: %v, error:%v", listen, err)
	}

	log.Infoln("listen on:", listen)
	for {
		conn, err := listener.Accept()
		if err != nil {
			return fmt.Errorf("relay: fail to accept: %v", err)
		}

		client, err := net.Dial("tcp", target)
		if err != nil {
			log.Errorln("relay: fail to dial:", err)
			conn.Close()
			continue
		}
		go func() {
			buf := make([]byte, 1024*1024)
			for {
				n, err := conn.Read(buf)
				if n > 0 {
					fmt.Printf("--->\n%s\n", hex.Dump(buf[:n]))
					client.Write(buf[:n])
				}

				if err != nil {
					client.Close()
					break
				}
			}
		}()
		go func() {
			buf := make([]byte, 1024*1024)
			for {
				n, err := client.Read(buf)
				if n > 0 {
					fmt.Printf("<---\n%s\n", hex.Dump(buf[:n]))
					conn.Write(buf[:n])
				}

				if err != nil {
					conn.Close()
					break
				}
			}
		}()
	}
}

var (
	mode   = flag.String("mode", "tcp2tcp", "tcp2tcp | tcp2unix | unix2tcp")
	target = flag.String("target", "127.0.0.1:5037", "address of the real adb server")
	listen = flag.String("listen", "127.0.0.1:6037", "address to expose")
)

func initLog() {
	log.SetReportCaller(true)
	log.SetFormatter(&log.TextFormatter{
		CallerPrettyfier: func(f *runtime.Frame) (string, string) {
			filename := path.Base(f.File)
			return "", fmt.Sprintf("%s:%d", filename, f.Line)
		},
	})
	log.SetLevel(log.InfoLevel)
}

func main() {
	flag.Parse()
	initLog()

	var err error
	switch *mode {
	case "tcp2tcp":
		err = tcpToTCP(*target, *listen)
	case "tcp2unix":
		err = tcpToUnix(*target, *listen)
	case "unix2tcp":
		err = unixToTCP(*target, *listen)
	default:
		err = fmt.Errorf("relay: unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatalln(err)
	}
}
