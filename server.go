package adbhost

import (
	"context"
	"fmt"

	"github.com/prife/adbhost/wire"
)

const (
	// Default port the adb server listens on.
	AdbPort = 5037
)

type ServerConfig struct {
	// Dialer used to connect to the adb server.
	Dialer

	// Host and port the adb server is listening on. If not specified, will use the default port on localhost.
	Host string
	Port int

	// Socket is a unix socket path the server is listening on. When set it
	// takes precedence over Host and Port.
	Socket string
}

// server knows how to connect to the adb server.
type server interface {
	Dial(ctx context.Context) (*wire.Conn, error)
	Tunneler() (ReverseTunneler, bool)
}

type realServer struct {
	config ServerConfig

	// Caches Host:Port so they don't have to be concatenated for every dial.
	address string
}

func newServer(config ServerConfig) (server, error) {
	if config.Socket != "" {
		if config.Dialer == nil {
			config.Dialer = UnixDialer{}
		}
		return &realServer{
			config:  config,
			address: config.Socket,
		}, nil
	}

	if config.Dialer == nil {
		config.Dialer = tcpDialer{}
	}

	if config.Host == "" {
		config.Host = "127.0.0.1"
	}
	if config.Port == 0 {
		config.Port = AdbPort
	}

	return &realServer{
		config:  config,
		address: fmt.Sprintf("%s:%d", config.Host, config.Port),
	}, nil
}

func (s *realServer) Dial(ctx context.Context) (*wire.Conn, error) {
	return s.config.Dial(ctx, s.address)
}

func (s *realServer) Tunneler() (ReverseTunneler, bool) {
	t, ok := s.config.Dialer.(ReverseTunneler)
	return t, ok
}
