package adbhost

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/prife/adbhost/wire"
)

// mockServer replays a scripted server side of the protocol over net.Pipe.
// Every request frame received (across all connections) is recorded in
// order; each one consumes the next scripted response. A nil response holds
// the connection open without replying (for cancellation tests); an
// exhausted script closes it.
type mockServer struct {
	mu        sync.Mutex
	responses [][]byte

	Requests []string
	Dials    int

	disconnects chan struct{}
}

func newMockServer(responses ...[]byte) *mockServer {
	return &mockServer{
		responses:   responses,
		disconnects: make(chan struct{}, 16),
	}
}

func newMockClient(m *mockServer) *Adb {
	client, err := NewWithConfig(ServerConfig{Dialer: m})
	if err != nil {
		panic(err)
	}
	return client
}

func (m *mockServer) Dial(ctx context.Context, address string) (*wire.Conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	client, server := net.Pipe()
	m.mu.Lock()
	m.Dials++
	m.mu.Unlock()
	go m.serve(server)
	return wire.NewConn(client), nil
}

func (m *mockServer) serve(c net.Conn) {
	defer func() {
		c.Close()
		m.disconnects <- struct{}{}
	}()

	for {
		req, err := readFrame(c)
		if err != nil {
			return
		}

		m.mu.Lock()
		m.Requests = append(m.Requests, req)
		exhausted := len(m.responses) == 0
		var resp []byte
		if !exhausted {
			resp = m.responses[0]
			m.responses = m.responses[1:]
		}
		m.mu.Unlock()

		if exhausted {
			return
		}
		if resp == nil {
			// Scripted silence: keep the connection open, reply with nothing.
			continue
		}
		if _, err := c.Write(resp); err != nil {
			return
		}
	}
}

// waitDisconnect blocks until a served connection has been torn down,
// proving the client closed it.
func (m *mockServer) waitDisconnect(t *testing.T) {
	t.Helper()
	select {
	case <-m.disconnects:
	case <-time.After(time.Second):
		t.Fatal("connection was not closed")
	}
}

func (m *mockServer) requests() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Requests...)
}

func readFrame(c net.Conn) (string, error) {
	lenBuf := make([]byte, 4)
	if _, err := io.ReadFull(c, lenBuf); err != nil {
		return "", err
	}
	length, err := strconv.ParseUint(string(lenBuf), 16, 32)
	if err != nil {
		return "", fmt.Errorf("mock server got a malformed length prefix: %q", lenBuf)
	}
	payload := make([]byte, length)
	if _, err := io.ReadFull(c, payload); err != nil {
		return "", err
	}
	return string(payload), nil
}

// Response builders.

func respOkay() []byte {
	return []byte(wire.StatusSuccess)
}

func respOkayFrame(payload string) []byte {
	return append(respOkay(), frame(payload)...)
}

func respFail(reason string) []byte {
	return append([]byte(wire.StatusFailure), frame(reason)...)
}

func frame(payload string) []byte {
	return []byte(fmt.Sprintf("%04x%s", len(payload), payload))
}

func transportID(id uint64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, id)
	return buf
}

func respOkayWithTransportID(id uint64) []byte {
	return append(respOkay(), transportID(id)...)
}
