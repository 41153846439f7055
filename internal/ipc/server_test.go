package ipc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func echoHandler() Handler {
	return HandlerFunc(func(ctx context.Context, req Request, payload []byte) (Result, []byte) {
		if req.Cmd == CmdEcho {
			return ResultOK, EncodeUTF16LE("pong")
		}
		return ResultUnknownCommand, nil
	})
}

func TestServerEchoRoundTrip(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.Listen = Listen
	srv := NewServer(cfg, echoHandler())
	require.NoError(t, srv.Start())
	defer srv.Stop()

	// give the accept loop a moment to start listening
	time.Sleep(10 * time.Millisecond)

	conn, err := Dial()
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, WriteRequest(conn, Request{Cmd: CmdEcho}, nil))
	resp, data, err := ReadResponse(conn)
	require.NoError(t, err)
	require.Equal(t, ResultOK, resp.ResultCode)

	s, err := DecodeUTF16LE(data)
	require.NoError(t, err)
	require.Equal(t, "pong", s)
}

func TestServerRejectsUnknownCommand(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.Listen = Listen
	srv := NewServer(cfg, echoHandler())
	require.NoError(t, srv.Start())
	defer srv.Stop()

	time.Sleep(10 * time.Millisecond)

	conn, err := Dial()
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, WriteRequest(conn, Request{Cmd: CmdShutdown}, nil))
	resp, _, err := ReadResponse(conn)
	require.NoError(t, err)
	require.Equal(t, ResultUnknownCommand, resp.ResultCode)
}
