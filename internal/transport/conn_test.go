package transport

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pipeConn(t *testing.T) (*Conn, net.Conn) {
	t.Helper()
	client, server := net.Pipe()
	t.Cleanup(func() {
		client.Close()
		server.Close()
	})
	return NewConn(server, 0, 0), client
}

func TestReadLine(t *testing.T) {
	conn, peer := pipeConn(t)

	go func() {
		_, _ = peer.Write([]byte("hello world\n"))
	}()

	line, err := conn.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "hello world", line)
}

func TestReadLine_CRLF(t *testing.T) {
	conn, peer := pipeConn(t)

	go func() {
		_, _ = peer.Write([]byte("rock\r\n"))
	}()

	line, err := conn.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "rock", line)
}

func TestReadLine_SplitAcrossWrites(t *testing.T) {
	conn, peer := pipeConn(t)

	go func() {
		_, _ = peer.Write([]byte("sci"))
		time.Sleep(10 * time.Millisecond)
		_, _ = peer.Write([]byte("ssors\n"))
	}()

	line, err := conn.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "scissors", line)
}

func TestReadLine_FiltersControlCharacters(t *testing.T) {
	conn, peer := pipeConn(t)

	go func() {
		_, _ = peer.Write([]byte("jo\x08in\tx\n"))
	}()

	line, err := conn.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "join\tx", line)
}

func TestReadLine_PeerClose(t *testing.T) {
	conn, peer := pipeConn(t)

	go func() {
		_, _ = peer.Write([]byte("partial"))
		peer.Close()
	}()

	_, err := conn.ReadLine()
	assert.Error(t, err, "peer close mid-line surfaces as a read error")
}

func TestWriteLine(t *testing.T) {
	conn, peer := pipeConn(t)

	go func() {
		require.NoError(t, conn.WriteLine("Goodbye!"))
	}()

	buf := make([]byte, 64)
	n, err := peer.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "Goodbye!\n", string(buf[:n]))
}

func TestWrite_Block(t *testing.T) {
	conn, peer := pipeConn(t)

	go func() {
		require.NoError(t, conn.Write([]byte("line one\nline two\n")))
	}()

	buf := make([]byte, 64)
	n, err := peer.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\n", string(buf[:n]))
}
