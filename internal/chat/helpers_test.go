package chat

import (
	"io"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// nextLine pops one line from q, failing the test after a second.
func nextLine(t *testing.T, q *lineQueue) string {
	t.Helper()
	ch := make(chan string, 1)
	go func() {
		if s, ok := q.Pop(); ok {
			ch <- s
		}
	}()
	select {
	case s := <-ch:
		return s
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for line")
		return ""
	}
}

// waitForPrefix pops lines until one starts with prefix.
func waitForPrefix(t *testing.T, q *lineQueue, prefix string) string {
	t.Helper()
	deadline := time.Now().Add(1 * time.Second)
	for time.Now().Before(deadline) {
		line := nextLine(t, q)
		if strings.HasPrefix(line, prefix) {
			return line
		}
	}
	t.Fatalf("no line with prefix %q", prefix)
	return ""
}

// expectNoLine asserts the queue stays empty for a short settle window.
func expectNoLine(t *testing.T, q *lineQueue) {
	t.Helper()
	time.Sleep(50 * time.Millisecond)
	if n := q.Len(); n != 0 {
		t.Fatalf("expected empty queue, %d lines pending", n)
	}
}

func newTestProcessor() *Processor {
	return NewProcessor(NewNameRegistry(), NewRoomRegistry(), testLogger())
}

// newPipeSession returns a session backed by one end of a net.Pipe and the
// client end of the pipe.
func newPipeSession(t *testing.T) (*Session, net.Conn) {
	t.Helper()
	serverConn, clientConn := net.Pipe()
	t.Cleanup(func() {
		_ = serverConn.Close()
		_ = clientConn.Close()
	})
	return NewSession(serverConn), clientConn
}
