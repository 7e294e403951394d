package chat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
)

// Session holds the server-side state for one client connection. It is fed
// by three goroutines: a reader decoding the socket into inbox lines, an
// executor draining the inbox through the Processor, and a writer flushing
// the outbox back to the socket. Registries keep back-references to a
// Session but never own it; teardown runs exactly once.
type Session struct {
	conn net.Conn
	addr string

	mu     sync.Mutex
	name   string // display name, empty until SETUSERNAME succeeds
	room   *Room  // nil while not in a room
	closed bool

	inbox  *lineQueue
	outbox *lineQueue

	closeOnce sync.Once
}

func NewSession(conn net.Conn) *Session {
	addr := ""
	if conn != nil {
		addr = conn.RemoteAddr().String()
	}
	return &Session{
		conn:   conn,
		addr:   addr,
		inbox:  newLineQueue(),
		outbox: newLineQueue(),
	}
}

// ID is the routing and log attribution key: the display name once set,
// otherwise the peer address.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.name != "" {
		return s.name
	}
	return s.addr
}

func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// setName swaps the display name and returns the previous one.
func (s *Session) setName(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.name
	s.name = name
	return old
}

func (s *Session) Room() *Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.room
}

func (s *Session) setRoom(r *Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.room = r
}

func (s *Session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Session) markClosed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// deliver enqueues one outbound line and logs the traffic edge. It never
// blocks; a closed session silently drops the line.
func (s *Session) deliver(logger *slog.Logger, from, text string) {
	if s.outbox.Push(text) {
		logger.Info("traffic", "from", from, "to", s.ID(), "msg", text)
	}
}

// readPump decodes the socket into inbox lines until the peer goes away.
// Any read failure, EOF included, is a disconnect trigger.
func (s *Session) readPump(logger *slog.Logger, proc *Processor) {
	reader := bufio.NewReader(s.conn)
	for {
		line, err := readLine(reader)
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				logger.Warn("read error", "id", s.ID(), "err", err)
			}
			proc.Disconnect(s)
			return
		}
		if !s.inbox.Push(line) {
			return
		}
	}
}

// execPump drains the inbox through the Processor. Lines still queued when
// the session closes are discarded, not executed.
func (s *Session) execPump(proc *Processor) {
	for {
		line, ok := s.inbox.Pop()
		if !ok {
			return
		}
		if s.isClosed() {
			return
		}
		proc.Execute(s, line)
	}
}

// writePump flushes the outbox to the socket in FIFO order and closes the
// connection once the outbox is drained, which in turn unblocks the reader.
func (s *Session) writePump(logger *slog.Logger, proc *Processor) {
	defer func() {
		_ = s.conn.Close()
	}()

	w := bufio.NewWriter(s.conn)
	for {
		line, ok := s.outbox.Pop()
		if !ok {
			return
		}
		if _, err := w.WriteString(line + "\n"); err != nil {
			proc.Disconnect(s)
			return
		}
		if err := w.Flush(); err != nil {
			proc.Disconnect(s)
			return
		}
	}
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err == nil {
		return trimEOL(line), nil
	}
	if err == io.EOF && line != "" {
		// last line without newline
		return trimEOL(line), nil
	}
	if err == io.EOF {
		return "", io.EOF
	}
	return "", fmt.Errorf("read: %w", err)
}

func trimEOL(line string) string {
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line
}
