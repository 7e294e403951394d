package chat

import (
	"errors"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

// Server supervises the listen socket and promotes accepted connections to
// sessions. Bind or accept failures are retried up to MaxRetries consecutive
// times with RetryDelay between attempts; a successful accept resets the
// counter. On the final failure the loop stops for good and must be
// restarted externally.
type Server struct {
	addr   string
	logger *slog.Logger

	names *NameRegistry
	rooms *RoomRegistry
	proc  *Processor

	MaxRetries int
	RetryDelay time.Duration

	// listen is swappable so tests can inject failing listeners.
	listen func(network, addr string) (net.Listener, error)

	mu       sync.Mutex
	listener net.Listener
	sessions map[*Session]struct{}

	stopping atomic.Bool
	done     chan struct{}
}

func NewServer(addr string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	names := NewNameRegistry()
	rooms := NewRoomRegistry()
	s := &Server{
		addr:       addr,
		logger:     logger,
		names:      names,
		rooms:      rooms,
		proc:       NewProcessor(names, rooms, logger),
		MaxRetries: 5,
		RetryDelay: 2 * time.Second,
		listen:     net.Listen,
		sessions:   make(map[*Session]struct{}),
		done:       make(chan struct{}),
	}
	s.proc.OnDisconnect = s.dropSession
	return s
}

// Start launches the supervised accept loop.
func (s *Server) Start() {
	go s.run()
}

// Wait blocks until the accept loop has terminated, either through Stop or
// through exhausting its failure budget.
func (s *Server) Wait() {
	<-s.done
}

// Addr returns the bound listener address, or empty until a bind succeeds.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) run() {
	defer close(s.done)

	failures := 0
	for {
		if s.stopping.Load() {
			return
		}

		ln, err := s.listen("tcp", s.addr)
		if err != nil {
			if s.stopping.Load() {
				return
			}
			var fatal bool
			failures, fatal = s.noteFailure(failures, err)
			if fatal {
				return
			}
			continue
		}

		s.mu.Lock()
		s.listener = ln
		s.mu.Unlock()
		s.logger.Info("server listening", "addr", ln.Addr().String())

		err = s.acceptLoop(ln, &failures)
		_ = ln.Close()
		if s.stopping.Load() || errors.Is(err, net.ErrClosed) {
			return
		}
		var fatal bool
		failures, fatal = s.noteFailure(failures, err)
		if fatal {
			return
		}
	}
}

// noteFailure counts one consecutive listener failure and sleeps before the
// next attempt. fatal is true once the budget is exhausted.
func (s *Server) noteFailure(failures int, err error) (int, bool) {
	failures++
	s.logger.Error("listener failure", "attempt", failures, "max", s.MaxRetries, "err", err)
	if failures >= s.MaxRetries {
		s.logger.Error("server stopped permanently", "attempts", failures)
		return failures, true
	}
	time.Sleep(s.RetryDelay)
	return failures, false
}

func (s *Server) acceptLoop(ln net.Listener, failures *int) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		*failures = 0
		s.handleConn(conn)
	}
}

// handleConn wires a fresh connection into a Session and its three pumps,
// then greets it with the welcome line and the command vocabulary.
func (s *Server) handleConn(conn net.Conn) {
	sess := NewSession(conn)

	// Stop sets stopping before it snapshots s.sessions under s.mu, so
	// checking stopping while holding s.mu leaves no window: either this
	// session lands in the snapshot and Stop tears it down, or the check
	// sees stopping and the session is turned away here.
	s.mu.Lock()
	if s.stopping.Load() {
		s.mu.Unlock()
		sess.deliver(s.logger, serverSource, "EXIT"+Text(MsgServerStopped))
		s.proc.Disconnect(sess)
		go sess.writePump(s.logger, s.proc)
		return
	}
	s.sessions[sess] = struct{}{}
	count := len(s.sessions)
	s.mu.Unlock()
	ConnectedSessions.Set(float64(count))

	s.logger.Info("user connected", "id", sess.ID())
	sess.deliver(s.logger, serverSource, Text(MsgWelcome))
	sess.deliver(s.logger, serverSource, CommandsLine())

	go sess.readPump(s.logger, s.proc)
	go sess.execPump(s.proc)
	go sess.writePump(s.logger, s.proc)
}

func (s *Server) dropSession(sess *Session) {
	s.mu.Lock()
	delete(s.sessions, sess)
	count := len(s.sessions)
	s.mu.Unlock()
	ConnectedSessions.Set(float64(count))
}

// Stop closes the listener, notifies every live session with an
// EXIT-prefixed shutdown line, tears all sessions down, and clears the
// registries. Safe to call more than once.
func (s *Server) Stop() {
	if !s.stopping.CompareAndSwap(false, true) {
		return
	}
	s.logger.Info("shutting down")

	s.mu.Lock()
	ln := s.listener
	live := make([]*Session, 0, len(s.sessions))
	for sess := range s.sessions {
		live = append(live, sess)
	}
	s.mu.Unlock()

	if ln != nil {
		_ = ln.Close()
	}

	for _, sess := range live {
		sess.deliver(s.logger, serverSource, "EXIT"+Text(MsgServerStopped))
		s.proc.Disconnect(sess)
	}

	s.names.Reset()
	s.rooms.Reset()
	s.logger.Info("shutdown complete")
}
