package chat

import (
	"log/slog"
	"strings"
	"time"
)

// serverSource is the traffic-log attribution for server-originated lines.
const serverSource = "Server"

// Processor executes parsed commands against the shared registries. One
// executor goroutine per session calls Execute concurrently; every shared
// collection guards itself, so there is no global command lock.
type Processor struct {
	names  *NameRegistry
	rooms  *RoomRegistry
	logger *slog.Logger

	// OnDisconnect, when set, runs once at the end of a session's teardown.
	// The server uses it to drop the session from its live set.
	OnDisconnect func(*Session)
}

func NewProcessor(names *NameRegistry, rooms *RoomRegistry, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{names: names, rooms: rooms, logger: logger}
}

// Execute parses one inbound line and applies it. Blank lines are ignored.
// Protocol and precondition failures reply to the sender only and leave all
// state untouched.
func (p *Processor) Execute(sess *Session, line string) {
	cmd, perr := ParseCommand(line)
	if cmd == nil && perr == nil {
		return
	}

	p.logger.Info("traffic", "from", sess.ID(), "to", serverSource, "msg", line)

	var verb string
	if perr != nil {
		verb = perr.Verb
	} else {
		verb = cmd.Verb()
	}
	start := time.Now()
	defer func() {
		CommandsTotal.WithLabelValues(verb).Inc()
		CommandDuration.WithLabelValues(verb).Observe(time.Since(start).Seconds())
	}()

	if perr != nil {
		sess.deliver(p.logger, serverSource, perr.Reply())
		return
	}

	switch c := cmd.(type) {
	case SetUsernameCmd:
		p.setUsername(sess, c.Name)
	case JoinCmd:
		p.join(sess, c.RoomID)
	case LeaveCmd:
		p.leave(sess)
	case BroadcastCmd:
		p.broadcast(sess, c.Text)
	case PrivateCmd:
		p.private(sess, c.Target, c.Text)
	case ExitCmd:
		sess.deliver(p.logger, serverSource, "EXIT"+Text(MsgGoodbye))
		p.Disconnect(sess)
	}
}

func (p *Processor) setUsername(sess *Session, name string) {
	if err := p.names.Register(name, sess); err != nil {
		sess.deliver(p.logger, serverSource, Text(MsgUsernameTaken, name))
		return
	}

	old := sess.setName(name)
	if old != "" && old != name {
		p.names.Unregister(old, sess)
	}

	sess.deliver(p.logger, serverSource, Text(MsgRegisteredAs, name))
	p.logger.Info("user registered", "username", name)

	if room := sess.Room(); room != nil && old != name {
		room.Broadcast(p.logger, serverSource, Text(MsgUserChangedName, old, name), sess)
	}
}

func (p *Processor) join(sess *Session, roomID int) {
	name := sess.Name()
	if name == "" {
		sess.deliver(p.logger, serverSource, Text(MsgMustSetUsername))
		return
	}

	if old := sess.Room(); old != nil {
		old.Remove(sess)
		old.Broadcast(p.logger, serverSource, Text(MsgUserLeftRoom, name), sess)
	}

	room := p.rooms.GetOrCreate(roomID)
	others := room.MemberNames()
	room.Add(sess)
	sess.setRoom(room)

	if len(others) == 0 {
		sess.deliver(p.logger, serverSource, Text(MsgJoinedRoomEmpty, roomID))
	} else {
		sess.deliver(p.logger, serverSource, Text(MsgJoinedRoomUsers, roomID, strings.Join(others, ", ")))
	}
	room.Broadcast(p.logger, serverSource, Text(MsgUserJoinedRoom, name), sess)
}

func (p *Processor) leave(sess *Session) {
	room := sess.Room()
	if room == nil {
		sess.deliver(p.logger, serverSource, Text(MsgNotInRoom))
		return
	}

	room.Remove(sess)
	room.Broadcast(p.logger, serverSource, Text(MsgUserLeftRoom, sess.Name()), sess)
	sess.deliver(p.logger, serverSource, Text(MsgLeftRoom, room.ID))
	sess.setRoom(nil)
}

func (p *Processor) broadcast(sess *Session, text string) {
	name := sess.Name()
	if name == "" {
		sess.deliver(p.logger, serverSource, Text(MsgConnectFirst))
		return
	}
	room := sess.Room()
	if room == nil {
		sess.deliver(p.logger, serverSource, Text(MsgMustBeInRoom))
		return
	}

	room.Broadcast(p.logger, sess.ID(), Text(MsgRoomBroadcast, room.ID, name, text), sess)
}

func (p *Processor) private(sess *Session, target, text string) {
	name := sess.Name()
	if name == "" {
		sess.deliver(p.logger, serverSource, Text(MsgConnectFirst))
		return
	}

	other, ok := p.names.Lookup(target)
	if !ok {
		sess.deliver(p.logger, serverSource, Text(MsgUserNotFound, target))
		return
	}
	if other == sess {
		sess.deliver(p.logger, serverSource, Text(MsgPrivateSelf))
		return
	}

	other.deliver(p.logger, sess.ID(), Text(MsgPrivateMessage, name, text))
}

// Disconnect tears a session down: leave its room with a left-room notice,
// release its name, close both queues. Racing triggers (peer close, EXIT,
// server shutdown) collapse into a single run; every later call is a no-op.
func (p *Processor) Disconnect(sess *Session) {
	sess.closeOnce.Do(func() {
		id := sess.ID()
		sess.markClosed()

		if room := sess.Room(); room != nil {
			room.Remove(sess)
			room.Broadcast(p.logger, serverSource, Text(MsgUserLeftRoom, sess.Name()), sess)
			sess.setRoom(nil)
		}
		if name := sess.Name(); name != "" {
			p.names.Unregister(name, sess)
		}

		sess.inbox.Close()
		sess.outbox.Close()

		p.logger.Info("user disconnected", "id", id, "msg", Text(MsgUserDisconnected, id))
		if p.OnDisconnect != nil {
			p.OnDisconnect(sess)
		}
	})
}
