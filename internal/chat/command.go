package chat

import (
	"strconv"
	"strings"
)

// Command is the closed set of protocol commands. ParseCommand turns one raw
// line into exactly one variant; execution is a plain switch in the
// Processor, so parsing stays testable on its own.
type Command interface {
	Verb() string
}

type SetUsernameCmd struct{ Name string }

type JoinCmd struct{ RoomID int }

type LeaveCmd struct{}

type BroadcastCmd struct{ Text string }

type PrivateCmd struct {
	Target string
	Text   string
}

type ExitCmd struct{}

func (SetUsernameCmd) Verb() string { return "SETUSERNAME" }
func (JoinCmd) Verb() string        { return "JOIN" }
func (LeaveCmd) Verb() string       { return "LEAVE" }
func (BroadcastCmd) Verb() string   { return "BROADCAST" }
func (PrivateCmd) Verb() string     { return "PRIVATE" }
func (ExitCmd) Verb() string        { return "EXIT" }

// commandVocabulary is announced to every client right after the welcome line.
var commandVocabulary = []string{"SETUSERNAME", "EXIT", "PRIVATE", "JOIN", "LEAVE", "BROADCAST"}

// CommandsLine renders the vocabulary announcement sent once after connect.
func CommandsLine() string {
	return "COMMANDS " + strings.Join(commandVocabulary, ", ")
}

// ParseError describes a malformed line: unknown verb or arguments that do
// not fit the command's shape. Precondition failures (no username, not in a
// room) are not parse errors; the Processor handles those.
type ParseError struct {
	Verb string
	Key  MessageKey
	Args []any
}

func (e *ParseError) Error() string {
	return "parse " + e.Verb + ": " + string(e.Key)
}

// Reply renders the line sent back to the offending session.
func (e *ParseError) Reply() string {
	return Text(e.Key, e.Args...)
}

// ParseCommand parses one trimmed inbound line. A blank line yields
// (nil, nil) and must not be dispatched. The command token is
// case-insensitive; the remainder of the line is interpreted per command.
func ParseCommand(line string) (Command, *ParseError) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil, nil
	}

	verb := trimmed
	rest := ""
	if i := strings.IndexAny(trimmed, " \t"); i >= 0 {
		verb = trimmed[:i]
		rest = strings.TrimSpace(trimmed[i+1:])
	}

	switch strings.ToUpper(verb) {
	case "SETUSERNAME":
		if rest == "" {
			return nil, &ParseError{Verb: "SETUSERNAME", Key: MsgMissingName}
		}
		return SetUsernameCmd{Name: rest}, nil

	case "JOIN":
		id, err := strconv.Atoi(rest)
		if err != nil {
			return nil, &ParseError{Verb: "JOIN", Key: MsgProvideRoomNumber}
		}
		return JoinCmd{RoomID: id}, nil

	case "LEAVE":
		return LeaveCmd{}, nil

	case "BROADCAST":
		if rest == "" {
			return nil, &ParseError{Verb: "BROADCAST", Key: MsgProvideMessage}
		}
		return BroadcastCmd{Text: rest}, nil

	case "PRIVATE":
		target, text, found := strings.Cut(rest, " ")
		text = strings.TrimSpace(text)
		if !found || target == "" || text == "" {
			return nil, &ParseError{Verb: "PRIVATE", Key: MsgPrivateUsage}
		}
		return PrivateCmd{Target: target, Text: text}, nil

	case "EXIT":
		return ExitCmd{}, nil

	default:
		return nil, &ParseError{Verb: "INVALID", Key: MsgInvalidCommand}
	}
}
