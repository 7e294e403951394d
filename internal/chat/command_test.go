package chat

import (
	"reflect"
	"testing"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Command
	}{
		{"setusername", "SETUSERNAME alice", SetUsernameCmd{Name: "alice"}},
		{"setusername keeps spaces in name", "SETUSERNAME alice smith", SetUsernameCmd{Name: "alice smith"}},
		{"join", "JOIN 5", JoinCmd{RoomID: 5}},
		{"join negative id", "JOIN -3", JoinCmd{RoomID: -3}},
		{"leave", "LEAVE", LeaveCmd{}},
		{"leave ignores trailing args", "LEAVE now", LeaveCmd{}},
		{"broadcast", "BROADCAST hello there", BroadcastCmd{Text: "hello there"}},
		{"private", "PRIVATE bob the secret", PrivateCmd{Target: "bob", Text: "the secret"}},
		{"exit", "EXIT", ExitCmd{}},
		{"lowercase verb", "join 5", JoinCmd{RoomID: 5}},
		{"mixed case verb", "BroadCast hi", BroadcastCmd{Text: "hi"}},
		{"surrounding whitespace", "  JOIN 5  ", JoinCmd{RoomID: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, perr := ParseCommand(tt.line)
			if perr != nil {
				t.Fatalf("ParseCommand(%q) error: %v", tt.line, perr)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ParseCommand(%q) = %#v, want %#v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantKey MessageKey
	}{
		{"unknown verb", "SHOUT hello", MsgInvalidCommand},
		{"setusername without name", "SETUSERNAME", MsgMissingName},
		{"setusername blank name", "SETUSERNAME   ", MsgMissingName},
		{"join without id", "JOIN", MsgProvideRoomNumber},
		{"join non-numeric id", "JOIN lobby", MsgProvideRoomNumber},
		{"broadcast without text", "BROADCAST", MsgProvideMessage},
		{"private without text", "PRIVATE bob", MsgPrivateUsage},
		{"private without target", "PRIVATE", MsgPrivateUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, perr := ParseCommand(tt.line)
			if cmd != nil {
				t.Fatalf("ParseCommand(%q) = %#v, want error", tt.line, cmd)
			}
			if perr == nil || perr.Key != tt.wantKey {
				t.Fatalf("ParseCommand(%q) error = %v, want key %q", tt.line, perr, tt.wantKey)
			}
		})
	}
}

func TestParseCommand_BlankLineIgnored(t *testing.T) {
	for _, line := range []string{"", "   ", "\t"} {
		cmd, perr := ParseCommand(line)
		if cmd != nil || perr != nil {
			t.Fatalf("ParseCommand(%q) = %#v, %v; want nil, nil", line, cmd, perr)
		}
	}
}

func TestCommandsLine(t *testing.T) {
	want := "COMMANDS SETUSERNAME, EXIT, PRIVATE, JOIN, LEAVE, BROADCAST"
	if got := CommandsLine(); got != want {
		t.Fatalf("CommandsLine() = %q, want %q", got, want)
	}
}
