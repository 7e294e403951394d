package chat

import "fmt"

// MessageKey identifies a user-facing message template. The routing engine
// only decides which sessions receive which event; the wording lives here so
// a localized catalog can be swapped in without touching the protocol path.
type MessageKey string

const (
	MsgWelcome           MessageKey = "welcome"
	MsgInvalidCommand    MessageKey = "invalid_command"
	MsgMissingName       MessageKey = "setusername_missing_name"
	MsgUsernameTaken     MessageKey = "username_taken"
	MsgRegisteredAs      MessageKey = "registered_as"
	MsgUserChangedName   MessageKey = "user_changed_name"
	MsgMustSetUsername   MessageKey = "must_set_username"
	MsgProvideRoomNumber MessageKey = "provide_room_number"
	MsgJoinedRoomEmpty   MessageKey = "joined_room_empty"
	MsgJoinedRoomUsers   MessageKey = "joined_room_with_users"
	MsgUserJoinedRoom    MessageKey = "user_joined_room"
	MsgUserLeftRoom      MessageKey = "user_left_room"
	MsgNotInRoom         MessageKey = "not_in_room"
	MsgLeftRoom          MessageKey = "left_room"
	MsgConnectFirst      MessageKey = "connect_first"
	MsgMustBeInRoom      MessageKey = "must_be_in_room"
	MsgProvideMessage    MessageKey = "provide_message"
	MsgRoomBroadcast     MessageKey = "room_broadcast"
	MsgPrivateUsage      MessageKey = "private_usage"
	MsgUserNotFound      MessageKey = "user_not_found"
	MsgPrivateSelf       MessageKey = "private_self"
	MsgPrivateMessage    MessageKey = "private_message"
	MsgGoodbye           MessageKey = "goodbye"
	MsgServerStopped     MessageKey = "server_stopped"
	MsgUserDisconnected  MessageKey = "user_disconnected"
)

var catalog = map[MessageKey]string{
	MsgWelcome:           "Welcome to the chat server",
	MsgInvalidCommand:    "Invalid command",
	MsgMissingName:       "Provide a username: SETUSERNAME <name>",
	MsgUsernameTaken:     "Username %s is already taken",
	MsgRegisteredAs:      "You are now registered as %s",
	MsgUserChangedName:   "%s changed name to %s",
	MsgMustSetUsername:   "You must set a username before joining a room",
	MsgProvideRoomNumber: "Provide a room number: JOIN <number>",
	MsgJoinedRoomEmpty:   "Joined room %d. You are the only one here",
	MsgJoinedRoomUsers:   "Joined room %d. Also here: %s",
	MsgUserJoinedRoom:    "%s joined the room",
	MsgUserLeftRoom:      "%s left the room",
	MsgNotInRoom:         "You are not in a room",
	MsgLeftRoom:          "Left room %d",
	MsgConnectFirst:      "You must set a username first",
	MsgMustBeInRoom:      "You must be in a room to broadcast",
	MsgProvideMessage:    "Provide a message: BROADCAST <message>",
	MsgRoomBroadcast:     "[Room %d] %s: %s",
	MsgPrivateUsage:      "Usage: PRIVATE <user> <message>",
	MsgUserNotFound:      "User %s was not found",
	MsgPrivateSelf:       "You cannot send a private message to yourself",
	MsgPrivateMessage:    "[Private] %s: %s",
	MsgGoodbye:           "Goodbye!",
	MsgServerStopped:     "[Server message] Server is shutting down",
	MsgUserDisconnected:  "%s disconnected",
}

// Text renders the template for key with args.
func Text(key MessageKey, args ...any) string {
	tmpl, ok := catalog[key]
	if !ok {
		return string(key)
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}
