package realtime

import (
	"dating-chat-api/entity"
	"dating-chat-api/enum"
)

// Event is one change notification for a chat room.
type Event struct {
	Type    enum.EventType       `json:"type"`
	RoomID  string               `json:"roomId"`
	Message *entity.Message      `json:"message,omitempty"`
	Typing  *entity.TypingStatus `json:"typing,omitempty"`
}

func MessageEvent(eventType enum.EventType, message *entity.Message) Event {
	return Event{Type: eventType, RoomID: message.ChatRoomID, Message: message}
}

func TypingEvent(status *entity.TypingStatus) Event {
	return Event{Type: enum.EventTypingChanged, RoomID: status.ChatRoomID, Typing: status}
}

func messagesChannel(roomID string) string {
	return "chat:messages:" + roomID
}

func typingChannel(roomID string) string {
	return "chat:typing:" + roomID
}
