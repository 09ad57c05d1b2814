package res

import "time"

type RoomResponse struct {
	RoomId          string     `json:"roomId"`
	PeerId          string     `json:"peerId"`
	LastMessage     string     `json:"lastMessage"`
	LastMessageTime *time.Time `json:"lastMessageTime,omitempty"`
	UnreadCount     int64      `json:"unreadCount"`
}

type RoomIDResponse struct {
	RoomId string `json:"roomId"`
}
