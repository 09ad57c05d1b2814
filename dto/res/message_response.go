package res

import "time"

type MessageResponse struct {
	MessageId string    `json:"messageId"`
	ChatRoom  string    `json:"chatRoomId"`
	SenderId  string    `json:"senderId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	IsDeleted bool      `json:"isDeleted"`
	IsImage   bool      `json:"isImage"`
	ImageURL  string    `json:"imageUrl,omitempty"`
}
