package entity

import "time"

// TypingStatus keeps only the latest value per (room, user).
type TypingStatus struct {
	ChatRoomID string    `json:"chatRoomId" gorm:"column:chat_room_id;primaryKey;type:varchar(255)"`
	UserID     string    `json:"userId" gorm:"column:user_id;primaryKey;type:varchar(255)"`
	IsTyping   bool      `json:"isTyping" gorm:"column:is_typing"`
	UpdatedAt  time.Time `json:"updatedAt" gorm:"column:updated_at"`
}

func (TypingStatus) TableName() string {
	return "typing_status"
}
