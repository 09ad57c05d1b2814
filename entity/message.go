package entity

import "time"

const (
	ImagePlaceholder   = "Sent an image"
	DeletedPlaceholder = "Message deleted"
)

// Message rows are never removed. A deleted message keeps its id and
// timestamp and only IsDeleted flips.
type Message struct {
	BaseEntity
	ChatRoomID string     `json:"chatRoomId" gorm:"column:chat_room_id;type:varchar(255);not null;index"`
	SenderID   string     `json:"senderId" gorm:"column:sender_id;type:varchar(255);not null;index"`
	Content    string     `json:"content" gorm:"type:text"`
	IsDeleted  bool       `json:"isDeleted" gorm:"column:is_deleted;not null;default:false"`
	DeletedAt  *time.Time `json:"deletedAt,omitempty" gorm:"column:deleted_at"`
	IsImage    bool       `json:"isImage" gorm:"column:is_image;not null;default:false"`
	ImageRef   string     `json:"imageRef,omitempty" gorm:"column:image_url;type:text"`

	Statuses []MessageStatus `json:"-" gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE;"`
}

func (Message) TableName() string {
	return "messages"
}

// Before reports whether m sorts before other in conversation order.
func (m *Message) Before(other *Message) bool {
	if m.CreatedAt.Equal(other.CreatedAt) {
		return m.ID < other.ID
	}
	return m.CreatedAt.Before(other.CreatedAt)
}
