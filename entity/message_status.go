package entity

import "time"

type MessageStatus struct {
	MessageID string     `json:"messageId" gorm:"column:message_id;primaryKey;type:varchar(255)"`
	UserID    string     `json:"userId" gorm:"column:user_id;primaryKey;type:varchar(255)"`
	IsRead    bool       `json:"isRead" gorm:"column:is_read;default:false"`
	ReadAt    *time.Time `json:"readAt,omitempty" gorm:"column:read_at"`
}

func (MessageStatus) TableName() string {
	return "message_status"
}
