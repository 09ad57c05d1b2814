package entity

// User is read by the chat flow only to address push notifications.
type User struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(255)"`
	Name      string `json:"name" gorm:"type:varchar(255)"`
	PushToken string `json:"-" gorm:"column:push_token;type:varchar(255)"`
}

func (User) TableName() string {
	return "users"
}
