package entity

import "strings"

// ChatRoom is the conversation between exactly two matched users.
// PairKey holds the unordered pair so the unique index allows one room per pair.
type ChatRoom struct {
	BaseEntity
	User1ID string `json:"user1Id" gorm:"column:user1_id;type:varchar(255);not null;index"`
	User2ID string `json:"user2Id" gorm:"column:user2_id;type:varchar(255);not null;index"`
	PairKey string `json:"-" gorm:"column:pair_key;type:varchar(511);not null;uniqueIndex"`

	Messages []Message `json:"-" gorm:"foreignKey:ChatRoomID;constraint:OnDelete:CASCADE;"`
}

func (ChatRoom) TableName() string {
	return "chat_rooms"
}

// PairKey returns the same key for (a, b) and (b, a).
func PairKey(userA, userB string) string {
	if strings.Compare(userA, userB) > 0 {
		userA, userB = userB, userA
	}
	return userA + ":" + userB
}

func (room *ChatRoom) HasParticipant(userID string) bool {
	return userID != "" && (room.User1ID == userID || room.User2ID == userID)
}

// Peer returns the other participant, or "" when userID is not in the room.
func (room *ChatRoom) Peer(userID string) string {
	switch userID {
	case room.User1ID:
		return room.User2ID
	case room.User2ID:
		return room.User1ID
	}
	return ""
}
