package usecase

import (
	"context"
	"dating-chat-api/entity"
	"time"
)

// Stores are implemented by the gorm repositories. Finders return nil, nil
// when no row matches.

type MatchStore interface {
	ExistsBetween(ctx context.Context, userAID, userBID string) (bool, error)
	CreateIfAbsent(ctx context.Context, match *entity.Match) error
	FindByPair(ctx context.Context, likerID, likedID string) (*entity.Match, error)
}

type RoomStore interface {
	FindByPairKey(ctx context.Context, pairKey string) (*entity.ChatRoom, error)
	CreateIfAbsent(ctx context.Context, room *entity.ChatRoom) error
	FindChatByID(ctx context.Context, id string) (*entity.ChatRoom, error)
	FindAllByUserID(ctx context.Context, userID string) ([]entity.ChatRoom, error)
}

type MessageStore interface {
	Save(ctx context.Context, message *entity.Message) error
	FindById(ctx context.Context, id string) (*entity.Message, error)
	FindByChatRoomID(ctx context.Context, chatRoomID string) ([]entity.Message, error)
	// FindLastByChatRoomIDs maps each room id to its newest message; rooms
	// without messages are absent.
	FindLastByChatRoomIDs(ctx context.Context, chatRoomIDs []string) (map[string]entity.Message, error)
	SoftDelete(ctx context.Context, messageID, senderID string, at time.Time) (int64, error)
	CountUnread(ctx context.Context, chatRoomID, userID string) (int64, error)
	// CountUnreadByChatRoomIDs is CountUnread for many rooms in one query;
	// rooms with nothing unread are absent.
	CountUnreadByChatRoomIDs(ctx context.Context, chatRoomIDs []string, userID string) (map[string]int64, error)
}

// RoomAuthorizer is the part of ChatUsecase the message usecase needs to
// check a reader against the room of a message.
type RoomAuthorizer interface {
	AuthorizeRoom(ctx context.Context, roomID, userID string) (*entity.ChatRoom, error)
}

type MessageStatusStore interface {
	Upsert(ctx context.Context, status *entity.MessageStatus) error
}

type TypingStore interface {
	Upsert(ctx context.Context, status *entity.TypingStatus) error
}
