package repository

import (
	"context"
	"dating-chat-api/entity"
	"gorm.io/gorm"
	"time"
)

type MessageRepository struct {
	Repository[entity.Message]
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{Repository[entity.Message]{DB: db}}
}

func (repository MessageRepository) FindByChatRoomID(ctx context.Context, chatRoomID string) ([]entity.Message, error) {
	messages := make([]entity.Message, 0)
	err := repository.DB.WithContext(ctx).
		Where("chat_room_id = ?", chatRoomID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&messages).Error
	return messages, err
}

// FindLastByChatRoomIDs loads the newest message of every room in one
// DISTINCT ON query.
func (repository MessageRepository) FindLastByChatRoomIDs(ctx context.Context, chatRoomIDs []string) (map[string]entity.Message, error) {
	lastMessages := make(map[string]entity.Message, len(chatRoomIDs))
	if len(chatRoomIDs) == 0 {
		return lastMessages, nil
	}

	var messages []entity.Message
	err := repository.DB.WithContext(ctx).
		Select("DISTINCT ON (chat_room_id) *").
		Where("chat_room_id IN ?", chatRoomIDs).
		Order("chat_room_id").
		Order("created_at DESC").
		Order("id DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	for _, message := range messages {
		lastMessages[message.ChatRoomID] = message
	}
	return lastMessages, nil
}

// SoftDelete flags the message only when senderID owns it and reports the affected row count.
func (repository MessageRepository) SoftDelete(ctx context.Context, messageID, senderID string, at time.Time) (int64, error) {
	result := repository.DB.WithContext(ctx).
		Model(&entity.Message{}).
		Where("id = ? AND sender_id = ?", messageID, senderID).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"deleted_at": at,
		})
	return result.RowsAffected, result.Error
}

// CountUnread counts live messages from the other participant that userID has not read.
func (repository MessageRepository) CountUnread(ctx context.Context, chatRoomID, userID string) (int64, error) {
	var count int64
	err := repository.DB.WithContext(ctx).
		Model(&entity.Message{}).
		Where("chat_room_id = ? AND sender_id <> ? AND is_deleted = false", chatRoomID, userID).
		Where("NOT EXISTS (SELECT 1 FROM message_status s WHERE s.message_id = messages.id AND s.user_id = ? AND s.is_read = true)", userID).
		Count(&count).Error
	return count, err
}

type unreadRow struct {
	ChatRoomID string
	Unread     int64
}

func (repository MessageRepository) CountUnreadByChatRoomIDs(ctx context.Context, chatRoomIDs []string, userID string) (map[string]int64, error) {
	counts := make(map[string]int64, len(chatRoomIDs))
	if len(chatRoomIDs) == 0 {
		return counts, nil
	}

	var rows []unreadRow
	err := repository.DB.WithContext(ctx).
		Model(&entity.Message{}).
		Select("chat_room_id, COUNT(*) AS unread").
		Where("chat_room_id IN ? AND sender_id <> ? AND is_deleted = false", chatRoomIDs, userID).
		Where("NOT EXISTS (SELECT 1 FROM message_status s WHERE s.message_id = messages.id AND s.user_id = ? AND s.is_read = true)", userID).
		Group("chat_room_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.ChatRoomID] = row.Unread
	}
	return counts, nil
}
