package repository

import (
	"context"
	"dating-chat-api/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MessageStatusRepository struct {
	Repository[entity.MessageStatus]
}

func NewMessageStatusRepository(db *gorm.DB) *MessageStatusRepository {
	return &MessageStatusRepository{Repository[entity.MessageStatus]{DB: db}}
}

// Upsert is keyed by (message_id, user_id).
func (repository MessageStatusRepository) Upsert(ctx context.Context, status *entity.MessageStatus) error {
	return repository.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "message_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_read", "read_at"}),
		}).
		Create(status).Error
}
