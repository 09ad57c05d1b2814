package repository

import (
	"context"
	"dating-chat-api/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TypingRepository struct {
	Repository[entity.TypingStatus]
}

func NewTypingRepository(db *gorm.DB) *TypingRepository {
	return &TypingRepository{Repository[entity.TypingStatus]{DB: db}}
}

func (repository TypingRepository) Upsert(ctx context.Context, status *entity.TypingStatus) error {
	return repository.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "chat_room_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_typing", "updated_at"}),
		}).
		Create(status).Error
}
