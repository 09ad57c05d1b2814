package repository

import (
	"context"
	"dating-chat-api/entity"
	"errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChatRepository struct {
	Repository[entity.ChatRoom]
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{Repository[entity.ChatRoom]{DB: db}}
}

func (repository ChatRepository) FindByPairKey(ctx context.Context, pairKey string) (*entity.ChatRoom, error) {
	var room entity.ChatRoom
	err := repository.DB.WithContext(ctx).Where("pair_key = ?", pairKey).First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// CreateIfAbsent inserts the room unless a room for the same pair exists.
// Callers re-read by pair key afterwards; the row may belong to a concurrent writer.
func (repository ChatRepository) CreateIfAbsent(ctx context.Context, room *entity.ChatRoom) error {
	return repository.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "pair_key"}},
			DoNothing: true,
		}).
		Create(room).Error
}

func (repository ChatRepository) FindChatByID(ctx context.Context, id string) (*entity.ChatRoom, error) {
	return repository.FindById(ctx, id)
}

func (repository ChatRepository) FindAllByUserID(ctx context.Context, userID string) ([]entity.ChatRoom, error) {
	var rooms []entity.ChatRoom
	err := repository.DB.WithContext(ctx).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}
