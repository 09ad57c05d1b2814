package repository

import (
	"context"
	"dating-chat-api/entity"
	"errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MatchRepository struct {
	Repository[entity.Match]
}

func NewMatchRepository(db *gorm.DB) *MatchRepository {
	return &MatchRepository{Repository[entity.Match]{DB: db}}
}

// ExistsBetween checks both like directions.
func (repository MatchRepository) ExistsBetween(ctx context.Context, userAID, userBID string) (bool, error) {
	var count int64
	err := repository.DB.WithContext(ctx).
		Model(&entity.Match{}).
		Where("(liker_id = ? AND liked_id = ?) OR (liker_id = ? AND liked_id = ?)", userAID, userBID, userBID, userAID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (repository MatchRepository) CreateIfAbsent(ctx context.Context, match *entity.Match) error {
	return repository.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "liker_id"}, {Name: "liked_id"}},
			DoNothing: true,
		}).
		Create(match).Error
}

func (repository MatchRepository) FindByPair(ctx context.Context, likerID, likedID string) (*entity.Match, error) {
	var match entity.Match
	err := repository.DB.WithContext(ctx).
		Where("liker_id = ? AND liked_id = ?", likerID, likedID).
		First(&match).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &match, nil
}
