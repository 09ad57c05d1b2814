package repository

import (
	"context"
	"errors"
	"gorm.io/gorm"
)

type Repository[T any] struct {
	*gorm.DB
}

func (repo Repository[T]) Save(ctx context.Context, entity *T) error {
	return repo.DB.WithContext(ctx).Create(entity).Error
}

// FindById returns nil, nil when no row matches.
func (repo Repository[T]) FindById(ctx context.Context, id string) (*T, error) {
	var entity T
	err := repo.DB.WithContext(ctx).Where("id = ?", id).Take(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}
