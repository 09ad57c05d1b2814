package usecase

import (
	"context"
	"dating-chat-api/dto/req"
	"dating-chat-api/entity"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

type MatchUsecaseImpl struct {
	Matches MatchStore
	*validator.Validate
	*logrus.Logger
}

func NewMatchUsecase(matches MatchStore, validate *validator.Validate, logger *logrus.Logger) *MatchUsecaseImpl {
	return &MatchUsecaseImpl{Matches: matches, Validate: validate, Logger: logger}
}

func (uc *MatchUsecaseImpl) CanChat(ctx context.Context, userAID, userBID string) (bool, error) {
	if userAID == "" || userBID == "" || userAID == userBID {
		return false, nil
	}

	matched, err := uc.Matches.ExistsBetween(ctx, userAID, userBID)
	if err != nil {
		uc.Logger.WithError(err).Errorf("Failed to check match between %s and %s", userAID, userBID)
		return false, fmt.Errorf("check match: %w", err)
	}
	return matched, nil
}

// Like records a swipe right. Repeating it returns the existing match.
func (uc *MatchUsecaseImpl) Like(ctx context.Context, likerID string, request *req.LikeRequest) (*entity.Match, error) {
	if err := uc.Validate.Struct(request); err != nil {
		uc.Logger.WithError(err).Errorf("failed to validate like request : %v", err)
		return nil, err
	}
	if likerID == "" || likerID == request.LikedID {
		return nil, ErrInvalidPair
	}

	match := &entity.Match{LikerID: likerID, LikedID: request.LikedID}
	if err := uc.Matches.CreateIfAbsent(ctx, match); err != nil {
		uc.Logger.WithError(err).Errorf("Failed to save match %s -> %s", likerID, request.LikedID)
		return nil, fmt.Errorf("save match: %w", err)
	}

	stored, err := uc.Matches.FindByPair(ctx, likerID, request.LikedID)
	if err != nil {
		return nil, fmt.Errorf("reload match: %w", err)
	}
	if stored == nil {
		return nil, fmt.Errorf("match %s -> %s missing after insert", likerID, request.LikedID)
	}

	uc.Logger.Infof("User %s liked %s", likerID, request.LikedID)
	return stored, nil
}
