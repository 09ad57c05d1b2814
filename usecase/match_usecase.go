package usecase

import (
	"context"
	"dating-chat-api/dto/req"
	"dating-chat-api/entity"
)

type MatchUsecase interface {
	// CanChat reports whether a match links the two users in either direction.
	// A lookup failure is returned as an error and must be treated as "cannot chat".
	CanChat(ctx context.Context, userAID, userBID string) (bool, error)
	Like(ctx context.Context, likerID string, request *req.LikeRequest) (*entity.Match, error)
}
