package usecase

import "context"

type TypingUsecase interface {
	SetTyping(ctx context.Context, roomID, userID string, isTyping bool) error
}
