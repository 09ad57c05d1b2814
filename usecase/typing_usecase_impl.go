package usecase

import (
	"context"
	"dating-chat-api/entity"
	"dating-chat-api/realtime"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

type TypingUsecaseImpl struct {
	Typing TypingStore
	Feed   realtime.Publisher
	*logrus.Logger

	now func() time.Time
}

func NewTypingUsecase(typing TypingStore, feed realtime.Publisher, logger *logrus.Logger) *TypingUsecaseImpl {
	return &TypingUsecaseImpl{Typing: typing, Feed: feed, Logger: logger, now: time.Now}
}

// SetTyping overwrites the latest value for (room, user).
func (uc *TypingUsecaseImpl) SetTyping(ctx context.Context, roomID, userID string, isTyping bool) error {
	status := &entity.TypingStatus{ChatRoomID: roomID, UserID: userID, IsTyping: isTyping, UpdatedAt: uc.now()}
	if err := uc.Typing.Upsert(ctx, status); err != nil {
		uc.Logger.WithError(err).Errorf("Failed to update typing status in room %s", roomID)
		return fmt.Errorf("update typing status: %w", err)
	}
	if err := uc.Feed.PublishTyping(ctx, realtime.TypingEvent(status)); err != nil {
		uc.Logger.WithError(err).Warnf("Failed to publish typing status for room %s", roomID)
	}
	return nil
}
