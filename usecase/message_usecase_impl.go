package usecase

import (
	"context"
	"dating-chat-api/entity"
	"dating-chat-api/enum"
	"dating-chat-api/notification"
	"dating-chat-api/realtime"
	"dating-chat-api/storage"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const notifyTimeout = 10 * time.Second

type MessageUsecaseImpl struct {
	Messages MessageStore
	Statuses MessageStatusStore
	Rooms    RoomAuthorizer
	Uploader storage.Uploader
	Feed     realtime.Publisher
	Notifier notification.Dispatcher
	*logrus.Logger

	now func() time.Time
}

func NewMessageUsecase(
	messages MessageStore,
	statuses MessageStatusStore,
	rooms RoomAuthorizer,
	uploader storage.Uploader,
	feed realtime.Publisher,
	notifier notification.Dispatcher,
	logger *logrus.Logger,
) *MessageUsecaseImpl {
	return &MessageUsecaseImpl{
		Messages: messages,
		Statuses: statuses,
		Rooms:    rooms,
		Uploader: uploader,
		Feed:     feed,
		Notifier: notifier,
		Logger:   logger,
		now:      time.Now,
	}
}

func (uc *MessageUsecaseImpl) Send(ctx context.Context, roomID, senderID, content string) (*entity.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}

	message := &entity.Message{ChatRoomID: roomID, SenderID: senderID, Content: content}
	if err := uc.Messages.Save(ctx, message); err != nil {
		uc.Logger.WithError(err).Errorf("Failed to save message for room %s", roomID)
		return nil, fmt.Errorf("save message: %w", err)
	}

	uc.publish(ctx, realtime.MessageEvent(enum.EventMessageInserted, message))
	uc.notify(ctx, message)
	return message, nil
}

func (uc *MessageUsecaseImpl) SendImage(ctx context.Context, roomID, senderID string, blob []byte, contentType string) (*entity.Message, error) {
	ref, err := uc.Uploader.Upload(ctx, blob, contentType)
	if err != nil {
		uc.Logger.WithError(err).Errorf("Failed to upload image for room %s", roomID)
		return nil, fmt.Errorf("upload image: %w", err)
	}

	message := &entity.Message{
		ChatRoomID: roomID,
		SenderID:   senderID,
		Content:    entity.ImagePlaceholder,
		IsImage:    true,
		ImageRef:   ref,
	}
	if err := uc.Messages.Save(ctx, message); err != nil {
		uc.Logger.WithError(err).WithFields(logrus.Fields{
			"roomId":   roomID,
			"imageRef": ref,
		}).Warn("image uploaded but message insert failed, blob is orphaned")
		return nil, fmt.Errorf("save image message: %w", err)
	}

	uc.publish(ctx, realtime.MessageEvent(enum.EventMessageInserted, message))
	uc.notify(ctx, message)
	return message, nil
}

// MarkDeleted only touches rows whose sender is the requester; the filter is
// part of the UPDATE, not a prior read.
func (uc *MessageUsecaseImpl) MarkDeleted(ctx context.Context, messageID, requesterID string) (*entity.Message, error) {
	affected, err := uc.Messages.SoftDelete(ctx, messageID, requesterID, uc.now())
	if err != nil {
		uc.Logger.WithError(err).Errorf("Failed to delete message %s", messageID)
		return nil, fmt.Errorf("delete message: %w", err)
	}

	message, err := uc.Messages.FindById(ctx, messageID)
	if err != nil {
		return nil, fmt.Errorf("reload message: %w", err)
	}
	if message == nil {
		return nil, ErrMessageNotFound
	}
	if affected == 0 {
		uc.Logger.Warnf("User %s tried to delete message %s owned by %s", requesterID, messageID, message.SenderID)
		return nil, ErrForbidden
	}

	uc.publish(ctx, realtime.MessageEvent(enum.EventMessageUpdated, message))
	return message, nil
}

func (uc *MessageUsecaseImpl) FetchHistory(ctx context.Context, roomID string) ([]entity.Message, error) {
	messages, err := uc.Messages.FindByChatRoomID(ctx, roomID)
	if err != nil {
		uc.Logger.WithError(err).Errorf("Failed to get chat history for room %s", roomID)
		return nil, fmt.Errorf("fetch history: %w", err)
	}
	if messages == nil {
		messages = []entity.Message{}
	}
	return messages, nil
}

// MarkRead records a receipt only for a participant of the message's room
// reading someone else's message. Reading one's own message is a no-op.
func (uc *MessageUsecaseImpl) MarkRead(ctx context.Context, messageID, readerID string) error {
	message, err := uc.Messages.FindById(ctx, messageID)
	if err != nil {
		return fmt.Errorf("find message: %w", err)
	}
	if message == nil {
		return ErrMessageNotFound
	}
	if _, err := uc.Rooms.AuthorizeRoom(ctx, message.ChatRoomID, readerID); err != nil {
		uc.Logger.WithError(err).Warnf("User %s may not mark message %s read", readerID, messageID)
		return err
	}
	if message.SenderID == readerID {
		return nil
	}

	readAt := uc.now()
	status := &entity.MessageStatus{MessageID: messageID, UserID: readerID, IsRead: true, ReadAt: &readAt}
	if err := uc.Statuses.Upsert(ctx, status); err != nil {
		uc.Logger.WithError(err).Errorf("Failed to mark message %s read for %s", messageID, readerID)
		return fmt.Errorf("mark read: %w", err)
	}
	return nil
}

func (uc *MessageUsecaseImpl) UnreadCount(ctx context.Context, roomID, userID string) (int64, error) {
	return uc.Messages.CountUnread(ctx, roomID, userID)
}

func (uc *MessageUsecaseImpl) ImageURL(ref string) string {
	return uc.Uploader.PublicURL(ref)
}

// publish failures do not fail the write: the row is committed and
// subscribers repair gaps by re-fetching history on resync.
func (uc *MessageUsecaseImpl) publish(ctx context.Context, event realtime.Event) {
	if err := uc.Feed.PublishMessage(ctx, event); err != nil {
		uc.Logger.WithError(err).Warnf("Failed to publish %s for room %s", event.Type, event.RoomID)
	}
}

// notify is fire-and-forget.
func (uc *MessageUsecaseImpl) notify(ctx context.Context, message *entity.Message) {
	if uc.Notifier == nil {
		return
	}
	n := notification.Notification{ChatRoomID: message.ChatRoomID, SenderID: message.SenderID, Content: message.Content}
	go func() {
		notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()
		if err := uc.Notifier.Dispatch(notifyCtx, n); err != nil {
			uc.Logger.WithError(err).Warnf("Failed to dispatch notification for room %s", n.ChatRoomID)
		}
	}()
}
