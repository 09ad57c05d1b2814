package usecase

import (
	"context"
	"dating-chat-api/entity"
)

type MessageUsecase interface {
	Send(ctx context.Context, roomID, senderID, content string) (*entity.Message, error)
	// SendImage uploads first; no message row exists unless the upload succeeded.
	SendImage(ctx context.Context, roomID, senderID string, blob []byte, contentType string) (*entity.Message, error)
	MarkDeleted(ctx context.Context, messageID, requesterID string) (*entity.Message, error)
	FetchHistory(ctx context.Context, roomID string) ([]entity.Message, error)
	// MarkRead fails with ErrMessageNotFound for an unknown id and with the
	// AuthorizeRoom errors when the reader is not in the message's room.
	MarkRead(ctx context.Context, messageID, readerID string) error
	UnreadCount(ctx context.Context, roomID, userID string) (int64, error)
	ImageURL(ref string) string
}
