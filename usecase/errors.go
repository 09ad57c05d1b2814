package usecase

import "errors"

var (
	ErrNotMatched      = errors.New("users have not matched yet")
	ErrInvalidPair     = errors.New("a chat needs two different users")
	ErrRoomNotFound    = errors.New("chat room not found")
	ErrNotParticipant  = errors.New("user is not a participant of this chat room")
	ErrMessageNotFound = errors.New("message not found")
	ErrForbidden       = errors.New("only the sender can delete this message")
	ErrEmptyMessage    = errors.New("message content is empty")
)
