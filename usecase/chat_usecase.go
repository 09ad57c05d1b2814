package usecase

import (
	"context"
	"dating-chat-api/dto/res"
	"dating-chat-api/entity"
)

type ChatUsecase interface {
	// GetOrCreateRoom returns the single room of a matched pair, creating it on first use.
	GetOrCreateRoom(ctx context.Context, userAID, userBID string) (string, error)
	// AuthorizeRoom loads a room and checks that userID takes part in it and the pair is still matched.
	AuthorizeRoom(ctx context.Context, roomID, userID string) (*entity.ChatRoom, error)
	ListRooms(ctx context.Context, userID string) ([]res.RoomResponse, error)
}
