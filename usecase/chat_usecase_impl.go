package usecase

import (
	"context"
	"dating-chat-api/dto/res"
	"dating-chat-api/entity"
	"fmt"

	"github.com/sirupsen/logrus"
)

type ChatUsecaseImpl struct {
	Rooms    RoomStore
	Messages MessageStore
	Matches  MatchUsecase
	*logrus.Logger
}

func NewChatUsecase(rooms RoomStore, messages MessageStore, matches MatchUsecase, logger *logrus.Logger) *ChatUsecaseImpl {
	return &ChatUsecaseImpl{Rooms: rooms, Messages: messages, Matches: matches, Logger: logger}
}

func (uc *ChatUsecaseImpl) GetOrCreateRoom(ctx context.Context, userAID, userBID string) (string, error) {
	if userAID == "" || userBID == "" || userAID == userBID {
		return "", ErrInvalidPair
	}
	if err := uc.requireMatch(ctx, userAID, userBID); err != nil {
		return "", err
	}

	pairKey := entity.PairKey(userAID, userBID)
	existingRoom, err := uc.Rooms.FindByPairKey(ctx, pairKey)
	if err != nil {
		return "", fmt.Errorf("find room: %w", err)
	}
	if existingRoom != nil {
		return existingRoom.ID, nil
	}

	newRoom := &entity.ChatRoom{User1ID: userAID, User2ID: userBID, PairKey: pairKey}
	if err := uc.Rooms.CreateIfAbsent(ctx, newRoom); err != nil {
		uc.Logger.WithError(err).Errorf("Failed to create chat room for %s", pairKey)
		return "", fmt.Errorf("create room: %w", err)
	}

	// a concurrent caller may have won the insert; the stored row is authoritative
	room, err := uc.Rooms.FindByPairKey(ctx, pairKey)
	if err != nil {
		return "", fmt.Errorf("reload room: %w", err)
	}
	if room == nil {
		return "", fmt.Errorf("room for %s missing after insert", pairKey)
	}

	uc.Logger.Infof("Chat room %s ready for %s", room.ID, pairKey)
	return room.ID, nil
}

func (uc *ChatUsecaseImpl) AuthorizeRoom(ctx context.Context, roomID, userID string) (*entity.ChatRoom, error) {
	room, err := uc.Rooms.FindChatByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("find room: %w", err)
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	if !room.HasParticipant(userID) {
		return nil, ErrNotParticipant
	}
	if err := uc.requireMatch(ctx, room.User1ID, room.User2ID); err != nil {
		return nil, err
	}
	return room, nil
}

// ListRooms runs a fixed number of queries whatever the room count.
func (uc *ChatUsecaseImpl) ListRooms(ctx context.Context, userID string) ([]res.RoomResponse, error) {
	rooms, err := uc.Rooms.FindAllByUserID(ctx, userID)
	if err != nil {
		uc.Logger.WithError(err).Error("Failed to get chat rooms by user ID")
		return nil, err
	}

	roomIDs := make([]string, len(rooms))
	for i, room := range rooms {
		roomIDs[i] = room.ID
	}
	lastMessages, err := uc.Messages.FindLastByChatRoomIDs(ctx, roomIDs)
	if err != nil {
		return nil, fmt.Errorf("last messages: %w", err)
	}
	unread, err := uc.Messages.CountUnreadByChatRoomIDs(ctx, roomIDs, userID)
	if err != nil {
		return nil, fmt.Errorf("unread counts: %w", err)
	}

	responses := make([]res.RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		response := res.RoomResponse{RoomId: room.ID, PeerId: room.Peer(userID), UnreadCount: unread[room.ID]}
		if lastMessage, ok := lastMessages[room.ID]; ok {
			response.LastMessage = lastMessage.Content
			if lastMessage.IsDeleted {
				response.LastMessage = entity.DeletedPlaceholder
			}
			createdAt := lastMessage.CreatedAt
			response.LastMessageTime = &createdAt
		}
		responses = append(responses, response)
	}
	return responses, nil
}

// requireMatch fails closed: a lookup error blocks the chat just like a missing match.
func (uc *ChatUsecaseImpl) requireMatch(ctx context.Context, userAID, userBID string) error {
	matched, err := uc.Matches.CanChat(ctx, userAID, userBID)
	if err != nil {
		return fmt.Errorf("verify match: %w", err)
	}
	if !matched {
		return ErrNotMatched
	}
	return nil
}
