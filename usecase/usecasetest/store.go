// Package usecasetest provides an in-memory backend satisfying the usecase
// store ports, for tests of the usecases and the chat screen.
package usecasetest

import (
	"context"
	"dating-chat-api/entity"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store keeps every table in maps guarded by one mutex. Rows get ids and
// strictly increasing creation times on insert, like the database does.
type Store struct {
	mu       sync.Mutex
	clock    time.Time
	matches  map[string]*entity.Match
	rooms    map[string]*entity.ChatRoom
	messages map[string]*entity.Message
	statuses map[string]*entity.MessageStatus
	typing   map[string]*entity.TypingStatus
	users    map[string]*entity.User

	// Err, when set, is returned by every call.
	Err error
}

func NewStore() *Store {
	return &Store{
		clock:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		matches:  make(map[string]*entity.Match),
		rooms:    make(map[string]*entity.ChatRoom),
		messages: make(map[string]*entity.Message),
		statuses: make(map[string]*entity.MessageStatus),
		typing:   make(map[string]*entity.TypingStatus),
		users:    make(map[string]*entity.User),
	}
}

func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Millisecond)
	return s.clock
}

// Match records a like from a to b.
func (s *Store) Match(a, b string) {
	_ = s.CreateMatch(context.Background(), &entity.Match{LikerID: a, LikedID: b})
}

func (s *Store) AddUser(user entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = &user
}

func (s *Store) RoomCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rooms)
}

func (s *Store) MessageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

func (s *Store) Status(messageID, userID string) *entity.MessageStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status, ok := s.statuses[messageID+"|"+userID]; ok {
		copied := *status
		return &copied
	}
	return nil
}

func (s *Store) Typing(roomID, userID string) *entity.TypingStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status, ok := s.typing[roomID+"|"+userID]; ok {
		copied := *status
		return &copied
	}
	return nil
}

// MatchStore

func (s *Store) ExistsBetween(_ context.Context, userAID, userBID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	_, ab := s.matches[userAID+"|"+userBID]
	_, ba := s.matches[userBID+"|"+userAID]
	return ab || ba, nil
}

func (s *Store) CreateMatch(_ context.Context, match *entity.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	key := match.LikerID + "|" + match.LikedID
	if _, ok := s.matches[key]; ok {
		return nil
	}
	if match.ID == "" {
		match.ID = uuid.NewString()
	}
	match.CreatedAt = s.tick()
	copied := *match
	s.matches[key] = &copied
	return nil
}

func (s *Store) FindByPair(_ context.Context, likerID, likedID string) (*entity.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if match, ok := s.matches[likerID+"|"+likedID]; ok {
		copied := *match
		return &copied, nil
	}
	return nil, nil
}

// RoomStore

func (s *Store) FindByPairKey(_ context.Context, pairKey string) (*entity.ChatRoom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, room := range s.rooms {
		if room.PairKey == pairKey {
			copied := *room
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *Store) CreateRoom(_ context.Context, room *entity.ChatRoom) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, existing := range s.rooms {
		if existing.PairKey == room.PairKey {
			return nil
		}
	}
	if room.ID == "" {
		room.ID = uuid.NewString()
	}
	room.CreatedAt = s.tick()
	copied := *room
	s.rooms[room.ID] = &copied
	return nil
}

func (s *Store) FindChatByID(_ context.Context, id string) (*entity.ChatRoom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if room, ok := s.rooms[id]; ok {
		copied := *room
		return &copied, nil
	}
	return nil, nil
}

func (s *Store) FindAllByUserID(_ context.Context, userID string) ([]entity.ChatRoom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	rooms := []entity.ChatRoom{}
	for _, room := range s.rooms {
		if room.HasParticipant(userID) {
			rooms = append(rooms, *room)
		}
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].CreatedAt.After(rooms[j].CreatedAt) })
	return rooms, nil
}

// MessageStore

func (s *Store) Save(_ context.Context, message *entity.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if message.ID == "" {
		message.ID = uuid.NewString()
	}
	message.CreatedAt = s.tick()
	copied := *message
	s.messages[message.ID] = &copied
	return nil
}

func (s *Store) FindById(_ context.Context, id string) (*entity.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if message, ok := s.messages[id]; ok {
		copied := *message
		return &copied, nil
	}
	return nil, nil
}

func (s *Store) FindByChatRoomID(_ context.Context, chatRoomID string) ([]entity.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return s.roomMessages(chatRoomID), nil
}

func (s *Store) roomMessages(chatRoomID string) []entity.Message {
	messages := []entity.Message{}
	for _, message := range s.messages {
		if message.ChatRoomID == chatRoomID {
			messages = append(messages, *message)
		}
	}
	sort.Slice(messages, func(i, j int) bool { return messages[i].Before(&messages[j]) })
	return messages
}

func (s *Store) FindLastByChatRoomIDs(_ context.Context, chatRoomIDs []string) (map[string]entity.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	lastMessages := make(map[string]entity.Message)
	for _, roomID := range chatRoomIDs {
		if messages := s.roomMessages(roomID); len(messages) > 0 {
			lastMessages[roomID] = messages[len(messages)-1]
		}
	}
	return lastMessages, nil
}

func (s *Store) SoftDelete(_ context.Context, messageID, senderID string, at time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	message, ok := s.messages[messageID]
	if !ok || message.SenderID != senderID {
		return 0, nil
	}
	message.IsDeleted = true
	message.DeletedAt = &at
	return 1, nil
}

func (s *Store) CountUnread(_ context.Context, chatRoomID, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	return s.unread(chatRoomID, userID), nil
}

func (s *Store) CountUnreadByChatRoomIDs(_ context.Context, chatRoomIDs []string, userID string) (map[string]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	counts := make(map[string]int64)
	for _, roomID := range chatRoomIDs {
		if n := s.unread(roomID, userID); n > 0 {
			counts[roomID] = n
		}
	}
	return counts, nil
}

func (s *Store) unread(chatRoomID, userID string) int64 {
	var count int64
	for _, message := range s.messages {
		if message.ChatRoomID != chatRoomID || message.SenderID == userID || message.IsDeleted {
			continue
		}
		if status, ok := s.statuses[message.ID+"|"+userID]; ok && status.IsRead {
			continue
		}
		count++
	}
	return count
}

// UserFinder

func (s *Store) FindUser(_ context.Context, id string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, nil
}

// StatusStore and TypingStore adapters; both ports name their method Upsert.

type StatusStore struct{ *Store }

func (s StatusStore) Upsert(_ context.Context, status *entity.MessageStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	copied := *status
	s.statuses[status.MessageID+"|"+status.UserID] = &copied
	return nil
}

type TypingStore struct{ *Store }

func (s TypingStore) Upsert(_ context.Context, status *entity.TypingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	copied := *status
	s.typing[status.ChatRoomID+"|"+status.UserID] = &copied
	return nil
}

// MatchStore and RoomStore adapters; both ports name their insert CreateIfAbsent.

type MatchStore struct{ *Store }

func (s MatchStore) CreateIfAbsent(ctx context.Context, match *entity.Match) error {
	return s.CreateMatch(ctx, match)
}

type RoomStore struct{ *Store }

func (s RoomStore) CreateIfAbsent(ctx context.Context, room *entity.ChatRoom) error {
	return s.CreateRoom(ctx, room)
}

// UserStore exposes the users table under the name the push dispatcher expects.
type UserStore struct{ *Store }

func (s UserStore) FindById(ctx context.Context, id string) (*entity.User, error) {
	return s.FindUser(ctx, id)
}
