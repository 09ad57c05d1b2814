package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dating-chat-api/dto/req"
	"dating-chat-api/dto/res"
	"dating-chat-api/entity"
	"dating-chat-api/handler"
	"dating-chat-api/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockMatches struct{ mock.Mock }

func (m *mockMatches) CanChat(ctx context.Context, a, b string) (bool, error) {
	args := m.Called(ctx, a, b)
	return args.Bool(0), args.Error(1)
}

func (m *mockMatches) Like(ctx context.Context, likerID string, request *req.LikeRequest) (*entity.Match, error) {
	args := m.Called(ctx, likerID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Match), args.Error(1)
}

type mockChats struct{ mock.Mock }

func (m *mockChats) GetOrCreateRoom(ctx context.Context, a, b string) (string, error) {
	args := m.Called(ctx, a, b)
	return args.String(0), args.Error(1)
}

func (m *mockChats) AuthorizeRoom(ctx context.Context, roomID, userID string) (*entity.ChatRoom, error) {
	args := m.Called(ctx, roomID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ChatRoom), args.Error(1)
}

func (m *mockChats) ListRooms(ctx context.Context, userID string) ([]res.RoomResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]res.RoomResponse), args.Error(1)
}

type mockMessages struct{ mock.Mock }

func (m *mockMessages) Send(ctx context.Context, roomID, senderID, content string) (*entity.Message, error) {
	args := m.Called(ctx, roomID, senderID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Message), args.Error(1)
}

func (m *mockMessages) SendImage(ctx context.Context, roomID, senderID string, blob []byte, contentType string) (*entity.Message, error) {
	args := m.Called(ctx, roomID, senderID, blob, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Message), args.Error(1)
}

func (m *mockMessages) MarkDeleted(ctx context.Context, messageID, requesterID string) (*entity.Message, error) {
	args := m.Called(ctx, messageID, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Message), args.Error(1)
}

func (m *mockMessages) FetchHistory(ctx context.Context, roomID string) ([]entity.Message, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Message), args.Error(1)
}

func (m *mockMessages) MarkRead(ctx context.Context, messageID, readerID string) error {
	return m.Called(ctx, messageID, readerID).Error(0)
}

func (m *mockMessages) UnreadCount(ctx context.Context, roomID, userID string) (int64, error) {
	args := m.Called(ctx, roomID, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockMessages) ImageURL(ref string) string {
	return "https://cdn.test/" + ref
}

type mockTyping struct{ mock.Mock }

func (m *mockTyping) SetTyping(ctx context.Context, roomID, userID string, isTyping bool) error {
	return m.Called(ctx, roomID, userID, isTyping).Error(0)
}

type suite struct {
	app      *fiber.App
	matches  *mockMatches
	chats    *mockChats
	messages *mockMessages
	typing   *mockTyping
}

// newSuite mounts the handlers behind a stub that trusts the X-User header.
func newSuite() *suite {
	log := logrus.New()
	log.SetOutput(io.Discard)
	s := &suite{
		app:      fiber.New(fiber.Config{ErrorHandler: handler.NewErrorHandler(log)}),
		matches:  new(mockMatches),
		chats:    new(mockChats),
		messages: new(mockMessages),
		typing:   new(mockTyping),
	}
	s.app.Use(func(c *fiber.Ctx) error {
		if user := c.Get("X-User"); user != "" {
			c.Locals(handler.LocalUserID, user)
		}
		return c.Next()
	})

	matchHandler := handler.NewMatchHandler(s.matches, log)
	chatHandler := handler.NewChatHandler(s.chats, s.messages, s.typing, validator.New(), log)
	s.app.Post("/matches", matchHandler.Like)
	s.app.Get("/matches/:userId/can-chat", matchHandler.CanChat)
	s.app.Post("/rooms", chatHandler.CreateRoom)
	s.app.Get("/rooms", chatHandler.GetAllRooms)
	s.app.Get("/rooms/:roomId/messages", chatHandler.GetMessagesByRoomID)
	s.app.Post("/rooms/:roomId/messages", chatHandler.SendMessage)
	s.app.Post("/rooms/:roomId/images", chatHandler.UploadImage)
	s.app.Put("/rooms/:roomId/typing", chatHandler.SetTyping)
	s.app.Delete("/messages/:messageId", chatHandler.DeleteMessage)
	s.app.Post("/messages/:messageId/read", chatHandler.MarkRead)
	return s
}

func (s *suite) do(t *testing.T, method, path, user string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	request := httptest.NewRequest(method, path, reader)
	request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if user != "" {
		request.Header.Set("X-User", user)
	}
	response, err := s.app.Test(request, -1)
	require.NoError(t, err)
	return response
}

func decode[T any](t *testing.T, response *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(response.Body).Decode(&out))
	return out
}

func room() *entity.ChatRoom {
	r := &entity.ChatRoom{User1ID: "alice", User2ID: "bob"}
	r.ID = "room-1"
	return r
}

func TestCreateRoom(t *testing.T) {
	s := newSuite()
	s.chats.On("GetOrCreateRoom", mock.Anything, "alice", "bob").Return("room-1", nil)

	response := s.do(t, http.MethodPost, "/rooms", "alice", req.RoomRequest{UserID: "bob"})

	assert.Equal(t, http.StatusOK, response.StatusCode)
	body := decode[res.CommonResponse[res.RoomIDResponse]](t, response)
	assert.Equal(t, "room-1", body.Data.RoomId)
}

func TestCreateRoom_NotMatchedIsForbidden(t *testing.T) {
	s := newSuite()
	s.chats.On("GetOrCreateRoom", mock.Anything, "alice", "bob").Return("", usecase.ErrNotMatched)

	response := s.do(t, http.MethodPost, "/rooms", "alice", req.RoomRequest{UserID: "bob"})

	assert.Equal(t, http.StatusForbidden, response.StatusCode)
	body := decode[res.ErrorResponse](t, response)
	assert.Equal(t, usecase.ErrNotMatched.Error(), body.Error)
}

func TestCreateRoom_ValidatesBody(t *testing.T) {
	s := newSuite()

	response := s.do(t, http.MethodPost, "/rooms", "alice", req.RoomRequest{})

	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	s.chats.AssertNotCalled(t, "GetOrCreateRoom", mock.Anything, mock.Anything, mock.Anything)
}

func TestRequiresUser(t *testing.T) {
	s := newSuite()

	response := s.do(t, http.MethodGet, "/rooms", "", nil)

	assert.Equal(t, http.StatusUnauthorized, response.StatusCode)
}

func TestLikeAndCanChat(t *testing.T) {
	s := newSuite()
	match := &entity.Match{LikerID: "alice", LikedID: "bob"}
	s.matches.On("Like", mock.Anything, "alice", &req.LikeRequest{LikedID: "bob"}).Return(match, nil)
	s.matches.On("CanChat", mock.Anything, "alice", "bob").Return(true, nil)

	response := s.do(t, http.MethodPost, "/matches", "alice", req.LikeRequest{LikedID: "bob"})
	assert.Equal(t, http.StatusCreated, response.StatusCode)

	response = s.do(t, http.MethodGet, "/matches/bob/can-chat", "alice", nil)
	assert.Equal(t, http.StatusOK, response.StatusCode)
	body := decode[res.CommonResponse[res.CanChatResponse]](t, response)
	assert.True(t, body.Data.CanChat)
}

func TestCanChat_LookupFailureIs500(t *testing.T) {
	s := newSuite()
	s.matches.On("CanChat", mock.Anything, "alice", "bob").Return(false, errors.New("db down"))

	response := s.do(t, http.MethodGet, "/matches/bob/can-chat", "alice", nil)

	assert.Equal(t, http.StatusInternalServerError, response.StatusCode)
	body := decode[res.ErrorResponse](t, response)
	assert.NotContains(t, body.Error, "db down")
}

func TestGetMessages_MasksDeleted(t *testing.T) {
	s := newSuite()
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	deleted := entity.Message{ChatRoomID: "room-1", SenderID: "bob", Content: "secret", IsDeleted: true}
	deleted.ID, deleted.CreatedAt = "m1", at
	image := entity.Message{ChatRoomID: "room-1", SenderID: "alice", Content: entity.ImagePlaceholder, IsImage: true, ImageRef: "chat-images/x"}
	image.ID, image.CreatedAt = "m2", at.Add(time.Second)
	s.chats.On("AuthorizeRoom", mock.Anything, "room-1", "alice").Return(room(), nil)
	s.messages.On("FetchHistory", mock.Anything, "room-1").Return([]entity.Message{deleted, image}, nil)

	response := s.do(t, http.MethodGet, "/rooms/room-1/messages", "alice", nil)

	require.Equal(t, http.StatusOK, response.StatusCode)
	body := decode[res.CommonResponse[[]res.MessageResponse]](t, response)
	require.Len(t, body.Data, 2)
	assert.Equal(t, entity.DeletedPlaceholder, body.Data[0].Content)
	assert.Equal(t, "https://cdn.test/chat-images/x", body.Data[1].ImageURL)
}

func TestGetMessages_OutsiderIsForbidden(t *testing.T) {
	s := newSuite()
	s.chats.On("AuthorizeRoom", mock.Anything, "room-1", "mallory").Return(nil, usecase.ErrNotParticipant)

	response := s.do(t, http.MethodGet, "/rooms/room-1/messages", "mallory", nil)

	assert.Equal(t, http.StatusForbidden, response.StatusCode)
	s.messages.AssertNotCalled(t, "FetchHistory", mock.Anything, mock.Anything)
}

func TestSendMessage(t *testing.T) {
	s := newSuite()
	sent := &entity.Message{ChatRoomID: "room-1", SenderID: "alice", Content: "hello"}
	sent.ID = "m1"
	s.chats.On("AuthorizeRoom", mock.Anything, "room-1", "alice").Return(room(), nil)
	s.messages.On("Send", mock.Anything, "room-1", "alice", "hello").Return(sent, nil)

	response := s.do(t, http.MethodPost, "/rooms/room-1/messages", "alice", req.MessageRequest{Content: "hello"})

	assert.Equal(t, http.StatusCreated, response.StatusCode)
	body := decode[res.CommonResponse[res.MessageResponse]](t, response)
	assert.Equal(t, "m1", body.Data.MessageId)
}

func TestSendMessage_EmptyContent(t *testing.T) {
	s := newSuite()
	s.chats.On("AuthorizeRoom", mock.Anything, "room-1", "alice").Return(room(), nil)

	response := s.do(t, http.MethodPost, "/rooms/room-1/messages", "alice", req.MessageRequest{})

	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
}

func TestUploadImage(t *testing.T) {
	s := newSuite()
	blob := []byte("not really a png")
	sent := &entity.Message{ChatRoomID: "room-1", SenderID: "alice", Content: entity.ImagePlaceholder, IsImage: true, ImageRef: "chat-images/1"}
	s.chats.On("AuthorizeRoom", mock.Anything, "room-1", "alice").Return(room(), nil)
	s.messages.On("SendImage", mock.Anything, "room-1", "alice", blob, mock.Anything).Return(sent, nil)

	var form bytes.Buffer
	writer := multipart.NewWriter(&form)
	part, err := writer.CreateFormFile("image", "photo.png")
	require.NoError(t, err)
	_, err = part.Write(blob)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	request := httptest.NewRequest(http.MethodPost, "/rooms/room-1/images", &form)
	request.Header.Set(fiber.HeaderContentType, writer.FormDataContentType())
	request.Header.Set("X-User", "alice")
	response, err := s.app.Test(request, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, response.StatusCode)
	body := decode[res.CommonResponse[res.MessageResponse]](t, response)
	assert.Equal(t, "https://cdn.test/chat-images/1", body.Data.ImageURL)
	s.messages.AssertExpectations(t)
}

func TestUploadImage_MissingFile(t *testing.T) {
	s := newSuite()
	s.chats.On("AuthorizeRoom", mock.Anything, "room-1", "alice").Return(room(), nil)

	response := s.do(t, http.MethodPost, "/rooms/room-1/images", "alice", nil)

	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
}

func TestDeleteMessage(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"sender", nil, http.StatusNoContent},
		{"not sender", usecase.ErrForbidden, http.StatusForbidden},
		{"unknown", usecase.ErrMessageNotFound, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newSuite()
			var deleted *entity.Message
			if tc.err == nil {
				deleted = &entity.Message{IsDeleted: true}
			}
			s.messages.On("MarkDeleted", mock.Anything, "m1", "alice").Return(deleted, tc.err)

			response := s.do(t, http.MethodDelete, "/messages/m1", "alice", nil)

			assert.Equal(t, tc.want, response.StatusCode)
		})
	}
}

func TestMarkReadAndTyping(t *testing.T) {
	s := newSuite()
	s.messages.On("MarkRead", mock.Anything, "m1", "bob").Return(nil)
	s.chats.On("AuthorizeRoom", mock.Anything, "room-1", "bob").Return(room(), nil)
	s.typing.On("SetTyping", mock.Anything, "room-1", "bob", true).Return(nil)

	response := s.do(t, http.MethodPost, "/messages/m1/read", "bob", nil)
	assert.Equal(t, http.StatusNoContent, response.StatusCode)

	response = s.do(t, http.MethodPut, "/rooms/room-1/typing", "bob", req.TypingRequest{IsTyping: true})
	assert.Equal(t, http.StatusNoContent, response.StatusCode)

	s.messages.AssertExpectations(t)
	s.typing.AssertExpectations(t)
}

func TestMarkRead_Errors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"outsider", usecase.ErrNotParticipant, http.StatusForbidden},
		{"unknown message", usecase.ErrMessageNotFound, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newSuite()
			s.messages.On("MarkRead", mock.Anything, "m1", "mallory").Return(tc.err)

			response := s.do(t, http.MethodPost, "/messages/m1/read", "mallory", nil)

			assert.Equal(t, tc.want, response.StatusCode)
		})
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, handler.StatusFor(usecase.ErrNotMatched))
	assert.Equal(t, http.StatusForbidden, handler.StatusFor(errors.Join(errors.New("ctx"), usecase.ErrForbidden)))
	assert.Equal(t, http.StatusNotFound, handler.StatusFor(usecase.ErrRoomNotFound))
	assert.Equal(t, http.StatusBadRequest, handler.StatusFor(usecase.ErrEmptyMessage))
	assert.Equal(t, http.StatusTeapot, handler.StatusFor(fiber.NewError(http.StatusTeapot)))
	assert.Equal(t, http.StatusInternalServerError, handler.StatusFor(errors.New("boom")))
}
