package usecase_test

import (
	"context"
	"dating-chat-api/notification"
	"dating-chat-api/realtime"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"dating-chat-api/usecase"
	"dating-chat-api/usecase/usecasetest"
)

type mockUploader struct{ mock.Mock }

func (m *mockUploader) Upload(ctx context.Context, blob []byte, contentType string) (string, error) {
	args := m.Called(ctx, blob, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockUploader) PublicURL(ref string) string {
	return "https://cdn.test/" + ref
}

type mockDispatcher struct{ mock.Mock }

func (m *mockDispatcher) Dispatch(ctx context.Context, n notification.Notification) error {
	return m.Called(ctx, n).Error(0)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) PublishMessage(ctx context.Context, event realtime.Event) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockPublisher) PublishTyping(ctx context.Context, event realtime.Event) error {
	return m.Called(ctx, event).Error(0)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type fixture struct {
	store    *usecasetest.Store
	feed     *realtime.LocalFeed
	uploader *mockUploader
	notifier *mockDispatcher
	matches  *usecase.MatchUsecaseImpl
	chats    *usecase.ChatUsecaseImpl
	messages *usecase.MessageUsecaseImpl
	typing   *usecase.TypingUsecaseImpl
}

func newFixture() *fixture {
	log := quietLogger()
	store := usecasetest.NewStore()
	feed := realtime.NewLocalFeed()
	uploader := new(mockUploader)
	notifier := new(mockDispatcher)
	notifier.On("Dispatch", mock.Anything, mock.Anything).Return(nil).Maybe()

	matches := usecase.NewMatchUsecase(usecasetest.MatchStore{Store: store}, validator.New(), log)
	chats := usecase.NewChatUsecase(usecasetest.RoomStore{Store: store}, store, matches, log)
	return &fixture{
		store:    store,
		feed:     feed,
		uploader: uploader,
		notifier: notifier,
		matches:  matches,
		chats:    chats,
		messages: usecase.NewMessageUsecase(store, usecasetest.StatusStore{Store: store}, chats, uploader, feed, notifier, log),
		typing:   usecase.NewTypingUsecase(usecasetest.TypingStore{Store: store}, feed, log),
	}
}

func (f *fixture) room(a, b string) string {
	f.store.Match(a, b)
	roomID, err := f.chats.GetOrCreateRoom(context.Background(), a, b)
	if err != nil {
		panic(err)
	}
	return roomID
}
